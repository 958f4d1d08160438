package dto

import "github.com/yigit/schooladmin/internal/app/models"

// LoginRequest holds admin credentials
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string           `json:"accessToken"`
	ExpiresIn   int              `json:"expiresIn"`
	TokenType   string           `json:"tokenType"`
	Admin       models.AdminUser `json:"admin"`
}
