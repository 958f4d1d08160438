package dto

import "github.com/yigit/schooladmin/internal/app/models"

// CreateAdminRequest creates a Sub Admin that is not tied to a faculty record
type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,adminusername"`
	Name     string `json:"name" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// ResetPasswordRequest resets a student, faculty or admin credential to its
// default. Id 0 names the Super Admin, which is refused by the service.
type ResetPasswordRequest struct {
	UserType string `json:"userType" validate:"required,oneof=student faculty admin"`
	ID       int64  `json:"id" validate:"gte=0"`
}

// ResetPasswordResponse reports the default password the account now uses
type ResetPasswordResponse struct {
	Message         string `json:"message"`
	Username        string `json:"username"`
	DefaultPassword string `json:"defaultPassword"`
}

// UndoRequest identifies the activity log entry to revert
type UndoRequest struct {
	LogID string `json:"logId" validate:"required"`
}

// UndoResponse is returned after a successful undo
type UndoResponse struct {
	Message string                `json:"message"`
	Stats   models.DashboardStats `json:"stats"`
}
