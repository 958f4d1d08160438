package services

import (
	"context"
	"strings"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/auth"
	"github.com/yigit/schooladmin/internal/pkg/validation"
	"github.com/yigit/schooladmin/internal/store"
)

// AuthService handles admin login and token resolution
type AuthService struct {
	*Engine
	jwtService *auth.JWTService
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(e *Engine, jwtService *auth.JWTService, bcryptCost int) *AuthService {
	return &AuthService{
		Engine:     e,
		jwtService: jwtService,
		bcryptCost: bcryptCost,
	}
}

// SetPassword stores a bcrypt hash for username. It is used at startup for
// the Super Admin and is not recorded in the activity log.
func (s *AuthService) SetPassword(ctx context.Context, username, password string) error {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.store.Update(ctx, func(tx *store.Tx) error {
		tx.Credentials.Put(username, hash)
		return nil
	})
}

// defaultPasswordFor returns the display password of an admin without a
// stored credential. The Super Admin has none.
func defaultPasswordFor(st *store.State, admin models.AdminUser) (string, bool) {
	if admin.IsSuperAdmin {
		return "", false
	}
	if f, ok := st.Faculty.Get(admin.ID); ok {
		return GenerateDefaultPasswordDisplay(f.LastName), true
	}
	fields := strings.Fields(admin.Name)
	if len(fields) == 0 {
		return "", false
	}
	return GenerateDefaultPasswordDisplay(fields[len(fields)-1]), true
}

// Authenticate checks admin credentials
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.AdminUser, error) {
	var (
		admin    models.AdminUser
		hash     string
		fallback string
		found    bool
	)
	err := s.view(ctx, func(st *store.State) error {
		matches := st.Admins.Filter(func(a models.AdminUser) bool { return a.Username == username })
		if len(matches) == 0 {
			return nil
		}
		admin, found = matches[0], true
		if stored, ok := st.Credentials.Get(username); ok {
			hash = stored
		} else if pw, ok := defaultPasswordFor(st, admin); ok {
			fallback = pw
		}
		return nil
	})
	if err != nil {
		return models.AdminUser{}, err
	}

	switch {
	case !found:
	case hash != "":
		if auth.CheckPassword(hash, password) {
			return admin, nil
		}
	case fallback != "":
		if password == fallback {
			return admin, nil
		}
	}
	s.log.Warn().Str("username", username).Msg("failed admin login")
	return models.AdminUser{}, apperrors.ErrInvalidCredentials
}

// Login authenticates an admin and issues an access token
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error) {
	if err := validation.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}
	admin, err := s.Authenticate(ctx, strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return dto.LoginResponse{}, err
	}

	token, expiresIn, err := s.jwtService.GenerateToken(admin)
	if err != nil {
		return dto.LoginResponse{}, err
	}
	s.log.Info().Int64("adminId", admin.ID).Str("username", admin.Username).Msg("admin logged in")

	return dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		TokenType:   "Bearer",
		Admin:       admin,
	}, nil
}

// ResolveActor turns an access token into the acting admin. The admin must
// still exist; their role is read from the store, not from the token.
func (s *AuthService) ResolveActor(ctx context.Context, token string) (models.Actor, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return models.Actor{}, err
	}

	var actor models.Actor
	err = s.view(ctx, func(st *store.State) error {
		admin, ok := st.Admins.Get(claims.AdminID)
		if !ok || admin.Username != claims.Username {
			return apperrors.ErrTokenInvalid
		}
		actor = models.ActorFromAdmin(admin)
		return nil
	})
	return actor, err
}
