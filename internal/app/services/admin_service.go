package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/validation"
	"github.com/yigit/schooladmin/internal/store"
)

// AdminService handles administrator accounts and password resets
type AdminService struct {
	*Engine
}

// NewAdminService creates a new admin service
func NewAdminService(e *Engine) *AdminService {
	return &AdminService{Engine: e}
}

// GetAdmins lists every admin ordered by id, the Super Admin first
func (s *AdminService) GetAdmins(ctx context.Context) ([]models.AdminUser, error) {
	var admins []models.AdminUser
	err := s.view(ctx, func(st *store.State) error {
		admins = st.Admins.List()
		return nil
	})
	return admins, err
}

// usernameTaken checks admin, faculty and student usernames
func usernameTaken(st *store.State, username string) bool {
	match := func(name string) bool { return strings.EqualFold(name, username) }
	return st.Admins.Count(func(a models.AdminUser) bool { return match(a.Username) }) > 0 ||
		st.Faculty.Count(func(f models.Faculty) bool { return match(f.Username) }) > 0 ||
		st.Students.Count(func(stu models.Student) bool { return match(stu.Username) }) > 0
}

// CreateAdmin adds a Sub Admin that is not backed by a faculty record
func (s *AdminService) CreateAdmin(ctx context.Context, actor models.Actor, req dto.CreateAdminRequest) (models.AdminUser, error) {
	if err := validation.Struct(req); err != nil {
		return models.AdminUser{}, err
	}

	var created models.AdminUser
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		if err := u.requireSuperAdmin(); err != nil {
			return nil, err
		}
		username := strings.TrimSpace(req.Username)
		if usernameTaken(u.State, username) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("Username %s is already in use", username))
		}

		admin := models.AdminUser{
			ID:       u.NextID("person"),
			Username: username,
			Name:     strings.TrimSpace(req.Name),
			Email:    req.Email,
			Role:     models.RoleSubAdmin,
		}
		u.Admins.Put(admin.ID, admin)
		created = admin

		return &activity{
			action:      models.ActionAddAdmin,
			description: fmt.Sprintf("Added Sub Admin %s (%s)", admin.Name, admin.Username),
			targetID:    strconv.FormatInt(admin.ID, 10),
			targetType:  models.TargetAdmin,
		}, nil
	})
	return created, err
}

// RemoveAdminRole takes the admin role away. Faculty-backed admins move back
// to the Teaching department; explicit admin records are deleted. The Super
// Admin can never lose the role.
func (s *AdminService) RemoveAdminRole(ctx context.Context, actor models.Actor, id int64) error {
	if id == models.SuperAdminID {
		return apperrors.ErrSuperAdminProtected
	}

	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		if err := u.requireSuperAdmin(); err != nil {
			return nil, err
		}
		admin, ok := u.Admins.Get(id)
		if !ok {
			return nil, apperrors.ErrAdminNotFound
		}
		if admin.IsSuperAdmin {
			return nil, apperrors.ErrSuperAdminProtected
		}

		description := fmt.Sprintf("Removed admin role from %s (%s)", admin.Name, admin.Username)
		if f, isFaculty := u.Faculty.Get(id); isFaculty {
			before := f.Username
			f.Department = models.DepartmentTeaching
			f.Username = GenerateTeacherUsername(f.FacultyID, f.Department)
			u.Faculty.Put(id, f)
			renameCredential(u.State, before, f.Username)
			syncAdminRole(u.State, f)
			description += ", moved to Teaching"
		} else {
			u.Admins.Delete(id)
			u.Credentials.Delete(admin.Username)
		}

		return &activity{
			action:      models.ActionRemoveAdminRole,
			description: description,
			targetID:    strconv.FormatInt(id, 10),
			targetType:  models.TargetAdmin,
			original:    admin,
		}, nil
	})
	return err
}

// ResetPassword drops the stored credential of a student, faculty member or
// explicit Sub Admin so the default display password applies again. The
// Super Admin cannot be reset and the reset cannot be undone.
func (s *AdminService) ResetPassword(ctx context.Context, actor models.Actor, req dto.ResetPasswordRequest) (dto.ResetPasswordResponse, error) {
	if err := validation.Struct(req); err != nil {
		return dto.ResetPasswordResponse{}, err
	}
	if req.UserType != "student" && req.ID == models.SuperAdminID {
		return dto.ResetPasswordResponse{}, apperrors.ErrSuperAdminProtected
	}

	var resp dto.ResetPasswordResponse
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		var (
			username, password, name string
			target                   models.TargetType
		)
		switch req.UserType {
		case "student":
			stu, ok := u.Students.Get(req.ID)
			if !ok {
				return nil, apperrors.ErrStudentNotFound
			}
			username, name, target = stu.Username, stu.FullName(), models.TargetStudent
			password = GenerateDefaultPasswordDisplay(stu.LastName)
		case "faculty":
			f, ok := u.Faculty.Get(req.ID)
			if !ok {
				return nil, apperrors.ErrFacultyNotFound
			}
			username, name, target = f.Username, f.FullName(), models.TargetFaculty
			password = GenerateDefaultPasswordDisplay(f.LastName)
		default:
			admin, ok := u.Admins.Get(req.ID)
			if !ok {
				return nil, apperrors.ErrAdminNotFound
			}
			if admin.IsSuperAdmin {
				return nil, apperrors.ErrSuperAdminProtected
			}
			def, ok := defaultPasswordFor(u.State, admin)
			if !ok {
				return nil, apperrors.NewUnsupportedError(fmt.Sprintf("Admin %s has no default password", admin.Username))
			}
			username, name, target, password = admin.Username, admin.Name, models.TargetAdmin, def
		}

		u.Credentials.Delete(username)
		resp = dto.ResetPasswordResponse{
			Message:         fmt.Sprintf("Password for %s has been reset", name),
			Username:        username,
			DefaultPassword: password,
		}

		return &activity{
			action:      models.ActionResetPassword,
			description: fmt.Sprintf("Reset password of %s %s (%s)", req.UserType, name, username),
			targetID:    strconv.FormatInt(req.ID, 10),
			targetType:  target,
		}, nil
	})
	return resp, err
}
