package services

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/store"
)

func TestRemoveAdminRole_SuperAdminProtected(t *testing.T) {
	f := newFixture(t)
	err := f.Admins.RemoveAdminRole(context.Background(), superAdmin, models.SuperAdminID)
	assert.ErrorIs(t, err, apperrors.ErrSuperAdminProtected)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedOperation)
}

func TestRemoveAdminRole_FacultyMovesToTeaching(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	staff := f.faculty(t, "Rosa", "Mendoza", models.DepartmentAdministrative)
	before := f.snapshot(t)

	require.NoError(t, f.Admins.RemoveAdminRole(ctx, superAdmin, staff.ID))

	fac, err := f.Faculty.GetFacultyByID(ctx, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DepartmentTeaching, fac.Department)
	assert.Equal(t, "t"+staff.FacultyID, fac.Username)
	assertAdminSync(t, f)

	entry := f.latestLog(t)
	assert.Equal(t, models.ActionRemoveAdminRole, entry.Action)
	assert.Equal(t, models.TargetAdmin, entry.TargetType)

	_, err = f.Activity.Undo(ctx, superAdmin, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, before, f.snapshot(t))
}

func TestRemoveAdminRole_ExplicitAdminDeleted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clerk, err := f.Admins.CreateAdmin(ctx, superAdmin, dto.CreateAdminRequest{Username: "clerk", Name: "Office Clerk"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSubAdmin, clerk.Role)

	assert.ErrorIs(t, f.Admins.RemoveAdminRole(ctx, models.ActorFromAdmin(clerk), clerk.ID), apperrors.ErrSuperAdminRequired)
	require.NoError(t, f.Admins.RemoveAdminRole(ctx, superAdmin, clerk.ID))

	admins, err := f.Admins.GetAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 1)

	// The removed admin can no longer act
	_, err = f.Students.GetStudents(ctx, dto.StudentFilter{})
	require.NoError(t, err)
	err = f.Students.DeleteStudent(ctx, models.ActorFromAdmin(clerk), 1)
	assert.ErrorIs(t, err, apperrors.ErrAdminRequired)
}

func TestCreateAdmin_UsernameConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.Admins.CreateAdmin(ctx, superAdmin, dto.CreateAdminRequest{Username: "ADMIN", Name: "Second Admin"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestCreateAdmin_SharesIDSequenceWithFaculty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	fac := f.faculty(t, "Rosa", "Mendoza", models.DepartmentTeaching)
	clerk, err := f.Admins.CreateAdmin(ctx, superAdmin, dto.CreateAdminRequest{Username: "clerk", Name: "Office Clerk"})
	require.NoError(t, err)
	assert.NotEqual(t, fac.ID, clerk.ID)
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	s := f.student(t, "Maria", "Santos", "CS")

	require.NoError(t, f.store.Update(ctx, func(tx *store.Tx) error {
		tx.Credentials.Put(s.Username, "hash")
		return nil
	}))

	resp, err := f.Admins.ResetPassword(ctx, superAdmin, dto.ResetPasswordRequest{UserType: "student", ID: s.ID})
	require.NoError(t, err)
	assert.Equal(t, "sa1234", resp.DefaultPassword)
	assert.Equal(t, s.Username, resp.Username)

	require.NoError(t, f.store.View(ctx, func(st *store.State) error {
		assert.False(t, st.Credentials.Has(s.Username))
		return nil
	}))

	entry := f.latestLog(t)
	assert.Equal(t, models.ActionResetPassword, entry.Action)
	assert.False(t, entry.CanUndo)
	_, err = f.Activity.Undo(ctx, superAdmin, entry.ID)
	assert.ErrorIs(t, err, apperrors.ErrLogEntryNotUndoable)

	_, err = f.Admins.ResetPassword(ctx, superAdmin, dto.ResetPasswordRequest{UserType: "faculty", ID: 42})
	assert.ErrorIs(t, err, apperrors.ErrFacultyNotFound)

	_, err = f.Admins.ResetPassword(ctx, superAdmin, dto.ResetPasswordRequest{UserType: "parent", ID: 1})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestResetPassword_SuperAdminUnsupported(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, userType := range []string{"faculty", "admin"} {
		_, err := f.Admins.ResetPassword(ctx, superAdmin, dto.ResetPasswordRequest{UserType: userType, ID: models.SuperAdminID})
		assert.ErrorIs(t, err, apperrors.ErrUnsupportedOperation, userType)
		assert.NotErrorIs(t, err, apperrors.ErrValidationFailed, userType)
	}
}

func TestResetPassword_ExplicitAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clerk, err := f.Admins.CreateAdmin(ctx, superAdmin, dto.CreateAdminRequest{Username: "clerk", Name: "Office Clerk"})
	require.NoError(t, err)
	require.NoError(t, f.Auth.SetPassword(ctx, "clerk", "s3cret!"))

	resp, err := f.Admins.ResetPassword(ctx, superAdmin, dto.ResetPasswordRequest{UserType: "admin", ID: clerk.ID})
	require.NoError(t, err)
	assert.Equal(t, "clerk", resp.Username)
	assert.Equal(t, "cl1234", resp.DefaultPassword)

	_, err = f.Auth.Authenticate(ctx, "clerk", "cl1234")
	assert.NoError(t, err)
	assert.Equal(t, models.TargetAdmin, f.latestLog(t).TargetType)

	_, err = f.Admins.ResetPassword(ctx, superAdmin, dto.ResetPasswordRequest{UserType: "admin", ID: 99})
	assert.ErrorIs(t, err, apperrors.ErrAdminNotFound)
}

func TestCreateAdmin_RejectsGeneratedUsernames(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, username := range []string{"t70001234", "A70009999", "s20240042"} {
		_, err := f.Admins.CreateAdmin(ctx, superAdmin, dto.CreateAdminRequest{Username: username, Name: "Impostor"})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, username)
	}
}

func TestCreateFaculty_SkipsIDsWhoseUsernameIsTaken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	// The fixture generator is seeded the same way, so its first draw is known
	firstDraw := NewIDGenerator(rand.NewPCG(1, 1)).GenerateTeacherID()
	require.NoError(t, f.store.Update(ctx, func(tx *store.Tx) error {
		tx.Admins.Put(500, models.AdminUser{ID: 500, Username: "t" + firstDraw, Name: "Legacy Account", Role: models.RoleSubAdmin})
		return nil
	}))

	fac := f.faculty(t, "Rosa", "Mendoza", models.DepartmentTeaching)
	assert.NotEqual(t, firstDraw, fac.FacultyID)
	assert.NotEqual(t, "t"+firstDraw, fac.Username)
}
