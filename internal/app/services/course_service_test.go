package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/store"
)

func TestDeleteCourse_Cascade(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	teacher := f.faculty(t, "Grace", "Hopper", models.DepartmentTeaching)

	course, err := f.Courses.CreateCourse(ctx, superAdmin, dto.CourseRequest{
		ID: "C099", Name: "Capstone", Type: models.CourseMajor,
		ProgramIDs: []string{"CS"}, YearLevel: models.FirstYear,
	})
	require.NoError(t, err)
	cs, err := f.Programs.GetProgramByID(ctx, "CS")
	require.NoError(t, err)
	assert.Equal(t, []string{course.ID}, cs.Courses[models.FirstYear])

	sec, err := f.Sections.CreateSection(ctx, superAdmin, dto.CreateSectionRequest{ProgramID: "CS", YearLevel: models.FirstYear})
	require.NoError(t, err)
	_, err = f.Faculty.UpdateTeachableCourses(ctx, superAdmin, dto.TeachableCoursesRequest{
		TeacherID: teacher.ID, CourseIDs: []string{"C099"},
	})
	require.NoError(t, err)
	assignment, err := f.Sections.AssignSubjectTeacher(ctx, superAdmin, dto.AssignmentRequest{
		SectionID: sec.ID, SubjectID: "C099", TeacherID: teacher.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "CS-1-A-C099", assignment.ID)

	before := f.snapshot(t)
	require.NoError(t, f.Courses.DeleteCourse(ctx, superAdmin, "C099"))

	_, err = f.Courses.GetCourseByID(ctx, "C099")
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	cs, err = f.Programs.GetProgramByID(ctx, "CS")
	require.NoError(t, err)
	assert.NotContains(t, cs.Courses[models.FirstYear], "C099")
	assignments, err := f.Sections.GetAssignments(ctx, sec.ID)
	require.NoError(t, err)
	assert.Empty(t, assignments)
	teachable, err := f.Faculty.GetTeachableCourses(ctx, teacher.ID)
	require.NoError(t, err)
	assert.NotContains(t, teachable, "C099")

	_, err = f.Activity.Undo(ctx, superAdmin, f.latestLog(t).ID)
	require.NoError(t, err)
	assert.Equal(t, before, f.snapshot(t))
}

func TestCourse_ManagementNeedsSuperAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	clerk, err := f.Admins.CreateAdmin(ctx, superAdmin, dto.CreateAdminRequest{Username: "clerk", Name: "Office Clerk"})
	require.NoError(t, err)

	_, err = f.Courses.CreateCourse(ctx, models.ActorFromAdmin(clerk), dto.CourseRequest{ID: "X1", Name: "X", Type: models.CourseMinor})
	assert.ErrorIs(t, err, apperrors.ErrSuperAdminRequired)
}

func TestCreateCourse_Rules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")

	minor, err := f.Courses.CreateCourse(ctx, superAdmin, dto.CourseRequest{
		ID: "GE1", Name: "Ethics", Type: models.CourseMinor, ProgramIDs: []string{"CS"},
	})
	require.NoError(t, err)
	assert.Empty(t, minor.ProgramIDs)

	_, err = f.Courses.CreateCourse(ctx, superAdmin, dto.CourseRequest{ID: "GE1", Name: "Again", Type: models.CourseMinor})
	assert.ErrorIs(t, err, apperrors.ErrCourseAlreadyExists)

	_, err = f.Courses.CreateCourse(ctx, superAdmin, dto.CourseRequest{
		ID: "BAD", Name: "Bad", Type: models.CourseMajor, ProgramIDs: []string{"NOPE"},
	})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = f.Courses.CreateCourse(ctx, superAdmin, dto.CourseRequest{Name: "No id", Type: models.CourseMinor})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateCourse_ReschedulesPrograms(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	f.program(t, "IT")

	_, err := f.Courses.CreateCourse(ctx, superAdmin, dto.CourseRequest{
		ID: "DB1", Name: "Databases", Type: models.CourseMajor,
		ProgramIDs: []string{"CS", "IT"}, YearLevel: models.SecondYear,
	})
	require.NoError(t, err)

	_, err = f.Courses.UpdateCourse(ctx, superAdmin, "DB1", dto.CourseRequest{
		Name: "Databases", Type: models.CourseMajor,
		ProgramIDs: []string{"CS"}, YearLevel: models.ThirdYear,
	})
	require.NoError(t, err)

	require.NoError(t, f.store.View(ctx, func(st *store.State) error {
		cs, _ := st.Programs.Get("CS")
		it, _ := st.Programs.Get("IT")
		assert.Empty(t, cs.Courses[models.SecondYear])
		assert.Equal(t, []string{"DB1"}, cs.Courses[models.ThirdYear])
		year, scheduled := it.YearOf("DB1")
		assert.False(t, scheduled, "IT still lists DB1 in %s", year)
		return nil
	}))

	// Turning it into a Minor clears the program list
	updated, err := f.Courses.UpdateCourse(ctx, superAdmin, "DB1", dto.CourseRequest{
		Name: "Databases", Type: models.CourseMinor, ProgramIDs: []string{"CS"},
	})
	require.NoError(t, err)
	assert.Empty(t, updated.ProgramIDs)
}

func TestGetCourses_EligibleForProgram(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	f.program(t, "IT")
	_, err := f.Courses.CreateCourse(ctx, superAdmin, dto.CourseRequest{ID: "CS1", Name: "CS only", Type: models.CourseMajor, ProgramIDs: []string{"CS"}})
	require.NoError(t, err)
	_, err = f.Courses.CreateCourse(ctx, superAdmin, dto.CourseRequest{ID: "GE1", Name: "Shared", Type: models.CourseMinor})
	require.NoError(t, err)

	it, err := f.Courses.GetCourses(ctx, "IT")
	require.NoError(t, err)
	require.Len(t, it, 1)
	assert.Equal(t, "GE1", it[0].ID)
}
