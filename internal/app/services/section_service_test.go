package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
)

func TestCreateSection_NextLetter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")

	first, err := f.Sections.CreateSection(ctx, superAdmin, dto.CreateSectionRequest{ProgramID: "CS", YearLevel: models.SecondYear})
	require.NoError(t, err)
	second, err := f.Sections.CreateSection(ctx, superAdmin, dto.CreateSectionRequest{ProgramID: "CS", YearLevel: models.SecondYear})
	require.NoError(t, err)
	assert.Equal(t, "CS-2-A", first.ID)
	assert.Equal(t, "CS-2-B", second.ID)

	// Freed letters are not reused while a later section still exists
	require.NoError(t, f.Sections.DeleteSection(ctx, superAdmin, first.ID))
	third, err := f.Sections.CreateSection(ctx, superAdmin, dto.CreateSectionRequest{ProgramID: "CS", YearLevel: models.SecondYear})
	require.NoError(t, err)
	assert.Equal(t, "CS-2-C", third.ID)

	_, err = f.Sections.CreateSection(ctx, superAdmin, dto.CreateSectionRequest{ProgramID: "NOPE", YearLevel: models.SecondYear})
	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)
}

func TestSection_AdviserMustTeach(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	staff := f.faculty(t, "Rosa", "Mendoza", models.DepartmentAdministrative)
	teacher := f.faculty(t, "Ada", "Byron", models.DepartmentTeaching)

	_, err := f.Sections.CreateSection(ctx, superAdmin, dto.CreateSectionRequest{
		ProgramID: "CS", YearLevel: models.FirstYear, AdviserID: &staff.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrAdviserNotTeacher)

	sec, err := f.Sections.CreateSection(ctx, superAdmin, dto.CreateSectionRequest{ProgramID: "CS", YearLevel: models.FirstYear})
	require.NoError(t, err)

	updated, err := f.Sections.UpdateSection(ctx, superAdmin, sec.ID, dto.UpdateSectionRequest{AdviserID: &teacher.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.AdviserID)
	assert.Equal(t, teacher.ID, *updated.AdviserID)
	assert.Equal(t, "Ada Byron", updated.AdviserName)

	cleared, err := f.Sections.UpdateSection(ctx, superAdmin, sec.ID, dto.UpdateSectionRequest{})
	require.NoError(t, err)
	assert.Nil(t, cleared.AdviserID)
	assert.Empty(t, cleared.AdviserName)
}

func TestDeleteSection_UnassignsStudents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	s := f.student(t, "Maria", "Santos", "CS")
	before := f.snapshot(t)

	require.NoError(t, f.Sections.DeleteSection(ctx, superAdmin, s.Section))

	moved, err := f.Students.GetStudentByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, UnassignedSection, moved.Section)
	_, err = f.Sections.GetSections(ctx, dto.SectionFilter{ID: s.Section})
	assert.ErrorIs(t, err, apperrors.ErrSectionNotFound)

	_, err = f.Activity.Undo(ctx, superAdmin, f.latestLog(t).ID)
	require.NoError(t, err)
	assert.Equal(t, before, f.snapshot(t))
	assert.Equal(t, 1, f.section(t, s.Section).StudentCount)
}

func TestAssignSubjectTeacher(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	ada := f.faculty(t, "Ada", "Byron", models.DepartmentTeaching)
	alan := f.faculty(t, "Alan", "Turing", models.DepartmentTeaching)
	staff := f.faculty(t, "Rosa", "Mendoza", models.DepartmentAdministrative)
	for _, id := range []string{"GE1", "GE2"} {
		_, err := f.Courses.CreateCourse(ctx, superAdmin, dto.CourseRequest{ID: id, Name: id, Type: models.CourseMinor})
		require.NoError(t, err)
	}
	sec, err := f.Sections.CreateSection(ctx, superAdmin, dto.CreateSectionRequest{ProgramID: "CS", YearLevel: models.FirstYear})
	require.NoError(t, err)

	_, err = f.Sections.AssignSubjectTeacher(ctx, superAdmin, dto.AssignmentRequest{SectionID: sec.ID, SubjectID: "GE1", TeacherID: ada.ID})
	require.NoError(t, err)
	// Same pair again replaces the teacher
	_, err = f.Sections.AssignSubjectTeacher(ctx, superAdmin, dto.AssignmentRequest{SectionID: sec.ID, SubjectID: "GE1", TeacherID: alan.ID})
	require.NoError(t, err)

	assignments, err := f.Sections.GetAssignments(ctx, sec.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, alan.ID, assignments[0].TeacherID)

	_, err = f.Sections.AssignSubjectTeacher(ctx, superAdmin, dto.AssignmentRequest{SectionID: sec.ID, SubjectID: "GE2", TeacherID: staff.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.Faculty.UpdateTeachableCourses(ctx, superAdmin, dto.TeachableCoursesRequest{TeacherID: ada.ID, CourseIDs: []string{"GE1"}})
	require.NoError(t, err)
	_, err = f.Sections.AssignSubjectTeacher(ctx, superAdmin, dto.AssignmentRequest{SectionID: sec.ID, SubjectID: "GE2", TeacherID: ada.ID})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "teachable courses constraint")

	_, err = f.Sections.AssignSubjectTeacher(ctx, superAdmin, dto.AssignmentRequest{SectionID: sec.ID, SubjectID: "NOPE", TeacherID: ada.ID})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	require.NoError(t, f.Sections.RemoveAssignment(ctx, superAdmin, models.AssignmentID(sec.ID, "GE1")))
	assert.ErrorIs(t, f.Sections.RemoveAssignment(ctx, superAdmin, models.AssignmentID(sec.ID, "GE1")), apperrors.ErrAssignmentNotFound)
}
