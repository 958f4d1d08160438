package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/validation"
)

func TestCreateStudent_SectionCapacityRollsOver(t *testing.T) {
	f := newFixture(t)
	f.program(t, "CS")

	for i := 0; i < 31; i++ {
		s := f.student(t, fmt.Sprintf("Student%02d", i), "Capacity", "CS")
		if i < 30 {
			assert.Equal(t, "CS-1-A", s.Section)
		} else {
			assert.Equal(t, "CS-1-B", s.Section)
		}
	}

	assert.Equal(t, 30, f.section(t, "CS-1-A").StudentCount)
	assert.Equal(t, 1, f.section(t, "CS-1-B").StudentCount)
}

func TestCreateStudent_CapacityComesFromOptions(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.SectionCapacity = 2 })
	f.program(t, "IT")

	sections := []string{}
	for i := 0; i < 5; i++ {
		sections = append(sections, f.student(t, fmt.Sprintf("S%d", i), "Small", "IT").Section)
	}
	assert.Equal(t, []string{"IT-1-A", "IT-1-A", "IT-1-B", "IT-1-B", "IT-1-C"}, sections)
}

func TestCreateStudent_RequestedFullSectionRollsOver(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(o *Options) { o.SectionCapacity = 2 })
	f.program(t, "CS")
	f.student(t, "Ana", "One", "CS")
	f.student(t, "Ben", "Two", "CS")
	require.Equal(t, 2, f.section(t, "CS-1-A").StudentCount)

	created, err := f.Students.CreateStudent(ctx, superAdmin, dto.StudentRequest{
		FirstName:      "Cruz",
		LastName:       "Three",
		Program:        "CS",
		EnrollmentType: models.EnrollmentNew,
		Section:        "CS-1-A",
	})
	require.NoError(t, err)
	assert.Equal(t, "CS-1-B", created.Section)
	assert.LessOrEqual(t, f.section(t, "CS-1-A").StudentCount, 2)
}

func TestUpdateStudent_RequestedFullSectionKeepsCapacity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(o *Options) { o.SectionCapacity = 2 })
	f.program(t, "CS")
	f.student(t, "Ana", "One", "CS")
	f.student(t, "Ben", "Two", "CS")
	mover := f.student(t, "Cruz", "Three", "CS")
	require.Equal(t, "CS-1-B", mover.Section)

	updated, err := f.Students.UpdateStudent(ctx, superAdmin, mover.ID, dto.StudentRequest{
		FirstName:      mover.FirstName,
		LastName:       mover.LastName,
		Program:        "CS",
		EnrollmentType: models.EnrollmentNew,
		Section:        "CS-1-A",
	})
	require.NoError(t, err)
	assert.Equal(t, "CS-1-B", updated.Section)
	assert.LessOrEqual(t, f.section(t, "CS-1-A").StudentCount, 2)
	assert.Equal(t, 1, f.section(t, "CS-1-B").StudentCount)
}

func TestUpdateStudent_RequestedSectionWithSeatIsKept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, func(o *Options) { o.SectionCapacity = 2 })
	f.program(t, "CS")
	f.student(t, "Ana", "One", "CS")
	f.student(t, "Ben", "Two", "CS")
	mover := f.student(t, "Cruz", "Three", "CS")
	require.NoError(t, f.Students.DeleteStudent(ctx, superAdmin, 1))

	updated, err := f.Students.UpdateStudent(ctx, superAdmin, mover.ID, dto.StudentRequest{
		FirstName:      mover.FirstName,
		LastName:       mover.LastName,
		Program:        "CS",
		EnrollmentType: models.EnrollmentNew,
		Section:        "CS-1-A",
	})
	require.NoError(t, err)
	assert.Equal(t, "CS-1-A", updated.Section)
	assert.Equal(t, 2, f.section(t, "CS-1-A").StudentCount)
}

func TestStudentLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")

	created, err := f.Students.CreateStudent(ctx, superAdmin, dto.StudentRequest{
		FirstName:      "Maria",
		LastName:       "Santos",
		Program:        "CS",
		EnrollmentType: models.EnrollmentNew,
		YearLevel:      models.ThirdYear,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FirstYear, created.YearLevel)
	assert.Equal(t, "CS-1-A", created.Section)
	assert.Regexp(t, validation.CompiledPatterns.StudentID, created.StudentID)
	assert.Equal(t, "s"+created.StudentID, created.Username)
	assert.Equal(t, 1, f.section(t, "CS-1-A").StudentCount)

	require.NoError(t, f.Students.DeleteStudent(ctx, superAdmin, created.ID))
	assert.Equal(t, 0, f.section(t, "CS-1-A").StudentCount)

	entry := f.latestLog(t)
	assert.Equal(t, models.ActionDeleteStudent, entry.Action)
	assert.True(t, entry.CanUndo)

	_, err = f.Activity.Undo(ctx, superAdmin, entry.ID)
	require.NoError(t, err)

	restored, err := f.Students.GetStudentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, restored)
	assert.Equal(t, 1, f.section(t, "CS-1-A").StudentCount)

	_, err = f.Activity.Undo(ctx, superAdmin, entry.ID)
	assert.ErrorIs(t, err, apperrors.ErrLogEntryNotFound)
}

func TestCreateStudent_YearLevelRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")

	for _, enrollment := range []models.EnrollmentType{
		models.EnrollmentTransferee, models.EnrollmentReturnee, models.EnrollmentContinuing,
	} {
		_, err := f.Students.CreateStudent(ctx, superAdmin, dto.StudentRequest{
			FirstName: "No", LastName: string(enrollment), Program: "CS", EnrollmentType: enrollment,
		})
		assert.ErrorIs(t, err, apperrors.ErrYearLevelRequired, string(enrollment))
	}

	s, err := f.Students.CreateStudent(ctx, superAdmin, dto.StudentRequest{
		FirstName: "Tina", LastName: "Reyes", Program: "CS",
		EnrollmentType: models.EnrollmentTransferee, YearLevel: models.ThirdYear,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ThirdYear, s.YearLevel)
	assert.Equal(t, "CS-3-A", s.Section)
}

func TestCreateStudent_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")

	_, err := f.Students.CreateStudent(ctx, superAdmin, dto.StudentRequest{LastName: "Only", Program: "CS", EnrollmentType: models.EnrollmentNew})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = f.Students.CreateStudent(ctx, superAdmin, dto.StudentRequest{
		FirstName: "Lost", LastName: "Student", Program: "NOPE", EnrollmentType: models.EnrollmentNew,
	})
	assert.ErrorIs(t, err, apperrors.ErrProgramNotFound)

	_, err = f.Students.CreateStudent(ctx, models.Actor{}, dto.StudentRequest{
		FirstName: "Anon", LastName: "Student", Program: "CS", EnrollmentType: models.EnrollmentNew,
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestDuplicateStudentNameRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	f.student(t, "Juan", "Dela Cruz", "CS")
	other := f.student(t, "Ana", "Lim", "CS")

	_, err := f.Students.CreateStudent(ctx, superAdmin, dto.StudentRequest{
		FirstName: "JUAN", LastName: "dela cruz", Program: "CS", EnrollmentType: models.EnrollmentNew,
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentNameExists)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = f.Students.UpdateStudent(ctx, superAdmin, other.ID, dto.StudentRequest{
		FirstName: "juan", LastName: "Dela Cruz", Program: "CS", EnrollmentType: models.EnrollmentNew,
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentNameExists)

	// Keeping one's own name is not a conflict
	_, err = f.Students.UpdateStudent(ctx, superAdmin, other.ID, dto.StudentRequest{
		FirstName: "Ana", LastName: "Lim", Program: "CS", EnrollmentType: models.EnrollmentNew, Email: "ana@example.com",
	})
	assert.NoError(t, err)
}

func TestUpdateStudent_YearChangeMovesSection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	s := f.student(t, "Leo", "Cruz", "CS")

	updated, err := f.Students.UpdateStudent(ctx, superAdmin, s.ID, dto.StudentRequest{
		FirstName: "Leo", LastName: "Cruz", Program: "CS",
		EnrollmentType: models.EnrollmentReturnee, YearLevel: models.SecondYear,
	})
	require.NoError(t, err)
	assert.Equal(t, "CS-2-A", updated.Section)
	assert.Equal(t, 0, f.section(t, "CS-1-A").StudentCount)
	assert.Equal(t, 1, f.section(t, "CS-2-A").StudentCount)

	_, err = f.Students.UpdateStudent(ctx, superAdmin, 999, dto.StudentRequest{
		FirstName: "X", LastName: "Y", Program: "CS", EnrollmentType: models.EnrollmentNew,
	})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestPromoteStudents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	a := f.student(t, "Ana", "One", "CS")
	b := f.student(t, "Ben", "Two", "CS")

	promoted, err := f.Students.PromoteStudents(ctx, superAdmin, dto.PromoteStudentsRequest{StudentIDs: []int64{a.ID, b.ID, a.ID}})
	require.NoError(t, err)
	require.Len(t, promoted, 2)
	for _, s := range promoted {
		assert.Equal(t, models.SecondYear, s.YearLevel)
		assert.Equal(t, models.EnrollmentContinuing, s.EnrollmentType)
		assert.Equal(t, "CS-2-A", s.Section)
	}
	assert.Equal(t, 2, f.section(t, "CS-2-A").StudentCount)
	assert.Equal(t, models.ActionPromoteStudents, f.latestLog(t).Action)

	before := f.snapshot(t)
	_, err = f.Students.PromoteStudents(ctx, superAdmin, dto.PromoteStudentsRequest{StudentIDs: []int64{a.ID, 404}})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, before, f.snapshot(t), "a failed promotion leaves no partial changes")
}

func TestPromoteStudents_FinalYearRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	senior, err := f.Students.CreateStudent(ctx, superAdmin, dto.StudentRequest{
		FirstName: "Old", LastName: "Timer", Program: "CS",
		EnrollmentType: models.EnrollmentContinuing, YearLevel: models.FourthYear,
	})
	require.NoError(t, err)

	_, err = f.Students.PromoteStudents(ctx, superAdmin, dto.PromoteStudentsRequest{StudentIDs: []int64{senior.ID}})
	assert.ErrorIs(t, err, apperrors.ErrStudentCannotPromote)
}

func TestGetStudents_Filter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.program(t, "CS")
	f.program(t, "IT")
	f.student(t, "A", "One", "CS")
	f.student(t, "B", "Two", "IT")

	all, err := f.Students.GetStudents(ctx, dto.StudentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	it, err := f.Students.GetStudents(ctx, dto.StudentFilter{Program: "IT"})
	require.NoError(t, err)
	require.Len(t, it, 1)
	assert.Equal(t, "Two", it[0].LastName)
}
