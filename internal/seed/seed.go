// Package seed loads the demo school used when the store starts empty.
package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/app/services"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/metrics"
	"github.com/yigit/schooladmin/internal/store"
)

var programs = []dto.ProgramRequest{
	{ID: "CS", Name: "BS Computer Science", Description: "Software, algorithms and computing theory"},
	{ID: "IT", Name: "BS Information Technology", Description: "Systems, networks and applied computing"},
}

var courses = []dto.CourseRequest{
	{ID: "CS101", Name: "Introduction to Computing", Type: models.CourseMajor, ProgramIDs: []string{"CS", "IT"}, YearLevel: models.FirstYear},
	{ID: "CS102", Name: "Computer Programming 1", Type: models.CourseMajor, ProgramIDs: []string{"CS", "IT"}, YearLevel: models.FirstYear},
	{ID: "CS201", Name: "Data Structures and Algorithms", Type: models.CourseMajor, ProgramIDs: []string{"CS"}, YearLevel: models.SecondYear},
	{ID: "CS301", Name: "Automata Theory", Type: models.CourseMajor, ProgramIDs: []string{"CS"}, YearLevel: models.ThirdYear},
	{ID: "IT201", Name: "Networking Fundamentals", Type: models.CourseMajor, ProgramIDs: []string{"IT"}, YearLevel: models.SecondYear},
	{ID: "IT301", Name: "Systems Administration", Type: models.CourseMajor, ProgramIDs: []string{"IT"}, YearLevel: models.ThirdYear},
	{ID: "GE101", Name: "Purposive Communication", Type: models.CourseMinor},
	{ID: "GE102", Name: "Mathematics in the Modern World", Type: models.CourseMinor},
}

var faculty = []dto.FacultyRequest{
	{FirstName: "Maria", LastName: "Santos", Department: models.DepartmentTeaching, EmploymentType: models.EmploymentRegular, Email: "maria.santos@school.test"},
	{FirstName: "Jose", LastName: "Reyes", Department: models.DepartmentTeaching, EmploymentType: models.EmploymentPartTime},
	{FirstName: "Ana", LastName: "Cruz", Department: models.DepartmentAdministrative, EmploymentType: models.EmploymentRegular, Email: "ana.cruz@school.test"},
}

var students = []dto.StudentRequest{
	{FirstName: "Juan", LastName: "Dela Cruz", Program: "CS", EnrollmentType: models.EnrollmentNew},
	{FirstName: "Liza", LastName: "Soberano", Program: "CS", EnrollmentType: models.EnrollmentNew},
	{FirstName: "Paolo", LastName: "Garcia", Program: "IT", EnrollmentType: models.EnrollmentTransferee, YearLevel: models.SecondYear},
	{FirstName: "Bea", LastName: "Lim", Program: "CS", EnrollmentType: models.EnrollmentContinuing, YearLevel: models.ThirdYear},
}

var announcements = []dto.AnnouncementRequest{
	{Title: "Welcome back", Content: "Classes for the new semester start next Monday."},
	{Title: "CS orientation", Content: "First year CS students meet at the auditorium.",
		Target: models.AnnouncementTarget{ProgramID: "CS", YearLevel: string(models.FirstYear)}},
}

// Load creates the demo programs, courses, faculty, students and
// announcements as the Super Admin, then clears the activity log so the demo
// starts with nothing to undo. Entities that already exist are skipped.
func Load(ctx context.Context, svc *services.Services, st store.Store, lgr zerolog.Logger) error {
	actor := models.Actor{ID: models.SuperAdminID, IsSuperAdmin: true, Known: true}
	var finalErr error

	record := func(kind string, err error) {
		if err == nil || errors.Is(err, apperrors.ErrConflict) {
			return
		}
		lgr.Error().Err(err).Str("kind", kind).Msg("Failed to seed entity")
		finalErr = errors.Join(finalErr, err)
	}

	for _, req := range programs {
		_, err := svc.Programs.CreateProgram(ctx, actor, req)
		record("program", err)
	}
	for _, req := range courses {
		_, err := svc.Courses.CreateCourse(ctx, actor, req)
		record("course", err)
	}
	for _, req := range faculty {
		_, err := svc.Faculty.CreateFaculty(ctx, actor, req)
		record("faculty", err)
	}
	for _, req := range students {
		_, err := svc.Students.CreateStudent(ctx, actor, req)
		record("student", err)
	}
	for _, req := range announcements {
		_, err := svc.Announcements.CreateAnnouncement(ctx, actor, req)
		record("announcement", err)
	}

	err := st.Update(ctx, func(tx *store.Tx) error {
		tx.ActivityLog = nil
		return nil
	})
	finalErr = errors.Join(finalErr, err)
	metrics.SetActivityLogSize(0)

	lgr.Info().Int("programs", len(programs)).Int("courses", len(courses)).
		Int("faculty", len(faculty)).Int("students", len(students)).Msg("Demo data loaded")
	return finalErr
}
