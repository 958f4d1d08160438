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

// StudentService handles student records and their section placement
type StudentService struct {
	*Engine
}

// NewStudentService creates a new student service
func NewStudentService(e *Engine) *StudentService {
	return &StudentService{Engine: e}
}

// GetStudents lists students matching the filter ordered by id
func (s *StudentService) GetStudents(ctx context.Context, filter dto.StudentFilter) ([]models.Student, error) {
	var students []models.Student
	err := s.view(ctx, func(st *store.State) error {
		students = st.Students.Filter(func(stu models.Student) bool {
			return (filter.Program == "" || stu.Program == filter.Program) &&
				(filter.YearLevel == "" || stu.YearLevel == filter.YearLevel) &&
				(filter.Section == "" || stu.Section == filter.Section)
		})
		return nil
	})
	return students, err
}

// GetStudentByID retrieves a student by id
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (models.Student, error) {
	var student models.Student
	err := s.view(ctx, func(st *store.State) error {
		stu, ok := st.Students.Get(id)
		if !ok {
			return apperrors.ErrStudentNotFound
		}
		student = stu
		return nil
	})
	return student, err
}

// resolveYearLevel applies the enrollment rules: New students always start in
// 1st Year and every other enrollment type needs an explicit year level
func resolveYearLevel(enrollment models.EnrollmentType, year models.YearLevel) (models.YearLevel, error) {
	if enrollment == models.EnrollmentNew {
		return models.FirstYear, nil
	}
	if year == "" {
		return "", apperrors.ErrYearLevelRequired
	}
	if !year.Valid() {
		return "", apperrors.NewValidationError(fmt.Sprintf("Unknown year level %q", year))
	}
	return year, nil
}

// studentNameTaken reports whether another student already uses the name
func studentNameTaken(st *store.State, first, last string, except int64) bool {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	return st.Students.Count(func(stu models.Student) bool {
		return stu.ID != except &&
			strings.EqualFold(strings.TrimSpace(stu.FirstName), first) &&
			strings.EqualFold(strings.TrimSpace(stu.LastName), last)
	}) > 0
}

// placeStudent keeps an explicitly requested section when it belongs to the
// student's program and year and still has a free seat, otherwise
// auto-assigns one
func (s *StudentService) placeStudent(st *store.State, requested, programID string, year models.YearLevel) (string, error) {
	if requested != "" && requested != UnassignedSection &&
		sectionMatches(st, requested, programID, year) &&
		enrolledIn(st, requested) < s.opts.SectionCapacity {
		return requested, nil
	}
	return assignSection(st, programID, year, s.opts.SectionCapacity)
}

func applyStudentRequest(stu *models.Student, req dto.StudentRequest, year models.YearLevel) {
	stu.FirstName = strings.TrimSpace(req.FirstName)
	stu.LastName = strings.TrimSpace(req.LastName)
	stu.MiddleName = strings.TrimSpace(req.MiddleName)
	stu.Program = req.Program
	stu.EnrollmentType = req.EnrollmentType
	stu.YearLevel = year
	stu.Email = req.Email
	stu.ContactNumber = req.ContactNumber
	stu.Address = req.Address
	stu.EmergencyContactName = req.EmergencyContactName
	stu.EmergencyContactNumber = req.EmergencyContactNumber
}

// CreateStudent registers a student and places them in a section
func (s *StudentService) CreateStudent(ctx context.Context, actor models.Actor, req dto.StudentRequest) (models.Student, error) {
	if err := validation.Struct(req); err != nil {
		return models.Student{}, err
	}
	year, err := resolveYearLevel(req.EnrollmentType, req.YearLevel)
	if err != nil {
		return models.Student{}, err
	}

	var created models.Student
	_, err = s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		if !u.Programs.Has(req.Program) {
			return nil, apperrors.ErrProgramNotFound
		}
		if studentNameTaken(u.State, req.FirstName, req.LastName, 0) {
			return nil, apperrors.ErrStudentNameExists
		}

		studentID, err := uniqueID(StudentIDPrefix, validation.TagStudentID, s.ids.GenerateStudentID, func(id string) bool {
			return u.Students.Count(func(stu models.Student) bool { return stu.StudentID == id }) > 0 ||
				usernameTaken(u.State, GenerateStudentUsername(id))
		})
		if err != nil {
			return nil, err
		}

		stu := models.Student{
			ID:        u.NextID("student"),
			StudentID: studentID,
			Username:  GenerateStudentUsername(studentID),
		}
		applyStudentRequest(&stu, req, year)
		if stu.Section, err = s.placeStudent(u.State, req.Section, stu.Program, year); err != nil {
			return nil, err
		}
		u.Students.Put(stu.ID, stu)
		created = stu

		return &activity{
			action:      models.ActionAddStudent,
			description: fmt.Sprintf("Added student %s (%s) to section %s", stu.FullName(), stu.StudentID, stu.Section),
			targetID:    strconv.FormatInt(stu.ID, 10),
			targetType:  models.TargetStudent,
		}, nil
	})
	return created, err
}

// UpdateStudent edits a student. A change of program or year level moves the
// student to a matching section.
func (s *StudentService) UpdateStudent(ctx context.Context, actor models.Actor, id int64, req dto.StudentRequest) (models.Student, error) {
	if err := validation.Struct(req); err != nil {
		return models.Student{}, err
	}
	year, err := resolveYearLevel(req.EnrollmentType, req.YearLevel)
	if err != nil {
		return models.Student{}, err
	}

	var updated models.Student
	_, err = s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		before, ok := u.Students.Get(id)
		if !ok {
			return nil, apperrors.ErrStudentNotFound
		}
		if !u.Programs.Has(req.Program) {
			return nil, apperrors.ErrProgramNotFound
		}
		if studentNameTaken(u.State, req.FirstName, req.LastName, id) {
			return nil, apperrors.ErrStudentNameExists
		}

		stu := before
		applyStudentRequest(&stu, req, year)

		requested := req.Section
		if requested == "" && before.Program == stu.Program && before.YearLevel == year {
			requested = before.Section
		}
		if requested != stu.Section || !sectionMatches(u.State, stu.Section, stu.Program, year) {
			// Free the current seat before looking for one
			u.Students.Delete(id)
			section, err := s.placeStudent(u.State, requested, stu.Program, year)
			if err != nil {
				return nil, err
			}
			stu.Section = section
		}
		u.Students.Put(id, stu)
		updated = stu

		return &activity{
			action:      models.ActionUpdateStudent,
			description: fmt.Sprintf("Updated student %s (%s)", stu.FullName(), stu.StudentID),
			targetID:    strconv.FormatInt(id, 10),
			targetType:  models.TargetStudent,
			original:    before,
		}, nil
	})
	return updated, err
}

// DeleteStudent removes a student; the section count follows
func (s *StudentService) DeleteStudent(ctx context.Context, actor models.Actor, id int64) error {
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		before, ok := u.Students.Get(id)
		if !ok {
			return nil, apperrors.ErrStudentNotFound
		}
		u.Students.Delete(id)

		return &activity{
			action:      models.ActionDeleteStudent,
			description: fmt.Sprintf("Deleted student %s (%s)", before.FullName(), before.StudentID),
			targetID:    strconv.FormatInt(id, 10),
			targetType:  models.TargetStudent,
			original:    before,
		}, nil
	})
	return err
}

// PromoteStudents moves each student up one year level as a Continuing
// student in a section of the new year. Nothing changes if any student is
// missing or already in 4th Year.
func (s *StudentService) PromoteStudents(ctx context.Context, actor models.Actor, req dto.PromoteStudentsRequest) ([]models.Student, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var promoted []models.Student
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		promoted = promoted[:0]
		originals := make([]models.Student, 0, len(req.StudentIDs))
		ids := make([]string, 0, len(req.StudentIDs))
		seen := make(map[int64]bool, len(req.StudentIDs))

		for _, id := range req.StudentIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			before, ok := u.Students.Get(id)
			if !ok {
				return nil, apperrors.NewCustomError(apperrors.ErrResourceNotFound,
					fmt.Sprintf("Student %d not found", id))
			}
			next, ok := before.YearLevel.Next()
			if !ok {
				return nil, apperrors.ErrStudentCannotPromote
			}

			stu := before
			stu.YearLevel = next
			stu.EnrollmentType = models.EnrollmentContinuing
			u.Students.Delete(id)
			section, err := assignSection(u.State, stu.Program, next, s.opts.SectionCapacity)
			if err != nil {
				return nil, err
			}
			stu.Section = section
			u.Students.Put(id, stu)

			originals = append(originals, before)
			promoted = append(promoted, stu)
			ids = append(ids, strconv.FormatInt(id, 10))
		}

		return &activity{
			action:      models.ActionPromoteStudents,
			description: fmt.Sprintf("Promoted %d student(s)", len(promoted)),
			targetID:    strings.Join(ids, ","),
			targetType:  models.TargetStudent,
			original:    originals,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return promoted, nil
}
