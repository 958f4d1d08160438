package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/validation"
	"github.com/yigit/schooladmin/internal/store"
)

// SectionService handles sections, their advisers and subject assignments
type SectionService struct {
	*Engine
}

// NewSectionService creates a new section service
func NewSectionService(e *Engine) *SectionService {
	return &SectionService{Engine: e}
}

// GetSections lists sections matching the filter in code order
func (s *SectionService) GetSections(ctx context.Context, filter dto.SectionFilter) ([]models.Section, error) {
	var sections []models.Section
	err := s.view(ctx, func(st *store.State) error {
		if filter.ID != "" && !st.Sections.Has(filter.ID) {
			return apperrors.ErrSectionNotFound
		}
		sections = st.Sections.Filter(func(sec models.Section) bool {
			return (filter.ID == "" || sec.ID == filter.ID) &&
				(filter.ProgramID == "" || sec.ProgramID == filter.ProgramID) &&
				(filter.YearLevel == "" || sec.YearLevel == filter.YearLevel)
		})
		return nil
	})
	return sections, err
}

// resolveAdviser checks that the adviser is Teaching faculty and returns the
// name shown on the section
func resolveAdviser(st *store.State, adviserID *int64) (string, error) {
	if adviserID == nil {
		return "", nil
	}
	f, ok := st.Faculty.Get(*adviserID)
	if !ok {
		return "", apperrors.ErrFacultyNotFound
	}
	if f.Department != models.DepartmentTeaching {
		return "", apperrors.ErrAdviserNotTeacher
	}
	return f.FullName(), nil
}

// CreateSection opens the next section of a program and year level
func (s *SectionService) CreateSection(ctx context.Context, actor models.Actor, req dto.CreateSectionRequest) (models.Section, error) {
	if err := validation.Struct(req); err != nil {
		return models.Section{}, err
	}

	var created models.Section
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		if !u.Programs.Has(req.ProgramID) {
			return nil, apperrors.ErrProgramNotFound
		}
		adviserName, err := resolveAdviser(u.State, req.AdviserID)
		if err != nil {
			return nil, err
		}

		sec := openSection(u.State, req.ProgramID, req.YearLevel, len(sectionsFor(u.State, req.ProgramID, req.YearLevel)))
		if req.AdviserID != nil {
			id := *req.AdviserID
			sec.AdviserID = &id
			sec.AdviserName = adviserName
			u.Sections.Put(sec.ID, sec)
		}
		created = sec

		return &activity{
			action:      models.ActionAddSection,
			description: fmt.Sprintf("Added section %s", sec.ID),
			targetID:    sec.ID,
			targetType:  models.TargetSection,
		}, nil
	})
	return created, err
}

// UpdateSection sets or clears the adviser of a section
func (s *SectionService) UpdateSection(ctx context.Context, actor models.Actor, id string, req dto.UpdateSectionRequest) (models.Section, error) {
	var updated models.Section
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		before, ok := u.Sections.Get(id)
		if !ok {
			return nil, apperrors.ErrSectionNotFound
		}
		adviserName, err := resolveAdviser(u.State, req.AdviserID)
		if err != nil {
			return nil, err
		}

		sec := before.Clone()
		sec.AdviserID = nil
		if req.AdviserID != nil {
			adviser := *req.AdviserID
			sec.AdviserID = &adviser
		}
		sec.AdviserName = adviserName
		u.Sections.Put(id, sec)
		updated = sec

		description := fmt.Sprintf("Cleared adviser of section %s", id)
		if adviserName != "" {
			description = fmt.Sprintf("Set %s as adviser of section %s", adviserName, id)
		}
		return &activity{
			action:      models.ActionUpdateSection,
			description: description,
			targetID:    id,
			targetType:  models.TargetSection,
			original:    before,
		}, nil
	})
	return updated, err
}

// DeleteSection removes a section and its assignments. Enrolled students are
// marked unassigned.
func (s *SectionService) DeleteSection(ctx context.Context, actor models.Actor, id string) error {
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		before, ok := u.Sections.Get(id)
		if !ok {
			return nil, apperrors.ErrSectionNotFound
		}
		enrolled := enrolledIn(u.State, id)
		closeSection(u.State, id)

		return &activity{
			action:      models.ActionDeleteSection,
			description: fmt.Sprintf("Deleted section %s (%d student(s) unassigned)", id, enrolled),
			targetID:    id,
			targetType:  models.TargetSection,
			original:    before,
		}, nil
	})
	return err
}

// GetAssignments lists subject assignments by id. An empty section id lists
// every assignment.
func (s *SectionService) GetAssignments(ctx context.Context, sectionID string) ([]models.SectionSubjectAssignment, error) {
	var assignments []models.SectionSubjectAssignment
	err := s.view(ctx, func(st *store.State) error {
		if sectionID != "" && !st.Sections.Has(sectionID) {
			return apperrors.ErrSectionNotFound
		}
		assignments = st.Assignments.Filter(func(a models.SectionSubjectAssignment) bool {
			return sectionID == "" || a.SectionID == sectionID
		})
		return nil
	})
	return assignments, err
}

// AssignSubjectTeacher assigns a teacher to a subject of a section. Assigning
// the same pair again replaces the teacher.
func (s *SectionService) AssignSubjectTeacher(ctx context.Context, actor models.Actor, req dto.AssignmentRequest) (models.SectionSubjectAssignment, error) {
	if err := validation.Struct(req); err != nil {
		return models.SectionSubjectAssignment{}, err
	}

	var assignment models.SectionSubjectAssignment
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		sec, ok := u.Sections.Get(req.SectionID)
		if !ok {
			return nil, apperrors.ErrSectionNotFound
		}
		course, ok := u.Courses.Get(req.SubjectID)
		if !ok {
			return nil, apperrors.ErrCourseNotFound
		}
		if !course.EligibleFor(sec.ProgramID) {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("Course %s is not offered in program %s", course.ID, sec.ProgramID))
		}
		teacher, ok := u.Faculty.Get(req.TeacherID)
		if !ok {
			return nil, apperrors.ErrFacultyNotFound
		}
		if teacher.Department != models.DepartmentTeaching {
			return nil, apperrors.NewValidationError("Only Teaching faculty can be assigned to subjects")
		}
		if tc, ok := u.Teachable.Get(teacher.ID); ok && len(tc.CourseIDs) > 0 && !slices.Contains(tc.CourseIDs, course.ID) {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("%s is not qualified to teach %s", teacher.FullName(), course.ID))
		}

		id := models.AssignmentID(sec.ID, course.ID)
		before, existed := u.Assignments.Get(id)
		assignment = models.SectionSubjectAssignment{
			ID:        id,
			SectionID: sec.ID,
			SubjectID: course.ID,
			TeacherID: teacher.ID,
		}
		u.Assignments.Put(id, assignment)

		act := &activity{
			action:      models.ActionAssignSubject,
			description: fmt.Sprintf("Assigned %s to %s in section %s", teacher.FullName(), course.ID, sec.ID),
			targetID:    sec.ID,
			targetType:  models.TargetSection,
		}
		if existed {
			act.original = before
		}
		return act, nil
	})
	return assignment, err
}

// RemoveAssignment deletes a subject assignment by its composite id
func (s *SectionService) RemoveAssignment(ctx context.Context, actor models.Actor, id string) error {
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		before, ok := u.Assignments.Get(id)
		if !ok {
			return nil, apperrors.ErrAssignmentNotFound
		}
		u.Assignments.Delete(id)

		return &activity{
			action:      models.ActionUnassignSubject,
			description: fmt.Sprintf("Removed %s from section %s", before.SubjectID, before.SectionID),
			targetID:    before.SectionID,
			targetType:  models.TargetSection,
			original:    before,
		}, nil
	})
	return err
}
