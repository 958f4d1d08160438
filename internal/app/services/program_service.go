package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/validation"
	"github.com/yigit/schooladmin/internal/store"
)

// ProgramService handles academic programs and their course plans.
// Every mutation requires the Super Admin.
type ProgramService struct {
	*Engine
}

// NewProgramService creates a new program service
func NewProgramService(e *Engine) *ProgramService {
	return &ProgramService{Engine: e}
}

// GetPrograms lists every program ordered by id
func (s *ProgramService) GetPrograms(ctx context.Context) ([]models.Program, error) {
	var programs []models.Program
	err := s.view(ctx, func(st *store.State) error {
		programs = st.Programs.List()
		return nil
	})
	return programs, err
}

// GetProgramByID retrieves a program by id
func (s *ProgramService) GetProgramByID(ctx context.Context, id string) (models.Program, error) {
	var program models.Program
	err := s.view(ctx, func(st *store.State) error {
		p, ok := st.Programs.Get(id)
		if !ok {
			return apperrors.ErrProgramNotFound
		}
		program = p
		return nil
	})
	return program, err
}

func programNameTaken(st *store.State, name, except string) bool {
	return st.Programs.Count(func(p models.Program) bool {
		return p.ID != except && strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name))
	}) > 0
}

// buildCoursePlan validates a year-by-year course plan for programID and
// returns it with all four year levels present
func buildCoursePlan(st *store.State, programID string, plan map[models.YearLevel][]string) (map[models.YearLevel][]string, error) {
	for year := range plan {
		if !year.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown year level %q in course plan", year))
		}
	}

	out := make(map[models.YearLevel][]string, len(models.YearLevels))
	seen := make(map[string]models.YearLevel)
	for _, year := range models.YearLevels {
		out[year] = []string{}
		for _, courseID := range plan[year] {
			course, ok := st.Courses.Get(courseID)
			if !ok {
				return nil, apperrors.NewCustomError(apperrors.ErrResourceNotFound,
					fmt.Sprintf("Course %s not found", courseID))
			}
			if !course.EligibleFor(programID) {
				return nil, apperrors.NewValidationError(
					fmt.Sprintf("Course %s is a Major course of another program", courseID))
			}
			if _, dup := seen[courseID]; dup {
				return nil, apperrors.NewCustomError(apperrors.ErrConflict,
					fmt.Sprintf("Course %s is already assigned to %s", courseID, seen[courseID]))
			}
			seen[courseID] = year
			out[year] = append(out[year], courseID)
		}
	}
	return out, nil
}

// CreateProgram adds a program with its course plan
func (s *ProgramService) CreateProgram(ctx context.Context, actor models.Actor, req dto.ProgramRequest) (models.Program, error) {
	if err := validation.Struct(req); err != nil {
		return models.Program{}, err
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return models.Program{}, apperrors.NewValidationError("Program ID is required")
	}

	var created models.Program
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		if err := u.requireSuperAdmin(); err != nil {
			return nil, err
		}
		if u.Programs.Has(id) || programNameTaken(u.State, req.Name, "") {
			return nil, apperrors.ErrProgramAlreadyExists
		}
		plan, err := buildCoursePlan(u.State, id, req.Courses)
		if err != nil {
			return nil, err
		}

		p := models.Program{
			ID:          id,
			Name:        strings.TrimSpace(req.Name),
			Description: req.Description,
			Courses:     plan,
		}
		u.Programs.Put(id, p)
		created = p

		return &activity{
			action:      models.ActionAddProgram,
			description: fmt.Sprintf("Added program %s (%s)", p.Name, p.ID),
			targetID:    p.ID,
			targetType:  models.TargetProgram,
		}, nil
	})
	return created, err
}

// UpdateProgram replaces the name, description and course plan of a program
func (s *ProgramService) UpdateProgram(ctx context.Context, actor models.Actor, id string, req dto.ProgramRequest) (models.Program, error) {
	if err := validation.Struct(req); err != nil {
		return models.Program{}, err
	}

	var updated models.Program
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		if err := u.requireSuperAdmin(); err != nil {
			return nil, err
		}
		before, ok := u.Programs.Get(id)
		if !ok {
			return nil, apperrors.ErrProgramNotFound
		}
		if programNameTaken(u.State, req.Name, id) {
			return nil, apperrors.ErrProgramAlreadyExists
		}

		p := before.Clone()
		p.Name = strings.TrimSpace(req.Name)
		p.Description = req.Description
		if req.Courses != nil {
			plan, err := buildCoursePlan(u.State, id, req.Courses)
			if err != nil {
				return nil, err
			}
			p.Courses = plan
		}
		u.Programs.Put(id, p)
		updated = p

		return &activity{
			action:      models.ActionUpdateProgram,
			description: fmt.Sprintf("Updated program %s (%s)", p.Name, p.ID),
			targetID:    id,
			targetType:  models.TargetProgram,
			original:    before,
		}, nil
	})
	return updated, err
}

// DeleteProgram removes a program, detaches it from Major courses and closes
// its sections. Every student of the program becomes unassigned and must be
// moved to an existing program before the next edit.
func (s *ProgramService) DeleteProgram(ctx context.Context, actor models.Actor, id string) error {
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		if err := u.requireSuperAdmin(); err != nil {
			return nil, err
		}
		before, ok := u.Programs.Get(id)
		if !ok {
			return nil, apperrors.ErrProgramNotFound
		}
		u.Programs.Delete(id)

		for _, c := range u.Courses.Filter(func(c models.Course) bool {
			return c.Type == models.CourseMajor && slices.Contains(c.ProgramIDs, id)
		}) {
			c.ProgramIDs = slices.DeleteFunc(c.ProgramIDs, func(p string) bool { return p == id })
			u.Courses.Put(c.ID, c)
		}

		closed := 0
		for _, sec := range u.Sections.Filter(func(sec models.Section) bool { return sec.ProgramID == id }) {
			closeSection(u.State, sec.ID)
			closed++
		}
		// Students keep the program id as a record; none of them holds a seat anymore
		for _, stu := range u.Students.Filter(func(stu models.Student) bool {
			return stu.Program == id && stu.Section != UnassignedSection
		}) {
			stu.Section = UnassignedSection
			u.Students.Put(stu.ID, stu)
		}

		return &activity{
			action:      models.ActionDeleteProgram,
			description: fmt.Sprintf("Deleted program %s (%s) and %d section(s)", before.Name, before.ID, closed),
			targetID:    id,
			targetType:  models.TargetProgram,
			original:    before,
		}, nil
	})
	return err
}

// closeSection deletes a section with its subject assignments and marks its
// students unassigned
func closeSection(st *store.State, code string) {
	for _, stu := range st.Students.Filter(func(stu models.Student) bool { return stu.Section == code }) {
		stu.Section = UnassignedSection
		st.Students.Put(stu.ID, stu)
	}
	for _, a := range st.Assignments.Filter(func(a models.SectionSubjectAssignment) bool { return a.SectionID == code }) {
		st.Assignments.Delete(a.ID)
	}
	st.Sections.Delete(code)
}
