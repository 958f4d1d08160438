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

// CourseService handles the global course catalog.
// Every mutation requires the Super Admin.
type CourseService struct {
	*Engine
}

// NewCourseService creates a new course service
func NewCourseService(e *Engine) *CourseService {
	return &CourseService{Engine: e}
}

// GetCourses lists the catalog ordered by id. A program id limits the list to
// courses eligible for that program.
func (s *CourseService) GetCourses(ctx context.Context, programID string) ([]models.Course, error) {
	var courses []models.Course
	err := s.view(ctx, func(st *store.State) error {
		courses = st.Courses.Filter(func(c models.Course) bool {
			return programID == "" || c.EligibleFor(programID)
		})
		return nil
	})
	return courses, err
}

// GetCourseByID retrieves a course by id
func (s *CourseService) GetCourseByID(ctx context.Context, id string) (models.Course, error) {
	var course models.Course
	err := s.view(ctx, func(st *store.State) error {
		c, ok := st.Courses.Get(id)
		if !ok {
			return apperrors.ErrCourseNotFound
		}
		course = c
		return nil
	})
	return course, err
}

// normalizeCourse applies the catalog rules: only Major courses carry
// program ids, and every listed program must exist
func normalizeCourse(st *store.State, c *models.Course) error {
	if c.Type == models.CourseMinor {
		c.ProgramIDs = []string{}
		return nil
	}
	ids := make([]string, 0, len(c.ProgramIDs))
	for _, programID := range c.ProgramIDs {
		if !st.Programs.Has(programID) {
			return apperrors.NewCustomError(apperrors.ErrResourceNotFound,
				fmt.Sprintf("Program %s not found", programID))
		}
		if !slices.Contains(ids, programID) {
			ids = append(ids, programID)
		}
	}
	c.ProgramIDs = ids
	return nil
}

// scheduleCourse brings every program's plan in line with the course: it is
// dropped where no longer eligible and placed in its year level in the
// programs a Major course lists
func scheduleCourse(st *store.State, c models.Course, moveExisting bool) error {
	for _, p := range st.Programs.List() {
		if p.Courses == nil {
			p.Courses = make(map[models.YearLevel][]string)
		}
		year, scheduled := p.YearOf(c.ID)
		listed := c.Type == models.CourseMajor && slices.Contains(c.ProgramIDs, p.ID)

		switch {
		case scheduled && !c.EligibleFor(p.ID):
			p.Courses[year] = slices.DeleteFunc(p.Courses[year], func(id string) bool { return id == c.ID })
		case listed && c.YearLevel != "" && !scheduled:
			p.Courses[c.YearLevel] = append(p.Courses[c.YearLevel], c.ID)
		case listed && c.YearLevel != "" && scheduled && year != c.YearLevel:
			if !moveExisting {
				return apperrors.ErrCourseAlreadyScheduled
			}
			p.Courses[year] = slices.DeleteFunc(p.Courses[year], func(id string) bool { return id == c.ID })
			p.Courses[c.YearLevel] = append(p.Courses[c.YearLevel], c.ID)
		default:
			continue
		}
		st.Programs.Put(p.ID, p)
	}
	return nil
}

func applyCourseRequest(c *models.Course, req dto.CourseRequest) {
	c.Name = strings.TrimSpace(req.Name)
	c.Description = req.Description
	c.Type = req.Type
	c.ProgramIDs = slices.Clone(req.ProgramIDs)
	c.YearLevel = req.YearLevel
}

// CreateCourse adds a course to the catalog and schedules a Major course in
// the programs it lists
func (s *CourseService) CreateCourse(ctx context.Context, actor models.Actor, req dto.CourseRequest) (models.Course, error) {
	if err := validation.Struct(req); err != nil {
		return models.Course{}, err
	}
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return models.Course{}, apperrors.NewValidationError("Course ID is required")
	}

	var created models.Course
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		if err := u.requireSuperAdmin(); err != nil {
			return nil, err
		}
		if u.Courses.Has(id) {
			return nil, apperrors.ErrCourseAlreadyExists
		}

		c := models.Course{ID: id}
		applyCourseRequest(&c, req)
		if err := normalizeCourse(u.State, &c); err != nil {
			return nil, err
		}
		u.Courses.Put(id, c)
		if err := scheduleCourse(u.State, c, false); err != nil {
			return nil, err
		}
		created = c

		return &activity{
			action:      models.ActionAddCourse,
			description: fmt.Sprintf("Added %s course %s (%s)", c.Type, c.Name, c.ID),
			targetID:    id,
			targetType:  models.TargetCourse,
		}, nil
	})
	return created, err
}

// UpdateCourse edits a course. Programs removed from a Major course lose it
// from their plans; a new year level moves it within the listed programs.
func (s *CourseService) UpdateCourse(ctx context.Context, actor models.Actor, id string, req dto.CourseRequest) (models.Course, error) {
	if err := validation.Struct(req); err != nil {
		return models.Course{}, err
	}

	var updated models.Course
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		if err := u.requireSuperAdmin(); err != nil {
			return nil, err
		}
		before, ok := u.Courses.Get(id)
		if !ok {
			return nil, apperrors.ErrCourseNotFound
		}

		c := before.Clone()
		applyCourseRequest(&c, req)
		if err := normalizeCourse(u.State, &c); err != nil {
			return nil, err
		}
		u.Courses.Put(id, c)
		if err := scheduleCourse(u.State, c, true); err != nil {
			return nil, err
		}
		updated = c

		return &activity{
			action:      models.ActionUpdateCourse,
			description: fmt.Sprintf("Updated course %s (%s)", c.Name, c.ID),
			targetID:    id,
			targetType:  models.TargetCourse,
			original:    before,
		}, nil
	})
	return updated, err
}

// DeleteCourse removes a course from the catalog, every program plan, every
// section assignment and every teachable-courses set
func (s *CourseService) DeleteCourse(ctx context.Context, actor models.Actor, id string) error {
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		if err := u.requireSuperAdmin(); err != nil {
			return nil, err
		}
		before, ok := u.Courses.Get(id)
		if !ok {
			return nil, apperrors.ErrCourseNotFound
		}
		u.Courses.Delete(id)

		for _, p := range u.Programs.List() {
			year, scheduled := p.YearOf(id)
			if !scheduled {
				continue
			}
			p.Courses[year] = slices.DeleteFunc(p.Courses[year], func(c string) bool { return c == id })
			u.Programs.Put(p.ID, p)
		}
		for _, a := range u.Assignments.Filter(func(a models.SectionSubjectAssignment) bool { return a.SubjectID == id }) {
			u.Assignments.Delete(a.ID)
		}
		for _, tc := range u.Teachable.Filter(func(tc models.TeachableCourses) bool {
			return slices.Contains(tc.CourseIDs, id)
		}) {
			tc.CourseIDs = slices.DeleteFunc(tc.CourseIDs, func(c string) bool { return c == id })
			u.Teachable.Put(tc.TeacherID, tc)
		}

		return &activity{
			action:      models.ActionDeleteCourse,
			description: fmt.Sprintf("Deleted course %s (%s)", before.Name, before.ID),
			targetID:    id,
			targetType:  models.TargetCourse,
			original:    before,
		}, nil
	})
	return err
}
