package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/validation"
	"github.com/yigit/schooladmin/internal/store"
)

// FacultyService handles faculty records, their Sub Admin role and the
// courses they may teach
type FacultyService struct {
	*Engine
}

// NewFacultyService creates a new faculty service
func NewFacultyService(e *Engine) *FacultyService {
	return &FacultyService{Engine: e}
}

// GetFaculty lists faculty ordered by id. An empty department lists everyone.
func (s *FacultyService) GetFaculty(ctx context.Context, department models.Department) ([]models.Faculty, error) {
	var faculty []models.Faculty
	err := s.view(ctx, func(st *store.State) error {
		faculty = st.Faculty.Filter(func(f models.Faculty) bool {
			return department == "" || f.Department == department
		})
		return nil
	})
	return faculty, err
}

// GetFacultyByID retrieves a faculty member by id
func (s *FacultyService) GetFacultyByID(ctx context.Context, id int64) (models.Faculty, error) {
	var faculty models.Faculty
	err := s.view(ctx, func(st *store.State) error {
		f, ok := st.Faculty.Get(id)
		if !ok {
			return apperrors.ErrFacultyNotFound
		}
		faculty = f
		return nil
	})
	return faculty, err
}

func facultyNameTaken(st *store.State, first, last string, except int64) bool {
	first, last = strings.TrimSpace(first), strings.TrimSpace(last)
	return st.Faculty.Count(func(f models.Faculty) bool {
		return f.ID != except &&
			strings.EqualFold(strings.TrimSpace(f.FirstName), first) &&
			strings.EqualFold(strings.TrimSpace(f.LastName), last)
	}) > 0
}

func applyFacultyRequest(f *models.Faculty, req dto.FacultyRequest) {
	f.FirstName = strings.TrimSpace(req.FirstName)
	f.LastName = strings.TrimSpace(req.LastName)
	f.MiddleName = strings.TrimSpace(req.MiddleName)
	f.Department = req.Department
	f.EmploymentType = req.EmploymentType
	f.Email = req.Email
	f.ContactNumber = req.ContactNumber
	f.Address = req.Address
	f.EmergencyContactName = req.EmergencyContactName
	f.EmergencyContactNumber = req.EmergencyContactNumber
	f.Username = GenerateTeacherUsername(f.FacultyID, f.Department)
}

// syncAdminRole keeps the Sub Admin record of a faculty member in step with
// the department: Administrative staff have one, everyone else has none
func syncAdminRole(st *store.State, f models.Faculty) {
	if !f.IsAdministrative() {
		st.Admins.Delete(f.ID)
		return
	}
	st.Admins.Put(f.ID, models.AdminUser{
		ID:       f.ID,
		Username: f.Username,
		Name:     f.FullName(),
		Email:    f.Email,
		Role:     models.RoleSubAdmin,
	})
}

// renameCredential moves a stored password to a new username
func renameCredential(st *store.State, from, to string) {
	if from == to {
		return
	}
	if hash, ok := st.Credentials.Get(from); ok {
		st.Credentials.Delete(from)
		st.Credentials.Put(to, hash)
	}
}

// CreateFaculty registers a faculty member. Administrative staff need the
// Super Admin and receive a Sub Admin account with the same id.
func (s *FacultyService) CreateFaculty(ctx context.Context, actor models.Actor, req dto.FacultyRequest) (models.Faculty, error) {
	if err := validation.Struct(req); err != nil {
		return models.Faculty{}, err
	}

	var created models.Faculty
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		if req.Department == models.DepartmentAdministrative {
			if err := u.requireSuperAdmin(); err != nil {
				return nil, err
			}
		}
		if facultyNameTaken(u.State, req.FirstName, req.LastName, 0) {
			return nil, apperrors.ErrFacultyNameExists
		}

		// Both department usernames are reserved so a later department move cannot collide
		facultyID, err := uniqueID(TeacherIDPrefix, validation.TagTeacherID, s.ids.GenerateTeacherID, func(id string) bool {
			return u.Faculty.Count(func(f models.Faculty) bool { return f.FacultyID == id }) > 0 ||
				usernameTaken(u.State, GenerateTeacherUsername(id, models.DepartmentTeaching)) ||
				usernameTaken(u.State, GenerateTeacherUsername(id, models.DepartmentAdministrative))
		})
		if err != nil {
			return nil, err
		}

		f := models.Faculty{ID: u.NextID("person"), FacultyID: facultyID}
		applyFacultyRequest(&f, req)
		u.Faculty.Put(f.ID, f)
		syncAdminRole(u.State, f)
		created = f

		return &activity{
			action:      models.ActionAddFaculty,
			description: fmt.Sprintf("Added %s faculty %s (%s)", f.Department, f.FullName(), f.FacultyID),
			targetID:    strconv.FormatInt(f.ID, 10),
			targetType:  models.TargetFaculty,
		}, nil
	})
	return created, err
}

// UpdateFaculty edits a faculty member. Moving into or out of the
// Administrative department needs the Super Admin and adds or removes the
// Sub Admin account.
func (s *FacultyService) UpdateFaculty(ctx context.Context, actor models.Actor, id int64, req dto.FacultyRequest) (models.Faculty, error) {
	if err := validation.Struct(req); err != nil {
		return models.Faculty{}, err
	}

	var updated models.Faculty
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		before, ok := u.Faculty.Get(id)
		if !ok {
			return nil, apperrors.ErrFacultyNotFound
		}
		if before.Department != req.Department &&
			(before.IsAdministrative() || req.Department == models.DepartmentAdministrative) {
			if err := u.requireSuperAdmin(); err != nil {
				return nil, err
			}
		}
		if facultyNameTaken(u.State, req.FirstName, req.LastName, id) {
			return nil, apperrors.ErrFacultyNameExists
		}

		f := before
		applyFacultyRequest(&f, req)
		if f.Username != before.Username && usernameTaken(u.State, f.Username) {
			return nil, apperrors.NewConflictError(fmt.Sprintf("Username %s is already in use", f.Username))
		}
		u.Faculty.Put(id, f)
		renameCredential(u.State, before.Username, f.Username)
		syncAdminRole(u.State, f)
		refreshAdviserName(u.State, f)
		updated = f

		return &activity{
			action:      models.ActionUpdateFaculty,
			description: fmt.Sprintf("Updated faculty %s (%s)", f.FullName(), f.FacultyID),
			targetID:    strconv.FormatInt(id, 10),
			targetType:  models.TargetFaculty,
			original:    before,
		}, nil
	})
	return updated, err
}

// refreshAdviserName keeps the denormalized adviser name on sections current.
// Advisers that left the Teaching department are cleared.
func refreshAdviserName(st *store.State, f models.Faculty) {
	for _, sec := range st.Sections.Filter(func(sec models.Section) bool {
		return sec.AdviserID != nil && *sec.AdviserID == f.ID
	}) {
		if f.Department == models.DepartmentTeaching {
			if sec.AdviserName == f.FullName() {
				continue
			}
			sec.AdviserName = f.FullName()
		} else {
			sec.AdviserID = nil
			sec.AdviserName = ""
		}
		st.Sections.Put(sec.ID, sec)
	}
}

// DeleteFaculty removes a faculty member together with their admin role,
// adviser posts, subject assignments and teachable courses
func (s *FacultyService) DeleteFaculty(ctx context.Context, actor models.Actor, id int64) error {
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		before, ok := u.Faculty.Get(id)
		if !ok {
			return nil, apperrors.ErrFacultyNotFound
		}
		if before.IsAdministrative() {
			if err := u.requireSuperAdmin(); err != nil {
				return nil, err
			}
		}

		u.Faculty.Delete(id)
		if id != models.SuperAdminID {
			u.Admins.Delete(id)
		}
		for _, sec := range u.Sections.Filter(func(sec models.Section) bool {
			return sec.AdviserID != nil && *sec.AdviserID == id
		}) {
			sec.AdviserID = nil
			sec.AdviserName = ""
			u.Sections.Put(sec.ID, sec)
		}
		for _, a := range u.Assignments.Filter(func(a models.SectionSubjectAssignment) bool {
			return a.TeacherID == id
		}) {
			u.Assignments.Delete(a.ID)
		}
		u.Teachable.Delete(id)
		u.Credentials.Delete(before.Username)

		return &activity{
			action:      models.ActionDeleteFaculty,
			description: fmt.Sprintf("Deleted faculty %s (%s)", before.FullName(), before.FacultyID),
			targetID:    strconv.FormatInt(id, 10),
			targetType:  models.TargetFaculty,
			original:    before,
		}, nil
	})
	return err
}

// GetTeachableCourses returns the course ids a teacher may be assigned to
func (s *FacultyService) GetTeachableCourses(ctx context.Context, teacherID int64) ([]string, error) {
	courses := []string{}
	err := s.view(ctx, func(st *store.State) error {
		if !st.Faculty.Has(teacherID) {
			return apperrors.ErrFacultyNotFound
		}
		if tc, ok := st.Teachable.Get(teacherID); ok {
			courses = tc.CourseIDs
		}
		return nil
	})
	return courses, err
}

// UpdateTeachableCourses replaces the set of courses a teacher may teach.
// An empty set removes the constraint.
func (s *FacultyService) UpdateTeachableCourses(ctx context.Context, actor models.Actor, req dto.TeachableCoursesRequest) (models.TeachableCourses, error) {
	if err := validation.Struct(req); err != nil {
		return models.TeachableCourses{}, err
	}

	var result models.TeachableCourses
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		teacher, ok := u.Faculty.Get(req.TeacherID)
		if !ok {
			return nil, apperrors.ErrFacultyNotFound
		}
		courseIDs := make([]string, 0, len(req.CourseIDs))
		for _, courseID := range req.CourseIDs {
			if !u.Courses.Has(courseID) {
				return nil, apperrors.NewCustomError(apperrors.ErrResourceNotFound,
					fmt.Sprintf("Course %s not found", courseID))
			}
			if !slices.Contains(courseIDs, courseID) {
				courseIDs = append(courseIDs, courseID)
			}
		}
		slices.Sort(courseIDs)

		before, _ := u.Teachable.Get(req.TeacherID)
		result = models.TeachableCourses{TeacherID: req.TeacherID, CourseIDs: courseIDs}
		if len(courseIDs) == 0 {
			u.Teachable.Delete(req.TeacherID)
		} else {
			u.Teachable.Put(req.TeacherID, result)
		}

		return &activity{
			action:      models.ActionUpdateTeachableCourses,
			description: fmt.Sprintf("Updated teachable courses of %s (%d course(s))", teacher.FullName(), len(courseIDs)),
			targetID:    strconv.FormatInt(req.TeacherID, 10),
			targetType:  models.TargetFaculty,
			original:    before,
		}, nil
	})
	return result, err
}
