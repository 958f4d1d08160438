package gateway

import (
	"context"

	"github.com/yigit/schooladmin/internal/app/models/dto"
)

func (f *Facade) routes() map[Operation]handlerFunc {
	return map[Operation]handlerFunc{
		OpLogin: f.login,

		OpStudentsRead:    f.readStudents,
		OpStudentsCreate:  f.createStudent,
		OpStudentsUpdate:  f.updateStudent,
		OpStudentsDelete:  f.deleteStudent,
		OpStudentsPromote: f.promoteStudents,

		OpTeachersRead:   f.readTeachers,
		OpTeachersCreate: f.createTeacher,
		OpTeachersUpdate: f.updateTeacher,
		OpTeachersDelete: f.deleteTeacher,

		OpProgramsRead:   f.readPrograms,
		OpProgramsCreate: f.createProgram,
		OpProgramsUpdate: f.updateProgram,
		OpProgramsDelete: f.deleteProgram,

		OpCoursesRead:   f.readCourses,
		OpCoursesCreate: f.createCourse,
		OpCoursesUpdate: f.updateCourse,
		OpCoursesDelete: f.deleteCourse,

		OpSectionsRead:   f.readSections,
		OpSectionsCreate: f.createSection,
		OpSectionsUpdate: f.updateSection,
		OpSectionsDelete: f.deleteSection,

		OpAssignmentsRead:   f.readAssignments,
		OpAssignmentsCreate: f.createAssignment,
		OpAssignmentsDelete: f.deleteAssignment,

		OpAdminsRead:   f.readAdmins,
		OpAdminsCreate: f.createAdmin,
		OpAdminsDelete: f.deleteAdmin,

		OpResetPassword:   f.resetPassword,
		OpActivityLogRead: f.readActivityLog,
		OpActivityLogUndo: f.undo,
		OpDashboardStats:  f.dashboardStats,

		OpAnnouncementsRead:   f.readAnnouncements,
		OpAnnouncementsCreate: f.createAnnouncement,
		OpAnnouncementsUpdate: f.updateAnnouncement,
		OpAnnouncementsDelete: f.deleteAnnouncement,

		OpTeachableCoursesRead:   f.readTeachableCourses,
		OpTeachableCoursesUpdate: f.updateTeachableCourses,
	}
}

func (f *Facade) login(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.LoginRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Auth.Login(ctx, body)
}

// Students

func (f *Facade) readStudents(ctx context.Context, req Request) (interface{}, error) {
	if id, ok, err := req.intQuery("id"); err != nil || ok {
		if err != nil {
			return nil, err
		}
		return f.svc.Students.GetStudentByID(ctx, id)
	}
	year, err := parseYearLevel(req.Query.Get("yearLevel"))
	if err != nil {
		return nil, err
	}
	return f.svc.Students.GetStudents(ctx, dto.StudentFilter{
		Program:   req.Query.Get("program"),
		YearLevel: year,
		Section:   req.Query.Get("section"),
	})
}

func (f *Facade) createStudent(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.StudentRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Students.CreateStudent(ctx, req.Actor, body)
}

func (f *Facade) updateStudent(ctx context.Context, req Request) (interface{}, error) {
	id, err := req.intID()
	if err != nil {
		return nil, err
	}
	body, err := decodePayload[dto.StudentRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Students.UpdateStudent(ctx, req.Actor, id, body)
}

func (f *Facade) deleteStudent(ctx context.Context, req Request) (interface{}, error) {
	id, err := req.intID()
	if err != nil {
		return nil, err
	}
	return nil, f.svc.Students.DeleteStudent(ctx, req.Actor, id)
}

func (f *Facade) promoteStudents(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.PromoteStudentsRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Students.PromoteStudents(ctx, req.Actor, body)
}

// Faculty

func (f *Facade) readTeachers(ctx context.Context, req Request) (interface{}, error) {
	if id, ok, err := req.intQuery("id"); err != nil || ok {
		if err != nil {
			return nil, err
		}
		return f.svc.Faculty.GetFacultyByID(ctx, id)
	}
	dept, err := parseDepartment(req.Query.Get("department"))
	if err != nil {
		return nil, err
	}
	return f.svc.Faculty.GetFaculty(ctx, dept)
}

func (f *Facade) createTeacher(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.FacultyRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Faculty.CreateFaculty(ctx, req.Actor, body)
}

func (f *Facade) updateTeacher(ctx context.Context, req Request) (interface{}, error) {
	id, err := req.intID()
	if err != nil {
		return nil, err
	}
	body, err := decodePayload[dto.FacultyRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Faculty.UpdateFaculty(ctx, req.Actor, id, body)
}

func (f *Facade) deleteTeacher(ctx context.Context, req Request) (interface{}, error) {
	id, err := req.intID()
	if err != nil {
		return nil, err
	}
	return nil, f.svc.Faculty.DeleteFaculty(ctx, req.Actor, id)
}

func (f *Facade) readTeachableCourses(ctx context.Context, req Request) (interface{}, error) {
	id, ok, err := req.intQuery("teacherId")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errTeacherIDRequired
	}
	return f.svc.Faculty.GetTeachableCourses(ctx, id)
}

func (f *Facade) updateTeachableCourses(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.TeachableCoursesRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Faculty.UpdateTeachableCourses(ctx, req.Actor, body)
}

// Programs and courses

func (f *Facade) readPrograms(ctx context.Context, req Request) (interface{}, error) {
	if id := req.Query.Get("id"); id != "" {
		return f.svc.Programs.GetProgramByID(ctx, id)
	}
	return f.svc.Programs.GetPrograms(ctx)
}

func (f *Facade) createProgram(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.ProgramRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Programs.CreateProgram(ctx, req.Actor, body)
}

func (f *Facade) updateProgram(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.ProgramRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Programs.UpdateProgram(ctx, req.Actor, req.ID, body)
}

func (f *Facade) deleteProgram(ctx context.Context, req Request) (interface{}, error) {
	return nil, f.svc.Programs.DeleteProgram(ctx, req.Actor, req.ID)
}

func (f *Facade) readCourses(ctx context.Context, req Request) (interface{}, error) {
	if id := req.Query.Get("id"); id != "" {
		return f.svc.Courses.GetCourseByID(ctx, id)
	}
	return f.svc.Courses.GetCourses(ctx, req.Query.Get("programId"))
}

func (f *Facade) createCourse(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.CourseRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Courses.CreateCourse(ctx, req.Actor, body)
}

func (f *Facade) updateCourse(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.CourseRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Courses.UpdateCourse(ctx, req.Actor, req.ID, body)
}

func (f *Facade) deleteCourse(ctx context.Context, req Request) (interface{}, error) {
	return nil, f.svc.Courses.DeleteCourse(ctx, req.Actor, req.ID)
}

// Sections and assignments

func (f *Facade) readSections(ctx context.Context, req Request) (interface{}, error) {
	year, err := parseYearLevel(req.Query.Get("yearLevel"))
	if err != nil {
		return nil, err
	}
	return f.svc.Sections.GetSections(ctx, dto.SectionFilter{
		ID:        req.Query.Get("id"),
		ProgramID: req.Query.Get("programId"),
		YearLevel: year,
	})
}

func (f *Facade) createSection(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.CreateSectionRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Sections.CreateSection(ctx, req.Actor, body)
}

func (f *Facade) updateSection(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.UpdateSectionRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Sections.UpdateSection(ctx, req.Actor, req.ID, body)
}

func (f *Facade) deleteSection(ctx context.Context, req Request) (interface{}, error) {
	return nil, f.svc.Sections.DeleteSection(ctx, req.Actor, req.ID)
}

// readAssignments lists one section's assignments, or all of them when
// sectionId is absent or all=true
func (f *Facade) readAssignments(ctx context.Context, req Request) (interface{}, error) {
	sectionID := req.Query.Get("sectionId")
	if parseBool(req.Query.Get("all")) {
		sectionID = ""
	}
	return f.svc.Sections.GetAssignments(ctx, sectionID)
}

func (f *Facade) createAssignment(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.AssignmentRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Sections.AssignSubjectTeacher(ctx, req.Actor, body)
}

func (f *Facade) deleteAssignment(ctx context.Context, req Request) (interface{}, error) {
	return nil, f.svc.Sections.RemoveAssignment(ctx, req.Actor, req.ID)
}

// Admins, activity log and dashboard

func (f *Facade) readAdmins(ctx context.Context, _ Request) (interface{}, error) {
	return f.svc.Admins.GetAdmins(ctx)
}

func (f *Facade) createAdmin(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.CreateAdminRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Admins.CreateAdmin(ctx, req.Actor, body)
}

func (f *Facade) deleteAdmin(ctx context.Context, req Request) (interface{}, error) {
	id, err := req.intID()
	if err != nil {
		return nil, err
	}
	return nil, f.svc.Admins.RemoveAdminRole(ctx, req.Actor, id)
}

func (f *Facade) resetPassword(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.ResetPasswordRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Admins.ResetPassword(ctx, req.Actor, body)
}

func (f *Facade) readActivityLog(ctx context.Context, _ Request) (interface{}, error) {
	return f.svc.Activity.GetActivityLog(ctx)
}

func (f *Facade) undo(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.UndoRequest](req)
	if err != nil {
		return nil, err
	}
	stats, err := f.svc.Activity.Undo(ctx, req.Actor, body.LogID)
	if err != nil {
		return nil, err
	}
	return dto.UndoResponse{Message: "Action undone successfully", Stats: stats}, nil
}

func (f *Facade) dashboardStats(ctx context.Context, _ Request) (interface{}, error) {
	return f.svc.Dashboard.GetStats(ctx)
}

// Announcements

func (f *Facade) readAnnouncements(ctx context.Context, req Request) (interface{}, error) {
	year, err := parseYearLevel(req.Query.Get("yearLevel"))
	if err != nil {
		return nil, err
	}
	return f.svc.Announcements.GetAnnouncements(ctx, dto.AnnouncementFilter{
		ProgramID: req.Query.Get("programId"),
		YearLevel: year,
		Section:   req.Query.Get("section"),
	})
}

func (f *Facade) createAnnouncement(ctx context.Context, req Request) (interface{}, error) {
	body, err := decodePayload[dto.AnnouncementRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Announcements.CreateAnnouncement(ctx, req.Actor, body)
}

func (f *Facade) updateAnnouncement(ctx context.Context, req Request) (interface{}, error) {
	id, err := req.intID()
	if err != nil {
		return nil, err
	}
	body, err := decodePayload[dto.AnnouncementRequest](req)
	if err != nil {
		return nil, err
	}
	return f.svc.Announcements.UpdateAnnouncement(ctx, req.Actor, id, body)
}

func (f *Facade) deleteAnnouncement(ctx context.Context, req Request) (interface{}, error) {
	id, err := req.intID()
	if err != nil {
		return nil, err
	}
	return nil, f.svc.Announcements.DeleteAnnouncement(ctx, req.Actor, id)
}
