package services

import (
	"github.com/yigit/schooladmin/internal/pkg/auth"
)

// Services groups every service sharing one Engine
type Services struct {
	Auth          *AuthService
	Students      *StudentService
	Faculty       *FacultyService
	Admins        *AdminService
	Programs      *ProgramService
	Courses       *CourseService
	Sections      *SectionService
	Announcements *AnnouncementService
	Activity      *ActivityService
	Dashboard     *DashboardService
}

// NewServices wires every service onto e
func NewServices(e *Engine, jwtService *auth.JWTService, bcryptCost int) *Services {
	return &Services{
		Auth:          NewAuthService(e, jwtService, bcryptCost),
		Students:      NewStudentService(e),
		Faculty:       NewFacultyService(e),
		Admins:        NewAdminService(e),
		Programs:      NewProgramService(e),
		Courses:       NewCourseService(e),
		Sections:      NewSectionService(e),
		Announcements: NewAnnouncementService(e),
		Activity:      NewActivityService(e),
		Dashboard:     NewDashboardService(e),
	}
}
