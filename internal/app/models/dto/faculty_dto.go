package dto

import "github.com/yigit/schooladmin/internal/app/models"

// FacultyRequest carries the editable fields of a faculty member
type FacultyRequest struct {
	FirstName              string                `json:"firstName" validate:"required,max=100"`
	LastName               string                `json:"lastName" validate:"required,max=100"`
	MiddleName             string                `json:"middleName" validate:"max=100"`
	Department             models.Department     `json:"department" validate:"required,oneof=Teaching Administrative"`
	EmploymentType         models.EmploymentType `json:"employmentType" validate:"required,oneof=Regular 'Part Time'"`
	Email                  string                `json:"email" validate:"omitempty,email"`
	ContactNumber          string                `json:"contactNumber" validate:"max=30"`
	Address                string                `json:"address" validate:"max=255"`
	EmergencyContactName   string                `json:"emergencyContactName" validate:"max=100"`
	EmergencyContactNumber string                `json:"emergencyContactNumber" validate:"max=30"`
}

// TeachableCoursesRequest replaces the set of courses a teacher may teach
type TeachableCoursesRequest struct {
	TeacherID int64    `json:"teacherId" validate:"required,gte=1"`
	CourseIDs []string `json:"courseIds" validate:"dive,required"`
}
