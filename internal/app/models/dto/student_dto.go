package dto

import "github.com/yigit/schooladmin/internal/app/models"

// StudentRequest carries the editable fields of a student
type StudentRequest struct {
	FirstName              string                `json:"firstName" validate:"required,max=100"`
	LastName               string                `json:"lastName" validate:"required,max=100"`
	MiddleName             string                `json:"middleName" validate:"max=100"`
	Program                string                `json:"program" validate:"required"`
	EnrollmentType         models.EnrollmentType `json:"enrollmentType" validate:"required,oneof=New Transferee Returnee Continuing"`
	YearLevel              models.YearLevel      `json:"yearLevel" validate:"omitempty,yearlevel"`
	Section                string                `json:"section"`
	Email                  string                `json:"email" validate:"omitempty,email"`
	ContactNumber          string                `json:"contactNumber" validate:"max=30"`
	Address                string                `json:"address" validate:"max=255"`
	EmergencyContactName   string                `json:"emergencyContactName" validate:"max=100"`
	EmergencyContactNumber string                `json:"emergencyContactNumber" validate:"max=30"`
}

// PromoteStudentsRequest lists the students to move up one year level
type PromoteStudentsRequest struct {
	StudentIDs []int64 `json:"studentIds" validate:"required,min=1,dive,gte=1"`
}

// StudentFilter narrows a student listing
type StudentFilter struct {
	Program   string
	YearLevel models.YearLevel
	Section   string
}
