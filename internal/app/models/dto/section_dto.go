package dto

import "github.com/yigit/schooladmin/internal/app/models"

// CreateSectionRequest opens a new section; the code is generated
type CreateSectionRequest struct {
	ProgramID string           `json:"programId" validate:"required"`
	YearLevel models.YearLevel `json:"yearLevel" validate:"required,yearlevel"`
	AdviserID *int64           `json:"adviserId"`
}

// UpdateSectionRequest changes the adviser; a null adviserId clears it
type UpdateSectionRequest struct {
	AdviserID *int64 `json:"adviserId"`
}

// SectionFilter narrows a section listing
type SectionFilter struct {
	ID        string
	ProgramID string
	YearLevel models.YearLevel
}

// AssignmentRequest assigns a teacher to a subject in a section
type AssignmentRequest struct {
	SectionID string `json:"sectionId" validate:"required"`
	SubjectID string `json:"subjectId" validate:"required"`
	TeacherID int64  `json:"teacherId" validate:"required,gte=1"`
}
