package dto

import "github.com/yigit/schooladmin/internal/app/models"

// ProgramRequest carries a program and its year-by-year course plan.
// ID is ignored on update.
type ProgramRequest struct {
	ID          string                        `json:"id" validate:"omitempty,max=10,alphanum"`
	Name        string                        `json:"name" validate:"required,max=150"`
	Description string                        `json:"description" validate:"max=500"`
	Courses     map[models.YearLevel][]string `json:"courses"`
}

// CourseRequest carries a catalog course. ID is ignored on update.
type CourseRequest struct {
	ID          string            `json:"id" validate:"omitempty,max=20"`
	Name        string            `json:"name" validate:"required,max=150"`
	Description string            `json:"description" validate:"max=500"`
	Type        models.CourseType `json:"type" validate:"required,oneof=Major Minor"`
	ProgramIDs  []string          `json:"programId"`
	YearLevel   models.YearLevel  `json:"yearLevel" validate:"omitempty,yearlevel"`
}
