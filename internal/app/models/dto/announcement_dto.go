package dto

import (
	"time"

	"github.com/yigit/schooladmin/internal/app/models"
)

// AnnouncementRequest carries an announcement; Date defaults to now
type AnnouncementRequest struct {
	Title   string                    `json:"title" validate:"required,max=200"`
	Content string                    `json:"content" validate:"required"`
	Date    *time.Time                `json:"date"`
	Target  models.AnnouncementTarget `json:"target"`
}

// AnnouncementFilter narrows an announcement listing to an audience
type AnnouncementFilter struct {
	ProgramID string
	YearLevel models.YearLevel
	Section   string
}
