package models

import "time"

// ActivityLogEntry is one recorded mutating action
type ActivityLogEntry struct {
	ID          string     `json:"id"`
	Timestamp   time.Time  `json:"timestamp"`
	User        string     `json:"user"`
	Action      ActionType `json:"action"`
	Description string     `json:"description"`
	TargetID    string     `json:"targetId"`
	TargetType  TargetType `json:"targetType"`
	CanUndo     bool       `json:"canUndo"`
	// OriginalData is the primary entity as it was before the action
	OriginalData interface{} `json:"originalData,omitempty"`
}

// DashboardStats are the summary counts shown on the admin dashboard
type DashboardStats struct {
	TotalStudents         int       `json:"totalStudents"`
	TeachingFaculty       int       `json:"teachingFaculty"`
	AdministrativeFaculty int       `json:"administrativeFaculty"`
	TotalAnnouncements    int       `json:"totalAnnouncements"`
	TotalPrograms         int       `json:"totalPrograms"`
	TotalCourses          int       `json:"totalCourses"`
	TotalSections         int       `json:"totalSections"`
	ComputedAt            time.Time `json:"computedAt"`
}

// Activity event types broadcast on the live feed
const (
	EventActivityRecorded = "activity.recorded"
	EventActivityUndone   = "activity.undone"
)

// ActivityEvent is a change to the activity log
type ActivityEvent struct {
	Type  string           `json:"type"`
	Entry ActivityLogEntry `json:"entry"`
}
