package models

import "time"

// TargetAll matches every program, year level or section
const TargetAll = "all"

// AnnouncementTarget narrows the audience of an announcement
type AnnouncementTarget struct {
	ProgramID string `json:"programId"`
	YearLevel string `json:"yearLevel"`
	Section   string `json:"section"`
}

// Matches reports whether a student with the given placement is in the audience
func (t AnnouncementTarget) Matches(programID string, year YearLevel, section string) bool {
	return matchTarget(t.ProgramID, programID) &&
		matchTarget(t.YearLevel, string(year)) &&
		matchTarget(t.Section, section)
}

func matchTarget(want, got string) bool {
	return want == "" || want == TargetAll || want == got
}

// Announcement is a notice posted to a subset of students
type Announcement struct {
	ID      int64              `json:"id"`
	Title   string             `json:"title"`
	Content string             `json:"content"`
	Date    time.Time          `json:"date"`
	Target  AnnouncementTarget `json:"target"`
	Author  string             `json:"author"`
}
