package models

import "time"

// Student is an enrolled student record
type Student struct {
	ID                     int64          `json:"id"`
	StudentID              string         `json:"studentId"`
	Username               string         `json:"username"`
	FirstName              string         `json:"firstName"`
	LastName               string         `json:"lastName"`
	MiddleName             string         `json:"middleName,omitempty"`
	Program                string         `json:"program"`
	EnrollmentType         EnrollmentType `json:"enrollmentType"`
	YearLevel              YearLevel      `json:"yearLevel,omitempty"`
	Section                string         `json:"section"`
	Email                  string         `json:"email,omitempty"`
	ContactNumber          string         `json:"contactNumber,omitempty"`
	Address                string         `json:"address,omitempty"`
	EmergencyContactName   string         `json:"emergencyContactName,omitempty"`
	EmergencyContactNumber string         `json:"emergencyContactNumber,omitempty"`
	LastAccessed           *time.Time     `json:"lastAccessed"`
}

// FullName returns "First Last"
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
