package models

import "time"

// Faculty represents a teacher or administrative staff member
type Faculty struct {
	ID                     int64          `json:"id"`
	FacultyID              string         `json:"facultyId"`
	Username               string         `json:"username"`
	FirstName              string         `json:"firstName"`
	LastName               string         `json:"lastName"`
	MiddleName             string         `json:"middleName,omitempty"`
	Department             Department     `json:"department"`
	EmploymentType         EmploymentType `json:"employmentType"`
	Email                  string         `json:"email,omitempty"`
	ContactNumber          string         `json:"contactNumber,omitempty"`
	Address                string         `json:"address,omitempty"`
	EmergencyContactName   string         `json:"emergencyContactName,omitempty"`
	EmergencyContactNumber string         `json:"emergencyContactNumber,omitempty"`
	LastAccessed           *time.Time     `json:"lastAccessed"`
}

// FullName returns "First Last"
func (f Faculty) FullName() string {
	return f.FirstName + " " + f.LastName
}

// IsAdministrative reports whether the faculty member holds a Sub Admin role
func (f Faculty) IsAdministrative() bool {
	return f.Department == DepartmentAdministrative
}
