package models

// Section is a cohort of students within a program and year level
type Section struct {
	ID           string    `json:"id"`
	ProgramID    string    `json:"programId"`
	YearLevel    YearLevel `json:"yearLevel"`
	AdviserID    *int64    `json:"adviserId"`
	AdviserName  string    `json:"adviserName,omitempty"`
	StudentCount int       `json:"studentCount"`
}

// Clone returns a copy that does not share the adviser pointer
func (s Section) Clone() Section {
	out := s
	if s.AdviserID != nil {
		id := *s.AdviserID
		out.AdviserID = &id
	}
	return out
}

// SectionSubjectAssignment binds a teacher to a subject within a section
type SectionSubjectAssignment struct {
	ID        string `json:"id"`
	SectionID string `json:"sectionId"`
	SubjectID string `json:"subjectId"`
	TeacherID int64  `json:"teacherId"`
}

// AssignmentID builds the composite key of a section/subject pair
func AssignmentID(sectionID, subjectID string) string {
	return sectionID + "-" + subjectID
}

// TeachableCourses lists the courses a teacher is qualified to teach
type TeachableCourses struct {
	TeacherID int64    `json:"teacherId"`
	CourseIDs []string `json:"courseIds"`
}
