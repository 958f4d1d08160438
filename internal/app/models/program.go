package models

import "slices"

// Program is an academic degree track with a year-by-year course plan
type Program struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Courses     map[YearLevel][]string `json:"courses"`
}

// Clone returns a deep copy of the program
func (p Program) Clone() Program {
	out := p
	out.Courses = make(map[YearLevel][]string, len(p.Courses))
	for year, ids := range p.Courses {
		out.Courses[year] = slices.Clone(ids)
	}
	return out
}

// YearOf returns the year level a course is scheduled in, if any
func (p Program) YearOf(courseID string) (YearLevel, bool) {
	for _, year := range YearLevels {
		if slices.Contains(p.Courses[year], courseID) {
			return year, true
		}
	}
	return "", false
}

// Course is a unit of instruction in the global catalog
type Course struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Type        CourseType `json:"type"`
	// ProgramIDs only matters for Major courses
	ProgramIDs []string  `json:"programId"`
	YearLevel  YearLevel `json:"yearLevel,omitempty"`
}

// Clone returns a deep copy of the course
func (c Course) Clone() Course {
	out := c
	out.ProgramIDs = slices.Clone(c.ProgramIDs)
	return out
}

// EligibleFor reports whether the course may be scheduled in the program
func (c Course) EligibleFor(programID string) bool {
	if c.Type == CourseMinor {
		return true
	}
	return slices.Contains(c.ProgramIDs, programID)
}
