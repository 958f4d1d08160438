package services

import (
	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/store"
)

// sectionsFor lists the sections of a program and year level in code order
func sectionsFor(st *store.State, programID string, year models.YearLevel) []models.Section {
	return st.Sections.Filter(func(sec models.Section) bool {
		return sec.ProgramID == programID && sec.YearLevel == year
	})
}

// enrolledIn counts the students placed in a section
func enrolledIn(st *store.State, code string) int {
	return st.Students.Count(func(s models.Student) bool { return s.Section == code })
}

// assignSection returns the first section of (programID, year) with a free
// seat, opening a new one when every section is full. The caller must store
// the student before placing the next one so the seat is counted.
func assignSection(st *store.State, programID string, year models.YearLevel, capacity int) (string, error) {
	if programID == "" || !year.Valid() {
		return "", apperrors.ErrSectionPlacement
	}
	if !st.Programs.Has(programID) {
		return "", apperrors.ErrProgramNotFound
	}

	existing := sectionsFor(st, programID, year)
	for _, sec := range existing {
		if enrolledIn(st, sec.ID) < capacity {
			return sec.ID, nil
		}
	}
	sec := openSection(st, programID, year, len(existing))
	return sec.ID, nil
}

// openSection inserts a new section. The ordinal is bumped past codes that
// are already taken, for example after a section in the middle was deleted.
func openSection(st *store.State, programID string, year models.YearLevel, ordinal int) models.Section {
	code := GenerateSectionCode(programID, year, ordinal)
	for st.Sections.Has(code) {
		ordinal++
		code = GenerateSectionCode(programID, year, ordinal)
	}
	sec := models.Section{
		ID:        code,
		ProgramID: programID,
		YearLevel: year,
	}
	st.Sections.Put(code, sec)
	return sec
}

// sectionMatches reports whether code names a section of (programID, year)
func sectionMatches(st *store.State, code, programID string, year models.YearLevel) bool {
	sec, ok := st.Sections.Get(code)
	return ok && sec.ProgramID == programID && sec.YearLevel == year
}
