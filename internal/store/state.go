package store

import (
	"errors"
	"maps"
	"reflect"
	"slices"

	"github.com/yigit/schooladmin/internal/app/models"
)

// ErrStaleChange is returned when a journaled change can no longer be reverted
// because the row was modified afterwards.
var ErrStaleChange = errors.New("row changed since it was journaled")

// Change is one journaled row mutation. Before is nil for inserts and After
// is nil for deletes.
type Change struct {
	Entity Entity
	Key    string
	Before interface{}
	After  interface{}

	revert func(*State) error
}

type journal struct {
	changes []Change
}

// LogEntry is an activity log entry together with the changes it produced
type LogEntry struct {
	models.ActivityLogEntry
	Changes            []Change
	RequiresSuperAdmin bool
}

// State is the complete set of entity collections
type State struct {
	Students      *Table[int64, models.Student]
	Faculty       *Table[int64, models.Faculty]
	Programs      *Table[string, models.Program]
	Courses       *Table[string, models.Course]
	Sections      *Table[string, models.Section]
	Assignments   *Table[string, models.SectionSubjectAssignment]
	Admins        *Table[int64, models.AdminUser]
	Announcements *Table[int64, models.Announcement]
	Teachable     *Table[int64, models.TeachableCourses]
	// Credentials maps a username to a bcrypt hash
	Credentials *Table[string, string]

	// ActivityLog is ordered newest first
	ActivityLog []LogEntry
	Stats       models.DashboardStats

	sequences map[string]int64
}

func newState() *State {
	return &State{
		Students: newTable(EntityStudent, func(s *State) *Table[int64, models.Student] { return s.Students }, nil),
		Faculty:  newTable(EntityFaculty, func(s *State) *Table[int64, models.Faculty] { return s.Faculty }, nil),
		Programs: newTable(EntityProgram, func(s *State) *Table[string, models.Program] { return s.Programs },
			models.Program.Clone),
		Courses: newTable(EntityCourse, func(s *State) *Table[string, models.Course] { return s.Courses },
			models.Course.Clone),
		Sections: newTable(EntitySection, func(s *State) *Table[string, models.Section] { return s.Sections },
			models.Section.Clone).comparing(sameSection),
		Assignments: newTable(EntityAssignment,
			func(s *State) *Table[string, models.SectionSubjectAssignment] { return s.Assignments }, nil),
		Admins: newTable(EntityAdmin, func(s *State) *Table[int64, models.AdminUser] { return s.Admins }, nil),
		Announcements: newTable(EntityAnnouncement,
			func(s *State) *Table[int64, models.Announcement] { return s.Announcements }, nil),
		Teachable: newTable(EntityTeachable, func(s *State) *Table[int64, models.TeachableCourses] { return s.Teachable },
			cloneTeachable),
		Credentials: newTable(EntityCredential, func(s *State) *Table[string, string] { return s.Credentials }, nil),
		sequences:   make(map[string]int64),
	}
}

func cloneTeachable(t models.TeachableCourses) models.TeachableCourses {
	t.CourseIDs = slices.Clone(t.CourseIDs)
	return t
}

// sameSection ignores the derived student count
func sameSection(a, b models.Section) bool {
	a.StudentCount, b.StudentCount = 0, 0
	return reflect.DeepEqual(a, b)
}

func (s *State) fork(j *journal) *State {
	return &State{
		Students:      s.Students.fork(j),
		Faculty:       s.Faculty.fork(j),
		Programs:      s.Programs.fork(j),
		Courses:       s.Courses.fork(j),
		Sections:      s.Sections.fork(j),
		Assignments:   s.Assignments.fork(j),
		Admins:        s.Admins.fork(j),
		Announcements: s.Announcements.fork(j),
		Teachable:     s.Teachable.fork(j),
		Credentials:   s.Credentials.fork(j),
		ActivityLog:   slices.Clone(s.ActivityLog),
		Stats:         s.Stats,
		sequences:     maps.Clone(s.sequences),
	}
}

// NextID advances the named sequence and returns its new value
func (s *State) NextID(sequence string) int64 {
	s.sequences[sequence]++
	return s.sequences[sequence]
}

// PushLog prepends an entry and evicts the oldest beyond limit
func (s *State) PushLog(entry LogEntry, limit int) {
	s.ActivityLog = append([]LogEntry{entry}, s.ActivityLog...)
	if limit > 0 && len(s.ActivityLog) > limit {
		s.ActivityLog = s.ActivityLog[:limit]
	}
}

// FindLog returns the entry with the given id
func (s *State) FindLog(id string) (LogEntry, bool) {
	for _, e := range s.ActivityLog {
		if e.ID == id {
			return e, true
		}
	}
	return LogEntry{}, false
}

// RemoveLog drops the entry with the given id
func (s *State) RemoveLog(id string) {
	s.ActivityLog = slices.DeleteFunc(s.ActivityLog, func(e LogEntry) bool { return e.ID == id })
}

// Revert undoes changes in reverse order. It stops at the first change whose
// row no longer matches what the change produced.
func (s *State) Revert(changes []Change) error {
	for i := len(changes) - 1; i >= 0; i-- {
		if err := changes[i].revert(s); err != nil {
			return err
		}
	}
	return nil
}

// RecountSections sets every section's student count from the student table.
// Counts are derived, so the writes are not journaled.
func (s *State) RecountSections() {
	counts := make(map[string]int, len(s.Sections.rows))
	for _, stu := range s.Students.rows {
		counts[stu.Section]++
	}
	for id, sec := range s.Sections.rows {
		if sec.StudentCount != counts[id] {
			sec.StudentCount = counts[id]
			s.Sections.rows[id] = sec
		}
	}
}

// DanglingSection returns the first student section reference that no
// longer names an existing section. Empty and unassigned placements are ignored.
func (s *State) DanglingSection(unassigned string) (string, bool) {
	for _, id := range s.Students.Keys() {
		code := s.Students.rows[id].Section
		if code == "" || code == unassigned {
			continue
		}
		if !s.Sections.Has(code) {
			return code, true
		}
	}
	return "", false
}
