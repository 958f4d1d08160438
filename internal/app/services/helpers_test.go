package services

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/auth"
	"github.com/yigit/schooladmin/internal/pkg/logger"
	"github.com/yigit/schooladmin/internal/store"
)

var superAdmin = models.Actor{
	ID:           models.SuperAdminID,
	Username:     "admin",
	IsSuperAdmin: true,
	Known:        true,
}

func init() {
	logger.Configure(logger.Config{Level: logger.Disabled})
}

// stepClock advances by step on every reading so no two log entries share
// a duplicate window unless a test asks for it
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.ActivityEvent
}

func (p *recordingPublisher) Publish(event models.ActivityEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

type fixture struct {
	*Services
	store     *store.MemoryStore
	publisher *recordingPublisher
}

func newFixture(t *testing.T, configure ...func(*Options)) *fixture {
	return newFixtureWithClock(t, time.Hour, configure...)
}

func newFixtureWithClock(t *testing.T, step time.Duration, configure ...func(*Options)) *fixture {
	t.Helper()
	clock := &stepClock{now: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), step: step}
	st := store.New(store.WithClock(clock.Now))
	opts := DefaultOptions()
	for _, fn := range configure {
		fn(&opts)
	}
	pub := &recordingPublisher{}
	engine := NewEngine(st, opts, NewIDGenerator(rand.NewPCG(1, 1)), pub)
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	return &fixture{
		Services:  NewServices(engine, jwtService, bcrypt.MinCost),
		store:     st,
		publisher: pub,
	}
}

func (f *fixture) program(t *testing.T, id string) models.Program {
	t.Helper()
	p, err := f.Programs.CreateProgram(context.Background(), superAdmin, dto.ProgramRequest{ID: id, Name: id + " Program"})
	require.NoError(t, err)
	return p
}

func (f *fixture) student(t *testing.T, first, last, program string) models.Student {
	t.Helper()
	s, err := f.Students.CreateStudent(context.Background(), superAdmin, dto.StudentRequest{
		FirstName:      first,
		LastName:       last,
		Program:        program,
		EnrollmentType: models.EnrollmentNew,
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) faculty(t *testing.T, first, last string, dept models.Department) models.Faculty {
	t.Helper()
	fac, err := f.Faculty.CreateFaculty(context.Background(), superAdmin, dto.FacultyRequest{
		FirstName:      first,
		LastName:       last,
		Department:     dept,
		EmploymentType: models.EmploymentRegular,
	})
	require.NoError(t, err)
	return fac
}

func (f *fixture) section(t *testing.T, code string) models.Section {
	t.Helper()
	var sec models.Section
	require.NoError(t, f.store.View(context.Background(), func(st *store.State) error {
		var ok bool
		sec, ok = st.Sections.Get(code)
		require.True(t, ok, "section %s", code)
		return nil
	}))
	return sec
}

func (f *fixture) latestLog(t *testing.T) models.ActivityLogEntry {
	t.Helper()
	entries, err := f.Activity.GetActivityLog(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	return entries[0]
}

// snapshot captures every entity table for equality checks
type snapshot struct {
	Students      []models.Student
	Faculty       []models.Faculty
	Programs      []models.Program
	Courses       []models.Course
	Sections      []models.Section
	Assignments   []models.SectionSubjectAssignment
	Admins        []models.AdminUser
	Announcements []models.Announcement
	Teachable     []models.TeachableCourses
	Credentials   []string
}

func (f *fixture) snapshot(t *testing.T) snapshot {
	t.Helper()
	var snap snapshot
	require.NoError(t, f.store.View(context.Background(), func(st *store.State) error {
		snap = snapshot{
			Students:      st.Students.List(),
			Faculty:       st.Faculty.List(),
			Programs:      st.Programs.List(),
			Courses:       st.Courses.List(),
			Sections:      st.Sections.List(),
			Assignments:   st.Assignments.List(),
			Admins:        st.Admins.List(),
			Announcements: st.Announcements.List(),
			Teachable:     st.Teachable.List(),
			Credentials:   st.Credentials.List(),
		}
		return nil
	}))
	return snap
}
