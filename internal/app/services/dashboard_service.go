package services

import (
	"context"
	"time"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/store"
)

// DashboardService serves the summary counts of the admin dashboard
type DashboardService struct {
	*Engine
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(e *Engine) *DashboardService {
	return &DashboardService{Engine: e}
}

// GetStats returns the counts computed after the last mutation. A store that
// was never mutated is counted on the spot.
func (s *DashboardService) GetStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats
	err := s.view(ctx, func(st *store.State) error {
		stats = st.Stats
		if stats.ComputedAt.IsZero() {
			recalculateStats(st, time.Now())
			stats = st.Stats
		}
		return nil
	})
	return stats, err
}

// recalculateStats recounts everything from the store contents
func recalculateStats(st *store.State, now time.Time) {
	st.Stats = models.DashboardStats{
		TotalStudents: st.Students.Len(),
		TeachingFaculty: st.Faculty.Count(func(f models.Faculty) bool {
			return f.Department == models.DepartmentTeaching
		}),
		AdministrativeFaculty: st.Faculty.Count(models.Faculty.IsAdministrative),
		TotalAnnouncements:    st.Announcements.Len(),
		TotalPrograms:         st.Programs.Len(),
		TotalCourses:          st.Courses.Len(),
		TotalSections:         st.Sections.Len(),
		ComputedAt:            now,
	}
}
