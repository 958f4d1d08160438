package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
)

func TestAnnouncements(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	general, err := f.Announcements.CreateAnnouncement(ctx, superAdmin, dto.AnnouncementRequest{
		Title: "Enrollment", Content: "Opens Monday", Date: &older,
	})
	require.NoError(t, err)
	assert.Equal(t, models.TargetAll, general.Target.ProgramID)
	assert.Equal(t, "Super Admin", general.Author)

	_, err = f.Announcements.CreateAnnouncement(ctx, superAdmin, dto.AnnouncementRequest{
		Title: "CS orientation", Content: "Room 101",
		Target: models.AnnouncementTarget{ProgramID: "CS", YearLevel: string(models.FirstYear)},
	})
	require.NoError(t, err)

	all, err := f.Announcements.GetAnnouncements(ctx, dto.AnnouncementFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "CS orientation", all[0].Title)

	it, err := f.Announcements.GetAnnouncements(ctx, dto.AnnouncementFilter{ProgramID: "IT", YearLevel: models.FirstYear, Section: "IT-1-A"})
	require.NoError(t, err)
	require.Len(t, it, 1)
	assert.Equal(t, "Enrollment", it[0].Title)

	updated, err := f.Announcements.UpdateAnnouncement(ctx, superAdmin, general.ID, dto.AnnouncementRequest{
		Title: "Enrollment (moved)", Content: "Opens Tuesday",
	})
	require.NoError(t, err)
	assert.Equal(t, older, updated.Date)

	require.NoError(t, f.Announcements.DeleteAnnouncement(ctx, superAdmin, general.ID))
	assert.ErrorIs(t, f.Announcements.DeleteAnnouncement(ctx, superAdmin, general.ID), apperrors.ErrAnnouncementNotFound)

	stats, err := f.Dashboard.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalAnnouncements)
}

func TestDashboard_EmptyStoreIsCounted(t *testing.T) {
	f := newFixture(t)
	stats, err := f.Dashboard.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalStudents)
	assert.False(t, stats.ComputedAt.IsZero())
}
