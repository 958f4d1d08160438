package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/app/models/dto"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/validation"
	"github.com/yigit/schooladmin/internal/store"
)

// AnnouncementService handles announcements
type AnnouncementService struct {
	*Engine
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(e *Engine) *AnnouncementService {
	return &AnnouncementService{Engine: e}
}

// GetAnnouncements lists announcements newest first. A non-empty filter keeps
// the announcements whose audience includes that placement.
func (s *AnnouncementService) GetAnnouncements(ctx context.Context, filter dto.AnnouncementFilter) ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := s.view(ctx, func(st *store.State) error {
		announcements = st.Announcements.Filter(func(a models.Announcement) bool {
			if filter == (dto.AnnouncementFilter{}) {
				return true
			}
			return a.Target.Matches(filter.ProgramID, filter.YearLevel, filter.Section)
		})
		return nil
	})
	slices.SortStableFunc(announcements, func(a, b models.Announcement) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return announcements, err
}

func normalizeTarget(t models.AnnouncementTarget) models.AnnouncementTarget {
	norm := func(v string) string {
		if v = strings.TrimSpace(v); v == "" {
			return models.TargetAll
		}
		return v
	}
	return models.AnnouncementTarget{
		ProgramID: norm(t.ProgramID),
		YearLevel: norm(t.YearLevel),
		Section:   norm(t.Section),
	}
}

// CreateAnnouncement posts an announcement authored by the acting admin
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, actor models.Actor, req dto.AnnouncementRequest) (models.Announcement, error) {
	if err := validation.Struct(req); err != nil {
		return models.Announcement{}, err
	}

	var created models.Announcement
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		a := models.Announcement{
			ID:      u.NextID("announcement"),
			Title:   strings.TrimSpace(req.Title),
			Content: req.Content,
			Date:    u.Now(),
			Target:  normalizeTarget(req.Target),
			Author:  u.admin.Name,
		}
		if req.Date != nil {
			a.Date = *req.Date
		}
		u.Announcements.Put(a.ID, a)
		created = a

		return &activity{
			action:      models.ActionCreateAnnouncement,
			description: fmt.Sprintf("Posted announcement %q", a.Title),
			targetID:    strconv.FormatInt(a.ID, 10),
			targetType:  models.TargetAnnouncement,
		}, nil
	})
	return created, err
}

// UpdateAnnouncement edits an announcement; the author is kept
func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, actor models.Actor, id int64, req dto.AnnouncementRequest) (models.Announcement, error) {
	if err := validation.Struct(req); err != nil {
		return models.Announcement{}, err
	}

	var updated models.Announcement
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		before, ok := u.Announcements.Get(id)
		if !ok {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		a := before
		a.Title = strings.TrimSpace(req.Title)
		a.Content = req.Content
		a.Target = normalizeTarget(req.Target)
		if req.Date != nil {
			a.Date = *req.Date
		}
		u.Announcements.Put(id, a)
		updated = a

		return &activity{
			action:      models.ActionUpdateAnnouncement,
			description: fmt.Sprintf("Updated announcement %q", a.Title),
			targetID:    strconv.FormatInt(id, 10),
			targetType:  models.TargetAnnouncement,
			original:    before,
		}, nil
	})
	return updated, err
}

// DeleteAnnouncement removes an announcement
func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, actor models.Actor, id int64) error {
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		before, ok := u.Announcements.Get(id)
		if !ok {
			return nil, apperrors.ErrAnnouncementNotFound
		}
		u.Announcements.Delete(id)

		return &activity{
			action:      models.ActionDeleteAnnouncement,
			description: fmt.Sprintf("Deleted announcement %q", before.Title),
			targetID:    strconv.FormatInt(id, 10),
			targetType:  models.TargetAnnouncement,
			original:    before,
		}, nil
	})
	return err
}
