package services

import (
	"context"
	"errors"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/metrics"
	"github.com/yigit/schooladmin/internal/store"
)

// ActivityService exposes the activity log and reverts logged actions
type ActivityService struct {
	*Engine
}

// NewActivityService creates a new activity service
func NewActivityService(e *Engine) *ActivityService {
	return &ActivityService{Engine: e}
}

// GetActivityLog returns the retained entries newest first
func (s *ActivityService) GetActivityLog(ctx context.Context) ([]models.ActivityLogEntry, error) {
	var entries []models.ActivityLogEntry
	err := s.view(ctx, func(st *store.State) error {
		entries = make([]models.ActivityLogEntry, 0, len(st.ActivityLog))
		for _, e := range st.ActivityLog {
			entries = append(entries, e.ActivityLogEntry)
		}
		return nil
	})
	return entries, err
}

// Undo reverts every change recorded by a log entry and removes the entry.
// Entries recorded under the Super Admin requirement can only be undone by
// the Super Admin. An entry whose rows were changed afterwards is rejected.
func (s *ActivityService) Undo(ctx context.Context, actor models.Actor, logID string) (models.DashboardStats, error) {
	var (
		undone models.ActivityLogEntry
		stats  models.DashboardStats
	)
	_, err := s.mutate(ctx, actor, func(u *unit) (*activity, error) {
		entry, ok := u.FindLog(logID)
		if !ok {
			return nil, apperrors.ErrLogEntryNotFound
		}
		undone = entry.ActivityLogEntry
		if !entry.CanUndo {
			return nil, apperrors.ErrLogEntryNotUndoable
		}
		if entry.RequiresSuperAdmin {
			if err := u.requireSuperAdmin(); err != nil {
				return nil, err
			}
		}

		if err := u.Revert(entry.Changes); err != nil {
			if errors.Is(err, store.ErrStaleChange) {
				return nil, apperrors.ErrLogEntryStale
			}
			return nil, err
		}
		if code, dangling := u.DanglingSection(UnassignedSection); dangling {
			return nil, apperrors.NewCustomError(apperrors.ErrConflict, apperrors.Message(apperrors.ErrLogEntryStale)).
				WithDetails(map[string]interface{}{"section": code})
		}
		u.RemoveLog(logID)
		recalculateStats(u.State, u.Now())
		stats = u.Stats
		return nil, nil
	})

	metrics.RecordUndo(string(undone.Action), err)
	if err != nil {
		return models.DashboardStats{}, err
	}

	s.log.Info().
		Str("logId", logID).
		Str("action", string(undone.Action)).
		Str("target", string(undone.TargetType)+":"+undone.TargetID).
		Str("undoneBy", actor.Username).
		Msg("activity undone")
	s.publish(models.EventActivityUndone, undone)
	return stats, nil
}
