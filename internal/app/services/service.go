// Package services holds the school administration business rules. Every
// mutation runs as one store unit of work that also records its activity log
// entry, so a cascade and its log entry commit together or not at all.
package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/apperrors"
	"github.com/yigit/schooladmin/internal/pkg/logger"
	"github.com/yigit/schooladmin/internal/pkg/metrics"
	"github.com/yigit/schooladmin/internal/store"
)

// UnassignedSection is the placement of students whose section was removed
const UnassignedSection = "UNASSIGNED"

// Options are the tunable business rules
type Options struct {
	SectionCapacity  int
	ActivityLogLimit int
	DuplicateWindow  time.Duration
}

// DefaultOptions returns the stock school rules
func DefaultOptions() Options {
	return Options{
		SectionCapacity:  30,
		ActivityLogLimit: 50,
		DuplicateWindow:  time.Second,
	}
}

// ActivityPublisher receives activity log changes after they are committed
type ActivityPublisher interface {
	Publish(event models.ActivityEvent)
}

// Engine runs units of work on behalf of an admin and keeps the activity log
type Engine struct {
	store     store.Store
	opts      Options
	ids       *IDGenerator
	publisher ActivityPublisher
	log       zerolog.Logger
}

// NewEngine creates the shared unit-of-work runner used by every service
func NewEngine(st store.Store, opts Options, ids *IDGenerator, publisher ActivityPublisher) *Engine {
	if opts.SectionCapacity <= 0 {
		opts.SectionCapacity = DefaultOptions().SectionCapacity
	}
	if opts.ActivityLogLimit <= 0 {
		opts.ActivityLogLimit = DefaultOptions().ActivityLogLimit
	}
	if ids == nil {
		ids = NewIDGenerator(nil)
	}
	return &Engine{
		store:     st,
		opts:      opts,
		ids:       ids,
		publisher: publisher,
		log:       logger.Component("services"),
	}
}

// activity describes the log entry a unit of work produces
type activity struct {
	action      models.ActionType
	description string
	targetID    string
	targetType  models.TargetType
	original    interface{}
}

// unit is the view a mutation gets of the store and of the acting admin
type unit struct {
	*store.Tx
	admin      models.AdminUser
	superAdmin bool
}

// requireSuperAdmin fails unless the acting admin is the Super Admin. Entries
// recorded after a successful check can only be undone by the Super Admin.
func (u *unit) requireSuperAdmin() error {
	if !u.admin.IsSuperAdmin {
		return apperrors.ErrSuperAdminRequired
	}
	u.superAdmin = true
	return nil
}

// resolveAdmin maps the caller to a current admin account
func resolveAdmin(st *store.State, actor models.Actor) (models.AdminUser, error) {
	if !actor.Known {
		return models.AdminUser{}, apperrors.ErrAdminRequired
	}
	admin, ok := st.Admins.Get(actor.ID)
	if !ok {
		return models.AdminUser{}, apperrors.ErrAdminRequired
	}
	return admin, nil
}

// mutate runs fn as a unit of work. Section counts and dashboard stats are
// refreshed and the returned activity is logged before the commit.
func (e *Engine) mutate(ctx context.Context, actor models.Actor, fn func(u *unit) (*activity, error)) (*models.ActivityLogEntry, error) {
	var (
		recorded *models.ActivityLogEntry
		action   = "unknown"
		logSize  int
	)
	err := e.store.Update(ctx, func(tx *store.Tx) error {
		admin, err := resolveAdmin(tx.State, actor)
		if err != nil {
			return err
		}
		u := &unit{Tx: tx, admin: admin}
		act, err := fn(u)
		if err != nil {
			return err
		}

		tx.RecountSections()
		recalculateStats(tx.State, tx.Now())
		if act != nil {
			action = string(act.action)
			entry := e.record(u, act)
			recorded = &entry
		}
		logSize = len(tx.ActivityLog)
		return nil
	})
	metrics.RecordMutation(action, err)
	if err != nil {
		return nil, err
	}

	metrics.SetActivityLogSize(logSize)
	if recorded != nil {
		e.log.Info().
			Str("action", string(recorded.Action)).
			Str("target", string(recorded.TargetType)+":"+recorded.TargetID).
			Str("user", recorded.User).
			Msg(recorded.Description)
		e.publish(models.EventActivityRecorded, *recorded)
	}
	return recorded, nil
}

// record appends the entry for act. An identical entry recorded within the
// duplicate window absorbs the new changes instead of adding a second entry.
func (e *Engine) record(u *unit, act *activity) models.ActivityLogEntry {
	now := u.Now()
	changes := u.Changes()

	if len(u.ActivityLog) > 0 {
		last := u.ActivityLog[0]
		if e.isDuplicate(last.ActivityLogEntry, u.admin.Username, act, now) {
			last.Changes = append(append([]store.Change{}, last.Changes...), changes...)
			last.RequiresSuperAdmin = last.RequiresSuperAdmin || u.superAdmin
			u.ActivityLog[0] = last
			return last.ActivityLogEntry
		}
	}

	entry := store.LogEntry{
		ActivityLogEntry: models.ActivityLogEntry{
			ID:           uuid.NewString(),
			Timestamp:    now,
			User:         u.admin.Username,
			Action:       act.action,
			Description:  act.description,
			TargetID:     act.targetID,
			TargetType:   act.targetType,
			CanUndo:      act.action.Undoable(),
			OriginalData: act.original,
		},
		Changes:            changes,
		RequiresSuperAdmin: u.superAdmin,
	}
	u.PushLog(entry, e.opts.ActivityLogLimit)
	return entry.ActivityLogEntry
}

func (e *Engine) isDuplicate(last models.ActivityLogEntry, user string, act *activity, now time.Time) bool {
	if e.opts.DuplicateWindow <= 0 {
		return false
	}
	return last.Action == act.action &&
		last.Description == act.description &&
		last.User == user &&
		last.TargetID == act.targetID &&
		last.TargetType == act.targetType &&
		now.Sub(last.Timestamp) < e.opts.DuplicateWindow
}

func (e *Engine) publish(eventType string, entry models.ActivityLogEntry) {
	if e.publisher == nil {
		return
	}
	e.publisher.Publish(models.ActivityEvent{Type: eventType, Entry: entry})
}

// view runs fn against a read-only snapshot
func (e *Engine) view(ctx context.Context, fn func(st *store.State) error) error {
	return e.store.View(ctx, fn)
}
