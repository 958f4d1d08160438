// Package store keeps every school entity in process memory behind a single
// writer lock. Mutations run as units of work over a forked copy of the state
// and are committed atomically together with their activity log entry.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/yigit/schooladmin/internal/app/models"
)

// Store is the persistence boundary used by the services
type Store interface {
	// View runs fn against a read-only copy of the current state
	View(ctx context.Context, fn func(*State) error) error
	// Update runs fn inside a unit of work; the state is replaced only if fn returns nil
	Update(ctx context.Context, fn func(*Tx) error) error
}

// Tx is a unit of work over a private copy of the state
type Tx struct {
	*State
	journal *journal
	now     time.Time
}

// Changes returns the row changes made so far in this unit of work
func (tx *Tx) Changes() []Change {
	out := make([]Change, len(tx.journal.changes))
	copy(out, tx.journal.changes)
	return out
}

// Now returns the timestamp of the unit of work
func (tx *Tx) Now() time.Time {
	return tx.now
}

// MemoryStore is the in-memory Store implementation
type MemoryStore struct {
	mu         sync.RWMutex
	state      *State
	nowFn      func() time.Time
	superAdmin models.AdminUser
}

// Option configures a MemoryStore
type Option func(*MemoryStore)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		s.nowFn = now
	}
}

// WithSuperAdmin overrides the username and display name of the Super Admin
func WithSuperAdmin(username, name string) Option {
	return func(s *MemoryStore) {
		s.superAdmin.Username = username
		s.superAdmin.Name = name
	}
}

// New creates an empty store containing only the Super Admin
func New(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		nowFn: time.Now,
		superAdmin: models.AdminUser{
			ID:           models.SuperAdminID,
			Username:     "admin",
			Name:         "Super Admin",
			Role:         models.RoleSuperAdmin,
			IsSuperAdmin: true,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = s.initialState()
	return s
}

func (s *MemoryStore) initialState() *State {
	st := newState()
	st.Admins.Put(s.superAdmin.ID, s.superAdmin)
	return st
}

// Reset discards every entity and the activity log
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.initialState()
}

// View runs fn against a read-only copy of the current state
func (s *MemoryStore) View(ctx context.Context, fn func(*State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	snapshot := s.state.fork(nil)
	s.mu.RUnlock()
	return fn(snapshot)
}

// Update runs fn inside a unit of work and commits it when fn succeeds
func (s *MemoryStore) Update(ctx context.Context, fn func(*Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	j := &journal{}
	tx := &Tx{
		State:   s.state.fork(j),
		journal: j,
		now:     s.nowFn(),
	}
	if err := fn(tx); err != nil {
		return err
	}

	// Rows handed to the next unit of work must not carry this journal
	s.state = tx.State.fork(nil)
	return nil
}
