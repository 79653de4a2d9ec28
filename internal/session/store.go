// Package session keeps calculator sessions in memory. Each session owns a
// single current state which is only ever replaced with what the reducer
// returns.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-chi-calculator/internal/calculator"
)

var (
	ErrNotFound     = errors.New("session not found")
	ErrLimitReached = errors.New("session limit reached")
)

const (
	DefaultMaxSessions = 10000
	DefaultIdleTTL     = 30 * time.Minute
)

// Session is a snapshot of one calculator session.
type Session struct {
	ID        string
	State     calculator.State
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Result is the outcome of a Dispatch.
type Result struct {
	Session Session
	// Before is the state the first event was applied to.
	Before calculator.State
	// Steps holds the state after each event, in order.
	Steps []calculator.State
	// Changed reports whether the final state differs from Before.
	Changed bool
}

type Option func(*Store)

// WithMaxSessions caps the number of live sessions. Zero or less means no cap.
func WithMaxSessions(n int) Option {
	return func(s *Store) { s.maxSessions = n }
}

// WithIdleTTL sets how long a session may go without events before Sweep
// removes it. Zero or less disables expiry.
func WithIdleTTL(d time.Duration) Option {
	return func(s *Store) { s.idleTTL = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store is safe for concurrent use. Events for the same session are applied
// one at a time in the order the store receives them.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	maxSessions int
	idleTTL     time.Duration
	now         func() time.Time
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions:    make(map[string]*Session),
		maxSessions: DefaultMaxSessions,
		idleTTL:     DefaultIdleTTL,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a session in the initial state.
func (s *Store) Create() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.sessions) >= s.maxSessions {
		return Session{}, ErrLimitReached
	}

	now := s.now()
	sess := &Session{
		ID:        uuid.New().String(),
		State:     calculator.Initial(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[sess.ID] = sess

	return *sess, nil
}

func (s *Store) Get(id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return *sess, nil
}

// Dispatch applies events to the session's state in order.
func (s *Store) Dispatch(id string, events ...calculator.Event) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Result{}, ErrNotFound
	}

	res := Result{Before: sess.State, Steps: make([]calculator.State, 0, len(events))}
	for _, e := range events {
		sess.State = calculator.Reduce(sess.State, e)
		res.Steps = append(res.Steps, sess.State)
	}
	sess.UpdatedAt = s.now()

	res.Session = *sess
	res.Changed = sess.State != res.Before
	return res, nil
}

// Delete ends a session and discards its state.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// it removed.
func (s *Store) Sweep() int {
	if s.idleTTL <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.idleTTL)
	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done. onSweep, when
// not nil, receives the number of sessions each sweep removed.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.Sweep()
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}
