// internal/store/memory.go
//
// In-memory store of round sessions.
// Rounds are never persisted (state is lost when the process restarts);
// this store only keeps each player's round alive between HTTP requests.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a map.
//   - Map access is guarded by an RWMutex (concurrent reads allowed, writes exclusive).
//   - Each Session serializes work on its round.State through Do, so two
//     submissions to the same round never interleave, dictionary lookup included.
//   - Sweep drops sessions that have been idle longer than a cutoff. Last-use
//     times are atomic, so sweeping never blocks on a busy session.

package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordscramble/internal/round"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("store: session not found")

// Session owns one round.State.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	round    *round.State
	lastUsed atomic.Int64 // unix nanoseconds, readable without mu
}

// NewSession wraps st in a session with a fresh random ID.
func NewSession(st *round.State) *Session {
	now := time.Now()
	s := &Session{ID: uuid.NewString(), CreatedAt: now, round: st}
	s.touch(now)
	return s
}

// Do runs fn with exclusive access to the session's round.
func (s *Session) Do(fn func(st *round.State) error) error {
	s.touch(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.round)
}

func (s *Session) touch(t time.Time) { s.lastUsed.Store(t.UnixNano()) }

// idleSince reports when the session was last used. It never waits on a
// session that is busy inside Do.
func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

// Store defines the lookup interface for round sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions idle for longer than idle and returns how many.
	Sweep(ctx context.Context, idle time.Duration) int

	// Len returns the number of live sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := time.Now().Add(-idle)

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
