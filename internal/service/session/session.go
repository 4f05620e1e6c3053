package session

import (
	"sync"
	"time"
)

type entry[T any] struct {
	state    T
	lastSeen time.Time
}

// Manager holds per-client UI state keyed by session id.
type Manager[T any] struct {
	sessions map[string]*entry[T]
	newState func(now time.Time) T
	now      func() time.Time
	mu       sync.Mutex
}

// NewManager creates a session manager. newState builds the initial state of
// a session the first time its id is seen.
func NewManager[T any](newState func(now time.Time) T) *Manager[T] {
	return &Manager[T]{
		sessions: make(map[string]*entry[T]),
		newState: newState,
		now:      time.Now,
	}
}

// SetClock overrides the time source.
func (m *Manager[T]) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Update runs fn against the state of the given session while holding the
// manager lock, creating the session if needed.
func (m *Manager[T]) Update(id string, fn func(state *T, now time.Time)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.sessions[id]
	if !ok {
		e = &entry[T]{state: m.newState(now)}
		m.sessions[id] = e
	}
	e.lastSeen = now
	fn(&e.state, now)
}

// Get returns a copy of the session state, creating the session if needed.
func (m *Manager[T]) Get(id string) T {
	var out T
	m.Update(id, func(state *T, _ time.Time) {
		out = *state
	})
	return out
}

// Clear removes a session.
func (m *Manager[T]) Clear(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len reports the number of live sessions.
func (m *Manager[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than ttl and returns how many were removed.
func (m *Manager[T]) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-ttl)
	removed := 0
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
