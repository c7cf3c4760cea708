package curation

import (
	"sync"

	"github.com/google/uuid"
)

// Manager owns the SessionState instances of a process, keyed by session id.
// A single process may host many concurrent sessions; the map is guarded so
// sessions can be created and ended from any goroutine, while each
// SessionState itself is only ever touched by its session's serialized calls.
type Manager struct {
	mu       sync.RWMutex
	variant  string
	sessions map[string]*SessionState
}

// NewManager creates a session manager. The variant tags every session it
// creates, for reporting only.
func NewManager(variant string) *Manager {
	return &Manager{
		variant:  variant,
		sessions: make(map[string]*SessionState),
	}
}

// Session returns the state for the session id, creating it on first use.
func (m *Manager) Session(sessionID string) *SessionState {
	m.mu.RLock()
	state, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		return state
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.sessions[sessionID]; ok {
		return state
	}
	state = NewSessionState(sessionID, m.variant)
	m.sessions[sessionID] = state
	return state
}

// NewSession creates a session with a generated id.
func (m *Manager) NewSession() *SessionState {
	return m.Session(uuid.NewString())
}

// Peek returns the state for a session id without creating it.
func (m *Manager) Peek(sessionID string) (*SessionState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.sessions[sessionID]
	return state, ok
}

// End discards a session's state.
func (m *Manager) End(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}

// Len returns the number of active sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
