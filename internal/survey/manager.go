package survey

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session binds one participant visit to an engine and a device fingerprint.
// The mutex serializes all operations on the engine; Submitting is the
// re-entrancy guard mirroring a disabled submit button while a request is
// outstanding.
type Session struct {
	ID         string
	DeviceID   string
	Engine     *Engine
	Submitting bool

	mu       sync.Mutex
	lastSeen time.Time
}

// Lock serializes access to the session. Callers must Unlock.
func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Manager is the in-memory registry of live survey sessions. Sessions are not
// durable: abandoning a visit discards the in-progress answers once the TTL
// passes and the janitor evicts the entry.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewManager creates a Manager evicting sessions idle longer than ttl.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create registers a new session around the given engine.
func (m *Manager) Create(engine *Engine, deviceID string) *Session {
	s := &Session{
		ID:       uuid.New().String(),
		DeviceID: deviceID,
		Engine:   engine,
		lastSeen: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks up a live session and refreshes its idle timer.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
	return s, true
}

// Remove discards a session, usually right after a successful submit.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EvictExpired removes sessions idle longer than the TTL and returns how many
// were dropped. The session mutex is never taken while holding the manager
// mutex: handlers hold a session's lock across Remove, so nesting the two
// here would deadlock against them.
func (m *Manager) EvictExpired(now time.Time) int {
	m.mu.RLock()
	candidates := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		candidates = append(candidates, s)
	}
	m.mu.RUnlock()

	evicted := 0
	for _, s := range candidates {
		s.mu.Lock()
		expired := now.Sub(s.lastSeen) > m.ttl
		s.mu.Unlock()
		if !expired {
			continue
		}

		m.mu.Lock()
		if _, ok := m.sessions[s.ID]; ok {
			delete(m.sessions, s.ID)
			evicted++
		}
		m.mu.Unlock()
	}
	return evicted
}
