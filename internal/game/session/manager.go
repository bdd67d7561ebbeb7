package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/taleweaver/internal/game/character"
	"github.com/cory-johannsen/taleweaver/internal/game/quest"
)

// ErrSessionNotFound is returned for unknown session ids.
var ErrSessionNotFound = errors.New("session not found")

type entry struct {
	// mu serializes turns for one session.
	mu    sync.Mutex
	state *GameState
}

// Manager tracks all active adventures.
// All methods are safe for concurrent use; at most one With callback runs
// per session at a time.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	logger   *zap.Logger
}

// NewManager creates an empty session Manager.
//
// Precondition: logger must be non-nil.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*entry),
		logger:   logger,
	}
}

// Create starts a new adventure for c and returns its id.
//
// Precondition: c must be non-nil.
// Postcondition: The returned id is a fresh uuid registered with the manager.
func (m *Manager) Create(c *character.Character, q *quest.Quest, maxTurns int) string {
	id := uuid.NewString()
	st := NewGameState(id, c, q, maxTurns)

	m.mu.Lock()
	m.sessions[id] = &entry{state: st}
	m.mu.Unlock()

	m.logger.Info("session created",
		zap.String("session_id", id),
		zap.String("character", c.Name),
		zap.Int("max_turns", st.MaxTurns),
	)
	return id
}

// With runs fn with exclusive access to the session's state.
//
// Postcondition: Returns ErrSessionNotFound for unknown ids, otherwise fn's error.
func (m *Manager) With(id string, fn func(*GameState) error) error {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.state)
}

// Remove drops a session.
//
// Postcondition: Returns ErrSessionNotFound if id is unknown.
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %q: %w", id, ErrSessionNotFound)
	}
	delete(m.sessions, id)
	m.logger.Info("session removed", zap.String("session_id", id))
	return nil
}

// IDs returns every active session id in sorted order.
func (m *Manager) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
