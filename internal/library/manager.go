package library

import (
	"fmt"
	"sync"

	"github.com/mfigueroa/lectrack/internal/logger"
	"github.com/mfigueroa/lectrack/internal/mirror"
	"github.com/mfigueroa/lectrack/internal/store"
)

// Manager owns one Store per active user session. Stores are created and
// hydrated on first use and dropped from memory on logout; the durable
// scope survives for the next session.
type Manager struct {
	repo   *store.CollectionRepo
	mirror mirror.Pusher
	log    *logger.Logger

	mu       sync.Mutex
	sessions map[string]*Store
}

func NewManager(repo *store.CollectionRepo, pusher mirror.Pusher, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Default()
	}
	if pusher == nil {
		pusher = mirror.Noop{}
	}
	return &Manager{
		repo:     repo,
		mirror:   pusher,
		log:      log,
		sessions: make(map[string]*Store),
	}
}

// Session returns userID's store, establishing and hydrating it on first use.
func (m *Manager) Session(userID string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s, nil
	}

	s := NewStore(userID, m.repo, m.mirror, m.log)
	if err := s.Load(); err != nil {
		return nil, fmt.Errorf("establish session for %s: %w", userID, err)
	}
	m.sessions[userID] = s
	m.log.WithUser(userID).Info("library session established")
	return s, nil
}

// Logout drops the user's in-memory store. Durable state is kept.
func (m *Manager) Logout(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[userID]; ok {
		delete(m.sessions, userID)
		m.log.WithUser(userID).Info("library session cleared")
	}
}

// ActiveSessions reports how many stores are resident.
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
