package session

import (
	"sync"
	"time"

	"chef-finokio/internal/infrastructure/config"
	"chef-finokio/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager owns all live sessions and expires idle ones.
type Manager struct {
	config   *config.Config
	mu       sync.RWMutex
	sessions map[string]*Session
	stop     chan struct{}
	stopOnce sync.Once
}

// NewManager creates the manager and starts the expiry goroutine.
func NewManager(cfg *config.Config) *Manager {
	m := &Manager{
		config:   cfg,
		sessions: make(map[string]*Session),
		stop:     make(chan struct{}),
	}

	go m.startCleanup()

	common.LogInfo("session manager initialized",
		zap.Duration("ttl", cfg.Session.TTL),
		zap.Duration("cleanup_interval", cfg.Session.CleanupInterval),
		zap.Int("max_sessions", cfg.Session.MaxSessions),
	)

	return m
}

// Create starts a new session.
func (m *Manager) Create() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.sessions) >= m.config.Session.MaxSessions {
		m.cleanupLocked()
		if len(m.sessions) >= m.config.Session.MaxSessions {
			common.LogWarn("session limit reached", zap.Int("size", len(m.sessions)))
			return nil, common.ErrServiceUnavailable
		}
	}

	s := New(common.GenerateUUID())
	m.sessions[s.ID()] = s

	common.LogInfo("session created", zap.String("session_id", s.ID()))
	return s, nil
}

// Get returns a live session by id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, common.ErrSessionNotFound
	}
	return s, nil
}

// Delete removes a session.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the expiry goroutine and drops all sessions.
func (m *Manager) Close() {
	m.stopOnce.Do(func() {
		close(m.stop)
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]*Session)
	common.LogInfo("session manager closed")
}

func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.config.Session.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanupLocked()
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}

// cleanupLocked removes idle sessions. Caller must hold the lock.
func (m *Manager) cleanupLocked() {
	deadline := time.Now().Add(-m.config.Session.TTL)
	count := 0

	for id, s := range m.sessions {
		if s.LastActive().Before(deadline) {
			delete(m.sessions, id)
			count++
		}
	}

	if count > 0 {
		common.LogInfo("expired idle sessions",
			zap.Int("count", count),
			zap.Int("remaining", len(m.sessions)),
		)
	}
}
