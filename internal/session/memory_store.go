package session

import (
	"context"
	"sync"
	"time"
)

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	stored, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || stored.expired(m.now()) {
		return nil, ErrNotFound
	}
	copied := stored
	copied.Flashes = append([]Flash(nil), stored.Flashes...)
	copied.dirty = false
	return &copied, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current int64
	if existing, ok := m.sessions[s.ID]; ok && !existing.expired(m.now()) {
		current = existing.Version
	}
	if current != s.Version {
		return ErrConflict
	}

	stored := *s
	stored.Flashes = append([]Flash(nil), s.Flashes...)
	stored.Version++
	m.sessions[s.ID] = stored
	s.Version = stored.Version
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for id, stored := range m.sessions {
		if stored.expired(now) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}
