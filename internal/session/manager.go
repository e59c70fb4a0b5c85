package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/saeid-a/KickoffCoachWeb/internal/models"
	"github.com/saeid-a/KickoffCoachWeb/pkg/utils"
)

const DefaultTTL = 7 * 24 * time.Hour

var ErrMissingSecret = errors.New("session secret is required")

// Manager owns the browser-session lifecycle on top of a Store and signs the cookie
// value that points at a stored session.
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration, logger zerolog.Logger) (*Manager, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store:  store,
		secret: secret,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}, nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Init clears sessions that expired while the app was down.
func (m *Manager) Init(ctx context.Context) error {
	removed, err := m.store.DeleteExpired(ctx, m.now())
	if err != nil {
		return fmt.Errorf("init sessions: %w", err)
	}
	m.logger.Info().Int64("removed", removed).Msg("session store ready")
	return nil
}

// Create returns a new anonymous session. It is only persisted once something is
// stored in it.
func (m *Manager) Create() *Session {
	now := m.now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
}

// Load resolves a cookie value. A missing, tampered, or expired cookie yields a fresh
// anonymous session, never an error; only store failures are returned.
func (m *Manager) Load(ctx context.Context, cookie string) (*Session, error) {
	if cookie == "" {
		return m.Create(), nil
	}

	claims, err := utils.ValidateToken(cookie, m.secret)
	if err != nil {
		m.logger.Debug().Err(err).Msg("rejecting session cookie")
		return m.Create(), nil
	}

	s, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return m.Create(), nil
		}
		return nil, err
	}
	return s, nil
}

// Save persists the session when it changed and returns the cookie value for it.
// ErrConflict means another request saved the session first; the change is dropped.
func (m *Manager) Save(ctx context.Context, s *Session) (string, error) {
	if s.dirty {
		if err := m.store.Save(ctx, s); err != nil {
			return "", err
		}
		s.dirty = false
	}
	return m.Cookie(s)
}

func (m *Manager) Cookie(s *Session) (string, error) {
	ttl := s.ExpiresAt.Sub(m.now())
	if ttl <= 0 {
		ttl = time.Second
	}
	return utils.GenerateToken(s.ID, m.secret, ttl)
}

// Login rotates the session id and records the backend credential and account. The
// session stays dirty so the caller re-issues the cookie for the new id.
func (m *Manager) Login(ctx context.Context, s *Session, credential string, user models.User) error {
	s.BackendToken = credential
	s.SetUser(user)
	return m.rotate(ctx, s)
}

// Logout drops credentials and account state but keeps pending flashes so the
// next page can confirm the sign-out. The id is rotated, so a request still
// holding the signed-in session can no longer write it back.
func (m *Manager) Logout(ctx context.Context, s *Session) error {
	s.ClearAuth()
	return m.rotate(ctx, s)
}

func (m *Manager) rotate(ctx context.Context, s *Session) error {
	oldID := s.ID
	now := m.now()

	s.ID = uuid.NewString()
	s.Version = 0
	s.CreatedAt = now
	s.ExpiresAt = now.Add(m.ttl)
	s.dirty = true

	if oldID != "" {
		if err := m.store.Delete(ctx, oldID); err != nil {
			return err
		}
	}
	return m.store.Save(ctx, s)
}

func (m *Manager) Destroy(ctx context.Context, s *Session) error {
	return m.store.Delete(ctx, s.ID)
}

// RunJanitor purges expired sessions every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := m.store.DeleteExpired(ctx, m.now())
			if err != nil {
				m.logger.Error().Err(err).Msg("session purge failed")
				continue
			}
			if removed > 0 {
				m.logger.Debug().Int64("removed", removed).Msg("purged expired sessions")
			}
		}
	}
}
