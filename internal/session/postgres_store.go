package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

type webSessionRepository interface {
	Upsert(ctx context.Context, record *models.WebSessionRecord, now time.Time) error
	GetByID(ctx context.Context, id string, now time.Time) (*models.WebSessionRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// PostgresStore keeps sessions in the web_sessions table.
type PostgresStore struct {
	repo webSessionRepository
	now  func() time.Time
}

func NewPostgresStore(repo webSessionRepository) *PostgresStore {
	return &PostgresStore{repo: repo, now: time.Now}
}

func (p *PostgresStore) Get(ctx context.Context, id string) (*Session, error) {
	record, err := p.repo.GetByID(ctx, id, p.now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(record.Data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	s.ID = record.ID
	s.ExpiresAt = record.ExpiresAt
	s.Version = record.Version
	return &s, nil
}

func (p *PostgresStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	record := &models.WebSessionRecord{
		ID:        s.ID,
		Data:      data,
		ExpiresAt: s.ExpiresAt,
		Version:   s.Version,
	}
	if err := p.repo.Upsert(ctx, record, p.now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrConflict
		}
		return fmt.Errorf("save session: %w", err)
	}
	s.Version = record.Version
	return nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	if err := p.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (p *PostgresStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	removed, err := p.repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return removed, nil
}
