package repository

import (
	"context"
	"time"

	"github.com/saeid-a/KickoffCoachWeb/internal/models"
)

type WebSessionRepository struct {
	db DBTX
}

func NewWebSessionRepository(db DBTX) *WebSessionRepository {
	return &WebSessionRepository{db: db}
}

// Upsert writes record if its Version still matches the stored row, treating an
// expired row as absent, and returns pgx.ErrNoRows when it does not. On success
// record.Version holds the new version.
func (r *WebSessionRepository) Upsert(ctx context.Context, record *models.WebSessionRecord, now time.Time) error {
	if record.Version == 0 {
		query := `
			INSERT INTO web_sessions (id, data, expires_at, version)
			VALUES ($1, $2, $3, 1)
			ON CONFLICT (id) DO UPDATE
			SET data = EXCLUDED.data,
				expires_at = EXCLUDED.expires_at,
				version = 1,
				created_at = NOW(),
				updated_at = NOW()
			WHERE web_sessions.expires_at <= $4
			RETURNING version, created_at, updated_at
		`
		return r.db.QueryRow(ctx, query, record.ID, record.Data, record.ExpiresAt, now).
			Scan(&record.Version, &record.CreatedAt, &record.UpdatedAt)
	}

	query := `
		UPDATE web_sessions
		SET data = $2,
			expires_at = $3,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $1 AND version = $4 AND expires_at > $5
		RETURNING version, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, record.ID, record.Data, record.ExpiresAt, record.Version, now).
		Scan(&record.Version, &record.CreatedAt, &record.UpdatedAt)
}

// GetByID returns pgx.ErrNoRows for unknown and expired sessions alike.
func (r *WebSessionRepository) GetByID(ctx context.Context, id string, now time.Time) (*models.WebSessionRecord, error) {
	query := `
		SELECT id, data, expires_at, version, created_at, updated_at
		FROM web_sessions
		WHERE id = $1 AND expires_at > $2
	`
	var record models.WebSessionRecord
	err := r.db.QueryRow(ctx, query, id, now).Scan(
		&record.ID,
		&record.Data,
		&record.ExpiresAt,
		&record.Version,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *WebSessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM web_sessions WHERE id = $1`, id)
	return err
}

func (r *WebSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM web_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
