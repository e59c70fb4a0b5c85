package session

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("session not found")
	ErrUnknownDriver = errors.New("unknown session store driver")
	ErrConflict      = errors.New("session changed since it was loaded")
)

// Store persists sessions. Implementations must be safe for concurrent use and must
// report expired sessions as ErrNotFound.
//
// Save is a compare-and-set on Session.Version: it succeeds only when the stored
// version equals s.Version (0 for a session that is not stored) and then increments
// s.Version. Otherwise it returns ErrConflict and stores nothing.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
