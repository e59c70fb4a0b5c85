package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "webSession:"

// RedisStore relies on key TTLs for expiry.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.expired(r.now()) {
		return nil, ErrNotFound
	}
	return &s, nil
}

// Save runs the version check and the write in one WATCH/MULTI transaction. A
// session whose ExpiresAt has passed is deleted instead.
func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return r.Delete(ctx, s.ID)
	}

	key := redisKeyPrefix + s.ID
	next := *s
	next.Version = s.Version + 1
	data, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := r.storedVersion(ctx, tx, key)
		if err != nil {
			return err
		}
		if current != s.Version {
			return ErrConflict
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, ttl)
			return nil
		})
		return err
	}, key)
	switch {
	case err == nil:
		s.Version = next.Version
		return nil
	case errors.Is(err, ErrConflict), errors.Is(err, redis.TxFailedErr):
		return ErrConflict
	default:
		return fmt.Errorf("save session: %w", err)
	}
}

func (r *RedisStore) storedVersion(ctx context.Context, tx *redis.Tx, key string) (int64, error) {
	data, err := tx.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var stored Session
	if err := json.Unmarshal(data, &stored); err != nil {
		return 0, fmt.Errorf("decode session: %w", err)
	}
	if stored.expired(r.now()) {
		return 0, nil
	}
	return stored.Version, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts keys when their TTL runs out.
func (r *RedisStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
