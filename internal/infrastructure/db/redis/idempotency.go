package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/todo-api/todo-service/internal/core/domain"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers which todo an Idempotency-Key produced.
// Key format: idem:todo:<user_id>:<client_key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore wraps client. A non-positive ttl selects 24h.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Lookup returns the todo created under key, or "" when the key is unknown
// or has expired.
func (s *IdempotencyStore) Lookup(ctx context.Context, owner domain.UserID, key string) (domain.TodoID, error) {
	id, err := s.client.Get(ctx, s.key(owner, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("idempotency lookup: %w", err)
	}
	return domain.TodoID(id), nil
}

// Remember records id under key. The first writer wins; a later call for the
// same key leaves the original mapping intact.
func (s *IdempotencyStore) Remember(ctx context.Context, owner domain.UserID, key string, id domain.TodoID) error {
	if err := s.client.SetNX(ctx, s.key(owner, key), string(id), s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency remember: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) key(owner domain.UserID, key string) string {
	return fmt.Sprintf("idem:todo:%s:%s", owner, key)
}
