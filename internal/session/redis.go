package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore persists sessions in Redis. Each session is a JSON value under
// "session:<token>" with a key TTL matching the session expiry, so Redis
// evicts expired sessions natively and the periodic sweep is a no-op.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a session store over the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// GetByToken returns the session for the token, or ErrNotFound.
func (s *RedisStore) GetByToken(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Save stores the session with a key TTL matching its expiry. Saving an
// already-expired session deletes it instead, since a zero or negative TTL
// would persist the key forever.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, sess.Token)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, redisKeyPrefix+sess.Token, data, ttl).Err()
}

// Delete removes the session idempotently.
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, redisKeyPrefix+token).Err()
}

// DeleteExpired is a no-op: Redis evicts expired keys via key TTLs.
func (s *RedisStore) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

var _ Store = (*RedisStore)(nil)
