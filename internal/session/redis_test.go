package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskdeck/internal/session"
)

func newRedisStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return session.NewRedisStore(client), mr
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	t.Run("round-trips a session", func(t *testing.T) {
		store, _ := newRedisStore(t)
		ctx := context.Background()

		sess, err := session.New(uuid.New(), time.Hour)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, &sess))

		got, err := store.GetByToken(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, sess.Token, got.Token)
		assert.Equal(t, sess.PrincipalID, got.PrincipalID)
		assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)
	})

	t.Run("unknown token fails with ErrNotFound", func(t *testing.T) {
		store, _ := newRedisStore(t)

		_, err := store.GetByToken(context.Background(), "missing")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("expired session saved as delete", func(t *testing.T) {
		store, _ := newRedisStore(t)
		ctx := context.Background()

		sess, err := session.New(uuid.New(), -time.Minute)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, &sess))

		_, err = store.GetByToken(ctx, sess.Token)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("key evicted after ttl elapses", func(t *testing.T) {
		store, mr := newRedisStore(t)
		ctx := context.Background()

		sess, err := session.New(uuid.New(), time.Minute)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, &sess))

		mr.FastForward(2 * time.Minute)

		_, err = store.GetByToken(ctx, sess.Token)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestRedisStore_Delete(t *testing.T) {
	t.Run("delete is idempotent", func(t *testing.T) {
		store, _ := newRedisStore(t)
		ctx := context.Background()

		sess, err := session.New(uuid.New(), time.Hour)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, &sess))

		require.NoError(t, store.Delete(ctx, sess.Token))
		require.NoError(t, store.Delete(ctx, sess.Token))

		_, err = store.GetByToken(ctx, sess.Token)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestRedisStore_DeleteExpired(t *testing.T) {
	t.Run("sweep is a no-op with native ttl eviction", func(t *testing.T) {
		store, _ := newRedisStore(t)

		removed, err := store.DeleteExpired(context.Background())
		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}

func TestRedisStore_ManagerIntegration(t *testing.T) {
	t.Run("manager lifecycle over redis", func(t *testing.T) {
		store, _ := newRedisStore(t)
		mgr := session.NewManager(store, session.Config{
			TTL:           time.Hour,
			TouchInterval: 5 * time.Minute,
			SweepInterval: time.Minute,
		})
		ctx := context.Background()
		principalID := uuid.New()

		sess, err := mgr.Create(ctx, principalID)
		require.NoError(t, err)

		resolved, err := mgr.Lookup(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, principalID, resolved.PrincipalID)

		require.NoError(t, mgr.Destroy(ctx, sess.Token))
		_, err = mgr.Lookup(ctx, sess.Token)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}
