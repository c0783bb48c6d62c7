package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskdeck/internal/session"
)

func newTestManager(t *testing.T, cfg session.Config) (*session.Manager, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore()
	return session.NewManager(store, cfg), store
}

func defaultTestConfig() session.Config {
	return session.Config{
		TTL:           time.Hour,
		TouchInterval: 5 * time.Minute,
		SweepInterval: time.Minute,
	}
}

func TestManager_CreateAndLookup(t *testing.T) {
	t.Parallel()

	t.Run("created token resolves to the same principal", func(t *testing.T) {
		t.Parallel()

		mgr, _ := newTestManager(t, defaultTestConfig())
		ctx := context.Background()
		principalID := uuid.New()

		sess, err := mgr.Create(ctx, principalID)
		require.NoError(t, err)
		require.NotEmpty(t, sess.Token)

		resolved, err := mgr.Lookup(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, principalID, resolved.PrincipalID)
	})

	t.Run("repeated lookups keep resolving until expiry", func(t *testing.T) {
		t.Parallel()

		mgr, _ := newTestManager(t, defaultTestConfig())
		ctx := context.Background()
		principalID := uuid.New()

		sess, err := mgr.Create(ctx, principalID)
		require.NoError(t, err)

		for range 5 {
			resolved, err := mgr.Lookup(ctx, sess.Token)
			require.NoError(t, err)
			assert.Equal(t, principalID, resolved.PrincipalID)
		}
	})

	t.Run("unknown token fails with ErrNotFound", func(t *testing.T) {
		t.Parallel()

		mgr, _ := newTestManager(t, defaultTestConfig())
		_, err := mgr.Lookup(context.Background(), "no-such-token")
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("expired session fails with ErrExpired before sweep runs", func(t *testing.T) {
		t.Parallel()

		cfg := defaultTestConfig()
		cfg.TTL = -time.Minute // Sessions are born expired.
		mgr, store := newTestManager(t, cfg)
		ctx := context.Background()

		sess, err := mgr.Create(ctx, uuid.New())
		require.NoError(t, err)

		// The record is still present in the store.
		require.Equal(t, 1, store.Len())

		_, err = mgr.Lookup(ctx, sess.Token)
		assert.ErrorIs(t, err, session.ErrExpired)
	})

	t.Run("lookup extends expiry when touch interval elapsed", func(t *testing.T) {
		t.Parallel()

		cfg := defaultTestConfig()
		cfg.TouchInterval = 0 // Every lookup extends.
		mgr, store := newTestManager(t, cfg)
		ctx := context.Background()

		sess, err := mgr.Create(ctx, uuid.New())
		require.NoError(t, err)

		_, err = mgr.Lookup(ctx, sess.Token)
		require.NoError(t, err)

		stored, err := store.GetByToken(ctx, sess.Token)
		require.NoError(t, err)
		assert.False(t, stored.ExpiresAt.Before(sess.ExpiresAt))
	})
}

func TestManager_Destroy(t *testing.T) {
	t.Parallel()

	t.Run("destroyed token no longer resolves", func(t *testing.T) {
		t.Parallel()

		mgr, _ := newTestManager(t, defaultTestConfig())
		ctx := context.Background()

		sess, err := mgr.Create(ctx, uuid.New())
		require.NoError(t, err)

		require.NoError(t, mgr.Destroy(ctx, sess.Token))

		_, err = mgr.Lookup(ctx, sess.Token)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("destroy is idempotent", func(t *testing.T) {
		t.Parallel()

		mgr, _ := newTestManager(t, defaultTestConfig())
		ctx := context.Background()

		sess, err := mgr.Create(ctx, uuid.New())
		require.NoError(t, err)

		require.NoError(t, mgr.Destroy(ctx, sess.Token))
		require.NoError(t, mgr.Destroy(ctx, sess.Token))
		require.NoError(t, mgr.Destroy(ctx, "never-existed"))
	})
}

func TestManager_CleanupExpired(t *testing.T) {
	t.Parallel()

	t.Run("removes only expired sessions", func(t *testing.T) {
		t.Parallel()

		mgr, store := newTestManager(t, defaultTestConfig())
		ctx := context.Background()

		live, err := mgr.Create(ctx, uuid.New())
		require.NoError(t, err)

		expired, err := session.New(uuid.New(), -time.Minute)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, &expired))

		removed, err := mgr.CleanupExpired(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, removed)

		_, err = mgr.Lookup(ctx, live.Token)
		assert.NoError(t, err)

		_, err = store.GetByToken(ctx, expired.Token)
		assert.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestManager_Run(t *testing.T) {
	t.Parallel()

	t.Run("sweeps expired sessions on interval and stops on cancel", func(t *testing.T) {
		t.Parallel()

		cfg := defaultTestConfig()
		cfg.SweepInterval = 10 * time.Millisecond
		mgr, store := newTestManager(t, cfg)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		expired, err := session.New(uuid.New(), -time.Minute)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, &expired))

		done := make(chan error, 1)
		go func() { done <- mgr.Run(ctx)() }()

		require.Eventually(t, func() bool {
			return store.Len() == 0
		}, time.Second, 5*time.Millisecond)

		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("sweeper did not stop after context cancellation")
		}
	})
}

func TestManager_TTL(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager(t, defaultTestConfig())
	assert.Equal(t, time.Hour, mgr.TTL())
}
