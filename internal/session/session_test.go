package session_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskdeck/internal/session"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("generates opaque unique tokens", func(t *testing.T) {
		t.Parallel()

		principalID := uuid.New()
		seen := make(map[string]bool)
		for range 100 {
			sess, err := session.New(principalID, time.Hour)
			require.NoError(t, err)
			require.NotEmpty(t, sess.Token)
			assert.False(t, seen[sess.Token], "token collision")
			seen[sess.Token] = true
		}
	})

	t.Run("sets expiry from ttl", func(t *testing.T) {
		t.Parallel()

		sess, err := session.New(uuid.New(), time.Hour)
		require.NoError(t, err)

		assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)
		assert.False(t, sess.IsExpired())
	})

	t.Run("rejects nil principal", func(t *testing.T) {
		t.Parallel()

		_, err := session.New(uuid.Nil, time.Hour)
		assert.ErrorIs(t, err, session.ErrMissingPrincipal)
	})

	t.Run("negative ttl yields expired session", func(t *testing.T) {
		t.Parallel()

		sess, err := session.New(uuid.New(), -time.Hour)
		require.NoError(t, err)
		assert.True(t, sess.IsExpired())
	})
}

func TestSession_Touch(t *testing.T) {
	t.Parallel()

	t.Run("skips extension within touch interval", func(t *testing.T) {
		t.Parallel()

		sess, err := session.New(uuid.New(), time.Hour)
		require.NoError(t, err)

		before := sess.ExpiresAt
		assert.False(t, sess.Touch(time.Hour, 5*time.Minute))
		assert.Equal(t, before, sess.ExpiresAt)
	})

	t.Run("extends expiry after touch interval", func(t *testing.T) {
		t.Parallel()

		sess, err := session.New(uuid.New(), time.Hour)
		require.NoError(t, err)

		// Pretend the last update happened long ago.
		sess.UpdatedAt = time.Now().Add(-10 * time.Minute)
		before := sess.ExpiresAt

		assert.True(t, sess.Touch(time.Hour, 5*time.Minute))
		assert.True(t, sess.ExpiresAt.After(before))
	})

	t.Run("zero interval always extends", func(t *testing.T) {
		t.Parallel()

		sess, err := session.New(uuid.New(), time.Hour)
		require.NoError(t, err)
		assert.True(t, sess.Touch(time.Hour, 0))
	})
}
