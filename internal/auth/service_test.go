package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/taskdeck/internal/auth"
)

func newTestService(t *testing.T) (*auth.Service, *auth.MemoryStore) {
	t.Helper()
	store := auth.NewMemoryStore()
	return auth.NewService(store), store
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("stores salted hash, never the plaintext", func(t *testing.T) {
		t.Parallel()

		svc, store := newTestService(t)
		ctx := context.Background()

		p, err := svc.Register(ctx, "alice", "pw1")
		require.NoError(t, err)
		assert.Equal(t, "alice", p.Username)
		assert.NotEqual(t, uuid.Nil, p.ID)

		stored, err := store.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.NotContains(t, string(stored.PasswordHash), "pw1")
		assert.NoError(t, bcrypt.CompareHashAndPassword(stored.PasswordHash, []byte("pw1")))
	})

	t.Run("same password hashes differently per registration", func(t *testing.T) {
		t.Parallel()

		svc, store := newTestService(t)
		ctx := context.Background()

		_, err := svc.Register(ctx, "alice", "samepw")
		require.NoError(t, err)
		_, err = svc.Register(ctx, "bob", "samepw")
		require.NoError(t, err)

		a, err := store.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		b, err := store.FindByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
	})

	t.Run("duplicate username fails regardless of password", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		ctx := context.Background()

		_, err := svc.Register(ctx, "alice", "pw1")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "pw2")
		assert.ErrorIs(t, err, auth.ErrUsernameTaken)
	})

	t.Run("password over the bcrypt limit rejected", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)

		_, err := svc.Register(context.Background(), "alice", strings.Repeat("p", 73))
		assert.ErrorIs(t, err, auth.ErrPasswordTooLong)
	})

	t.Run("empty credentials rejected", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		ctx := context.Background()

		_, err := svc.Register(ctx, "", "pw")
		assert.ErrorIs(t, err, auth.ErrEmptyCredentials)

		_, err = svc.Register(ctx, "alice", "")
		assert.ErrorIs(t, err, auth.ErrEmptyCredentials)
	})
}

func TestService_Verify(t *testing.T) {
	t.Parallel()

	t.Run("verifies registered credentials and returns same principal id", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		ctx := context.Background()

		registered, err := svc.Register(ctx, "alice", "pw1")
		require.NoError(t, err)

		verified, err := svc.Verify(ctx, "alice", "pw1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, verified.ID)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)
		ctx := context.Background()

		_, err := svc.Register(ctx, "alice", "pw1")
		require.NoError(t, err)

		_, wrongPass := svc.Verify(ctx, "alice", "wrong")
		_, unknownUser := svc.Verify(ctx, "nobody", "pw1")

		assert.ErrorIs(t, wrongPass, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownUser, auth.ErrInvalidCredentials)
		assert.Equal(t, wrongPass.Error(), unknownUser.Error())
	})

	t.Run("empty credentials fail uniformly", func(t *testing.T) {
		t.Parallel()

		svc, _ := newTestService(t)

		_, err := svc.Verify(context.Background(), "", "")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestService_GetByID(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "pw1")
	require.NoError(t, err)

	p, err := svc.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)

	_, err = svc.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, auth.ErrPrincipalNotFound)
}
