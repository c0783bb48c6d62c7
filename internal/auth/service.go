package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt cost factor for password hashing. Each hash carries its
// own random salt, so two hashes of the same password always differ.
const Cost = 10

// dummyHash gives the unknown-username path the same bcrypt cost as a real
// comparison, keeping the two failure modes indistinguishable by timing.
var dummyHash = sync.OnceValue(func() []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte("taskdeck-timing-pad"), Cost)
	if err != nil {
		panic(err)
	}
	return hash
})

// Service verifies credentials against a principal store.
type Service struct {
	store Store
}

// NewService creates a credential verifier over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a principal with a salted bcrypt hash of the password.
// The plaintext is never stored. Fails with ErrUsernameTaken when the
// username already exists.
func (s *Service) Register(ctx context.Context, username, password string) (Principal, error) {
	if username == "" || password == "" {
		return Principal{}, ErrEmptyCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return Principal{}, ErrPasswordTooLong
		}
		return Principal{}, err
	}

	p := Principal{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.store.Create(ctx, p); err != nil {
		return Principal{}, err
	}

	return p, nil
}

// Verify resolves the username and compares the password against the stored
// hash. Unknown usernames and wrong passwords both fail with the same
// ErrInvalidCredentials; the comparison is constant-time with respect to the
// stored hash, and the unknown-user path pays an equivalent bcrypt cost.
func (s *Service) Verify(ctx context.Context, username, password string) (Principal, error) {
	if username == "" || password == "" {
		return Principal{}, ErrInvalidCredentials
	}

	p, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
			return Principal{}, ErrInvalidCredentials
		}
		return Principal{}, err
	}

	if err := bcrypt.CompareHashAndPassword(p.PasswordHash, []byte(password)); err != nil {
		return Principal{}, ErrInvalidCredentials
	}

	return p, nil
}

// GetByID resolves a principal by its ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (Principal, error) {
	return s.store.FindByID(ctx, id)
}
