package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory principal store for tests and single-process
// development. Safe for concurrent use.
type MemoryStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]Principal
	byUsername map[string]uuid.UUID
}

// NewMemoryStore creates an empty in-memory principal store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:       make(map[uuid.UUID]Principal),
		byUsername: make(map[string]uuid.UUID),
	}
}

// Create inserts a principal, enforcing username uniqueness atomically.
func (s *MemoryStore) Create(_ context.Context, p Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[p.Username]; exists {
		return ErrUsernameTaken
	}

	s.byID[p.ID] = p
	s.byUsername[p.Username] = p.ID
	return nil
}

// FindByUsername returns the principal for the username, or ErrPrincipalNotFound.
func (s *MemoryStore) FindByUsername(_ context.Context, username string) (Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return Principal{}, ErrPrincipalNotFound
	}
	return s.byID[id], nil
}

// FindByID returns the principal for the ID, or ErrPrincipalNotFound.
func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return Principal{}, ErrPrincipalNotFound
	}
	return p, nil
}

var _ Store = (*MemoryStore)(nil)
