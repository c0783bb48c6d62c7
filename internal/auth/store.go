package auth

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence interface for principals.
// Implementations must handle concurrent access safely.
type Store interface {
	// Create inserts a new principal. Returns ErrUsernameTaken when the
	// username already exists; the check must be atomic with the insert
	// (unique index or equivalent).
	Create(ctx context.Context, p Principal) error
	// FindByUsername returns the principal for the username, or
	// ErrPrincipalNotFound.
	FindByUsername(ctx context.Context, username string) (Principal, error)
	// FindByID returns the principal for the ID, or ErrPrincipalNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (Principal, error)
}
