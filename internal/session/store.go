package session

import "context"

// Store defines the persistence interface for sessions.
// Implementations must handle concurrent access safely; every method is a
// single logical operation against the backing store.
type Store interface {
	// GetByToken returns the session for the token, or ErrNotFound.
	// Expiry is not checked here; the Manager checks lazily.
	GetByToken(ctx context.Context, token string) (*Session, error)
	// Save inserts or replaces the session keyed by its token.
	Save(ctx context.Context, sess *Session) error
	// Delete removes the session idempotently: deleting an absent token
	// is not an error.
	Delete(ctx context.Context, token string) error
	// DeleteExpired removes all expired sessions and returns the count of
	// deleted records.
	DeleteExpired(ctx context.Context) (int64, error)
}
