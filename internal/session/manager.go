package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/taskdeck/internal/logger"
)

// Manager handles session lifecycle: creation, lookup with lazy expiry
// checks and sliding extension, idempotent destruction, and the periodic
// sweep of expired records.
type Manager struct {
	store         Store
	ttl           time.Duration
	touchInterval time.Duration
	sweepInterval time.Duration
	log           *slog.Logger
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithLogger sets a logger for sweep reporting. Defaults to a discard logger.
func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a session manager backed by the given store.
func NewManager(store Store, cfg Config, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:         store,
		ttl:           cfg.TTL,
		touchInterval: cfg.TouchInterval,
		sweepInterval: cfg.SweepInterval,
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create generates a new session for the principal and persists it.
func (m *Manager) Create(ctx context.Context, principalID uuid.UUID) (Session, error) {
	sess, err := New(principalID, m.ttl)
	if err != nil {
		return Session{}, err
	}
	if err := m.store.Save(ctx, &sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Lookup resolves a token to its session. Expired sessions fail with
// ErrExpired even when the sweep has not removed them yet. A successful
// lookup extends the session's expiry when the touch interval has elapsed.
func (m *Manager) Lookup(ctx context.Context, token string) (Session, error) {
	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session{}, err
	}

	if sess.IsExpired() {
		return Session{}, ErrExpired
	}

	if sess.Touch(m.ttl, m.touchInterval) {
		if err := m.store.Save(ctx, sess); err != nil {
			// A failed extension must not fail the lookup; the session is
			// still valid until its previous expiry.
			m.log.WarnContext(ctx, "failed to extend session expiry", logger.Error(err))
		}
	}

	return *sess, nil
}

// Destroy removes the session for the token. Destroying an absent or
// already-destroyed token is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if err := m.store.Delete(ctx, token); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// CleanupExpired removes all expired sessions from the store.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// TTL returns the session time-to-live duration.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Run returns an errgroup-compatible function running the periodic sweep
// until the context is canceled. Sweep failures are logged and never fatal:
// Lookup checks expiry lazily, so correctness does not depend on the sweep.
func (m *Manager) Run(ctx context.Context) func() error {
	return func() error {
		ticker := time.NewTicker(m.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				removed, err := m.CleanupExpired(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return nil
					}
					m.log.ErrorContext(ctx, "session sweep failed", logger.Error(err))
					continue
				}
				if removed > 0 {
					m.log.DebugContext(ctx, "session sweep completed", logger.Count("removed", int(removed)))
				}
			}
		}
	}
}
