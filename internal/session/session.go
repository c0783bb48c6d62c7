// Package session implements server-side sessions: opaque random tokens
// mapped to principal IDs with sliding expiry, a pluggable store, and a
// periodic sweep of expired records.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque token to a principal with expiry metadata.
type Session struct {
	// Token is the cryptographically secure session token (32 bytes,
	// base64url). It carries no decodable structure and is used only as a
	// lookup key.
	Token string

	// PrincipalID identifies the authenticated principal.
	PrincipalID uuid.UUID

	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates a session for the given principal with a generated token.
func New(principalID uuid.UUID, ttl time.Duration) (Session, error) {
	if principalID == uuid.Nil {
		return Session{}, ErrMissingPrincipal
	}

	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session{
		Token:       token,
		PrincipalID: principalID,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsExpired returns true if the session has expired.
func (s Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the session expiration if the touch interval has elapsed
// since the last update. Returns true when the session was modified and
// needs saving. Throttling keeps store writes off the hot path.
func (s *Session) Touch(ttl, touchInterval time.Duration) bool {
	if time.Since(s.UpdatedAt) < touchInterval {
		return false
	}
	now := time.Now()
	s.ExpiresAt = now.Add(ttl)
	s.UpdatedAt = now
	return true
}

// generateToken creates a cryptographically secure random token using
// 32 bytes (256 bits) encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
