// Package auth implements the credential verifier: registration with salted
// slow hashing and verification that never reveals whether the username or
// the password was wrong.
package auth

import "github.com/google/uuid"

// Principal is an authenticated identity. ID and Username are immutable
// after creation. PasswordHash is opaque and never serialized to clients.
type Principal struct {
	ID           uuid.UUID `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash []byte    `json:"-" bson:"password_hash"`
}
