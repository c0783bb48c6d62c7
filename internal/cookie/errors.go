package cookie

import "errors"

var (
	// ErrNoSecret is returned when a manager is created without signing secrets.
	ErrNoSecret = errors.New("at least one signing secret is required")
	// ErrSecretTooShort is returned when a signing secret is below the minimum length.
	ErrSecretTooShort = errors.New("signing secret too short")
	// ErrCookieNotFound is returned when the requested cookie is absent.
	ErrCookieNotFound = errors.New("cookie not found")
	// ErrCookieTooLarge is returned when the serialized cookie exceeds the size limit.
	ErrCookieTooLarge = errors.New("cookie exceeds size limit")
	// ErrInvalidFormat is returned when a signed cookie value is malformed.
	ErrInvalidFormat = errors.New("invalid signed cookie format")
	// ErrInvalidSignature is returned when signature verification fails for all secrets.
	ErrInvalidSignature = errors.New("invalid cookie signature")
)
