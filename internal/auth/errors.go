package auth

import "errors"

var (
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrInvalidCredentials is returned for both unknown usernames and wrong
	// passwords. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrPrincipalNotFound is returned when a principal lookup misses.
	ErrPrincipalNotFound = errors.New("principal not found")
	// ErrEmptyCredentials is returned when username or password is empty.
	ErrEmptyCredentials = errors.New("username and password are required")
	// ErrPasswordTooLong is returned when the password exceeds the bcrypt
	// input limit of 72 bytes.
	ErrPasswordTooLong = errors.New("password is too long")
)
