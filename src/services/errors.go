package services

import "errors"

// Sentinel errors for explicit error handling.
// They are nested inside *apperror.Error values and only ever reach logs.

var (
	// ErrInvalidHash indicates a stored password hash could not be decoded
	ErrInvalidHash = errors.New("invalid hash format")

	// ErrUnsupportedAlgorithm indicates a stored hash uses another algorithm
	ErrUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

	// ErrIncompatibleVersion indicates a stored hash uses another argon2 version
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")

	// ErrSecretTooShort indicates the token signing secret is too weak
	ErrSecretTooShort = errors.New("JWT secret must be at least 32 characters long")

	// ErrRepositoryRequired indicates a service was built without its store
	ErrRepositoryRequired = errors.New("repository is required")
)
