// Package common defines shared constants and sentinel errors used across
// GameKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Service-level errors.
	ErrStorage           = errors.New("storage failure")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidCredential = errors.New("invalid username or password")

	// Token errors.
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

// Error kinds reported to API callers. They are stable and safe to match on
// from clients.
const (
	KindNotFound          = "not_found"
	KindConflict          = "conflict"
	KindInvalidCredential = "invalid_credential"
	KindInvalidSignature  = "invalid_signature"
	KindExpired           = "expired"
	KindValidation        = "validation_failed"
	KindStorage           = "storage_failure"
)

// Kind maps err to its stable kind. Anything unrecognised is reported as a
// storage failure so internals never leak to callers.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrInvalidCredential):
		return KindInvalidCredential
	case errors.Is(err, ErrTokenExpired):
		return KindExpired
	case errors.Is(err, ErrInvalidSignature):
		return KindInvalidSignature
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindStorage
	}
}
