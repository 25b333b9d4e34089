// Package common defines shared constants and sentinel errors used across
// client and server layers of MetaStore. Callers should use errors.Is to
// match these values.
package common

import "errors"

// Exact wire phrases used by the server. The fingerprint one is the sole
// discriminator the retry policy keys on; a deployment behind a different
// backend must provide an equivalently precise signal.
const (
	FingerprintMismatchMessage = "Supplied fingerprint does not match current metadata fingerprint."
	DuplicateKeyMessage        = "Metadata has duplicate key"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrFingerprintMismatch is the compare-and-set rejection: the
	// fingerprint presented with a write no longer matches the stored one.
	// It is the only error the update driver retries.
	ErrFingerprintMismatch = errors.New("fingerprint mismatch")

	// ErrDuplicateKey is the server-side rejection of a document that
	// contains two items with the same key.
	ErrDuplicateKey = errors.New("metadata has duplicate key")

	// ErrDuplicateEntries is raised locally when a remove would delete more
	// than one entry for a single key, i.e. the store already violated the
	// uniqueness assumption. No write is attempted in that case.
	ErrDuplicateEntries = errors.New("multiple metadata entries found for the same key")

	// Service-level errors (generic/internal flow control).
	ErrInternal = errors.New("internal error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
)
