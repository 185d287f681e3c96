package domain

import "errors"

// Storage errors are pure — no driver dependency. The store maps driver
// failures onto these so callers can classify with errors.Is.

var (
	// ErrConflict reports an add with a key that already exists.
	ErrConflict = errors.New("record already exists")

	// ErrNotFound reports a lookup for a key with no record.
	ErrNotFound = errors.New("record not found")

	// ErrStoreUnavailable reports an operation against a store that is
	// closed or failed to open.
	ErrStoreUnavailable = errors.New("store unavailable")
)
