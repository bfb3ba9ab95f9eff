package beetle

import "errors"

var (
	ErrBeetleNotFound = errors.New("beetle not found")

	// Returned after the record is known to exist, so callers can map it to
	// 403 rather than 404.
	ErrNotOwner = errors.New("caller does not own this beetle")
)
