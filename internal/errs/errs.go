// Package errs contains the sentinel errors shared by the record store,
// catalogs, seasons and persistence layers. Callers wrap them with context
// and test with errors.Is.
package errs

import "errors"

var (
	// ErrValidation indicates a missing required value, a blank name or a
	// duplicate catalog entry.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates the targeted record, deck or selection does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidOperation indicates an operation that is refused in the current
	// state, such as deleting the active season.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrDuplicate indicates a season tag that already exists.
	ErrDuplicate = errors.New("already exists")

	// ErrIO indicates a read, write or parse failure of persisted data.
	ErrIO = errors.New("i/o error")
)
