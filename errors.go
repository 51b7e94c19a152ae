package holdings

import "errors"

// Errors reported by the import and report pipeline. They are always wrapped with more
// context, test them with errors.Is.
var (
	// ErrFileNotFound is returned when an export file path does not resolve.
	ErrFileNotFound = errors.New("file not found")
	// ErrMalformedInput is returned when an export file does not have the expected layout,
	// or one of its amounts is not a number. The whole file is rejected.
	ErrMalformedInput = errors.New("malformed input")
	// ErrPersistence is returned when the store rejects a write or a read.
	ErrPersistence = errors.New("persistence failure")
)
