package capture

import "errors"

// Sentinel errors returned by the capture package.
var (
	// ErrSessionNotFound is returned when a session ID does not exist in
	// the archive.
	ErrSessionNotFound = errors.New("capture: session not found")

	// ErrNilDB is returned when a repository is constructed without an
	// open database connection.
	ErrNilDB = errors.New("capture: database connection is nil")
)
