package overlay

import "errors"

var (
	// ErrNilEngine is returned when constructing an overlay without a scene
	// engine.
	ErrNilEngine = errors.New("overlay: scene engine is required")

	// ErrNilStore is returned when constructing an overlay without a capture
	// store.
	ErrNilStore = errors.New("overlay: capture store is required")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("overlay: already started")

	// ErrUnknownController is returned when a capture names a controller
	// index the registry never enumerated.
	ErrUnknownController = errors.New("overlay: unknown controller index")

	// ErrBindingsMuted is returned when a capture is attempted while the
	// overlay is disabled and its bindings are muted.
	ErrBindingsMuted = errors.New("overlay: bindings muted while disabled")
)
