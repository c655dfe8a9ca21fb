package device

import "errors"

// Domain errors for the device package. Check with errors.Is().
var (
	// ErrNoHeadset is returned by Enumerate when the runtime reports no
	// connected headset. The session cannot proceed without one.
	ErrNoHeadset = errors.New("device: no headset detected")

	// ErrNilRuntime is returned by Enumerate when no runtime is supplied.
	ErrNilRuntime = errors.New("device: runtime is required")
)
