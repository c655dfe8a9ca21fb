package vr

// Device is a live pose source for one tracked device.
//
// Implementations read the current world-space transform from the
// underlying runtime on every call; the returned values are snapshots
// and share no state with the device.
type Device interface {
	// Position returns the current world-space position in metres.
	Position() Vec3

	// Orientation returns the current world-space Euler angles in
	// degrees, (pitch, yaw, roll) order.
	Orientation() Euler
}

// Runtime enumerates the tracked devices currently connected.
//
// Enumeration results are expected to be stable for the lifetime of a
// session: the overlay enumerates exactly once at startup and does not
// handle hot-plug.
type Runtime interface {
	// Headset returns the HMD pose source, or ok=false if no headset
	// is connected. A missing headset is a fatal startup condition for
	// the overlay.
	Headset() (dev Device, ok bool)

	// Controllers returns connected controllers in discovery order.
	// May be empty.
	Controllers() []Device

	// Trackers returns connected generic trackers in discovery order.
	// May be empty.
	Trackers() []Device

	// BaseStations returns tracking base stations in discovery order.
	// May be empty. Base stations are displayed but never captured.
	BaseStations() []Device
}

// Button identifies a discrete controller button.
type Button int

// The three controller buttons the overlay binds.
const (
	// ButtonTrigger places a capture point at the controller's pose.
	ButtonTrigger Button = iota

	// ButtonA saves the captured points to file.
	ButtonA

	// ButtonB takes a screenshot.
	ButtonB
)

// String returns a human-readable button name for logging.
func (b Button) String() string {
	switch b {
	case ButtonTrigger:
		return "trigger"
	case ButtonA:
		return "a"
	case ButtonB:
		return "b"
	default:
		return "unknown"
	}
}

// InputEvent is a button-down edge from one controller.
//
// Controller is the device's registry index (0-based, discovery order).
// The host application translates whatever event mechanism its runtime
// provides into InputEvents and feeds them to the overlay.
type InputEvent struct {
	Controller int
	Button     Button
}

// InputSource is implemented by runtimes that deliver controller
// button-down edges themselves. The daemon drains Events alongside its
// frame loop and feeds each edge to the overlay.
type InputSource interface {
	// Events returns the channel button edges arrive on. The channel is
	// never closed; callers drain it for the life of the session.
	Events() <-chan InputEvent
}
