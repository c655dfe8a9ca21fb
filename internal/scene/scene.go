package scene

import (
	"time"

	"github.com/trackworks/poseoverlay/internal/vr"
)

// Node is a visual primitive in the engine's scene graph.
//
// All methods are expected to be cheap and non-blocking; the overlay
// calls them from its frame path.
type Node interface {
	// SetVisible shows or hides the node.
	SetVisible(visible bool)

	// SetPose places the node at a world-space pose.
	SetPose(pose vr.Pose)

	// Remove deletes the node from the scene. The node must not be
	// used afterwards.
	Remove()
}

// Text is a text label node.
type Text interface {
	Node

	// SetText replaces the displayed string.
	SetText(text string)
}

// Subscription is a registered callback that can be cancelled.
type Subscription interface {
	// Cancel deregisters the callback. Idempotent.
	Cancel()
}

// Timer is a scheduled one-shot task.
type Timer interface {
	// Stop cancels the task if it has not fired yet. It reports
	// whether the call prevented the task from running.
	Stop() bool
}

// Engine is the presentation engine collaborator.
//
// The overlay uses it to build its debug visuals and to schedule work on
// the engine's own timeline (frame callbacks, timed tasks). Implementations
// must be safe for use from the frame goroutine plus the overlay's discrete
// action handlers.
type Engine interface {
	// NewText creates a text label. New nodes start visible.
	NewText(text string) Text

	// NewAxes creates a coordinate-axes marker of the given scale.
	NewAxes(scale float64) Node

	// NewGrid creates a floor grid of the given extent in metres.
	NewGrid(size float64) Node

	// OnFrame registers fn to run once per rendered frame.
	OnFrame(fn func()) Subscription

	// OnKeyDown registers fn for a key-down edge of the named key.
	OnKeyDown(key string, fn func()) Subscription

	// AfterFunc schedules fn to run once after d on the engine's
	// timeline.
	AfterFunc(d time.Duration, fn func()) Timer

	// CaptureScreenshot writes a screenshot of the engine window to
	// path.
	CaptureScreenshot(path string) error
}
