package device

import (
	"fmt"
	"sync"

	"github.com/trackworks/poseoverlay/internal/vr"
)

// Class identifies the kind of tracked device.
type Class string

// Device classes, matching the runtime's device taxonomy.
const (
	ClassHMD         Class = "hmd"
	ClassController  Class = "controller"
	ClassTracker     Class = "tracker"
	ClassBaseStation Class = "base_station"
)

// Tracked is one registered tracked device.
//
// It is created during enumeration and lives for the whole session. The
// pose is not stored here: Pose() reads through to the runtime on every
// call, so the record never goes stale and the core never owns pose data.
type Tracked struct {
	// Index is the device's 0-based position within its class,
	// assigned in discovery order. Stable for the session.
	Index int `json:"index"`

	// Class is the device kind.
	Class Class `json:"class"`

	source vr.Device

	mu      sync.RWMutex
	visible bool
}

func newTracked(index int, class Class, source vr.Device) *Tracked {
	return &Tracked{Index: index, Class: class, source: source}
}

// ID returns a stable identifier like "controller-1", used for topics,
// metrics tags and API payloads.
func (t *Tracked) ID() string {
	return fmt.Sprintf("%s-%d", t.Class, t.Index)
}

// Pose returns the device's current world-space pose from the runtime.
func (t *Tracked) Pose() vr.Pose {
	return vr.Pose{
		Position:    t.source.Position(),
		Orientation: t.source.Orientation(),
	}
}

// Visible reports whether the device's overlay visuals are shown.
func (t *Tracked) Visible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.visible
}

func (t *Tracked) setVisible(v bool) {
	t.mu.Lock()
	t.visible = v
	t.mu.Unlock()
}
