package capture

import (
	"sync"
	"time"

	"github.com/trackworks/poseoverlay/internal/vr"
)

// Point is a single captured device pose.
//
// Sequence numbers start at zero and increase by one per capture. They
// reset when the store is cleared, matching the row numbering written to
// the save file.
type Point struct {
	// Sequence is the zero-based capture index within the current set.
	Sequence int `json:"sequence"`

	// Device is the controller index that triggered the capture.
	Device int `json:"device"`

	// Position is the captured world-space position in metres.
	Position vr.Vec3 `json:"position"`

	// Orientation is the captured orientation in degrees.
	Orientation vr.Euler `json:"orientation"`

	// CapturedAt is the wall-clock time of the capture (UTC).
	CapturedAt time.Time `json:"captured_at"`
}

// Store accumulates captured points in memory.
//
// Captures happen on the frame loop while the HTTP API reads concurrently,
// so all access is guarded by a read-write mutex.
type Store struct {
	mu     sync.RWMutex
	points []Point
	now    func() time.Time
}

// NewStore creates an empty point store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Capture appends a snapshot of the given pose and returns the stored
// point. The pose is copied; later movement of the device does not alter
// captured data.
func (s *Store) Capture(deviceIndex int, pose vr.Pose) Point {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := Point{
		Sequence:    len(s.points),
		Device:      deviceIndex,
		Position:    pose.Position,
		Orientation: pose.Orientation,
		CapturedAt:  s.now().UTC(),
	}
	s.points = append(s.points, p)
	return p
}

// Points returns a copy of all captured points in capture order.
func (s *Store) Points() []Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// Len returns the number of captured points.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.points)
}

// Clear discards all captured points and returns how many were removed.
// Sequence numbering restarts at zero afterwards.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.points)
	s.points = nil
	return n
}
