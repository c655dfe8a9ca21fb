package vr

// Vec3 is a position in metres, world space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Euler is an orientation in degrees.
//
// Component order is (pitch, yaw, roll) everywhere in this codebase:
// pitch about X, yaw about Y, roll about Z. Runtimes that report a
// different order must convert before implementing Device.
type Euler struct {
	Pitch float64 `json:"pitch"`
	Yaw   float64 `json:"yaw"`
	Roll  float64 `json:"roll"`
}

// Pose is a position + orientation snapshot for one tracked device.
type Pose struct {
	Position    Vec3  `json:"position"`
	Orientation Euler `json:"orientation"`
}
