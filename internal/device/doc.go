// Package device provides the tracked-device registry for the pose
// overlay.
//
// The registry is built exactly once per session by Enumerate, which asks
// the VR runtime for every connected device and assigns each a stable
// 0-based index within its class (headset, controllers, trackers, base
// stations are numbered independently, in discovery order). Devices are
// never added or removed afterwards; hot-plug is out of scope.
//
// A missing headset is the one fatal enumeration condition
// (ErrNoHeadset). Missing controllers, trackers or base stations are
// normal: their sequences are empty and the overlay omits those sections.
//
// The registry also carries the group visibility flag the overlay hotkey
// toggles. Registry methods are safe for concurrent use because the debug
// API reads the registry from HTTP goroutines.
package device
