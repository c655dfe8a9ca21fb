// Package vr defines the contract between the overlay core and the VR
// runtime it observes.
//
// The runtime (SteamVR, a replay harness, the simulator in vr/sim) is an
// external collaborator: the core never polls hardware itself. Everything
// the core needs from it is expressed here as small interfaces:
//
//   - Runtime: device enumeration by class (headset, controllers,
//     trackers, base stations)
//   - Device: a live pose source (world-space position + Euler angles)
//   - InputEvent: a discrete controller button-down edge
//
// Pose values are snapshots; the core reads them each frame and never
// owns or mutates them. Euler angles are degrees in (pitch, yaw, roll)
// order throughout.
package vr
