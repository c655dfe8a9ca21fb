// Package scene defines the contract between the overlay core and the
// presentation engine that renders it.
//
// Rendering, 3D text layout, input polling and window capture are all the
// engine's job; the core only asks for primitives (text labels, axis
// markers, a floor grid), visibility toggling, frame and key callbacks,
// one-shot timers, and screenshots. Engine implementations adapt a real
// scene graph to these interfaces.
//
// Headless is the in-memory implementation: nodes record their state,
// frames are stepped explicitly, and screenshots are counted. It backs
// every test in the repository and the daemon's simulator mode.
package scene
