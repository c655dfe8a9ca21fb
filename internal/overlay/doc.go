// Package overlay assembles the pose debugging overlay.
//
// The Overlay owns the device registry, the point capture store, the scene
// nodes that visualise device poses, the input binding table, and the timed
// on-screen notifications. It is driven by the engine's frame callback: each
// frame it samples live poses from the registry and refreshes the display,
// throttled to a configurable minimum interval.
//
// Discrete actions (capture a point, save, clear, screenshot, toggle) are
// dispatched through the binding table from keyboard keys and controller
// buttons. Disabling the overlay hides every node and mutes every binding
// except the master toggle hotkey.
//
// Pose samples and capture events optionally fan out to telemetry sinks
// (MQTT, InfluxDB, WebSocket hub); sinks must not block.
package overlay
