// Package api provides the HTTP debug API and WebSocket server for the pose
// overlay.
//
// It exposes the device registry with live poses, the captured point set,
// the archived capture sessions, and remote overlay control (toggle, save,
// clear, screenshot) to external tooling, plus a WebSocket hub that streams
// pose samples and capture events in real time.
//
// The server binds to loopback by default and carries no authentication: it
// is a developer-facing debug surface, not a user product.
//
// The server follows the same lifecycle pattern as the other infrastructure
// components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
package api
