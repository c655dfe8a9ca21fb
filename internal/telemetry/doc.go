// Package telemetry fans overlay pose samples and capture events out to
// external backends.
//
// Publisher pushes JSON messages to MQTT topics (per-device pose topics, a
// capture event topic, and a retained overlay-state topic) and can subscribe
// to the remote command topic so the overlay can be toggled from the broker
// side. Recorder writes pose and capture measurements to InfluxDB for
// historical queries.
//
// Both implement the overlay's sink interface and are non-blocking: MQTT
// publishes are fire-and-forget at the configured QoS, and InfluxDB writes
// go through the client's async buffered write API.
package telemetry
