package overlay

import (
	"github.com/trackworks/poseoverlay/internal/capture"
	"github.com/trackworks/poseoverlay/internal/device"
	"github.com/trackworks/poseoverlay/internal/vr"
)

// PoseSink receives pose samples and capture events from the overlay.
//
// Implementations publish to a telemetry backend (MQTT topics, InfluxDB
// measurements, a WebSocket hub). Sinks are called from the frame path and
// must not block; slow backends should buffer or drop internally.
type PoseSink interface {
	// PublishPose delivers one sampled device pose.
	PublishPose(dev *device.Tracked, pose vr.Pose)

	// PublishCapture delivers a newly captured point.
	PublishCapture(point capture.Point)

	// PublishEnabled delivers overlay enabled-state transitions.
	PublishEnabled(enabled bool)
}
