package api

import (
	"github.com/trackworks/poseoverlay/internal/capture"
	"github.com/trackworks/poseoverlay/internal/device"
	"github.com/trackworks/poseoverlay/internal/overlay"
	"github.com/trackworks/poseoverlay/internal/vr"
)

var _ overlay.PoseSink = (*HubSink)(nil)

// HubSink adapts the WebSocket hub into an overlay telemetry sink, streaming
// pose samples, capture events, and overlay state changes to subscribed
// clients. Broadcasts drop for slow clients rather than block the frame
// path.
type HubSink struct {
	hub *Hub
}

// NewHubSink wraps a hub as a telemetry sink.
func NewHubSink(hub *Hub) *HubSink {
	return &HubSink{hub: hub}
}

// PublishPose broadcasts a sampled device pose on the device.pose channel.
func (s *HubSink) PublishPose(dev *device.Tracked, pose vr.Pose) {
	s.hub.Broadcast(ChannelDevicePose, map[string]any{
		"device_id": dev.ID(),
		"class":     string(dev.Class),
		"index":     dev.Index,
		"pose":      pose,
	})
}

// PublishCapture broadcasts a captured point on the capture.point channel.
func (s *HubSink) PublishCapture(point capture.Point) {
	s.hub.Broadcast(ChannelCapturePoint, point)
}

// PublishEnabled broadcasts overlay state changes on the overlay.state
// channel.
func (s *HubSink) PublishEnabled(enabled bool) {
	s.hub.Broadcast(ChannelOverlayState, map[string]any{
		"enabled": enabled,
	})
}
