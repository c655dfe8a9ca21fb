package telemetry

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/trackworks/poseoverlay/internal/capture"
	"github.com/trackworks/poseoverlay/internal/device"
	"github.com/trackworks/poseoverlay/internal/infrastructure/mqtt"
	"github.com/trackworks/poseoverlay/internal/overlay"
	"github.com/trackworks/poseoverlay/internal/vr"
)

var _ overlay.PoseSink = (*Publisher)(nil)

// Logger is the minimal logging interface the telemetry sinks need.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Broker is the MQTT surface the publisher uses. *mqtt.Client satisfies it.
type Broker interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	PublishRetained(topic string, payload []byte) error
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
}

// poseMessage is the JSON payload published per sampled device pose.
type poseMessage struct {
	DeviceID    string   `json:"device_id"`
	Class       string   `json:"class"`
	Index       int      `json:"index"`
	Position    vr.Vec3  `json:"position"`
	Orientation vr.Euler `json:"orientation"`
	Timestamp   string   `json:"timestamp"`
}

// captureMessage is the JSON payload published per captured point.
type captureMessage struct {
	Sequence    int      `json:"sequence"`
	Device      int      `json:"device"`
	Position    vr.Vec3  `json:"position"`
	Orientation vr.Euler `json:"orientation"`
	CapturedAt  string   `json:"captured_at"`
}

// stateMessage is the retained overlay-state payload.
type stateMessage struct {
	Enabled   bool   `json:"enabled"`
	Timestamp string `json:"timestamp"`
}

// commandMessage is the payload accepted on the remote command topic.
type commandMessage struct {
	Enabled bool `json:"enabled"`
}

// Publisher publishes overlay telemetry to an MQTT broker.
//
// Pose samples go out at QoS 0 (a lost frame sample is worthless a frame
// later), capture events at QoS 1, and the overlay state is retained so
// late subscribers see the current state immediately.
type Publisher struct {
	broker Broker
	topics mqtt.Topics
	logger Logger
	now    func() time.Time
}

// NewPublisher creates an MQTT telemetry publisher.
func NewPublisher(broker Broker, logger Logger) *Publisher {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Publisher{
		broker: broker,
		logger: logger,
		now:    time.Now,
	}
}

// PublishPose sends one sampled device pose to its per-device topic.
func (p *Publisher) PublishPose(dev *device.Tracked, pose vr.Pose) {
	msg := poseMessage{
		DeviceID:    dev.ID(),
		Class:       string(dev.Class),
		Index:       dev.Index,
		Position:    pose.Position,
		Orientation: pose.Orientation,
		Timestamp:   p.now().UTC().Format(time.RFC3339Nano),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		p.logger.Error("marshaling pose message", "device", dev.ID(), "error", err)
		return
	}

	topic := p.topics.DevicePose(string(dev.Class), dev.Index)
	if err := p.broker.Publish(topic, payload, 0, false); err != nil {
		p.logger.Warn("publishing pose", "topic", topic, "error", err)
	}
}

// PublishCapture sends a captured point to the capture event topic.
func (p *Publisher) PublishCapture(point capture.Point) {
	msg := captureMessage{
		Sequence:    point.Sequence,
		Device:      point.Device,
		Position:    point.Position,
		Orientation: point.Orientation,
		CapturedAt:  point.CapturedAt.UTC().Format(time.RFC3339Nano),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		p.logger.Error("marshaling capture message", "sequence", point.Sequence, "error", err)
		return
	}

	if err := p.broker.Publish(p.topics.CaptureEvent(), payload, 1, false); err != nil {
		p.logger.Warn("publishing capture event", "error", err)
	}
}

// PublishEnabled publishes the overlay's enabled state, retained.
func (p *Publisher) PublishEnabled(enabled bool) {
	msg := stateMessage{
		Enabled:   enabled,
		Timestamp: p.now().UTC().Format(time.RFC3339Nano),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		p.logger.Error("marshaling state message", "error", err)
		return
	}

	if err := p.broker.PublishRetained(p.topics.OverlayState(), payload); err != nil {
		p.logger.Warn("publishing overlay state", "error", err)
	}
}

// SubscribeCommands registers setEnabled as the handler for remote overlay
// commands. A payload of {"enabled": true} or {"enabled": false} flips the
// overlay; malformed payloads are rejected.
func (p *Publisher) SubscribeCommands(setEnabled func(enabled bool)) error {
	return p.broker.Subscribe(p.topics.OverlayCommand(), 1, func(topic string, payload []byte) error {
		var cmd commandMessage
		if err := json.Unmarshal(payload, &cmd); err != nil {
			return fmt.Errorf("parsing overlay command: %w", err)
		}
		p.logger.Info("remote overlay command", "enabled", cmd.Enabled)
		setEnabled(cmd.Enabled)
		return nil
	})
}
