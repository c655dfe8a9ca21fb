package telemetry

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/trackworks/poseoverlay/internal/capture"
	"github.com/trackworks/poseoverlay/internal/device"
	"github.com/trackworks/poseoverlay/internal/infrastructure/mqtt"
	"github.com/trackworks/poseoverlay/internal/vr"
)

// publishRecord is one captured Publish call.
type publishRecord struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// fakeBroker records published messages and subscriptions.
type fakeBroker struct {
	published []publishRecord
	handlers  map[string]mqtt.MessageHandler
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{handlers: make(map[string]mqtt.MessageHandler)}
}

func (b *fakeBroker) Publish(topic string, payload []byte, qos byte, retained bool) error {
	b.published = append(b.published, publishRecord{topic, payload, qos, retained})
	return nil
}

func (b *fakeBroker) PublishRetained(topic string, payload []byte) error {
	b.published = append(b.published, publishRecord{topic, payload, 1, true})
	return nil
}

func (b *fakeBroker) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	b.handlers[topic] = handler
	return nil
}

func testTracked() *device.Tracked {
	return &device.Tracked{Index: 1, Class: device.ClassController}
}

func testPose() vr.Pose {
	return vr.Pose{
		Position:    vr.Vec3{X: 0.1, Y: 1.2, Z: -0.3},
		Orientation: vr.Euler{Pitch: 10, Yaw: 20, Roll: 30},
	}
}

func TestPublishPose(t *testing.T) {
	broker := newFakeBroker()
	pub := NewPublisher(broker, nil)
	pub.now = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}

	pub.PublishPose(testTracked(), testPose())

	if len(broker.published) != 1 {
		t.Fatalf("published = %d messages, want 1", len(broker.published))
	}
	rec := broker.published[0]
	if rec.topic != "poseoverlay/pose/controller/1" {
		t.Errorf("topic = %q, want poseoverlay/pose/controller/1", rec.topic)
	}
	if rec.qos != 0 || rec.retained {
		t.Errorf("qos/retained = %d/%v, want 0/false", rec.qos, rec.retained)
	}

	var msg poseMessage
	if err := json.Unmarshal(rec.payload, &msg); err != nil {
		t.Fatalf("unmarshaling payload: %v", err)
	}
	if msg.DeviceID != "controller-1" {
		t.Errorf("device_id = %q, want controller-1", msg.DeviceID)
	}
	if msg.Class != "controller" || msg.Index != 1 {
		t.Errorf("class/index = %q/%d, want controller/1", msg.Class, msg.Index)
	}
	if msg.Position != testPose().Position {
		t.Errorf("position = %+v, want %+v", msg.Position, testPose().Position)
	}
	if msg.Timestamp != "2026-03-01T12:00:00Z" {
		t.Errorf("timestamp = %q, want 2026-03-01T12:00:00Z", msg.Timestamp)
	}
}

func TestPublishCapture(t *testing.T) {
	broker := newFakeBroker()
	pub := NewPublisher(broker, nil)

	point := capture.Point{
		Sequence:    3,
		Device:      0,
		Position:    vr.Vec3{X: 1, Y: 2, Z: 3},
		Orientation: vr.Euler{Pitch: 4, Yaw: 5, Roll: 6},
		CapturedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	pub.PublishCapture(point)

	if len(broker.published) != 1 {
		t.Fatalf("published = %d messages, want 1", len(broker.published))
	}
	rec := broker.published[0]
	if rec.topic != "poseoverlay/capture/event" {
		t.Errorf("topic = %q, want poseoverlay/capture/event", rec.topic)
	}
	if rec.qos != 1 {
		t.Errorf("qos = %d, want 1", rec.qos)
	}

	var msg captureMessage
	if err := json.Unmarshal(rec.payload, &msg); err != nil {
		t.Fatalf("unmarshaling payload: %v", err)
	}
	if msg.Sequence != 3 || msg.Device != 0 {
		t.Errorf("sequence/device = %d/%d, want 3/0", msg.Sequence, msg.Device)
	}
	if msg.CapturedAt != "2026-03-01T12:00:00Z" {
		t.Errorf("captured_at = %q, want 2026-03-01T12:00:00Z", msg.CapturedAt)
	}
}

func TestPublishEnabledIsRetained(t *testing.T) {
	broker := newFakeBroker()
	pub := NewPublisher(broker, nil)

	pub.PublishEnabled(true)
	pub.PublishEnabled(false)

	if len(broker.published) != 2 {
		t.Fatalf("published = %d messages, want 2", len(broker.published))
	}
	for i, wantEnabled := range []bool{true, false} {
		rec := broker.published[i]
		if rec.topic != "poseoverlay/overlay/state" {
			t.Errorf("topic = %q, want poseoverlay/overlay/state", rec.topic)
		}
		if !rec.retained {
			t.Error("state message not retained")
		}
		var msg stateMessage
		if err := json.Unmarshal(rec.payload, &msg); err != nil {
			t.Fatalf("unmarshaling payload: %v", err)
		}
		if msg.Enabled != wantEnabled {
			t.Errorf("enabled = %v, want %v", msg.Enabled, wantEnabled)
		}
	}
}

func TestSubscribeCommands(t *testing.T) {
	broker := newFakeBroker()
	pub := NewPublisher(broker, nil)

	var got []bool
	if err := pub.SubscribeCommands(func(enabled bool) {
		got = append(got, enabled)
	}); err != nil {
		t.Fatalf("SubscribeCommands() error = %v", err)
	}

	handler, ok := broker.handlers["poseoverlay/overlay/command"]
	if !ok {
		t.Fatal("no handler registered on the command topic")
	}

	if err := handler("poseoverlay/overlay/command", []byte(`{"enabled":false}`)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if err := handler("poseoverlay/overlay/command", []byte(`{"enabled":true}`)); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if len(got) != 2 || got[0] != false || got[1] != true {
		t.Errorf("setEnabled calls = %v, want [false true]", got)
	}

	if err := handler("poseoverlay/overlay/command", []byte("not json")); err == nil {
		t.Error("handler accepted malformed payload")
	}
}

// fakePoseWriter records recorder writes.
type fakePoseWriter struct {
	poses    []string
	captures []int
}

func (w *fakePoseWriter) WritePoseSample(deviceID, _ string, _, _, _, _, _, _ float64) {
	w.poses = append(w.poses, deviceID)
}

func (w *fakePoseWriter) WriteCaptureEvent(deviceID string, sequence int, _, _, _ float64) {
	w.captures = append(w.captures, sequence)
}

func TestRecorderWritesPoseSamples(t *testing.T) {
	writer := &fakePoseWriter{}
	rec := NewRecorder(writer, nil)

	rec.PublishPose(testTracked(), testPose())

	if len(writer.poses) != 1 || writer.poses[0] != "controller-1" {
		t.Errorf("pose writes = %v, want [controller-1]", writer.poses)
	}
}

func TestRecorderWritesCaptureEvents(t *testing.T) {
	writer := &fakePoseWriter{}
	rec := NewRecorder(writer, nil)

	rec.PublishCapture(capture.Point{Sequence: 7, Device: 0})

	if len(writer.captures) != 1 || writer.captures[0] != 7 {
		t.Errorf("capture writes = %v, want [7]", writer.captures)
	}
}

func TestRecorderIgnoresEnabledTransitions(t *testing.T) {
	writer := &fakePoseWriter{}
	rec := NewRecorder(writer, nil)

	rec.PublishEnabled(true)

	if len(writer.poses) != 0 || len(writer.captures) != 0 {
		t.Error("enabled transition produced writes")
	}
}
