package api

import (
	"encoding/json"
	"testing"

	"github.com/trackworks/poseoverlay/internal/capture"
	"github.com/trackworks/poseoverlay/internal/device"
	"github.com/trackworks/poseoverlay/internal/infrastructure/config"
	"github.com/trackworks/poseoverlay/internal/infrastructure/logging"
	"github.com/trackworks/poseoverlay/internal/vr"
)

func newTestHub() *Hub {
	return NewHub(config.WebSocketConfig{
		MaxMessageSize: 4096,
		PingInterval:   30,
		PongTimeout:    10,
	}, logging.New(config.LoggingConfig{Level: "error"}, "test"))
}

// newHubClient registers a channel-only client (no real connection) so
// broadcasts can be observed through its send buffer.
func newHubClient(hub *Hub, channels ...string) *WSClient {
	client := &WSClient{
		hub:           hub,
		send:          make(chan []byte, wsSendBufferSize),
		subscriptions: make(map[string]struct{}),
	}
	for _, ch := range channels {
		client.subscriptions[ch] = struct{}{}
	}
	hub.Register(client)
	return client
}

func receiveMessage(t *testing.T, client *WSClient) WSMessage {
	t.Helper()
	select {
	case data := <-client.send:
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshaling broadcast: %v", err)
		}
		return msg
	default:
		t.Fatal("no message in client send buffer")
		return WSMessage{}
	}
}

func TestHubBroadcastRespectsSubscriptions(t *testing.T) {
	hub := newTestHub()
	subscribed := newHubClient(hub, ChannelDevicePose)
	other := newHubClient(hub, ChannelCapturePoint)

	hub.Broadcast(ChannelDevicePose, map[string]any{"device_id": "hmd-0"})

	msg := receiveMessage(t, subscribed)
	if msg.Type != WSTypeEvent || msg.EventType != ChannelDevicePose {
		t.Errorf("message type/event = %q/%q, want event/%s", msg.Type, msg.EventType, ChannelDevicePose)
	}

	select {
	case <-other.send:
		t.Error("unsubscribed client received broadcast")
	default:
	}
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := newTestHub()
	client := newHubClient(hub, ChannelDevicePose)

	hub.Unregister(client)

	if _, open := <-client.send; open {
		t.Error("send channel still open after Unregister")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d, want 0", hub.ClientCount())
	}

	// A second Unregister must not panic on the closed channel.
	hub.Unregister(client)
}

func TestHubBroadcastSkipsFullBuffers(t *testing.T) {
	hub := newTestHub()
	client := newHubClient(hub, ChannelDevicePose)

	for i := 0; i < wsSendBufferSize+10; i++ {
		hub.Broadcast(ChannelDevicePose, map[string]any{"n": i})
	}

	if got := len(client.send); got != wsSendBufferSize {
		t.Errorf("buffered messages = %d, want %d (overflow dropped)", got, wsSendBufferSize)
	}
}

func TestHubSinkChannels(t *testing.T) {
	hub := newTestHub()
	poseClient := newHubClient(hub, ChannelDevicePose)
	captureClient := newHubClient(hub, ChannelCapturePoint)
	stateClient := newHubClient(hub, ChannelOverlayState)

	sink := NewHubSink(hub)
	sink.PublishPose(&device.Tracked{Index: 0, Class: device.ClassHMD}, vr.Pose{})
	sink.PublishCapture(capture.Point{Sequence: 0})
	sink.PublishEnabled(false)

	if msg := receiveMessage(t, poseClient); msg.EventType != ChannelDevicePose {
		t.Errorf("pose event type = %q, want %s", msg.EventType, ChannelDevicePose)
	}
	if msg := receiveMessage(t, captureClient); msg.EventType != ChannelCapturePoint {
		t.Errorf("capture event type = %q, want %s", msg.EventType, ChannelCapturePoint)
	}
	if msg := receiveMessage(t, stateClient); msg.EventType != ChannelOverlayState {
		t.Errorf("state event type = %q, want %s", msg.EventType, ChannelOverlayState)
	}
}

func TestClientMessageHandling(t *testing.T) {
	hub := newTestHub()
	client := newHubClient(hub)

	client.handleMessage([]byte(`{"type":"subscribe","id":"1","payload":{"channels":["device.pose","overlay.state"]}}`))

	if msg := receiveMessage(t, client); msg.Type != WSTypeResponse || msg.ID != "1" {
		t.Errorf("subscribe reply = %q/%q, want response/1", msg.Type, msg.ID)
	}
	if !client.subscribed(ChannelDevicePose) || !client.subscribed(ChannelOverlayState) {
		t.Error("channels not subscribed after subscribe message")
	}

	client.handleMessage([]byte(`{"type":"unsubscribe","id":"2","payload":{"channels":["device.pose"]}}`))

	if msg := receiveMessage(t, client); msg.Type != WSTypeResponse || msg.ID != "2" {
		t.Errorf("unsubscribe reply = %q/%q, want response/2", msg.Type, msg.ID)
	}
	if client.subscribed(ChannelDevicePose) {
		t.Error("device.pose still subscribed after unsubscribe message")
	}
	if !client.subscribed(ChannelOverlayState) {
		t.Error("overlay.state dropped by unrelated unsubscribe")
	}

	client.handleMessage([]byte(`{"type":"ping","id":"3"}`))
	if msg := receiveMessage(t, client); msg.Type != WSTypePong {
		t.Errorf("ping reply type = %q, want pong", msg.Type)
	}

	client.handleMessage([]byte(`{"type":"bogus","id":"4"}`))
	if msg := receiveMessage(t, client); msg.Type != WSTypeError {
		t.Errorf("unknown type reply = %q, want error", msg.Type)
	}

	client.handleMessage([]byte(`{not json`))
	if msg := receiveMessage(t, client); msg.Type != WSTypeError {
		t.Errorf("malformed frame reply = %q, want error", msg.Type)
	}
}
