package mqtt

import "fmt"

// Topic prefixes for the overlay daemon's MQTT traffic.
//
// All topics use the flat scheme: poseoverlay/{category}/...
const (
	// TopicPrefix is the base for all overlay topics.
	TopicPrefix = "poseoverlay"

	// TopicPrefixPose is the base for per-device pose telemetry.
	TopicPrefixPose = "poseoverlay/pose"

	// TopicPrefixOverlay is the base for overlay state and commands.
	TopicPrefixOverlay = "poseoverlay/overlay"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "poseoverlay/system"
)

// Topics provides builders for overlay MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
//	topics := mqtt.Topics{}
//	poseTopic := topics.DevicePose("controller", 1)
//	// Returns: "poseoverlay/pose/controller/1"
type Topics struct{}

// DevicePose returns the pose telemetry topic for one tracked device.
//
// Example: poseoverlay/pose/controller/1
func (Topics) DevicePose(class string, index int) string {
	return fmt.Sprintf("%s/%s/%d", TopicPrefixPose, class, index)
}

// CaptureEvent returns the topic for point capture events.
//
// Example: poseoverlay/capture/event
func (Topics) CaptureEvent() string {
	return fmt.Sprintf("%s/capture/event", TopicPrefix)
}

// OverlayState returns the retained overlay visibility state topic.
//
// Example: poseoverlay/overlay/state
func (Topics) OverlayState() string {
	return fmt.Sprintf("%s/state", TopicPrefixOverlay)
}

// OverlayCommand returns the topic for remote overlay commands.
//
// Example: poseoverlay/overlay/command
func (Topics) OverlayCommand() string {
	return fmt.Sprintf("%s/command", TopicPrefixOverlay)
}

// SystemStatus returns the retained daemon status topic, used for the
// online/offline announcements and the LWT.
//
// Example: poseoverlay/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}
