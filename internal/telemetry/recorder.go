package telemetry

import (
	"strconv"

	"github.com/trackworks/poseoverlay/internal/capture"
	"github.com/trackworks/poseoverlay/internal/device"
	"github.com/trackworks/poseoverlay/internal/overlay"
	"github.com/trackworks/poseoverlay/internal/vr"
)

var _ overlay.PoseSink = (*Recorder)(nil)

// PoseWriter is the InfluxDB surface the recorder uses. *influxdb.Client
// satisfies it. Writes are buffered and asynchronous.
type PoseWriter interface {
	WritePoseSample(deviceID, class string, x, y, z, pitch, yaw, roll float64)
	WriteCaptureEvent(deviceID string, sequence int, x, y, z float64)
}

// Recorder writes overlay telemetry to InfluxDB.
type Recorder struct {
	writer PoseWriter
	logger Logger
}

// NewRecorder creates an InfluxDB telemetry recorder.
func NewRecorder(writer PoseWriter, logger Logger) *Recorder {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Recorder{writer: writer, logger: logger}
}

// PublishPose records one sampled device pose.
func (r *Recorder) PublishPose(dev *device.Tracked, pose vr.Pose) {
	r.writer.WritePoseSample(dev.ID(), string(dev.Class),
		pose.Position.X, pose.Position.Y, pose.Position.Z,
		pose.Orientation.Pitch, pose.Orientation.Yaw, pose.Orientation.Roll)
}

// PublishCapture records a captured point.
func (r *Recorder) PublishCapture(point capture.Point) {
	deviceID := "controller-" + strconv.Itoa(point.Device)
	r.writer.WriteCaptureEvent(deviceID, point.Sequence,
		point.Position.X, point.Position.Y, point.Position.Z)
}

// PublishEnabled is a no-op: state transitions are not a time series worth
// storing, they live on the retained MQTT topic instead.
func (r *Recorder) PublishEnabled(bool) {}
