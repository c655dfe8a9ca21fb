package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names in the history bucket.
const (
	measurementPose    = "pose"
	measurementCapture = "capture"
)

// WritePoseSample queues one device pose for the history bucket. The
// write is batched and non-blocking; on a disconnected client it is
// silently dropped so the frame loop never stalls on storage.
//
// Position is metres in world space, orientation is degrees.
func (c *Client) WritePoseSample(deviceID, class string, x, y, z, pitch, yaw, roll float64) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(measurementPose,
		map[string]string{
			"device_id": deviceID,
			"class":     class,
		},
		map[string]interface{}{
			"pos_x": x,
			"pos_y": y,
			"pos_z": z,
			"pitch": pitch,
			"yaw":   yaw,
			"roll":  roll,
		},
		time.Now()))
}

// WriteCaptureEvent records a captured point alongside the pose stream,
// tagged by device with the zero-based sequence number as a field.
func (c *Client) WriteCaptureEvent(deviceID string, sequence int, x, y, z float64) {
	if !c.IsConnected() {
		return
	}

	c.writeAPI.WritePoint(write.NewPoint(measurementCapture,
		map[string]string{"device_id": deviceID},
		map[string]interface{}{
			"sequence": sequence,
			"pos_x":    x,
			"pos_y":    y,
			"pos_z":    z,
		},
		time.Now()))
}
