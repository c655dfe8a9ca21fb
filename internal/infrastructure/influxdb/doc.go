// Package influxdb records pose history in InfluxDB v2.
//
// Two measurements land in the configured bucket: "pose" holds the
// per-device position/orientation stream, "capture" the point capture
// events. Writes are batched and non-blocking so the frame loop never
// waits on storage; batch failures come back through the SetOnError
// callback.
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WritePoseSample("controller-1", "controller", 0.1, 1.2, -0.3, 10, 20, 30)
//
// Batch size and flush interval come from config.yaml; Close flushes
// whatever is still buffered.
package influxdb
