package influxdb

import "errors"

// Sentinel errors for history storage. Match with errors.Is.
var (
	// ErrNotConnected: operation attempted on a closed or failed client.
	ErrNotConnected = errors.New("influxdb: not connected")

	// ErrConnectionFailed: the initial ping did not reach a healthy server.
	ErrConnectionFailed = errors.New("influxdb: connection failed")

	// ErrWriteFailed wraps asynchronous batch-write failures delivered
	// through the SetOnError callback.
	ErrWriteFailed = errors.New("influxdb: write failed")

	// ErrDisabled: pose history recording is switched off in config.
	ErrDisabled = errors.New("influxdb: disabled in configuration")
)
