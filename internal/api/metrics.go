package api

import (
	"net/http"
	"runtime"
	"time"
)

const bytesPerMB = 1 << 20

// SystemMetrics is the GET /api/v1/metrics payload: a point-in-time
// snapshot of the daemon and every subsystem it carries.
type SystemMetrics struct {
	Timestamp     string          `json:"timestamp"`
	Version       string          `json:"version"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	Runtime       RuntimeMetrics  `json:"runtime"`
	WebSocket     WSMetrics       `json:"websocket"`
	MQTT          MQTTMetrics     `json:"mqtt"`
	Devices       DeviceMetrics   `json:"devices"`
	Points        PointMetrics    `json:"points"`
	Database      DatabaseMetrics `json:"database"`
}

// RuntimeMetrics is a slice of the Go runtime's own counters.
type RuntimeMetrics struct {
	Goroutines    int     `json:"goroutines"`
	MemoryAllocMB float64 `json:"memory_alloc_mb"`
	MemoryTotalMB float64 `json:"memory_total_mb"`
	NumGC         uint32  `json:"num_gc"`
}

// WSMetrics counts live stream subscribers.
type WSMetrics struct {
	ConnectedClients int `json:"connected_clients"`
}

// MQTTMetrics reports the telemetry broker link.
type MQTTMetrics struct {
	Connected bool `json:"connected"`
}

// DeviceMetrics summarises the tracked-device registry.
type DeviceMetrics struct {
	Total   int            `json:"total"`
	ByClass map[string]int `json:"by_class"`
}

// PointMetrics counts points captured this session.
type PointMetrics struct {
	Captured int `json:"captured"`
}

// DatabaseMetrics exposes the SQLite connection pool counters.
type DatabaseMetrics struct {
	OpenConnections int   `json:"open_connections"`
	InUse           int   `json:"in_use"`
	Idle            int   `json:"idle"`
	WaitCount       int64 `json:"wait_count"`
}

// handleMetrics assembles the full snapshot. Optional subsystems (hub,
// broker, database) report zero values when not wired.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	metrics := SystemMetrics{
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Version:       s.version,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Runtime:       goRuntimeMetrics(),
		Devices:       s.deviceMetrics(),
		Points:        PointMetrics{Captured: s.store.Len()},
	}

	if s.hub != nil {
		metrics.WebSocket.ConnectedClients = s.hub.ClientCount()
	}
	if s.mqtt != nil {
		metrics.MQTT.Connected = s.mqtt.IsConnected()
	}
	if s.db != nil {
		pool := s.db.Stats()
		metrics.Database = DatabaseMetrics{
			OpenConnections: pool.OpenConnections,
			InUse:           pool.InUse,
			Idle:            pool.Idle,
			WaitCount:       pool.WaitCount,
		}
	}

	writeJSON(w, http.StatusOK, metrics)
}

func goRuntimeMetrics() RuntimeMetrics {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return RuntimeMetrics{
		Goroutines:    runtime.NumGoroutine(),
		MemoryAllocMB: float64(mem.Alloc) / bytesPerMB,
		MemoryTotalMB: float64(mem.TotalAlloc) / bytesPerMB,
		NumGC:         mem.NumGC,
	}
}

func (s *Server) deviceMetrics() DeviceMetrics {
	stats := s.overlay.Registry().GetStats()
	dm := DeviceMetrics{
		Total:   stats.Total,
		ByClass: make(map[string]int, len(stats.ByClass)),
	}
	for class, count := range stats.ByClass {
		dm.ByClass[string(class)] = count
	}
	return dm
}
