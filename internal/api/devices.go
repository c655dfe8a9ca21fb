package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trackworks/poseoverlay/internal/device"
	"github.com/trackworks/poseoverlay/internal/vr"
)

// deviceView is the JSON representation of one tracked device with its live
// pose.
type deviceView struct {
	ID      string  `json:"id"`
	Class   string  `json:"class"`
	Index   int     `json:"index"`
	Visible bool    `json:"visible"`
	Pose    vr.Pose `json:"pose"`
}

func newDeviceView(dev *device.Tracked) deviceView {
	return deviceView{
		ID:      dev.ID(),
		Class:   string(dev.Class),
		Index:   dev.Index,
		Visible: dev.Visible(),
		Pose:    dev.Pose(),
	}
}

// handleListDevices returns every tracked device with its current pose.
func (s *Server) handleListDevices(w http.ResponseWriter, _ *http.Request) {
	devices := s.overlay.Registry().All()
	views := make([]deviceView, 0, len(devices))
	for _, dev := range devices {
		views = append(views, newDeviceView(dev))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"devices": views,
		"count":   len(views),
	})
}

// handleDeviceStats returns registry counts by device class.
func (s *Server) handleDeviceStats(w http.ResponseWriter, _ *http.Request) {
	stats := s.overlay.Registry().GetStats()

	byClass := make(map[string]int, len(stats.ByClass))
	for class, count := range stats.ByClass {
		byClass[string(class)] = count
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":    stats.Total,
		"by_class": byClass,
	})
}

// handleGetDevice returns a single device addressed by its ID, for example
// "controller-0".
func (s *Server) handleGetDevice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	for _, dev := range s.overlay.Registry().All() {
		if dev.ID() == id {
			writeJSON(w, http.StatusOK, newDeviceView(dev))
			return
		}
	}
	writeNotFound(w, "device not found: "+id)
}
