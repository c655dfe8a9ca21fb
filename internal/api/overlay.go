package api

import (
	"encoding/json"
	"net/http"
)

// overlayEnabledRequest is the body of POST /overlay/enabled.
type overlayEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

// handleGetOverlay returns the overlay's current state: enabled flag, input
// bindings, and the number of points held in the store.
func (s *Server) handleGetOverlay(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled":  s.overlay.Enabled(),
		"bindings": s.overlay.Bindings(),
		"points":   s.store.Len(),
	})
}

// handleSetOverlayEnabled sets the overlay's enabled state, the remote
// equivalent of the toggle hotkey.
func (s *Server) handleSetOverlayEnabled(w http.ResponseWriter, r *http.Request) {
	var req overlayEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Enabled == nil {
		writeBadRequest(w, "enabled field is required")
		return
	}

	s.overlay.SetEnabled(*req.Enabled)
	writeJSON(w, http.StatusOK, map[string]any{
		"enabled": s.overlay.Enabled(),
	})
}

// handleScreenshot takes a screenshot through the engine and returns the
// file path written.
func (s *Server) handleScreenshot(w http.ResponseWriter, _ *http.Request) {
	path, err := s.overlay.TakeScreenshot()
	if err != nil {
		writeInternalError(w, "screenshot failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"path": path,
	})
}
