package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/trackworks/poseoverlay/internal/overlay"
)

// handleListPoints returns the points captured so far, in capture order.
func (s *Server) handleListPoints(w http.ResponseWriter, _ *http.Request) {
	points := s.store.Points()
	writeJSON(w, http.StatusOK, map[string]any{
		"points": points,
		"count":  len(points),
	})
}

// capturePointRequest is the optional body of POST /points.
type capturePointRequest struct {
	Controller int `json:"controller"`
}

// handleCapturePoint captures the named controller's current pose, exactly
// as a trigger pull would. An empty body captures from controller 0. The
// capture is refused while the overlay is disabled, matching the binding
// mute.
func (s *Server) handleCapturePoint(w http.ResponseWriter, r *http.Request) {
	var req capturePointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, "invalid JSON body")
		return
	}
	if req.Controller < 0 {
		writeBadRequest(w, "controller must not be negative")
		return
	}

	point, err := s.overlay.CapturePoint(req.Controller)
	switch {
	case errors.Is(err, overlay.ErrBindingsMuted):
		writeError(w, http.StatusConflict, ErrCodeConflict, "overlay is disabled")
		return
	case errors.Is(err, overlay.ErrUnknownController):
		writeNotFound(w, "controller not found")
		return
	case err != nil:
		writeInternalError(w, "capturing point failed")
		return
	}
	writeJSON(w, http.StatusCreated, point)
}

// savePointsRequest is the optional body of POST /points/save.
type savePointsRequest struct {
	Path string `json:"path"`
}

// handleSavePoints writes the captured points to the save file, archiving
// them as a session when an archive is configured. The optional "path" body
// field overrides the configured save path. This is the same action as the
// in-overlay save binding, minus the on-screen notification.
func (s *Server) handleSavePoints(w http.ResponseWriter, r *http.Request) {
	var req savePointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	if err := s.overlay.SavePointsTo(req.Path); err != nil {
		writeInternalError(w, "saving points failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"saved": s.store.Len(),
	})
}

// handleClearPoints discards the captured points and their scene markers.
func (s *Server) handleClearPoints(w http.ResponseWriter, _ *http.Request) {
	cleared := s.overlay.ClearPoints()
	writeJSON(w, http.StatusOK, map[string]any{
		"cleared": cleared,
	})
}
