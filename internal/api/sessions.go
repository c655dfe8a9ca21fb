package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/trackworks/poseoverlay/internal/capture"
)

// handleListSessions returns archived capture sessions, newest first. The
// optional "limit" query parameter caps the result count.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeUnavailable(w, "session archive not configured")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	sessions, err := s.sessions.ListSessions(r.Context(), limit)
	if err != nil {
		s.logger.Error("listing sessions", "error", err)
		writeInternalError(w, "listing sessions failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// handleGetSession returns one archived session with its points.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeUnavailable(w, "session archive not configured")
		return
	}

	id := chi.URLParam(r, "id")
	session, points, err := s.sessions.GetSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, capture.ErrSessionNotFound) {
			writeNotFound(w, "session not found: "+id)
			return
		}
		s.logger.Error("getting session", "session_id", id, "error", err)
		writeInternalError(w, "getting session failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session": session,
		"points":  points,
	})
}

// handleDeleteSession removes one archived session and its points.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if s.sessions == nil {
		writeUnavailable(w, "session archive not configured")
		return
	}

	id := chi.URLParam(r, "id")
	if err := s.sessions.DeleteSession(r.Context(), id); err != nil {
		if errors.Is(err, capture.ErrSessionNotFound) {
			writeNotFound(w, "session not found: "+id)
			return
		}
		s.logger.Error("deleting session", "session_id", id, "error", err)
		writeInternalError(w, "deleting session failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"deleted": id,
	})
}
