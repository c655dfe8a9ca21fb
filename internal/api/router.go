package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(s.echoRequestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(s.allowCORS)
	r.Use(middleware.RequestSize(maxRequestBodySize))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)

		// Device endpoints
		r.Route("/devices", func(r chi.Router) {
			r.Get("/", s.handleListDevices)
			r.Get("/stats", s.handleDeviceStats)
			r.Get("/{id}", s.handleGetDevice)
		})

		// Captured point endpoints
		r.Route("/points", func(r chi.Router) {
			r.Get("/", s.handleListPoints)
			r.Post("/", s.handleCapturePoint)
			r.Post("/save", s.handleSavePoints)
			r.Delete("/", s.handleClearPoints)
		})

		// Archived session endpoints
		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Get("/{id}", s.handleGetSession)
			r.Delete("/{id}", s.handleDeleteSession)
		})

		// Overlay control endpoints
		r.Route("/overlay", func(r chi.Router) {
			r.Get("/", s.handleGetOverlay)
			r.Post("/enabled", s.handleSetOverlayEnabled)
			r.Post("/screenshot", s.handleScreenshot)
		})

		// WebSocket pose/capture stream
		r.Get("/ws", s.handleWebSocket)
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
