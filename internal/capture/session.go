package capture

import (
	"context"
	"time"
)

// Session describes one archived set of captured points.
//
// A session is created each time the store is saved to disk. The archive
// keeps the full point set so captures remain inspectable after the save
// file has been overwritten by a later run.
type Session struct {
	// ID is the unique session identifier (UUID).
	ID string `json:"id"`

	// Path is the file the session was saved to.
	Path string `json:"path"`

	// PointCount is the number of points in the session.
	PointCount int `json:"point_count"`

	// CreatedAt is the archive timestamp (UTC).
	CreatedAt time.Time `json:"created_at"`
}

// Repository archives saved capture sessions.
//
// Implementations must be thread-safe and use UTC timestamps.
type Repository interface {
	// SaveSession archives a point set under a new session ID.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - path: File path the points were saved to
	//   - points: Captured points in sequence order
	//
	// Returns:
	//   - Session: The archived session metadata
	//   - error: nil on success, otherwise the underlying persistence error
	SaveSession(ctx context.Context, path string, points []Point) (Session, error)

	// GetSession returns a session and its points by ID.
	//
	// Returns ErrSessionNotFound when the ID does not exist.
	GetSession(ctx context.Context, id string) (Session, []Point, error)

	// ListSessions returns recent sessions ordered newest first.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - limit: Maximum sessions to return (implementation may clamp bounds)
	ListSessions(ctx context.Context, limit int) ([]Session, error)

	// DeleteSession removes a session and its points.
	//
	// Returns ErrSessionNotFound when the ID does not exist.
	DeleteSession(ctx context.Context, id string) error
}
