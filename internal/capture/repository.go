package capture

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	defaultSessionLimit = 50
	maxSessionLimit     = 200
)

// SQLiteRepository implements Repository using SQLite.
//
// Sessions live in the capture_sessions table with their points in
// capture_points, one row per point.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository creates a new SQLite capture session repository.
//
// Parameters:
//   - db: Open SQLite connection used for queries
//
// Returns:
//   - *SQLiteRepository: Repository instance ready for use
//   - error: ErrNilDB when db is nil
func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, ErrNilDB
	}
	return &SQLiteRepository{db: db, now: time.Now}, nil
}

// SaveSession archives a point set under a new session ID.
//
// The session row and all point rows are written in a single transaction
// so a failed archive leaves no partial session behind.
func (r *SQLiteRepository) SaveSession(ctx context.Context, path string, points []Point) (Session, error) {
	session := Session{
		ID:         uuid.NewString(),
		Path:       path,
		PointCount: len(points),
		CreatedAt:  r.now().UTC(),
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("beginning session transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO capture_sessions (id, path, point_count, created_at) VALUES (?, ?, ?, ?)",
		session.ID,
		session.Path,
		session.PointCount,
		session.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return Session{}, fmt.Errorf("inserting session: %w", err)
	}

	for _, p := range points {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO capture_points
			 (session_id, sequence, device, pos_x, pos_y, pos_z, euler_pitch, euler_yaw, euler_roll, captured_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID,
			p.Sequence,
			p.Device,
			p.Position.X,
			p.Position.Y,
			p.Position.Z,
			p.Orientation.Pitch,
			p.Orientation.Yaw,
			p.Orientation.Roll,
			p.CapturedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return Session{}, fmt.Errorf("inserting point %d: %w", p.Sequence, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("committing session: %w", err)
	}

	return session, nil
}

// GetSession returns a session and its points by ID.
func (r *SQLiteRepository) GetSession(ctx context.Context, id string) (Session, []Point, error) {
	if id == "" {
		return Session{}, nil, ErrSessionNotFound
	}

	var session Session
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		"SELECT id, path, point_count, created_at FROM capture_sessions WHERE id = ?",
		id,
	).Scan(&session.ID, &session.Path, &session.PointCount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, nil, ErrSessionNotFound
	}
	if err != nil {
		return Session{}, nil, fmt.Errorf("querying session: %w", err)
	}

	session.CreatedAt, err = parseSessionTimestamp(createdAt)
	if err != nil {
		return Session{}, nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT sequence, device, pos_x, pos_y, pos_z, euler_pitch, euler_yaw, euler_roll, captured_at
		 FROM capture_points
		 WHERE session_id = ?
		 ORDER BY sequence ASC`,
		id,
	)
	if err != nil {
		return Session{}, nil, fmt.Errorf("querying session points: %w", err)
	}
	defer rows.Close()

	points := make([]Point, 0, session.PointCount)
	for rows.Next() {
		var p Point
		var capturedAt string

		if err := rows.Scan(
			&p.Sequence,
			&p.Device,
			&p.Position.X,
			&p.Position.Y,
			&p.Position.Z,
			&p.Orientation.Pitch,
			&p.Orientation.Yaw,
			&p.Orientation.Roll,
			&capturedAt,
		); err != nil {
			return Session{}, nil, fmt.Errorf("scanning session point: %w", err)
		}

		p.CapturedAt, err = parseSessionTimestamp(capturedAt)
		if err != nil {
			return Session{}, nil, err
		}

		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return Session{}, nil, fmt.Errorf("iterating session points: %w", err)
	}

	return session, points, nil
}

// ListSessions returns recent sessions ordered newest first.
func (r *SQLiteRepository) ListSessions(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = defaultSessionLimit
	}
	if limit > maxSessionLimit {
		limit = maxSessionLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, path, point_count, created_at
		 FROM capture_sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]Session, 0, limit)
	for rows.Next() {
		var session Session
		var createdAt string

		if err := rows.Scan(&session.ID, &session.Path, &session.PointCount, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}

		session.CreatedAt, err = parseSessionTimestamp(createdAt)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	return sessions, nil
}

// DeleteSession removes a session and its points.
func (r *SQLiteRepository) DeleteSession(ctx context.Context, id string) error {
	if id == "" {
		return ErrSessionNotFound
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM capture_points WHERE session_id = ?", id); err != nil {
		return fmt.Errorf("deleting session points: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM capture_sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return tx.Commit()
}

// parseSessionTimestamp parses a timestamp stored in SQLite.
func parseSessionTimestamp(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("timestamp is empty")
	}

	timestamp, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp: %w", err)
	}

	return timestamp, nil
}
