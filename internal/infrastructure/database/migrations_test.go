package database

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

const testSessionsUp = `
	CREATE TABLE capture_sessions (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		point_count INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`

const testPointsUp = `
	CREATE TABLE capture_points (
		session_id TEXT NOT NULL REFERENCES capture_sessions(id),
		sequence INTEGER NOT NULL,
		device INTEGER NOT NULL,
		PRIMARY KEY (session_id, sequence)
	)`

// withSource swaps the package migration source for the test's duration.
func withSource(t *testing.T, fsys fs.FS) {
	t.Helper()
	prev := migrationSource
	SetSource(fsys)
	t.Cleanup(func() { migrationSource = prev })
}

func captureSchemaFS() fstest.MapFS {
	return fstest.MapFS{
		"20260301_100000_capture_sessions.up.sql":   {Data: []byte(testSessionsUp)},
		"20260301_100000_capture_sessions.down.sql": {Data: []byte("DROP TABLE capture_sessions")},
		"20260315_090000_capture_points.up.sql":     {Data: []byte(testPointsUp)},
		"20260315_090000_capture_points.down.sql":   {Data: []byte("DROP TABLE capture_points")},
	}
}

func appliedCount(t *testing.T, db *DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&n); err != nil {
		t.Fatalf("counting applied migrations: %v", err)
	}
	return n
}

func TestMigrate_AppliesAllInOrder(t *testing.T) {
	withSource(t, captureSchemaFS())
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if got := appliedCount(t, db); got != 2 {
		t.Errorf("applied migrations = %d, want 2", got)
	}

	// Both tables exist and accept the archive's shape.
	if _, err := db.Exec(
		"INSERT INTO capture_sessions (id, path, point_count, created_at) VALUES ('s1', 'points.txt', 1, '2026-03-01T12:00:00Z')",
	); err != nil {
		t.Errorf("inserting session: %v", err)
	}
	if _, err := db.Exec(
		"INSERT INTO capture_points (session_id, sequence, device) VALUES ('s1', 0, 1)",
	); err != nil {
		t.Errorf("inserting point: %v", err)
	}
}

func TestMigrate_SecondRunIsNoop(t *testing.T) {
	withSource(t, captureSchemaFS())
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("first Migrate() error = %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
	if got := appliedCount(t, db); got != 2 {
		t.Errorf("applied migrations = %d, want 2 after rerun", got)
	}
}

func TestMigrate_FailureKeepsEarlierAndResumes(t *testing.T) {
	broken := captureSchemaFS()
	broken["20260315_090000_capture_points.up.sql"] = &fstest.MapFile{
		Data: []byte("CREATE TABLE capture_points ("),
	}
	withSource(t, broken)
	db := openTestDB(t)
	ctx := context.Background()

	err := db.Migrate(ctx)
	if err == nil {
		t.Fatal("Migrate() with broken SQL = nil, want error")
	}
	if !strings.Contains(err.Error(), "20260315_090000") {
		t.Errorf("error %q does not name the failing version", err)
	}
	if got := appliedCount(t, db); got != 1 {
		t.Fatalf("applied migrations = %d, want 1 (earlier migration kept)", got)
	}

	// Fixing the source lets a rerun pick up where it stopped.
	withSource(t, captureSchemaFS())
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() after fix error = %v", err)
	}
	if got := appliedCount(t, db); got != 2 {
		t.Errorf("applied migrations = %d, want 2 after resume", got)
	}
}

func TestRollback_UndoesLatest(t *testing.T) {
	withSource(t, captureSchemaFS())
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if err := db.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}

	if got := appliedCount(t, db); got != 1 {
		t.Errorf("applied migrations = %d, want 1 after rollback", got)
	}
	if _, err := db.Exec("INSERT INTO capture_points (session_id, sequence, device) VALUES ('s1', 0, 0)"); err == nil {
		t.Error("capture_points still exists after rollback")
	}
}

func TestRollback_EmptySchemaIsNoop(t *testing.T) {
	withSource(t, captureSchemaFS())
	db := openTestDB(t)
	ctx := context.Background()

	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := db.Rollback(ctx); err != nil {
			t.Fatalf("Rollback() #%d error = %v", i+1, err)
		}
	}
	// Nothing left to roll back.
	if err := db.Rollback(ctx); err != nil {
		t.Errorf("Rollback() on empty schema = %v, want nil", err)
	}
}

func TestMigrate_NoSourceRegistered(t *testing.T) {
	withSource(t, nil)
	db := openTestDB(t)

	if err := db.Migrate(context.Background()); err != nil {
		t.Errorf("Migrate() without a source = %v, want nil", err)
	}
}

func TestLoadMigrations_RejectsOrphanDownFile(t *testing.T) {
	withSource(t, fstest.MapFS{
		"20260301_100000_capture_sessions.down.sql": {Data: []byte("DROP TABLE capture_sessions")},
	})

	if _, err := loadMigrations(); err == nil {
		t.Error("loadMigrations() with orphan down file = nil, want error")
	}
}

func TestParseMigrationName(t *testing.T) {
	tests := []struct {
		file    string
		version string
		name    string
		up      bool
		ok      bool
	}{
		{"20260301_100000_capture_schema.up.sql", "20260301_100000", "capture_schema", true, true},
		{"20260301_100000_capture_schema.down.sql", "20260301_100000", "capture_schema", false, true},
		{"20260301_100000_add_session_path.up.sql", "20260301_100000", "add_session_path", true, true},
		{"README.md", "", "", false, false},
		{"capture_schema.sql", "", "", false, false},
		{"20260301_capture.up.sql", "", "", false, false},
	}
	for _, tt := range tests {
		version, name, up, ok := parseMigrationName(tt.file)
		if version != tt.version || name != tt.name || up != tt.up || ok != tt.ok {
			t.Errorf("parseMigrationName(%q) = (%q, %q, %v, %v), want (%q, %q, %v, %v)",
				tt.file, version, name, up, ok, tt.version, tt.name, tt.up, tt.ok)
		}
	}
}
