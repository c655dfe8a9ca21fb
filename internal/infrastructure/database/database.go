package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// pingTimeout bounds the connectivity check done during Open.
const pingTimeout = 5 * time.Second

// Config selects the SQLite file and its pragmas. It maps to the database
// section of config.yaml.
type Config struct {
	// Path is the SQLite database file. Its directory is created on open.
	Path string

	// WALMode enables write-ahead logging, letting the API read sessions
	// while the save path writes them.
	WALMode bool

	// BusyTimeout is how long a locked database is retried, in seconds.
	BusyTimeout int
}

// dsn renders the go-sqlite3 connection string for the configured pragmas.
func (c Config) dsn() string {
	q := url.Values{}
	q.Set("_busy_timeout", strconv.Itoa(c.BusyTimeout*1000))
	q.Set("_foreign_keys", "on")
	if c.WALMode {
		q.Set("_journal_mode", "WAL")
		q.Set("_synchronous", "NORMAL")
	}
	return "file:" + c.Path + "?" + q.Encode()
}

// DB is the overlay's session-archive database handle. It embeds *sql.DB,
// so the standard query surface is available directly; Migrate and
// Rollback manage the schema on top of it.
type DB struct {
	*sql.DB
}

// Open opens (creating if necessary) the SQLite database described by cfg
// and verifies it responds. The file is made owner-only: the archive can
// hold position traces of a physical space.
func Open(cfg Config) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0750); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite3", cfg.dsn())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite allows one writer; a single pooled connection avoids lock
	// churn between the save path and the API readers.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close() //nolint:errcheck // Best-effort cleanup on the error path
		return nil, fmt.Errorf("verifying database connection: %w", err)
	}

	// First run creates the file during the ping above.
	_ = os.Chmod(cfg.Path, 0600) //nolint:errcheck

	return &DB{DB: sqlDB}, nil
}

// HealthCheck confirms the database still answers queries.
func (db *DB) HealthCheck(ctx context.Context) error {
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("database health check: %w", err)
	}
	return nil
}
