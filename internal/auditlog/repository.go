// Package auditlog provides persistent local audit records of CLI and agent
// operations.
//
// Storage is backed by a SQLite database at ~/.config/opsagent/opsagent.db
// (or the platform-equivalent path returned by os.UserConfigDir). Argument
// values that look like secrets are redacted before storage; see SanitizeArgs.
package auditlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	appDir = "opsagent"
	dbFile = "opsagent.db"
)

// pathOverride, when non-empty, replaces the default database path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the database path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override. Intended for testing.
func ResetPath() { pathOverride = "" }

// Repository defines the persistence interface for operation records.
type Repository interface {
	// Save inserts an operation record, assigning its ID.
	Save(record *OperationRecord) error

	// ListRecent returns the most recent n records, newest first.
	ListRecent(n int) ([]OperationRecord, error)

	// DeleteOlderThan removes records older than d and returns how many
	// were removed.
	DeleteOlderThan(d time.Duration) (int64, error)

	// Close releases database resources.
	Close() error
}

// SQLiteRepository implements Repository backed by a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

// DefaultPath returns the default database path.
func DefaultPath() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("audit: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, dbFile), nil
}

// Open creates or opens the audit repository at the default path.
func Open() (*SQLiteRepository, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return OpenAt(path)
}

// OpenAt creates or opens a SQLite database at the given path.
// The parent directory is created if it does not exist.
func OpenAt(path string) (*SQLiteRepository, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("audit: failed to create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("audit: failed to open database: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS operations (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			command    TEXT    NOT NULL,
			args       TEXT    NOT NULL DEFAULT '',
			provider   TEXT    NOT NULL DEFAULT '',
			outcome    TEXT    NOT NULL DEFAULT 'ok',
			error_kind TEXT    NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_operations_created_at ON operations(created_at);`

	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("audit: migration failed: %w", err)
	}
	return nil
}

// Save inserts the record and assigns its ID.
func (r *SQLiteRepository) Save(record *OperationRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.Outcome == "" {
		record.Outcome = OutcomeOK
	}

	res, err := r.db.Exec(
		`INSERT INTO operations (command, args, provider, outcome, error_kind, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.Command,
		strings.Join(record.Args, "\x1f"),
		record.Provider,
		record.Outcome,
		record.ErrorKind,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("audit: failed to save record: %w", err)
	}

	record.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("audit: failed to read inserted ID: %w", err)
	}
	return nil
}

// ListRecent returns the most recent n records, newest first.
func (r *SQLiteRepository) ListRecent(n int) ([]OperationRecord, error) {
	rows, err := r.db.Query(
		`SELECT id, command, args, provider, outcome, error_kind, created_at
		 FROM operations ORDER BY created_at DESC, id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("audit: failed to list records: %w", err)
	}
	defer rows.Close()

	var records []OperationRecord
	for rows.Next() {
		var rec OperationRecord
		var args string
		if err := rows.Scan(&rec.ID, &rec.Command, &args, &rec.Provider, &rec.Outcome, &rec.ErrorKind, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("audit: failed to scan record: %w", err)
		}
		if args != "" {
			rec.Args = strings.Split(args, "\x1f")
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DeleteOlderThan removes records older than d.
func (r *SQLiteRepository) DeleteOlderThan(d time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-d)
	res, err := r.db.Exec(`DELETE FROM operations WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("audit: failed to prune records: %w", err)
	}
	return res.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
