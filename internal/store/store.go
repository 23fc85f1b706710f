// Package store provides SQLite-backed storage for mailsift: the email
// record table plus the FTS5 full-text index over subject and body.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"
)

//go:embed schema.sql schema_fts.sql
var schemaFS embed.FS

const defaultSQLiteParams = "?_journal_mode=WAL&_busy_timeout=5000"

// ErrSearchUnavailable is returned by Search when the full-text index cannot
// be used: either this SQLite build lacks FTS5 or the schema was never
// initialized.
var ErrSearchUnavailable = errors.New("full-text search unavailable (FTS5 missing or schema not initialized)")

// Store provides database operations for mailsift. A Store is safe for
// concurrent readers; ingestion assumes a single writer.
type Store struct {
	db            *sql.DB
	dbPath        string
	fts5Available bool
}

// isSQLiteError checks if err is a sqlite3 driver error whose message
// contains substr. errors.As handles both value and pointer forms.
func isSQLiteError(err error, substr string) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return strings.Contains(sqliteErr.Error(), substr)
	}
	var sqliteErrPtr *sqlite3.Error
	if errors.As(err, &sqliteErrPtr) && sqliteErrPtr != nil {
		return strings.Contains(sqliteErrPtr.Error(), substr)
	}
	return false
}

// Open opens or creates the database at the given path, creating parent
// directories as needed.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+defaultSQLiteParams)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database handle for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// InitSchema creates the record table and, when the build supports it, the
// FTS5 index. Idempotent. A build without FTS5 is tolerated here; Search
// will fail with ErrSearchUnavailable.
func (s *Store) InitSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("execute schema.sql: %w", err)
	}

	ftsSchema, err := schemaFS.ReadFile("schema_fts.sql")
	if err != nil {
		return fmt.Errorf("read schema_fts.sql: %w", err)
	}
	if _, err := s.db.Exec(string(ftsSchema)); err != nil {
		if isSQLiteError(err, "no such module: fts5") {
			s.fts5Available = false
		} else {
			return fmt.Errorf("init fts5 schema: %w", err)
		}
	} else {
		s.fts5Available = true
	}

	return nil
}

// FTS5Available reports whether the full-text index exists. Valid after
// InitSchema.
func (s *Store) FTS5Available() bool {
	return s.fts5Available
}

// Stats holds database statistics.
type Stats struct {
	EmailCount   int64
	DatabaseSize int64
}

// GetStats returns statistics about the database.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM emails").Scan(&stats.EmailCount); err != nil {
		if !isSQLiteError(err, "no such table") {
			return nil, fmt.Errorf("count emails: %w", err)
		}
	}
	if info, err := os.Stat(s.dbPath); err == nil {
		stats.DatabaseSize = info.Size()
	}
	return stats, nil
}
