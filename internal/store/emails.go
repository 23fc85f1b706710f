package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Email is one normalized message row. Nullable columns mirror headers that
// may be absent from the raw message.
type Email struct {
	ID         int64
	SourcePath string
	MessageID  sql.NullString
	SentAt     sql.NullString
	Sender     sql.NullString
	Recipients sql.NullString
	Subject    sql.NullString
	Body       string
}

// Batch groups inserts into one transaction so the indexer controls commit
// granularity. Insert both halves of a record through the same Batch: the
// record row and its index entry share an id and must land together.
type Batch struct {
	tx  *sql.Tx
	fts bool
}

// BeginBatch starts a new insert transaction.
func (s *Store) BeginBatch() (*Batch, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin batch: %w", err)
	}
	return &Batch{tx: tx, fts: s.fts5Available}, nil
}

// InsertEmail inserts the record and its full-text index entry, returning
// the assigned id.
func (b *Batch) InsertEmail(e *Email) (int64, error) {
	res, err := b.tx.Exec(`
		INSERT INTO emails (source_path, message_id, sent_at, sender, recipients, subject, body)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.SourcePath, e.MessageID, e.SentAt, e.Sender, e.Recipients, e.Subject, e.Body)
	if err != nil {
		return 0, fmt.Errorf("insert email: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	if b.fts {
		if _, err := b.tx.Exec(`
			INSERT INTO email_fts (rowid, subject, body) VALUES (?, ?, ?)
		`, id, e.Subject, e.Body); err != nil {
			return 0, fmt.Errorf("insert fts entry: %w", err)
		}
	}

	return id, nil
}

// Commit commits the batch.
func (b *Batch) Commit() error {
	return b.tx.Commit()
}

// Rollback abandons the batch. Safe to call after Commit (no-op error is
// swallowed).
func (b *Batch) Rollback() {
	_ = b.tx.Rollback()
}

// SampleText streams (subject, body) pairs from up to maxRows records, in
// natural id order, to fn. fn returns false to stop early.
func (s *Store) SampleText(ctx context.Context, maxRows int, fn func(subject, body string) bool) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT COALESCE(subject, ''), body FROM emails LIMIT ?", maxRows)
	if err != nil {
		return fmt.Errorf("sample text: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var subject, body string
		if err := rows.Scan(&subject, &body); err != nil {
			return fmt.Errorf("scan sample row: %w", err)
		}
		if !fn(subject, body) {
			return nil
		}
	}
	return rows.Err()
}

// SnippetOptions configures FTS5 snippet extraction.
type SnippetOptions struct {
	StartMark string // inserted before each matched token run
	EndMark   string // inserted after each matched token run
	Ellipsis  string // joins discontiguous snippet regions
	MaxTokens int    // context window width in tokens (FTS5 caps this at 64)
}

// DefaultSnippetOptions returns the display defaults: bracketed matches in a
// ten-token window.
func DefaultSnippetOptions() SnippetOptions {
	return SnippetOptions{StartMark: "[", EndMark: "]", Ellipsis: " ... ", MaxTokens: 10}
}

// SearchResult is one ranked hit. Score follows the bm25 convention: lower
// is more relevant.
type SearchResult struct {
	ID         int64   `json:"id"`
	Subject    string  `json:"subject"`
	Sender     string  `json:"sender"`
	SentAt     string  `json:"sent_at"`
	SourcePath string  `json:"source_path"`
	Body       string  `json:"body"`
	Snippet    string  `json:"snippet"`
	Score      float64 `json:"score"`
}

// Search executes a compiled FTS5 MATCH expression and returns up to limit
// hits in ascending score order, each with a highlighted snippet. Fails
// with ErrSearchUnavailable when the full-text index does not exist.
func (s *Store) Search(ctx context.Context, match string, limit int, opts SnippetOptions) ([]SearchResult, error) {
	if !s.fts5Available {
		return nil, ErrSearchUnavailable
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, COALESCE(e.subject, ''), COALESCE(e.sender, ''),
		       COALESCE(e.sent_at, ''), e.source_path, e.body,
		       snippet(email_fts, -1, ?, ?, ?, ?) AS snippet,
		       bm25(email_fts) AS score
		FROM email_fts
		JOIN emails e ON e.id = email_fts.rowid
		WHERE email_fts MATCH ?
		ORDER BY score
		LIMIT ?
	`, opts.StartMark, opts.EndMark, opts.Ellipsis, opts.MaxTokens, match, limit)
	if err != nil {
		if isSQLiteError(err, "no such table: email_fts") {
			return nil, ErrSearchUnavailable
		}
		return nil, fmt.Errorf("search %q: %w", match, err)
	}
	defer rows.Close()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Subject, &r.Sender, &r.SentAt,
			&r.SourcePath, &r.Body, &r.Snippet, &r.Score); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}
