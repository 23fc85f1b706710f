// Package indexer drives corpus ingestion: it normalizes every raw message
// from a source and writes the record plus its full-text index entry to the
// store in batched transactions.
package indexer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mailsift/mailsift/internal/mailparse"
	"github.com/mailsift/mailsift/internal/source"
	"github.com/mailsift/mailsift/internal/store"
)

// DefaultBatchSize is the number of inserted rows per commit.
const DefaultBatchSize = 1000

// Options configures a BuildIndex run.
type Options struct {
	// BatchSize is the commit interval in rows. Defaults to
	// DefaultBatchSize when <= 0.
	BatchSize int

	// MaxRows stops ingestion after this many successful inserts. 0 means
	// no cap. Stopping early is a normal termination, used for partial and
	// test runs.
	MaxRows int

	// Logger is optional; defaults to slog.Default().
	Logger *slog.Logger
}

// Summary reports what a BuildIndex run did.
type Summary struct {
	// Imported counts rows normalized and inserted.
	Imported int

	// SkippedOversize counts rows dropped because the raw message exceeded
	// the source's size ceiling. These rows are never parsed.
	SkippedOversize int

	Duration time.Duration
}

// BuildIndex consumes src to exhaustion (or opts.MaxRows), normalizing each
// row and inserting it into st. Oversized rows are counted and skipped;
// everything else the normalizer degrades gracefully, so only store and
// source I/O errors abort the run. Work committed before an abort stays
// committed.
func BuildIndex(ctx context.Context, st *store.Store, src source.Source, opts Options) (*Summary, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	start := time.Now()
	summary := &Summary{}

	batch, err := st.BeginBatch()
	if err != nil {
		return summary, err
	}
	// batch is reassigned at every commit boundary; the closure makes the
	// rollback cover whichever transaction is open when we unwind.
	defer func() { batch.Rollback() }()

	pending := 0
	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		row, err := src.Next()
		if err == io.EOF {
			break
		}
		if errors.Is(err, source.ErrRowTooLarge) {
			summary.SkippedOversize++
			log.Debug("skipping oversized row", "error", err)
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("read source: %w", err)
		}

		msg := mailparse.Parse(row.RawMessage)
		if _, err := batch.InsertEmail(&store.Email{
			SourcePath: row.Path,
			MessageID:  nullable(msg.MessageID),
			SentAt:     nullable(msg.SentAt),
			Sender:     nullable(msg.Sender),
			Recipients: nullable(msg.Recipients),
			Subject:    nullable(msg.Subject),
			Body:       msg.Body,
		}); err != nil {
			return summary, err
		}
		summary.Imported++
		pending++

		if pending >= opts.BatchSize {
			if err := batch.Commit(); err != nil {
				return summary, fmt.Errorf("commit batch: %w", err)
			}
			log.Info("imported rows", "count", summary.Imported)
			pending = 0
			if batch, err = st.BeginBatch(); err != nil {
				return summary, err
			}
		}

		if opts.MaxRows > 0 && summary.Imported >= opts.MaxRows {
			break
		}
	}

	if err := batch.Commit(); err != nil {
		return summary, fmt.Errorf("commit final batch: %w", err)
	}

	summary.Duration = time.Since(start)
	log.Info("import complete",
		"imported", summary.Imported,
		"skipped_oversize", summary.SkippedOversize,
		"duration", summary.Duration.Round(time.Millisecond),
	)
	return summary, nil
}

// nullable converts an optional header value to its SQL representation:
// nil maps to NULL, present-but-empty stays an empty string.
func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
