// Package search turns free-text user queries into fuzzy boolean full-text
// matches and assembles ranked, snippet-annotated results.
//
// A Searcher samples a bounded vocabulary from the index at construction
// and holds it as an immutable snapshot for its lifetime; concurrent
// read-only searches on one instance are safe. The snapshot is not kept
// consistent with later index growth — build a new Searcher to pick up new
// text.
package search

import (
	"context"

	"github.com/mailsift/mailsift/internal/store"
)

// Options bounds vocabulary sampling and fuzzy expansion.
type Options struct {
	// VocabRows caps how many records are scanned for vocabulary tokens.
	VocabRows int

	// VocabMaxTokens caps the vocabulary size; sampling stops early once
	// reached regardless of VocabRows.
	VocabMaxTokens int

	// Similarity is the minimum sequence-similarity ratio for a vocabulary
	// word to count as a near miss of a query term.
	Similarity float64

	// MaxExpansions caps the fuzzy alternatives per term.
	MaxExpansions int

	// Snippet configures result highlighting.
	Snippet store.SnippetOptions
}

// DefaultOptions returns the standard bounds: 20k sampled rows, 80k tokens,
// 0.7 similarity over at most 3 candidates.
func DefaultOptions() Options {
	return Options{
		VocabRows:      20000,
		VocabMaxTokens: 80000,
		Similarity:     0.7,
		MaxExpansions:  3,
		Snippet:        store.DefaultSnippetOptions(),
	}
}

// Searcher executes fuzzy boolean searches against an indexed corpus.
type Searcher struct {
	st    *store.Store
	vocab []string
	opts  Options
}

// NewSearcher builds a Searcher over st, sampling its vocabulary snapshot
// up front. Zero-valued option fields are filled from DefaultOptions.
func NewSearcher(ctx context.Context, st *store.Store, opts Options) (*Searcher, error) {
	defs := DefaultOptions()
	if opts.VocabRows <= 0 {
		opts.VocabRows = defs.VocabRows
	}
	if opts.VocabMaxTokens <= 0 {
		opts.VocabMaxTokens = defs.VocabMaxTokens
	}
	if opts.Similarity <= 0 {
		opts.Similarity = defs.Similarity
	}
	if opts.MaxExpansions <= 0 {
		opts.MaxExpansions = defs.MaxExpansions
	}
	if opts.Snippet == (store.SnippetOptions{}) {
		opts.Snippet = defs.Snippet
	}

	vocab, err := loadVocabulary(ctx, st, opts.VocabRows, opts.VocabMaxTokens)
	if err != nil {
		return nil, err
	}
	return &Searcher{st: st, vocab: vocab, opts: opts}, nil
}

// VocabularySize reports how many tokens the snapshot holds.
func (s *Searcher) VocabularySize() int {
	return len(s.vocab)
}

// Search compiles query and executes it, returning at most limit hits in
// ascending score order. Blank or operator-only queries return an empty
// list without touching the store.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]store.SearchResult, error) {
	match := s.CompileMatch(query)
	if match == "" {
		return nil, nil
	}
	return s.st.Search(ctx, match, limit, s.opts.Snippet)
}
