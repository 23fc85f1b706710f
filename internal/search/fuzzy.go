package search

import (
	"sort"

	"github.com/pmezard/go-difflib/difflib"
)

// closeMatches returns up to n candidates whose sequence-similarity ratio
// against word is at least cutoff, best match first. The ratio is
// 2*matching/(len(a)+len(b)) over runes; ties keep candidate order, so a
// sorted candidate slice gives fully deterministic output.
func closeMatches(word string, candidates []string, n int, cutoff float64) []string {
	if n <= 0 || len(candidates) == 0 {
		return nil
	}

	type scored struct {
		word  string
		ratio float64
	}

	// Seq2 is fixed so the matcher reuses its index of word across all
	// candidates; the two quick ratios are cheap upper bounds that skip
	// the full alignment for most of the vocabulary.
	m := difflib.NewMatcher(nil, nil)
	m.SetSeq2(splitRunes(word))

	var hits []scored
	for _, cand := range candidates {
		m.SetSeq1(splitRunes(cand))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if ratio := m.Ratio(); ratio >= cutoff {
			hits = append(hits, scored{cand, ratio})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].ratio > hits[j].ratio
	})
	if len(hits) > n {
		hits = hits[:n]
	}

	result := make([]string, len(hits))
	for i, h := range hits {
		result[i] = h.word
	}
	return result
}

// splitRunes explodes a string into per-rune elements for the sequence
// matcher, which compares slices element-wise.
func splitRunes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
