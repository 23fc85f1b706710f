package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mailsift/mailsift/internal/store"
)

// Token length bounds keep the vocabulary to words worth fuzzy-matching:
// no stray letters, no base64 runs.
const (
	minTokenRunes = 3
	maxTokenRunes = 20
)

// loadVocabulary scans subject/body text from up to maxRows records and
// collects at most maxTokens normalized word tokens. Scanning stops at
// whichever bound hits first; recall is deliberately traded for bounded
// startup cost. The result is sorted so term expansion over a given
// snapshot is deterministic.
func loadVocabulary(ctx context.Context, st *store.Store, maxRows, maxTokens int) ([]string, error) {
	tokens := make(map[string]struct{})
	err := st.SampleText(ctx, maxRows, func(subject, body string) bool {
		collectTokens(subject+" "+body, tokens, maxTokens)
		return len(tokens) < maxTokens
	})
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	vocab := make([]string, 0, len(tokens))
	for token := range tokens {
		vocab = append(vocab, token)
	}
	sort.Strings(vocab)
	return vocab, nil
}

// collectTokens adds the normalized tokens of text to the set, stopping at
// maxTokens entries.
func collectTokens(text string, into map[string]struct{}, maxTokens int) {
	for _, raw := range strings.Fields(strings.ToLower(text)) {
		token := normalizeToken(raw)
		if token == "" {
			continue
		}
		into[token] = struct{}{}
		if len(into) >= maxTokens {
			return
		}
	}
}

// normalizeToken strips every non-letter rune and enforces the length
// bounds. Returns "" for tokens that do not qualify.
func normalizeToken(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) {
			sb.WriteRune(r)
		}
	}
	token := sb.String()
	if n := utf8.RuneCountInString(token); n < minTokenRunes || n > maxTokenRunes {
		return ""
	}
	return token
}
