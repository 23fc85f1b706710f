package search

import "strings"

// splitGroups tokenizes free query text into AND-groups. Whitespace
// separates terms; a bare "or" (any case) closes the current group and is
// never itself a term. A leading or repeated "or" cannot open an empty
// group, and groups left empty (query ending in "or") are dropped. An empty
// result means the query has no content.
func splitGroups(query string) [][]string {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil
	}

	groups := [][]string{nil}
	for _, token := range tokens {
		if strings.EqualFold(token, "or") {
			if len(groups[len(groups)-1]) > 0 {
				groups = append(groups, nil)
			}
			continue
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], token)
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g) > 0 {
			out = append(out, g)
		}
	}
	return out
}

// expandTerm returns the match alternatives for one query term: the exact
// lowercased term plus its close vocabulary matches. The exact term is
// always present and, when it was not already a vocabulary hit, ordered
// first.
func (s *Searcher) expandTerm(term string) []string {
	term = strings.ToLower(term)
	matches := closeMatches(term, s.vocab, s.opts.MaxExpansions, s.opts.Similarity)
	for _, m := range matches {
		if m == term {
			return matches
		}
	}
	return append([]string{term}, matches...)
}

// CompileMatch compiles free query text into the FTS5 boolean grammar.
// Every alternative carries a trailing * for prefix matching; terms within
// a group are AND-conjoined, groups are OR-disjoined, and multiple groups
// are parenthesized. Returns "" for a query with no content, which callers
// must short-circuit rather than execute.
//
// Example: "fraud energy OR bankruptcy" compiles (ignoring expansion) to
// `fraud* AND energy* OR bankruptcy*` — with fuzzy alternatives, a term
// becomes a parenthesized disjunction like `("fraud"* OR "fraudulent"*)`.
func (s *Searcher) CompileMatch(query string) string {
	groups := splitGroups(query)
	if len(groups) == 0 {
		return ""
	}

	clauses := make([]string, 0, len(groups))
	for _, group := range groups {
		terms := make([]string, 0, len(group))
		for _, term := range group {
			options := s.expandTerm(term)
			if len(options) == 1 {
				terms = append(terms, options[0]+"*")
				continue
			}
			quoted := make([]string, len(options))
			for i, opt := range options {
				quoted[i] = `"` + opt + `"*`
			}
			terms = append(terms, "("+strings.Join(quoted, " OR ")+")")
		}
		clauses = append(clauses, strings.Join(terms, " AND "))
	}

	if len(clauses) == 1 {
		return clauses[0]
	}
	for i, clause := range clauses {
		clauses[i] = "(" + clause + ")"
	}
	return strings.Join(clauses, " OR ")
}
