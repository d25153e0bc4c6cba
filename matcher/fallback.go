package matcher

import (
	"fmt"
	"sort"
	"strings"
)

// fallbackRank is the deterministic path used whenever the LLM is down or
// returns garbage. Same query and pool always produce the same output:
// keyword matches ranked by hit count in pool order, or the head of the
// pool when nothing matches.
func fallbackRank(query string, pool []Candidate) []Result {
	matched := filterByKeyword(query, pool)
	if len(matched) == 0 {
		matched = pool
	}
	if len(matched) > maxResults {
		matched = matched[:maxResults]
	}

	results := make([]Result, 0, len(matched))
	for _, c := range matched {
		results = append(results, Result{
			ID:              c.ID,
			Name:            c.Name,
			Title:           c.Title,
			University:      c.University,
			ResearchArea:    c.ResearchArea,
			Justification:   fmt.Sprintf("Profile fields contain terms related to \"%s\".", query),
			SimilarityScore: fallbackScore,
		})
	}
	return results
}

// filterByKeyword keeps candidates whose concatenated searchable fields
// contain the query or any of its terms, case-insensitively. A candidate
// mentioning only "healthcare" still matches the query "machine learning
// for healthcare". Whole-query matches outrank term matches; equal hit
// counts keep pool order.
func filterByKeyword(query string, pool []Candidate) []Candidate {
	needle := strings.ToLower(strings.TrimSpace(query))
	terms := queryTerms(needle)

	type scored struct {
		c    Candidate
		hits int
	}
	var matched []scored
	for _, c := range pool {
		hay := haystack(c)
		hits := 0
		if strings.Contains(hay, needle) {
			hits = len(terms) + 1
		} else {
			for _, term := range terms {
				if strings.Contains(hay, term) {
					hits++
				}
			}
		}
		if hits > 0 {
			matched = append(matched, scored{c: c, hits: hits})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool { return matched[i].hits > matched[j].hits })

	out := make([]Candidate, 0, len(matched))
	for _, m := range matched {
		out = append(out, m.c)
	}
	return out
}

// connectives are dropped when a query is split into terms; matching on
// "for" would hit unrelated profiles ("Stanford").
var connectives = map[string]bool{
	"and": true, "are": true, "for": true, "from": true, "into": true,
	"that": true, "the": true, "this": true, "with": true,
}

func queryTerms(needle string) []string {
	var terms []string
	for _, raw := range strings.Fields(needle) {
		term := strings.Trim(raw, `.,;:!?"'()`)
		if len(term) < 3 || connectives[term] {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

func haystack(c Candidate) string {
	parts := []string{c.Name, c.ResearchArea, c.University, c.Title, c.Bio}
	parts = append(parts, c.Keywords...)
	return strings.ToLower(strings.Join(parts, " "))
}
