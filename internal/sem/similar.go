package sem

import "sort"

// maxSuggestionDistance is the edit-distance cutoff for "did you mean"
// candidates; anything farther is noise.
const maxSuggestionDistance = 2

// FindSimilarNames returns up to max in-scope variable names within edit
// distance 2 of name, nearest first.
func (t *SymbolTable) FindSimilarNames(name string, max int) []string {
	return rankSimilar(name, t.visibleNames(), max)
}

// FindSimilarFunctions is FindSimilarNames over the function registry.
func (t *SymbolTable) FindSimilarFunctions(name string, max int) []string {
	return rankSimilar(name, t.funcNames, max)
}

func rankSimilar(name string, candidates []string, max int) []string {
	type ranked struct {
		name string
		dist int
	}

	var matches []ranked
	for _, cand := range candidates {
		if cand == name {
			continue
		}
		if d := levenshtein(name, cand); d <= maxSuggestionDistance {
			matches = append(matches, ranked{cand, d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].dist < matches[j].dist
	})

	if len(matches) > max {
		matches = matches[:max]
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

// levenshtein computes the edit distance between two strings using a
// two-row dynamic programming table.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
