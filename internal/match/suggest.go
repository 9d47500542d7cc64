package match

import (
	"cmp"
	"slices"

	"github.com/texttheater/golang-levenshtein/levenshtein"

	"entity-extractor/internal/common"
)

// MinSuggestionScore is the lowest similarity a candidate needs to be suggested.
const MinSuggestionScore = 0.6

// Similarity returns a similarity score between 0 and 1 for two names,
// computed on their normalized forms. 1.0 means the normalized names are equal.
func Similarity(a, b string) float64 {
	na, nb := NormalizeIdent(a), NormalizeIdent(b)
	if na == nb {
		return 1.0
	}

	if na == "" || nb == "" {
		return 0
	}

	return levenshtein.RatioForStrings([]rune(na), []rune(nb), levenshtein.DefaultOptions)
}

// Candidate is a suggestion with its score.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name, comparing both the full path
// and the last path element, and returns those reaching MinSuggestionScore,
// best first. Ties are broken by name.
func Rank(name string, candidates []string) []Candidate {
	var ranked []Candidate

	for _, c := range candidates {
		score := max(Similarity(name, c), Similarity(common.PkgAlias(name), common.PkgAlias(c)))
		if score < MinSuggestionScore {
			continue
		}

		ranked = append(ranked, Candidate{Name: c, Score: score})
	}

	slices.SortFunc(ranked, func(x, y Candidate) int {
		if c := cmp.Compare(y.Score, x.Score); c != 0 {
			return c
		}

		return cmp.Compare(x.Name, y.Name)
	})

	return ranked
}

// Suggest returns at most limit candidate names closest to name.
func Suggest(name string, candidates []string, limit int) []string {
	ranked := Rank(name, slices.Compact(slices.Sorted(slices.Values(candidates))))
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, c.Name)
	}

	return out
}
