// Package match fuzzy-matches raw country strings from uploaded tables
// against the canonical names of the reference catalog. Matching is a
// precision-over-recall choice: a wrong automatic merge of two
// countries is worse than asking a human.
package match

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"github.com/xrash/smetrics"

	"github.com/happidata/whr/pkg/catalog"
)

// DefaultThreshold is the minimal similarity score for an automatic
// match, on the 0..100 scale.
const DefaultThreshold = 90

// DefaultSuggestions is how many candidates are offered to a human
// reviewer for an unmatched raw string.
const DefaultSuggestions = 3

// Suggestion is one candidate canonical name with its score.
type Suggestion struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Unmatched is a raw country string without a confident match, together
// with the top candidates for human review. The candidates are never
// used for automatic decisions.
type Unmatched struct {
	Raw         string       `json:"raw"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Result is the outcome of a matching run: confident automatic matches
// and the residue that needs human review.
type Result struct {
	Mapping   map[string]string
	Unmatched []Unmatched
}

// Matcher scores raw strings against the catalog's canonical names.
type Matcher struct {
	names       []string
	threshold   int
	suggestions int
}

// New creates a matcher over the catalog. Threshold and suggestions
// fall back to the defaults when not positive.
func New(cat *catalog.Catalog, threshold, suggestions int) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if suggestions <= 0 {
		suggestions = DefaultSuggestions
	}
	return &Matcher{
		names:       cat.Names(),
		threshold:   threshold,
		suggestions: suggestions,
	}
}

// Normalize strips footnote markers and surrounding whitespace from a
// raw country string before scoring.
func Normalize(raw string) string {
	return strings.TrimSpace(strings.ReplaceAll(raw, "*", ""))
}

// similarity combines token-based and prefix-weighted similarity on the
// 0..100 scale. WRatio alone underrates short names that differ by a
// vowel shift (Turkey vs Turkiye scores 77 with it); Jaro-Winkler
// rewards the shared prefix and puts such renames above the threshold.
func similarity(raw, name string) int {
	res := fuzzy.WRatio(raw, name)
	jw := int(smetrics.JaroWinkler(
		strings.ToLower(raw), strings.ToLower(name), 0.7, 4,
	)*100 + 0.5)
	if jw > res {
		res = jw
	}
	return res
}

// Best returns the highest scoring canonical name for a raw string.
// Ties keep the earlier catalog entry.
func (m *Matcher) Best(raw string) (string, int) {
	cleaned := Normalize(raw)
	var best string
	bestScore := -1
	for _, name := range m.names {
		score := similarity(cleaned, name)
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	return best, bestScore
}

// Top returns the k best candidates for a raw string, highest score
// first.
func (m *Matcher) Top(raw string, k int) []Suggestion {
	cleaned := Normalize(raw)
	scored := make([]Suggestion, 0, len(m.names))
	for _, name := range m.names {
		scored = append(scored, Suggestion{
			Name:  name,
			Score: similarity(cleaned, name),
		})
	}
	// stable selection keeps catalog order among equal scores
	res := make([]Suggestion, 0, k)
	used := make(map[int]bool, k)
	for len(res) < k && len(res) < len(scored) {
		bestIdx := -1
		for i, s := range scored {
			if used[i] {
				continue
			}
			if bestIdx < 0 || s.Score > scored[bestIdx].Score {
				bestIdx = i
			}
		}
		used[bestIdx] = true
		res = append(res, scored[bestIdx])
	}
	return res
}

// Run matches a deduplicated list of raw country strings. Raw strings
// scoring at or above the threshold map to their best candidate;
// everything else lands in the unmatched residue with suggestions
// attached.
func (m *Matcher) Run(raws []string) Result {
	res := Result{Mapping: make(map[string]string, len(raws))}
	for _, raw := range raws {
		best, score := m.Best(raw)
		if score >= m.threshold {
			res.Mapping[raw] = best
			continue
		}
		res.Unmatched = append(res.Unmatched, Unmatched{
			Raw:         raw,
			Suggestions: m.Top(raw, m.suggestions),
		})
	}
	return res
}
