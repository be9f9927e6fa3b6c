package intent

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Scorer rates how closely a normalized query resembles a trigger, 0 to 100
type Scorer interface {
	Score(query, trigger string) int
}

// ScorerFunc adapts a function to Scorer
type ScorerFunc func(query, trigger string) int

// Score calls f
func (f ScorerFunc) Score(query, trigger string) int {
	return f(query, trigger)
}

// TokenSortSimilarity sorts the tokens of both strings and returns the
// Levenshtein distance normalized to a 0-100 similarity.
func TokenSortSimilarity(a, b string) int {
	a, b = sortedTokens(Tokens(a)), sortedTokens(Tokens(b))
	if a == "" || b == "" {
		return 0
	}
	longest := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > longest {
		longest = n
	}
	dist := levenshtein.ComputeDistance(a, b)
	return int(math.Round(100 * float64(longest-dist) / float64(longest)))
}

// WindowScorer compares the trigger with the whole query and, for multi-word
// triggers, with every run of query tokens as long as the trigger, keeping the
// best score. A window only counts when each of its tokens, paired in sorted
// order, clears FuzzyThreshold against the trigger token it stands for, so
// "my net wurth" finds "net worth" while "money to" does not find "money out".
type WindowScorer struct{}

// Score implements Scorer
func (WindowScorer) Score(query, trigger string) int {
	best := TokenSortSimilarity(query, trigger)

	qt := Tokens(query)
	tt := Tokens(trigger)
	n := len(tt)
	if n < 2 || n >= len(qt) {
		return best
	}
	sort.Strings(tt)
	for i := 0; i+n <= len(qt); i++ {
		window := qt[i : i+n]
		if !tokensAlign(window, tt) {
			continue
		}
		if s := TokenSortSimilarity(strings.Join(window, " "), trigger); s > best {
			best = s
		}
	}
	return best
}

// tokensAlign pairs the sorted window tokens with the sorted trigger tokens
func tokensAlign(window, sortedTrigger []string) bool {
	w := append([]string(nil), window...)
	sort.Strings(w)
	for i := range w {
		if TokenSortSimilarity(w[i], sortedTrigger[i]) <= FuzzyThreshold {
			return false
		}
	}
	return true
}

func sortedTokens(tokens []string) string {
	sorted := append([]string(nil), tokens...)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}
