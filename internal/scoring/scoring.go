// Package scoring computes keyword coverage and weighted occurrence counts for extracted resume text.
package scoring

import (
	"strconv"
	"strings"

	"github.com/jonathan/resume-ranker/internal/keywords"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Score returns the coverage percent and weighted count of text against the keyword list.
//
// Each keyword present at least once (case-insensitive substring) adds round(100/N, 2) to the
// coverage. Every non-overlapping occurrence adds the keyword's multiplier to the weighted count.
func Score(text string, entries []types.KeywordEntry) (float64, int, error) {
	if len(entries) == 0 {
		return 0, 0, &keywords.EmptyKeywordListError{}
	}

	if text == "" {
		return 0, 0, nil
	}

	perKeyword := Round2(100.0 / float64(len(entries)))
	haystack := strings.ToLower(text)

	coverage := 0.0
	weighted := 0
	for _, entry := range entries {
		needle := strings.ToLower(entry.Term)
		if needle == "" {
			continue
		}

		occurrences := strings.Count(haystack, needle)
		if occurrences > 0 {
			coverage += perKeyword
		}
		weighted += occurrences * entry.Multiplier
	}

	return Round2(coverage), weighted, nil
}

// MatchedTerms returns the terms found at least once in text, in keyword order
func MatchedTerms(text string, entries []types.KeywordEntry) []string {
	haystack := strings.ToLower(text)
	matched := make([]string, 0)
	for _, entry := range entries {
		if entry.Term != "" && strings.Contains(haystack, strings.ToLower(entry.Term)) {
			matched = append(matched, entry.Term)
		}
	}
	return matched
}

// Round2 rounds v to two decimal places. The exact binary value of v is rounded, with exact
// halves going to the even digit, so 3.125 rounds to 3.12 and 2.675 (stored just below) to 2.67.
func Round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}
