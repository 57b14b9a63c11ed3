// Package ranking orders scored resume files and normalizes their scores against the top scorer.
package ranking

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/types"
)

// nameSeparator ends the "{percentile}% [{count}]" prefix of a ranked file name.
const nameSeparator = "] - "

// Rank sorts scores by weighted count (descending, ties keep their input order) and computes
// each file's percentile relative to the highest weighted count.
// When the highest weighted count is 0 every percentile is 0.
func Rank(scores []types.FileScore) []types.RankedResult {
	if len(scores) == 0 {
		return []types.RankedResult{}
	}

	sorted := make([]types.FileScore, len(scores))
	copy(sorted, scores)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeightedCount > sorted[j].WeightedCount
	})

	top := sorted[0].WeightedCount
	results := make([]types.RankedResult, 0, len(sorted))
	for _, score := range sorted {
		percentile := 0.0
		if top > 0 {
			percentile = scoring.Round2(float64(score.WeightedCount) / float64(top) * 100)
		}

		score.DisplayName = DisplayName(percentile, score.WeightedCount, OriginalName(filepath.Base(score.SourcePath)))
		results = append(results, types.RankedResult{
			FileScore:  score,
			Percentile: percentile,
		})
	}

	return results
}

// DisplayName builds the ranked file name, e.g. "83.33% [5] - jane_doe.pdf".
func DisplayName(percentile float64, count int, original string) string {
	return fmt.Sprintf("%s%% [%d%s%s", FormatPercentile(percentile), count, nameSeparator, original)
}

// OriginalName strips a previous ranking prefix from a file name so that re-ranking
// renamed files does not stack prefixes.
func OriginalName(filename string) string {
	if _, original, found := strings.Cut(filename, nameSeparator); found {
		return original
	}
	return filename
}

// FormatPercentile renders p in its shortest form with at least one fractional digit
// ("100.0", "83.33", "0.0").
func FormatPercentile(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
