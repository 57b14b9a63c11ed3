// Package observability provides formatted output utilities for the CLI summary mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/resume-ranker/internal/output"
	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for summary mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, ending in "..." when cut
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintKeywords outputs the loaded keyword list with multipliers.
func (p *Printer) PrintKeywords(entries []types.KeywordEntry) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Keywords: %d\n\n", len(entries)))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := entries[i]
		sb.WriteString(fmt.Sprintf("  • %s", e.Term))
		if e.Multiplier > 1 {
			sb.WriteString(fmt.Sprintf(" (x%d)", e.Multiplier))
		}
		sb.WriteString("\n")
	}
	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(entries)-maxItemsToShow))
	}

	p.printBox("KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedResults outputs the top N ranked files with percentile and counts.
func (p *Printer) PrintRankedResults(results *types.RankedResults) {
	if results == nil || len(results.Results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total files ranked: %d\n\n", len(results.Results)))

	count := min(len(results.Results), maxItemsToShow)
	for i := 0; i < count; i++ {
		r := results.Results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, ranking.OriginalName(r.DisplayName)))
		sb.WriteString(fmt.Sprintf("    Percentile: %s%%  Count: %d  Coverage: %.2f%%\n",
			ranking.FormatPercentile(r.Percentile), r.WeightedCount, r.CoveragePercent))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(results.Results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more files", len(results.Results)-maxItemsToShow))
	}

	p.printBox("TOP RANKED RESUMES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkipped outputs the files left out of the ranking and why.
func (p *Printer) PrintSkipped(skipped []types.SkippedFile) {
	if len(skipped) == 0 {
		return
	}

	var sb strings.Builder
	for _, s := range skipped {
		sb.WriteString(fmt.Sprintf("• %s\n", lastPathElement(s.Path)))
		sb.WriteString(fmt.Sprintf("  %s\n", s.Reason))
	}

	p.printBox(fmt.Sprintf("SKIPPED FILES (%d)", len(skipped)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRunSummary outputs the totals of a completed run. report may be nil when nothing was rendered.
func (p *Printer) PrintRunSummary(results *types.RankedResults, report *output.Report, elapsed time.Duration) {
	if results == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run ID:   %s\n", results.RunID))
	sb.WriteString(fmt.Sprintf("Keywords: %d\n", results.KeywordCount))
	sb.WriteString(fmt.Sprintf("Ranked:   %d\n", len(results.Results)))
	sb.WriteString(fmt.Sprintf("Skipped:  %d\n", len(results.Skipped)))
	if report != nil {
		sb.WriteString(fmt.Sprintf("Renamed:  %d", report.Renamed))
		if report.Unchanged > 0 {
			sb.WriteString(fmt.Sprintf(" (%d already named)", report.Unchanged))
		}
		sb.WriteString("\n")
		if report.File != "" {
			sb.WriteString(fmt.Sprintf("Output:   %s\n", report.File))
		}
	} else {
		sb.WriteString("Nothing to rank\n")
	}
	sb.WriteString(fmt.Sprintf("Elapsed:  %s", elapsed.Round(time.Millisecond)))

	p.printBox("RUN SUMMARY", sb.String())
}

func lastPathElement(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
