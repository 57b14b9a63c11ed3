package keywords

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jonathan/resume-ranker/internal/types"
)

// MultiplierMarker separates a term from its multiplier, e.g. "Kubernetes *3".
const MultiplierMarker = " *"

// Parse converts keyword source lines into keyword entries.
// Blank lines are skipped. A line containing MultiplierMarker is split on its first
// occurrence; the right-hand side must be an integer of at least 1.
func Parse(lines []string) ([]types.KeywordEntry, error) {
	entries := make([]types.KeywordEntry, 0, len(lines))
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		entry, err := parseLine(line)
		if err != nil {
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				parseErr.Line = i + 1
			}
			return nil, err
		}
		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, &EmptyKeywordListError{}
	}

	return entries, nil
}

func parseLine(line string) (types.KeywordEntry, error) {
	term, rawMultiplier, found := strings.Cut(line, MultiplierMarker)
	if !found {
		return types.KeywordEntry{Term: line, Multiplier: 1}, nil
	}

	term = strings.TrimSpace(term)
	rawMultiplier = strings.TrimSpace(rawMultiplier)

	multiplier, err := strconv.Atoi(rawMultiplier)
	if err != nil {
		return types.KeywordEntry{}, &ParseError{
			Text:    line,
			Message: fmt.Sprintf("multiplier %q is not an integer", rawMultiplier),
			Cause:   err,
		}
	}
	if multiplier < 1 {
		return types.KeywordEntry{}, &ParseError{
			Text:    line,
			Message: fmt.Sprintf("multiplier must be at least 1, got %d", multiplier),
		}
	}

	return types.KeywordEntry{Term: term, Multiplier: multiplier}, nil
}

// LoadFile reads a keyword file and parses one entry per line
func LoadFile(path string) ([]types.KeywordEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{
			Message: fmt.Sprintf("failed to read keyword file %s", path),
			Cause:   err,
		}
	}

	text := strings.TrimPrefix(string(content), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	entries, err := Parse(strings.Split(text, "\n"))
	if err != nil {
		var emptyErr *EmptyKeywordListError
		if errors.As(err, &emptyErr) {
			emptyErr.Source = path
		}
		return nil, err
	}

	return entries, nil
}
