package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/schemas"
	"github.com/jonathan/resume-ranker/internal/types"
)

// CSVHeader is the header row of the csv output type
var CSVHeader = []string{"Percentile", "Total Count", "File Name"}

// Report describes what Render wrote
type Report struct {
	File      string // Structured output file, empty when none was requested
	Printed   int    // Display names written to the console
	Renamed   int    // Files renamed to their display name
	Unchanged int    // Files that already carried their display name
}

// Render writes the ranked results to the structured file, then the console, then renames
// the ranked files. Any failure is returned as *OutputError and stops the remaining steps.
// With renaming enabled each result's RenamedPath is set before anything is written, so a
// JSON report points at the files as they are after the run.
func Render(results *types.RankedResults, opts Options, console io.Writer) (*Report, error) {
	if results == nil {
		return nil, &OutputError{Message: "no ranked results to render"}
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	report := &Report{}

	if opts.Rename {
		for i := range results.Results {
			results.Results[i].RenamedPath = RenameTarget(results.Results[i])
		}
	}

	if opts.Structured() {
		if err := WriteFile(results, opts.Type, opts.File); err != nil {
			return report, err
		}
		report.File = opts.File
	}

	if opts.Console && console != nil {
		for _, r := range results.Results {
			if _, err := fmt.Fprintln(console, r.DisplayName); err != nil {
				return report, &OutputError{Message: "failed to write to console", Cause: err}
			}
			report.Printed++
		}
	}

	if opts.Rename {
		renamed, unchanged, err := RenameAll(results.Results)
		report.Renamed = renamed
		report.Unchanged = unchanged
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

// WriteFile writes the ranked results to path in the given structured format
func WriteFile(results *types.RankedResults, outputType, path string) error {
	var (
		data []byte
		err  error
	)

	switch outputType {
	case TypeCSV:
		data, err = encodeCSV(results.Results)
	case TypeTXT:
		data = encodeTXT(results.Results)
	case TypeJSON:
		data, err = encodeJSON(results)
	default:
		return &OutputError{Message: fmt.Sprintf("unsupported output type %q", outputType)}
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &OutputError{Message: fmt.Sprintf("failed to write %s output to %s", outputType, path), Cause: err}
	}
	return nil
}

func encodeCSV(results []types.RankedResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(CSVHeader); err != nil {
		return nil, &OutputError{Message: "failed to encode csv header", Cause: err}
	}
	for _, r := range results {
		row := []string{
			ranking.FormatPercentile(r.Percentile),
			strconv.Itoa(r.WeightedCount),
			r.DisplayName,
		}
		if err := w.Write(row); err != nil {
			return nil, &OutputError{Message: "failed to encode csv row", Cause: err}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &OutputError{Message: "failed to encode csv", Cause: err}
	}
	return buf.Bytes(), nil
}

func encodeTXT(results []types.RankedResult) []byte {
	var buf bytes.Buffer
	for _, r := range results {
		buf.WriteString(r.DisplayName)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

func encodeJSON(results *types.RankedResults) ([]byte, error) {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return nil, &OutputError{Message: "failed to marshal ranked results", Cause: err}
	}
	if err := schemas.ValidateRankedResults(data); err != nil {
		return nil, &OutputError{Message: "ranked results failed schema validation", Cause: err}
	}
	return append(data, '\n'), nil
}

// RenameAll renames every ranked file to its display name in its own directory.
// Files already carrying their display name are left alone. The first failure aborts
// the remaining renames; files renamed before it keep their new names.
func RenameAll(results []types.RankedResult) (renamed, unchanged int, err error) {
	for _, r := range results {
		target := RenameTarget(r)
		if target == r.SourcePath {
			unchanged++
			continue
		}

		if err := renameFile(r.SourcePath, target); err != nil {
			return renamed, unchanged, err
		}
		renamed++
	}
	return renamed, unchanged, nil
}

// RenameTarget returns the path a ranked file is renamed to: its display name in its own directory
func RenameTarget(r types.RankedResult) string {
	return filepath.Join(filepath.Dir(r.SourcePath), r.DisplayName)
}

func renameFile(source, target string) error {
	if targetInfo, err := os.Stat(target); err == nil {
		// Case-insensitive file systems report the source itself as the target
		sourceInfo, serr := os.Stat(source)
		if serr != nil || !os.SameFile(sourceInfo, targetInfo) {
			return &OutputError{Message: fmt.Sprintf("cannot rename %s: %s already exists", source, target)}
		}
	} else if !os.IsNotExist(err) {
		return &OutputError{Message: fmt.Sprintf("cannot rename %s", source), Cause: err}
	}

	if err := os.Rename(source, target); err != nil {
		return &OutputError{Message: fmt.Sprintf("failed to rename %s to %s", source, target), Cause: err}
	}
	return nil
}
