// Package extraction converts resume documents into plain text for keyword scoring.
package extraction

import "fmt"

// ExtractionError represents a failure to read text out of a single document.
// It is never fatal to a ranking run; the document is skipped.
type ExtractionError struct {
	Path   string
	Format Format
	Cause  error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error: %s document %s: %v", e.Format, e.Path, e.Cause)
	}
	return fmt.Sprintf("extraction error: %s document %s", e.Format, e.Path)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
