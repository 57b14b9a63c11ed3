// Package selection provides functionality to select the resume files eligible for ranking.
package selection

import (
	"fmt"
	"strings"
)

// NoEligibleFilesError is returned when a directory holds no files that can be ranked
type NoEligibleFilesError struct {
	Dir        string
	Extensions []string
}

func (e *NoEligibleFilesError) Error() string {
	return fmt.Sprintf("the directory %s has no valid files. Valid types include: %s",
		e.Dir, strings.Join(e.Extensions, ", "))
}

// Error represents a failure while enumerating candidate files
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
