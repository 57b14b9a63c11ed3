// Package watch re-runs a ranking whenever the resume directory or the keyword file changes.
package watch

import "fmt"

// Error represents a failure to set up the file system watch
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("watch error: %s %s: %v", e.Message, e.Path, e.Cause)
	}
	return fmt.Sprintf("watch error: %s %s", e.Message, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
