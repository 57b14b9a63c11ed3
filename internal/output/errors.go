// Package output writes ranked results to structured files, the console and the file system.
package output

import "fmt"

// OutputError represents a failure to write a ranked result to its destination
//
//nolint:revive // output.OutputError reads better at call sites than output.Error
type OutputError struct {
	Message string
	Cause   error
}

func (e *OutputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("output error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("output error: %s", e.Message)
}

func (e *OutputError) Unwrap() error {
	return e.Cause
}
