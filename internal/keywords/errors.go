// Package keywords provides functionality to load and parse weighted keyword lists.
package keywords

import "fmt"

// EmptyKeywordListError is returned when a keyword source has no usable entries
type EmptyKeywordListError struct {
	Source string
}

func (e *EmptyKeywordListError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("no keywords found for ranking in %s", e.Source)
	}
	return "no keywords found for ranking"
}

// ParseError represents a keyword line whose multiplier cannot be used
type ParseError struct {
	Line    int
	Text    string
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("keyword parse error on line %d (%q): %s: %v", e.Line, e.Text, e.Message, e.Cause)
	}
	return fmt.Sprintf("keyword parse error on line %d (%q): %s", e.Line, e.Text, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// LoadError represents an error reading the keyword file
type LoadError struct {
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("load error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("load error: %s", e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
