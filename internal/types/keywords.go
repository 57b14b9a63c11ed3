// Package types provides type definitions for structured data used throughout the resume-ranker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// KeywordEntry represents a single line of the keyword source: a term and how much each
// occurrence of it is worth.
type KeywordEntry struct {
	Term       string `json:"term"`
	Multiplier int    `json:"multiplier"`
}
