package types

// FileScore represents the keyword score of a single extracted resume file
type FileScore struct {
	SourcePath      string  `json:"source_path"`
	DisplayName     string  `json:"display_name"`
	CoveragePercent float64 `json:"coverage_percent"`
	WeightedCount   int     `json:"weighted_count"`
}

// RankedResult represents a file score normalized against the top scorer of the run
type RankedResult struct {
	FileScore
	// Percentile is WeightedCount as a percentage of the highest WeightedCount in the run
	Percentile float64 `json:"percentile"`

	// RenamedPath is where SourcePath is moved to when renaming is enabled, empty otherwise
	RenamedPath string `json:"renamed_path,omitempty"`
}

// SkippedFile records an eligible file that was left out of the ranking
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// RankedResults represents the outcome of a single ranking run
type RankedResults struct {
	RunID        string         `json:"run_id"`
	GeneratedAt  string         `json:"generated_at"` // RFC3339 format
	KeywordCount int            `json:"keyword_count"`
	Results      []RankedResult `json:"results"`
	Skipped      []SkippedFile  `json:"skipped,omitempty"`
}
