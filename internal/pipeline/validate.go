package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/output"
)

// Validate checks the run setup before any file is opened for scoring: the directory and the
// keyword file must exist, the output options must be consistent and the output file's directory
// must exist. The output type is normalized in place.
func Validate(opts *RunOptions) error {
	if opts.Dir == "" {
		return &config.ConfigurationError{Field: "dir", Message: "is required"}
	}
	info, err := os.Stat(opts.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &config.ConfigurationError{Field: "dir", Message: fmt.Sprintf("%s does not exist", opts.Dir)}
		}
		return &config.ConfigurationError{Field: "dir", Message: fmt.Sprintf("cannot access %s", opts.Dir), Cause: err}
	}
	if !info.IsDir() {
		return &config.ConfigurationError{Field: "dir", Message: fmt.Sprintf("%s is not a directory", opts.Dir)}
	}

	if opts.KeywordFile == "" {
		return &config.ConfigurationError{Field: "keyword_file", Message: "is required"}
	}
	info, err = os.Stat(opts.KeywordFile)
	if err != nil {
		if os.IsNotExist(err) {
			return &config.ConfigurationError{Field: "keyword_file", Message: fmt.Sprintf("%s does not exist", opts.KeywordFile)}
		}
		return &config.ConfigurationError{Field: "keyword_file", Message: fmt.Sprintf("cannot access %s", opts.KeywordFile), Cause: err}
	}
	if info.IsDir() {
		return &config.ConfigurationError{Field: "keyword_file", Message: fmt.Sprintf("%s is a directory", opts.KeywordFile)}
	}

	if opts.Workers < 0 {
		return &config.ConfigurationError{Field: "workers", Message: "must be non-negative"}
	}

	opts.Output.Normalize()
	if err := opts.Output.Validate(); err != nil {
		var outErr *output.OutputError
		if errors.As(err, &outErr) {
			return &config.ConfigurationError{Field: "output", Message: outErr.Message, Cause: outErr.Cause}
		}
		return &config.ConfigurationError{Field: "output", Message: "invalid output options", Cause: err}
	}

	if opts.Output.File != "" {
		outDir := filepath.Dir(opts.Output.File)
		info, err := os.Stat(outDir)
		if err != nil || !info.IsDir() {
			return &config.ConfigurationError{Field: "output_file", Message: fmt.Sprintf("directory %s does not exist", outDir)}
		}
	}

	return nil
}
