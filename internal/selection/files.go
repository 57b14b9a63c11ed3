package selection

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LockFilePrefix marks office editor lock files, e.g. "~$resume.docx".
const LockFilePrefix = "~$"

// Collect returns the eligible files directly inside dir, in lexical order.
//
// A file is eligible when it is a regular file (symlinks are followed), supported reports true
// for its path, its name does not start with LockFilePrefix and it is none of the excluded files.
// Excluded files are the run's own inputs and outputs (the keyword file, the structured output
// file) and are compared by identity, so any spelling of their path works. Excluded paths that do
// not exist yet are ignored. extensions is only used to describe the supported set when nothing
// is eligible.
func Collect(dir string, excluded []string, supported func(path string) bool, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &Error{
			Message: fmt.Sprintf("failed to list directory %s", dir),
			Cause:   err,
		}
	}

	excludedInfos := make([]os.FileInfo, 0, len(excluded))
	for _, path := range excluded {
		if path == "" {
			continue
		}
		// A missing keyword file is reported by setup validation, and an output file may not exist yet
		if info, err := os.Stat(path); err == nil {
			excludedInfos = append(excludedInfos, info)
		}
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, LockFilePrefix) {
			continue
		}

		path := filepath.Join(dir, name)
		if !supported(path) {
			continue
		}

		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		if isExcluded(info, excludedInfos) {
			continue
		}

		files = append(files, path)
	}

	if len(files) == 0 {
		return nil, &NoEligibleFilesError{Dir: dir, Extensions: extensions}
	}

	return files, nil
}

func isExcluded(info os.FileInfo, excluded []os.FileInfo) bool {
	for _, ex := range excluded {
		if os.SameFile(info, ex) {
			return true
		}
	}
	return false
}
