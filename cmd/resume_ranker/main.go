// Package main provides the entry point for the resume ranker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is reported by --version
const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:     "resume_ranker",
	Short:   "Rank resumes by keyword coverage",
	Long:    "Resume Ranker scores every resume in a directory against a weighted keyword list and ranks them by percentile, optionally renaming each file with its rank.",
	Version: version,
	// Errors are printed once by main
	SilenceErrors: true,
	SilenceUsage:  true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
