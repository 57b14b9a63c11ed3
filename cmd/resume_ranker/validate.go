package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/schemas"
)

var validateCommand = &cobra.Command{
	Use:   "validate",
	Short: "Validate a json ranking report against the ranked results schema",
	RunE:  runValidateCmd,
}

var validateFile string

func init() {
	validateCommand.Flags().StringVarP(&validateFile, "file", "f", "", "Path to a report written with --output-type json")
	_ = validateCommand.MarkFlagRequired("file")

	rootCmd.AddCommand(validateCommand)
}

func runValidateCmd(_ *cobra.Command, _ []string) error {
	if err := schemas.ValidateRankedResultsFile(validateFile); err != nil {
		_, _ = fmt.Fprintf(os.Stdout, "Validation failed: %s\n", validateFile)
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Validation passed: %s\n", validateFile)
	return nil
}
