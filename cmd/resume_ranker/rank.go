package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/pipeline"
)

var rankCommand = &cobra.Command{
	Use:   "rank",
	Short: "Rank every resume in a directory against a keyword file",
	Long: `Scores each supported resume (docx, pdf, txt, odt, html) in --dir against the keywords in --keyword-file,
ranks them by weighted keyword count and renames each file to "{percentile}% [{count}] - {name}".

Configuration can be loaded from a JSON or YAML file using --config. Command-line arguments override config file values.`,
	Example: `  resume_ranker rank --dir ./resumes --keyword-file ./keywords.txt
  resume_ranker rank -d ./resumes -k ./keywords.txt --rename no --output-type csv --output-file ranked.csv -v`,
	RunE: runRankCmd,
}

var rankOpts rankFlags

func init() {
	rankOpts.register(rankCommand)
	rootCmd.AddCommand(rankCommand)
}

func runRankCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := rankOpts.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if rankOpts.configPath != "" && cfg.Verbose {
		_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", rankOpts.configPath)
	}

	var printer *observability.Printer
	if cfg.Summary {
		printer = observability.NewPrinter(os.Stdout)
	}

	opts := newRunOptions(cfg, newLogger(cfg, os.Stderr), printer)
	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	reportNothingToRank(result)
	printResult(printer, result)
	return nil
}
