package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/output"
	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Environment fallbacks for the two required paths
const (
	envDir         = "RESUME_RANKER_DIR"
	envKeywordFile = "RESUME_RANKER_KEYWORD_FILE"
)

// rankFlags holds the flags shared by the rank and watch commands
type rankFlags struct {
	configPath  string
	dir         string
	keywordFile string
	rename      string
	outputType  string
	outputFile  string
	verbose     bool
	summary     bool
	debug       bool
	workers     int
}

func (f *rankFlags) register(cmd *cobra.Command) {
	// Config file flag (processed first)
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to a JSON or YAML config file (values can be overridden by other flags)")

	cmd.Flags().StringVarP(&f.dir, "dir", "d", "", "Directory of resumes to rank (defaults to "+envDir+" env var)")
	cmd.Flags().StringVarP(&f.keywordFile, "keyword-file", "k", "", "Keyword file, one keyword per line with an optional ' *N' multiplier (defaults to "+envKeywordFile+" env var)")
	cmd.Flags().StringVar(&f.rename, "rename", config.RenameYes, "Rename each file with its percentile and count (yes or no)")
	cmd.Flags().StringVar(&f.outputType, "output-type", "", "Structured output type: csv, txt or json (requires --output-file)")
	cmd.Flags().StringVar(&f.outputFile, "output-file", "", "Structured output file path (requires --output-type)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print the ranked file names")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "Print a summary of the run")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Enable debug logging on stderr")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Number of files extracted and scored concurrently (default 1)")
}

// resolveConfig merges the config file, explicitly set flags, environment fallbacks and defaults,
// in increasing order of priority except for defaults, and validates the result.
func (f *rankFlags) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if f.configPath != "" {
		loadedCfg, err := config.LoadConfig(f.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("dir") {
		cfg.Dir = f.dir
	}
	if cmd.Flags().Changed("keyword-file") {
		cfg.KeywordFile = f.keywordFile
	}
	if cmd.Flags().Changed("rename") {
		cfg.Rename = f.rename
	}
	if cmd.Flags().Changed("output-type") {
		cfg.OutputType = f.outputType
	}
	if cmd.Flags().Changed("output-file") {
		cfg.OutputFile = f.outputFile
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if cmd.Flags().Changed("summary") {
		cfg.Summary = f.summary
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = f.debug
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = f.workers
	}

	// Step 3: Environment fallbacks for paths
	if cfg.Dir == "" {
		cfg.Dir = os.Getenv(envDir)
	}
	if cfg.KeywordFile == "" {
		cfg.KeywordFile = os.Getenv(envKeywordFile)
	}

	// Step 4: Validate and apply defaults for unset values
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	cfg = cfg.MergeWithDefaults(config.Config{Rename: config.RenameYes, Workers: 1})

	if cfg.Dir == "" {
		return cfg, fmt.Errorf("--dir is required (via flag, config or %s)", envDir)
	}
	if cfg.KeywordFile == "" {
		return cfg, fmt.Errorf("--keyword-file is required (via flag, config or %s)", envKeywordFile)
	}

	return cfg, nil
}

// newLogger returns a stderr text logger; --debug lowers the level to Debug
func newLogger(cfg config.Config, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case cfg.Debug:
		level = slog.LevelDebug
	case cfg.Verbose || cfg.Summary:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newRunOptions builds pipeline options from a resolved config
func newRunOptions(cfg config.Config, logger *slog.Logger, printer *observability.Printer) pipeline.RunOptions {
	opts := pipeline.RunOptions{
		Dir:         cfg.Dir,
		KeywordFile: cfg.KeywordFile,
		Output: output.Options{
			Console: cfg.Verbose,
			Rename:  cfg.RenameEnabled(),
			Type:    cfg.OutputType,
			File:    cfg.OutputFile,
		},
		Workers: cfg.Workers,
		Logger:  logger,
		Console: os.Stdout,
	}

	if printer != nil {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			if event.Step != pipeline.StepLoadKeywords {
				return
			}
			if entries, ok := event.Content.([]types.KeywordEntry); ok {
				printer.PrintKeywords(entries)
			}
		}
	}

	return opts
}

// printResult writes the summary boxes for a completed run
func printResult(printer *observability.Printer, result *pipeline.Result) {
	if printer == nil || result == nil {
		return
	}
	printer.PrintRankedResults(result.Ranked)
	printer.PrintSkipped(result.Ranked.Skipped)
	printer.PrintRunSummary(result.Ranked, result.Report, result.Duration)
}

// reportNothingToRank tells the user why no output was produced
func reportNothingToRank(result *pipeline.Result) {
	if result == nil || len(result.Ranked.Results) > 0 {
		return
	}
	_, _ = fmt.Fprintf(os.Stdout, "Nothing to rank: none of the %d eligible files produced text\n", result.Candidates)
}
