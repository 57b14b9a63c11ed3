package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-ranker/internal/extraction"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/watch"
)

var watchCommand = &cobra.Command{
	Use:   "watch",
	Short: "Re-rank a resume directory whenever its files or the keyword file change",
	Long: `Runs the rank command once, then watches --dir and --keyword-file and ranks again after every burst
of changes. Changes within --debounce milliseconds of each other trigger a single run.

Accepts every rank flag. Stop with Ctrl-C.`,
	RunE: runWatchCmd,
}

var (
	watchOpts     rankFlags
	watchDebounce int
)

func init() {
	watchOpts.register(watchCommand)
	watchCommand.Flags().IntVar(&watchDebounce, "debounce", int(watch.DefaultDebounce/time.Millisecond), "Quiet period in milliseconds before re-ranking")

	rootCmd.AddCommand(watchCommand)
}

func runWatchCmd(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := watchOpts.resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debounce") || cfg.DebounceMs == 0 {
		cfg.DebounceMs = watchDebounce
	}
	if cfg.DebounceMs < 0 {
		return fmt.Errorf("--debounce must be non-negative")
	}

	var printer *observability.Printer
	if cfg.Summary {
		printer = observability.NewPrinter(os.Stdout)
	}

	logger := newLogger(cfg, os.Stderr)
	opts := newRunOptions(cfg, logger, printer)

	// Setup errors are fatal before watching starts
	if err := pipeline.Validate(&opts); err != nil {
		return err
	}

	w := &watch.Watcher{
		Dir:         cfg.Dir,
		KeywordFile: cfg.KeywordFile,
		Ignore:      []string{cfg.OutputFile},
		Debounce:    time.Duration(cfg.DebounceMs) * time.Millisecond,
		Supported:   extraction.Supported,
		Logger:      logger,
		Run: func(ctx context.Context) error {
			result, err := pipeline.Run(ctx, opts)
			if err != nil {
				return err
			}
			reportNothingToRank(result)
			printResult(printer, result)
			return nil
		},
	}

	_, _ = fmt.Fprintf(os.Stdout, "Watching %s (Ctrl-C to stop)\n", cfg.Dir)
	return w.Watch(ctx)
}
