// Package pipeline provides the high-level orchestration for a ranking run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-ranker/internal/extraction"
	"github.com/jonathan/resume-ranker/internal/keywords"
	"github.com/jonathan/resume-ranker/internal/output"
	"github.com/jonathan/resume-ranker/internal/ranking"
	"github.com/jonathan/resume-ranker/internal/scoring"
	"github.com/jonathan/resume-ranker/internal/selection"
	"github.com/jonathan/resume-ranker/internal/types"
)

// Pipeline steps reported through ProgressEvent
const (
	StepLoadKeywords = "load_keywords"
	StepCollectFiles = "collect_files"
	StepScoreFile    = "score_file"
	StepSkipFile     = "skip_file"
	StepRank         = "rank"
	StepRender       = "render"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	File    string `json:"file,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Dir         string
	KeywordFile string
	Output      output.Options
	Workers     int                      // Files extracted and scored concurrently, 0 means 1
	Extractor   extraction.TextExtractor // Defaults to extraction.NewExtractor()
	Logger      *slog.Logger             // Defaults to a discarding logger
	Console     io.Writer                // Destination of display names when Output.Console is set
	OnProgress  ProgressCallback         // Called concurrently when Workers > 1
}

// Result holds the outcome of a completed run
type Result struct {
	Ranked     *types.RankedResults
	Report     *output.Report // nil when nothing was rendered
	Candidates int
	Duration   time.Duration
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID, step, file, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID,
			File:    file,
			Content: content,
		})
	}
}

// Run validates the options, scores every eligible file in opts.Dir against the keyword file,
// ranks the scores and renders them. Setup failures return before any file is opened for scoring.
// Files that fail extraction or have no text are recorded in Skipped and left out of the ranking.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	start := time.Now()

	if err := Validate(&opts); err != nil {
		return nil, err
	}
	applyDefaults(&opts)

	runID := uuid.New().String()
	logger := opts.Logger.With("run_id", runID)

	entries, err := keywords.LoadFile(opts.KeywordFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}
	logger.Debug("loaded keywords", "keyword_file", opts.KeywordFile, "count", len(entries))
	emitProgress(&opts, runID, StepLoadKeywords, opts.KeywordFile,
		fmt.Sprintf("Loaded %d keywords", len(entries)), entries)

	paths, err := selection.Collect(opts.Dir, []string{opts.KeywordFile, opts.Output.File}, extraction.Supported, extraction.SupportedExtensions())
	if err != nil {
		return nil, fmt.Errorf("failed to collect files: %w", err)
	}
	logger.Debug("collected files", "dir", opts.Dir, "count", len(paths))
	emitProgress(&opts, runID, StepCollectFiles, opts.Dir,
		fmt.Sprintf("Found %d eligible files", len(paths)), paths)

	scores, skipped, err := scoreFiles(ctx, &opts, logger, runID, paths, entries)
	if err != nil {
		return nil, err
	}

	ranked := &types.RankedResults{
		RunID:        runID,
		GeneratedAt:  time.Now().UTC().Format(time.RFC3339),
		KeywordCount: len(entries),
		Results:      ranking.Rank(scores),
		Skipped:      skipped,
	}
	emitProgress(&opts, runID, StepRank, "", fmt.Sprintf("Ranked %d files", len(ranked.Results)), ranked)

	result := &Result{
		Ranked:     ranked,
		Candidates: len(paths),
	}

	if len(ranked.Results) == 0 {
		logger.Warn("nothing to rank", "dir", opts.Dir, "skipped", len(skipped))
		result.Duration = time.Since(start)
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled before rendering: %w", err)
	}

	report, err := output.Render(ranked, opts.Output, opts.Console)
	result.Report = report
	result.Duration = time.Since(start)
	if err != nil {
		return result, fmt.Errorf("failed to write results: %w", err)
	}
	logger.Info("ranking complete",
		"files", len(ranked.Results),
		"skipped", len(skipped),
		"renamed", report.Renamed,
		"duration", result.Duration)
	emitProgress(&opts, runID, StepRender, report.File, "Rendered ranked results", report)

	return result, nil
}

// scoreFiles extracts and scores each path, bounded by opts.Workers. Scores keep the order of
// paths so that ranking ties resolve in enumeration order.
func scoreFiles(ctx context.Context, opts *RunOptions, logger *slog.Logger, runID string, paths []string, entries []types.KeywordEntry) ([]types.FileScore, []types.SkippedFile, error) {
	type outcome struct {
		score *types.FileScore
		skip  *types.SkippedFile
	}
	outcomes := make([]outcome, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			text, err := opts.Extractor.Extract(path)
			if err != nil {
				logger.Warn("skipping file: extraction failed", "file", path, "error", err)
				outcomes[i].skip = &types.SkippedFile{Path: path, Reason: err.Error()}
				emitProgress(opts, runID, StepSkipFile, path, "Extraction failed", err.Error())
				return nil
			}
			if text == "" {
				logger.Warn("skipping file: no text extracted", "file", path)
				outcomes[i].skip = &types.SkippedFile{Path: path, Reason: "no text extracted"}
				emitProgress(opts, runID, StepSkipFile, path, "No text extracted", nil)
				return nil
			}

			coverage, count, err := scoring.Score(text, entries)
			if err != nil {
				return fmt.Errorf("failed to score %s: %w", path, err)
			}
			outcomes[i].score = &types.FileScore{
				SourcePath:      path,
				CoveragePercent: coverage,
				WeightedCount:   count,
			}
			if logger.Enabled(gCtx, slog.LevelDebug) {
				logger.Debug("scored file",
					"file", path,
					"coverage_percent", coverage,
					"weighted_count", count,
					"matched", scoring.MatchedTerms(text, entries))
			}
			emitProgress(opts, runID, StepScoreFile, path,
				fmt.Sprintf("Scored %.2f%% coverage, weighted count %d", coverage, count), outcomes[i].score)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, nil, fmt.Errorf("scoring failed: %w", err)
	}

	scores := make([]types.FileScore, 0, len(paths))
	var skipped []types.SkippedFile
	for _, o := range outcomes {
		switch {
		case o.score != nil:
			scores = append(scores, *o.score)
		case o.skip != nil:
			skipped = append(skipped, *o.skip)
		}
	}
	return scores, skipped, nil
}

func applyDefaults(opts *RunOptions) {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Extractor == nil {
		opts.Extractor = extraction.NewExtractor()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Console == nil {
		opts.Console = os.Stdout
	}
}
