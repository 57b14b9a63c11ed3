package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/config"
	"github.com/jonathan/resume-ranker/internal/observability"
	"github.com/jonathan/resume-ranker/internal/pipeline"
	"github.com/jonathan/resume-ranker/internal/types"
)

// parseFlags registers the rank flags on a fresh command and parses args
func parseFlags(t *testing.T, args ...string) (*cobra.Command, *rankFlags) {
	t.Helper()
	f := &rankFlags{}
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd, f
}

func TestResolveConfig_FlagsOnly(t *testing.T) {
	cmd, f := parseFlags(t, "-d", "resumes", "-k", "keywords.txt", "--output-type", "CSV", "--output-file", "out.csv", "-v", "--workers", "3")

	cfg, err := f.resolveConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "resumes", cfg.Dir)
	assert.Equal(t, "keywords.txt", cfg.KeywordFile)
	assert.Equal(t, config.RenameYes, cfg.Rename)
	assert.Equal(t, "csv", cfg.OutputType)
	assert.Equal(t, "out.csv", cfg.OutputFile)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 3, cfg.Workers)
}

func TestResolveConfig_FlagsOverrideConfigFile(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"ranker.yaml": "dir: from-config\nkeyword_file: kw-from-config.txt\nrename: \"no\"\nworkers: 4\n",
	})

	cmd, f := parseFlags(t, "--config", filepath.Join(dir, "ranker.yaml"), "--dir", "from-flag")

	cfg, err := f.resolveConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.Dir)
	assert.Equal(t, "kw-from-config.txt", cfg.KeywordFile)
	assert.Equal(t, config.RenameNo, cfg.Rename, "unset --rename flag must not override the config file")
	assert.False(t, cfg.RenameEnabled())
	assert.Equal(t, 4, cfg.Workers)
}

func TestResolveConfig_EnvFallback(t *testing.T) {
	t.Setenv(envDir, "env-dir")
	t.Setenv(envKeywordFile, "env-keywords.txt")

	cmd, f := parseFlags(t)
	cfg, err := f.resolveConfig(cmd)
	require.NoError(t, err)

	assert.Equal(t, "env-dir", cfg.Dir)
	assert.Equal(t, "env-keywords.txt", cfg.KeywordFile)
	assert.Equal(t, 1, cfg.Workers)
}

func TestResolveConfig_Errors(t *testing.T) {
	t.Setenv(envDir, "")
	t.Setenv(envKeywordFile, "")

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "missing dir", args: []string{"-k", "kw.txt"}, wantErr: "--dir is required"},
		{name: "missing keyword file", args: []string{"-d", "resumes"}, wantErr: "--keyword-file is required"},
		{name: "bad rename", args: []string{"-d", "r", "-k", "k", "--rename", "maybe"}, wantErr: "must be yes or no"},
		{name: "output type alone", args: []string{"-d", "r", "-k", "k", "--output-type", "csv"}, wantErr: "must be used in conjunction with 'output_file'"},
		{name: "output file alone", args: []string{"-d", "r", "-k", "k", "--output-file", "out.csv"}, wantErr: "must be used in conjunction with 'output_type'"},
		{name: "negative workers", args: []string{"-d", "r", "-k", "k", "--workers", "-1"}, wantErr: "must be non-negative"},
		{name: "missing config file", args: []string{"--config", "/nonexistent/ranker.json"}, wantErr: "failed to load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, f := parseFlags(t, tt.args...)
			_, err := f.resolveConfig(cmd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRunOptions(t *testing.T) {
	cfg := config.Config{
		Dir:         "resumes",
		KeywordFile: "kw.txt",
		Rename:      config.RenameNo,
		OutputType:  "json",
		OutputFile:  "out.json",
		Verbose:     true,
		Workers:     2,
	}

	opts := newRunOptions(cfg, newLogger(cfg, &bytes.Buffer{}), nil)

	assert.Equal(t, "resumes", opts.Dir)
	assert.Equal(t, "kw.txt", opts.KeywordFile)
	assert.True(t, opts.Output.Console)
	assert.False(t, opts.Output.Rename)
	assert.Equal(t, "json", opts.Output.Type)
	assert.Equal(t, "out.json", opts.Output.File)
	assert.Equal(t, 2, opts.Workers)
	assert.Nil(t, opts.OnProgress)
}

func TestNewRunOptions_SummaryPrintsKeywords(t *testing.T) {
	var buf bytes.Buffer
	opts := newRunOptions(config.Config{}, nil, observability.NewPrinter(&buf))
	require.NotNil(t, opts.OnProgress)

	opts.OnProgress(pipeline.ProgressEvent{Step: pipeline.StepScoreFile, Content: "ignored"})
	assert.Empty(t, buf.String())

	opts.OnProgress(pipeline.ProgressEvent{
		Step:    pipeline.StepLoadKeywords,
		Content: []types.KeywordEntry{{Term: "Go", Multiplier: 2}},
	})
	assert.Contains(t, buf.String(), "Go (x2)")
}

func TestNewLogger_Levels(t *testing.T) {
	var buf bytes.Buffer

	newLogger(config.Config{}, &buf).Info("hidden")
	assert.Empty(t, buf.String())

	newLogger(config.Config{Debug: true}, &buf).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestRootCommand_Version(t *testing.T) {
	assert.Equal(t, "1.0.0", rootCmd.Version)

	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "rank")
	assert.Contains(t, names, "watch")
	assert.Contains(t, names, "validate")
}

func TestRunRankCmd_InProcess(t *testing.T) {
	dir := writeFixture(t, map[string]string{
		"keywords.txt": "Python\nGo *2\n",
		"a.txt":        "I use Python and Go and Go",
		"b.txt":        "No match here",
	})
	out := filepath.Join(t.TempDir(), "ranked.csv")

	rootCmd.SetArgs([]string{"rank", "-d", dir, "-k", filepath.Join(dir, "keywords.txt"),
		"--output-type", "csv", "--output-file", out})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Percentile,Total Count,File Name\n100.0,5,100.0% [5] - a.txt\n0.0,0,0.0% [0] - b.txt\n", string(data))

	assert.FileExists(t, filepath.Join(dir, "100.0% [5] - a.txt"))
	assert.FileExists(t, filepath.Join(dir, "0.0% [0] - b.txt"))
}
