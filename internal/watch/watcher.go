package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jonathan/resume-ranker/internal/selection"
)

// DefaultDebounce is the quiet period used when Watcher.Debounce is zero
const DefaultDebounce = 500 * time.Millisecond

// Watcher runs Run once at start and again after every burst of relevant changes.
//
// A change is relevant when it touches the keyword file, or a supported file directly inside Dir
// that is not listed in Ignore and is not an editor lock file. Changes arriving within Debounce of
// each other are coalesced into a single run.
type Watcher struct {
	Dir         string
	KeywordFile string
	Ignore      []string // Paths that never trigger a run, e.g. the output file
	Debounce    time.Duration
	Supported   func(path string) bool // nil accepts every file
	Run         func(ctx context.Context) error
	Logger      *slog.Logger
}

// Watch blocks until ctx is cancelled. Errors returned by Run are logged and do not stop the watch.
func (w *Watcher) Watch(ctx context.Context) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	m, err := newMatcher(w.Dir, w.KeywordFile, w.Ignore, w.Supported)
	if err != nil {
		return err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return &Error{Message: "failed to create watcher for", Path: m.dir, Cause: err}
	}
	defer func() { _ = fw.Close() }()

	for _, dir := range m.watchDirs() {
		if err := fw.Add(dir); err != nil {
			return &Error{Message: "failed to watch", Path: dir, Cause: err}
		}
		logger.Info("watching directory", "dir", dir)
	}

	w.runOnce(ctx, logger)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !m.relevant(event) {
				continue
			}
			logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-fire:
			fire = nil
			w.runOnce(ctx, logger)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context, logger *slog.Logger) {
	if ctx.Err() != nil || w.Run == nil {
		return
	}
	if err := w.Run(ctx); err != nil {
		logger.Error("ranking run failed", "error", err)
	}
}

// matcher decides which file system events should trigger a run
type matcher struct {
	dir         string
	keywordFile string
	ignore      map[string]struct{}
	supported   func(path string) bool
}

func newMatcher(dir, keywordFile string, ignore []string, supported func(string) bool) (*matcher, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, &Error{Message: "failed to resolve", Path: dir, Cause: err}
	}
	m := &matcher{
		dir:       absDir,
		ignore:    make(map[string]struct{}, len(ignore)),
		supported: supported,
	}
	if keywordFile != "" {
		if m.keywordFile, err = filepath.Abs(keywordFile); err != nil {
			return nil, &Error{Message: "failed to resolve", Path: keywordFile, Cause: err}
		}
	}
	for _, p := range ignore {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			m.ignore[abs] = struct{}{}
		}
	}
	return m, nil
}

// watchDirs returns the resume directory and, when it lives elsewhere, the keyword file's directory
func (m *matcher) watchDirs() []string {
	dirs := []string{m.dir}
	if m.keywordFile != "" {
		if kwDir := filepath.Dir(m.keywordFile); kwDir != m.dir {
			dirs = append(dirs, kwDir)
		}
	}
	return dirs
}

func (m *matcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	path, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	if path == m.keywordFile {
		return true
	}
	if _, ok := m.ignore[path]; ok {
		return false
	}
	if filepath.Dir(path) != m.dir {
		return false
	}
	if strings.HasPrefix(filepath.Base(path), selection.LockFilePrefix) {
		return false
	}
	return m.supported == nil || m.supported(path)
}
