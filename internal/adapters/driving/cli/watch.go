package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/kgingest/internal/core/domain"
	"github.com/custodia-labs/kgingest/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Ingest files as they appear in a directory",
	Long: `Watch a directory and ingest every file that is created or written.

Changes are collected for the settle period and then ingested one at a time,
in name order. Hidden files and subdirectories are ignored. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

// Watch flags.
var (
	watchSettle   time.Duration
	watchValidate bool
)

const defaultSettle = 500 * time.Millisecond

func init() {
	watchCmd.Flags().DurationVar(&watchSettle, "settle", defaultSettle, "Wait this long after the last change before ingesting")
	watchCmd.Flags().BoolVar(&watchValidate, "validate", true, "Skip files whose type is not an accepted upload type")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	w, err := newDirWatcher(args[0])
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", args[0], err)
	}
	defer w.Close()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", w.dir)
	return w.run(cmd.Context(), watchSettle, func(ctx context.Context, paths []string) {
		ingestPaths(ctx, cmd, paths)
	})
}

// dirWatcher turns fsnotify events into batches of file paths.
type dirWatcher struct {
	dir     string
	watcher *fsnotify.Watcher
}

func newDirWatcher(dir string) (*dirWatcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close() //nolint:errcheck
		return nil, fmt.Errorf("adding %s: %w", dir, err)
	}

	return &dirWatcher{dir: dir, watcher: watcher}, nil
}

// Close stops the underlying watcher.
func (w *dirWatcher) Close() error {
	return w.watcher.Close()
}

// handleFsEvent returns the path to ingest for an event, or "" to ignore it.
func (w *dirWatcher) handleFsEvent(event fsnotify.Event) string {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return ""
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return ""
	}

	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return ""
	}
	return event.Name
}

// run collects paths until no event arrives for settle, then hands them to
// flush in sorted order. It returns when ctx is cancelled.
func (w *dirWatcher) run(ctx context.Context, settle time.Duration, flush func(context.Context, []string)) error {
	if settle <= 0 {
		settle = defaultSettle
	}

	pending := make(map[string]struct{})
	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			path := w.handleFsEvent(event)
			if path == "" {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, path)
			pending[path] = struct{}{}
			timer.Reset(settle)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			clear(pending)
			flush(ctx, paths)
		}
	}
}

// ingestPaths ingests one settled batch and prints a line per file.
func ingestPaths(ctx context.Context, cmd *cobra.Command, paths []string) {
	for _, path := range paths {
		if err := validateName(path, watchValidate); err != nil {
			cmd.Printf("  skipped %s: %v\n", path, err)
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			cmd.Printf("  FAILED  %s: %v\n", path, err)
			continue
		}
		result, err := ingestService.Ingest(ctx, domain.Input{File: &domain.FileInput{Name: filepath.Base(path), Content: f}})
		f.Close() //nolint:errcheck

		if err != nil || result == nil || result.Stored == nil {
			cmd.Printf("  FAILED  %s: %v\n", path, err)
			continue
		}
		out := toIngestOutput(result)
		cmd.Printf("  %s  %s  %s  %s\n", out.Status, out.Type, out.ID, path)
	}
}
