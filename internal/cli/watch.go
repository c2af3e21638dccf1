package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/facet/internal/buildfile"
	"github.com/leapstack-labs/facet/internal/resolver"
)

const watchDebounce = 250 * time.Millisecond

// newWatchCommand creates the watch command.
func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-resolve the project whenever build files change",
		Long: `Watch the build directory for changes to BUILD.star files and the
project configuration, re-running resolution after each change. Resolution
errors are printed but do not stop the watch.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runWatch(ctx, cmd)
		},
	}
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	resolve := func() { resolveAndReport(ctx, out) }

	// Initial resolution before watching
	resolve()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchDir(watcher, cfg.BuildDir); err != nil {
		return fmt.Errorf("failed to watch build dir: %w", err)
	}
	// The config file lives at the project root, which may be outside the
	// build directory.
	if cfg.ProjectRoot != "" && cfg.ProjectRoot != cfg.BuildDir {
		if err := watcher.Add(cfg.ProjectRoot); err != nil {
			logger.Warn("failed to watch project root", "path", cfg.ProjectRoot, "error", err)
		}
	}

	fmt.Fprintf(out, "Watching %s for changes (Ctrl+C to stop)\n", cfg.BuildDir)

	var debounceTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !watchRelevant(event.Name) {
				continue
			}

			// Newly created directories need to be added to the watcher so
			// nested build files are picked up.
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(event.Name); statErr == nil && info.IsDir() {
					_ = watchDir(watcher, event.Name)
				}
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			name := filepath.Base(event.Name)
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				fmt.Fprintf(out, "Change detected: %s\n", name)
				resolve()
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

// resolveAndReport runs one resolution pass and prints a one-line summary,
// or the failure. Watch mode keeps going either way.
func resolveAndReport(ctx context.Context, out io.Writer) {
	res, err := resolver.New(cfg, logger).Resolve(ctx)
	if err != nil {
		fmt.Fprintf(out, "[%s] resolve failed: %v\n", time.Now().Format("15:04:05"), err)
		return
	}
	fmt.Fprintf(out, "[%s] resolved %d targets from %d files (%d facades)\n",
		time.Now().Format("15:04:05"), res.Targets, len(res.Files), res.Facades)
}

// watchDir recursively adds a directory tree to the watcher, skipping
// hidden directories.
func watchDir(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && len(d.Name()) > 0 && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// watchRelevant reports whether a change to the named path should trigger
// re-resolution: build files, the project config, or a directory event
// (directories carry no extension, so the base name check covers them).
func watchRelevant(path string) bool {
	base := filepath.Base(path)
	if base == buildfile.FileName {
		return true
	}
	if base == "facet.yaml" || base == "facet.yml" {
		return true
	}
	return filepath.Ext(base) == ""
}
