package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/ascii3d/logging"
)

// DebounceDelay coalesces the burst of events an editor produces on save
const DebounceDelay = 250 * time.Millisecond

// WatchFiles calls onChange with the path of each watched file after it settles
// Directories are watched instead of the files so rename-on-save editors keep working
// Returns when ctx is cancelled
func WatchFiles(ctx context.Context, paths []string, delay time.Duration, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error setting up file watcher: %w", err)
	}
	defer watcher.Close()

	wanted := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		wanted[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	// Debounce mechanism, one pending set per quiet period
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()
	pending := make(map[string]struct{})

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := wanted[name]; !ok {
				continue
			}
			if !timer.Stop() && len(pending) > 0 {
				select {
				case <-timer.C:
				default:
				}
			}
			pending[name] = struct{}{}
			timer.Reset(delay)

		case <-timer.C:
			for name := range pending {
				onChange(name)
			}
			clear(pending)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.L().Warn("watcher error", "error", err)
		}
	}
}
