// Package watch re-runs a callback when a file changes, once the file has
// been idle for a debounce interval.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 300 * time.Millisecond

// FileWatcher monitors a single file and calls onChange after edits settle.
type FileWatcher struct {
	path       string
	watcher    *fsnotify.Watcher
	debounce   time.Duration
	onChange   func(ctx context.Context, path string)
	reloadChan chan struct{}
	runMu      sync.Mutex
}

// NewFileWatcher creates a watcher for path. onChange is never called
// concurrently with itself.
func NewFileWatcher(path string, debounce time.Duration, onChange func(ctx context.Context, path string)) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{
		path:       absPath,
		watcher:    watcher,
		debounce:   debounce,
		onChange:   onChange,
		reloadChan: make(chan struct{}, 1),
	}, nil
}

// Run watches until ctx is done. The file's directory is watched rather
// than the file itself so editors that replace files on save are seen.
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer fw.watcher.Close()

	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	slog.Info("Watching file", "path", fw.path, "debounce", fw.debounce)

	go fw.debounceLoop(ctx)

	name := filepath.Base(fw.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0:
				slog.Debug("Watched file changed", "file", event.Name, "op", event.Op.String())
				fw.trigger()
			case event.Op&fsnotify.Remove != 0:
				slog.Warn("Watched file removed", "file", event.Name)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", "error", err)
		}
	}
}

func (fw *FileWatcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case <-fw.reloadChan:
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(fw.debounce, func() {
				if ctx.Err() != nil {
					return
				}
				fw.runMu.Lock()
				defer fw.runMu.Unlock()
				fw.onChange(ctx, fw.path)
			})
		}
	}
}

func (fw *FileWatcher) trigger() {
	select {
	case fw.reloadChan <- struct{}{}:
	default:
	}
}
