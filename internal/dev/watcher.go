package dev

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchedExts are the file types whose changes trigger a browser reload.
var WatchedExts = map[string]bool{
	".css":  true,
	".js":   true,
	".html": true,
	".svg":  true,
	".png":  true,
	".yaml": true,
	".yml":  true,
}

type Watcher struct {
	watcher  *fsnotify.Watcher
	paths    []string
	onChange func(path string)
	debounce time.Duration
	mu       sync.Mutex
	last     map[string]time.Time
	running  bool
}

// NewWatcher watches paths, each either a directory (walked recursively)
// or a single file, and calls onChange for relevant writes.
func NewWatcher(paths []string, onChange func(path string)) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &Watcher{
		watcher:  w,
		paths:    paths,
		onChange: onChange,
		debounce: 500 * time.Millisecond,
		last:     make(map[string]time.Time),
	}, nil
}

func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	for _, path := range w.paths {
		if err := w.add(path); err != nil {
			slog.Warn("Failed to watch path", "path", path, "error", err)
		}
	}

	go w.processEvents(ctx)

	return nil
}

func (w *Watcher) add(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return w.watcher.Add(path)
	}

	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() {
			if p != path && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return w.watcher.Add(p)
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.relevant(event) {
				continue
			}

			slog.Info("File changed", "path", event.Name, "op", event.Op.String())

			if w.onChange != nil {
				go w.onChange(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&fsnotify.Write == 0 && event.Op&fsnotify.Create == 0 {
		return false
	}

	if !WatchedExts[strings.ToLower(filepath.Ext(event.Name))] {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if last, ok := w.last[event.Name]; ok && now.Sub(last) < w.debounce {
		return false
	}
	w.last[event.Name] = now
	return true
}

func (w *Watcher) Close() error {
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
