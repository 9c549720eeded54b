package push

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

// Files watched by the file transport, one per update kind
var watchedFiles = map[string]Kind{
	"daily_summary.json":   KindDailySummary,
	"app_usage.json":       KindAppUsage,
	"activity_events.json": KindActivityEvents,
}

// FileName returns the file in a watched directory that carries kind
func FileName(kind Kind) string {
	for name, k := range watchedFiles {
		if k == kind {
			return name
		}
	}
	return ""
}

// WatchDir emits an update whenever one of the dataset files in dir is created
// or rewritten. Files already present are emitted once on start.
func WatchDir(ctx context.Context, dir string) (Subscription, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch dir: %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	s := newStream(ctx, "file")
	s.closer = watcher.Close
	s.run(func(ctx context.Context) {
		for _, kind := range Kinds {
			path := filepath.Join(dir, FileName(kind))
			if _, err := os.Stat(path); err == nil {
				emitFile(s, path, kind)
			}
		}
		processFileEvents(ctx, s, watcher)
	})
	s.start()

	util.LogInfo("Watching directory for push updates", util.F("dir", dir))
	return s, nil
}

func processFileEvents(ctx context.Context, s *stream, watcher *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			kind, watched := watchedFiles[filepath.Base(event.Name)]
			if !watched {
				continue
			}
			emitFile(s, event.Name, kind)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Log error but continue running
			util.LogError("File monitoring error", util.F("error", err))
		}
	}
}

func emitFile(s *stream, path string, kind Kind) {
	data, err := os.ReadFile(path)
	if err != nil {
		util.LogWarn("Failed to read push file", util.F("path", path), util.F("error", err))
		return
	}
	if len(data) == 0 {
		// Truncate half of a rewrite; the following write event carries the content
		return
	}
	s.deliver(string(kind), data)
}
