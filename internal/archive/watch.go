package archive

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch blocks archiving matching files as they appear in the working
// directory, until ctx is cancelled. Files already present at startup
// are archived first so a watcher started late does not strand them.
// Each archived file is reported on the entries channel if one is given.
func (a *Archiver) Watch(ctx context.Context, entries chan<- *Entry) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(a.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", a.dir, err)
	}

	// Catch up on files that predate the watch.
	backlog, err := a.Run()
	if err != nil {
		a.logger.Warn("backlog archive reported failures", zap.Error(err))
	}
	for _, e := range backlog {
		notify(entries, e)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if !a.Matches(name) {
				continue
			}
			entry, err := a.Archive(name)
			if err != nil {
				// The file may still be mid-write or already gone; log
				// and keep watching rather than tearing down the loop.
				a.logger.Warn("watch archive failed",
					zap.String("file", name), zap.Error(err))
				continue
			}
			notify(entries, entry)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func notify(ch chan<- *Entry, e *Entry) {
	if ch != nil {
		ch <- e
	}
}
