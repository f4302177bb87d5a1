package library

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/wayper/internal/logger"
	"github.com/bnema/wayper/internal/wallpaper"
)

// DefaultDebounce groups bursts of file events into one rescan.
const DefaultDebounce = 250 * time.Millisecond

// Watch sends a fresh Scan of dirs every time an image is created, removed
// or renamed in one of them. Directories that do not exist are not watched.
// The channel is closed when ctx is done.
func Watch(ctx context.Context, dirs []string, debounce time.Duration) (<-chan []string, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := 0
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			logger.Debugf("library: not watching %s: %v", dir, err)
			continue
		}
		watched++
	}
	logger.Debugf("library: watching %d of %d directories", watched, len(dirs))

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	updates := make(chan []string, 1)
	go func() {
		defer close(updates)
		defer watcher.Close()

		timer := time.NewTimer(debounce)
		timer.Stop()

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !relevant(event) {
					continue
				}
				logger.Debug("library: change", "op", event.Op.String(), "path", event.Name)
				timer.Reset(debounce)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("library: watcher error: %v", err)

			case <-timer.C:
				images, err := Scan(dirs)
				if err != nil {
					logger.Warnf("library: rescan: %v", err)
				}
				select {
				case updates <- images:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return updates, nil
}

func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return wallpaper.IsSupportedFormat(event.Name)
}
