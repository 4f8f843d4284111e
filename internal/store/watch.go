package store

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alexanderramin/notestudio/internal/domain"
)

// WatchDebounce is how long the state file must stay quiet before a change
// is reported. Editors and Save both produce bursts of write events.
const WatchDebounce = 50 * time.Millisecond

// Watch reports changes to the state file until ctx is done. After each
// settled burst of filesystem events it reloads the file with Load's rules
// and hands the result to onChange. Watch never writes.
func (g *Gateway) Watch(ctx context.Context, onChange func(*domain.AppState, error)) error {
	path, err := g.ResolveStatePath()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return domain.NewError(domain.ErrIO, "create watcher", err)
	}
	defer watcher.Close()

	// Watch the directory: Save may replace the file, dropping a file watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return domain.NewError(domain.ErrIO, "watch state dir", err)
	}
	g.logger.Debug("watching state file", "path", path)

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

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != StateFileName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(WatchDebounce)
			fire = timer.C

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.logger.Warn("state watcher error", "error", werr)

		case <-fire:
			fire = nil
			onChange(g.loadFrom(path))
		}
	}
}
