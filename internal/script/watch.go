package script

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce groups bursts of writes (editors often write twice).
const WatchDebounce = 200 * time.Millisecond

// Watch reloads path whenever it changes and passes every script that
// loads and validates to fn. Scripts that fail to load are logged and
// ignored. Watch blocks until ctx is done.
func Watch(ctx context.Context, path string, opts Options, fn func(*Script)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Close()

	// Watch the directory: editors that save by rename replace the inode.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	log := logger(opts).With(slog.String("script", abs))
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				pending = time.After(WatchDebounce)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", slog.Any("error", err))

		case <-pending:
			pending = nil
			s, err := LoadFile(abs, opts)
			if err != nil {
				log.Warn("reload failed", slog.Any("error", err))
				continue
			}
			log.Info("script reloaded", slog.Int("lines", len(s.Lines)))
			fn(s)
		}
	}
}
