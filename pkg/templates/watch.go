package templates

import (
	"context"
	"errors"
	"time"

	"github.com/ritzau/graf-editor/pkg/logging"
	"github.com/ritzau/graf-editor/pkg/watcher"
)

// Reload timing for template file changes
const (
	QuietPeriod = 150 * time.Millisecond
	MaxWait     = time.Second
)

// ErrBuiltin is returned when watching a store that uses the built-in template
var ErrBuiltin = errors.New("built-in template cannot be watched")

// Watch reloads the template whenever its file changes, calling onReload with
// the new revision after each successful reload. A template that fails to
// load is logged and the previous one is kept.
// Watch returns once watching has started; it stops when ctx is done.
func (s *Store) Watch(ctx context.Context, onReload func(revision int)) error {
	if s.path == "" {
		return ErrBuiltin
	}

	fw, err := watcher.NewFileWatcher(s.path)
	if err != nil {
		return err
	}
	if err := fw.Start(ctx); err != nil {
		return err
	}

	debouncer := watcher.NewDebouncer(fw.Events(), QuietPeriod, MaxWait)
	debouncer.Start(ctx)

	go func() {
		for event := range debouncer.Output() {
			if err := s.Reload(); err != nil {
				logging.Warn("template reload failed, keeping previous", "path", event.Path, "error", err)
				continue
			}
			_, revision := s.Bytes()
			logging.Info("template reloaded", "path", event.Path, "revision", revision, "changes", event.Count)
			if onReload != nil {
				onReload(revision)
			}
		}
	}()
	return nil
}
