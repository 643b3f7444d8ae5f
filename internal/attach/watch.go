package attach

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"confstruct/internal/common"
	"confstruct/internal/errors"
	"confstruct/internal/logger"
)

// Watch regenerates attachments whose configuration file changes, until ctx
// is done. Bursts of events are debounced; onResult receives the result of
// each regeneration.
//
// Directories are watched rather than files, so editors that save through
// a rename keep being tracked.
func (d *Driver) Watch(ctx context.Context, attachments []Attachment, debounce time.Duration,
	onResult func(Result),
) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer watcher.Close()

	bySource := make(map[string][]Attachment)
	for _, a := range attachments {
		bySource[a.Source] = append(bySource[a.Source], a)
	}

	dirs := make(map[string]bool)
	for src := range bySource {
		dirs[filepath.Dir(src)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "failed to watch %s", dir)
		}
	}

	logger.Infow("Watching configuration files",
		"files", len(bySource),
		"debounce", debounce)

	var (
		timer   *time.Timer
		fire    <-chan time.Time
		pending = make(map[string]bool)
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

			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			name := filepath.Clean(event.Name)
			if _, tracked := bySource[name]; !tracked {
				continue
			}

			logger.Debugw("Configuration file changed",
				"file", name,
				"op", event.Op.String())

			pending[name] = true

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}

			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			logger.Warnw("Watcher error", "error", err)

		case <-fire:
			fire = nil

			sources := common.SortedKeys(pending)
			clear(pending)

			var batch []Attachment
			for _, src := range sources {
				batch = append(batch, bySource[src]...)
			}

			onResult(d.Run(ctx, batch))
		}
	}
}
