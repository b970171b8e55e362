package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/osse101/SpaceCases_Go/internal/logger"
)

// Watch refreshes whenever a feed file in dir is written or replaced.
// Editors and deploy tools tend to emit several events per save, so
// events are collapsed into one refresh after debounce of quiet.
func (r *Refresher) Watch(dir string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	r.mu.Lock()
	if r.watcher != nil {
		_ = r.watcher.Close()
	}
	r.watcher = w
	r.mu.Unlock()

	go r.watchLoop(w, debounce)
	logger.FromContext(context.Background()).Info(LogMsgCatalogWatchStarted, "dir", dir)
	return nil
}

func (r *Refresher) watchLoop(w *fsnotify.Watcher, debounce time.Duration) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !isFeedFile(ev.Name) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.AfterFunc(debounce, r.refreshLogged)
			} else {
				timer.Reset(debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.FromContext(context.Background()).Warn(LogMsgCatalogWatchError, "error", err)
		}
	}
}

func isFeedFile(path string) bool {
	switch filepath.Base(path) {
	case ItemsFileName, ContainersFileName:
		return true
	default:
		return false
	}
}
