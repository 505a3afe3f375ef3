package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/logger"
)

// DefaultDebounce collapses the burst of events editors emit on save.
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc receives freshly loaded settings.
type ReloadFunc func(settings domain.Settings) error

// Watcher reloads the config store when its file changes and hands
// the resulting settings to a callback.
type Watcher struct {
	store    *ConfigStore
	onReload ReloadFunc
	debounce time.Duration

	watcher *fsnotify.Watcher
	reload  chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher creates a watcher for the store's file.
func NewWatcher(store *ConfigStore, onReload ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	return &Watcher{
		store:    store,
		onReload: onReload,
		debounce: DefaultDebounce,
		watcher:  fw,
		reload:   make(chan struct{}, 1),
	}, nil
}

// SetDebounce overrides the debounce window. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start watches the config directory until ctx is cancelled or Close is called.
// The directory is watched rather than the file so atomic renames are seen.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(w.store.Dir()); err != nil {
		return fmt.Errorf("watching %s: %w", w.store.Dir(), err)
	}

	logger.Debug("config watcher: watching %s", w.store.Path())

	w.wg.Add(2)
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

// Close stops watching and waits for the goroutines to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.reload)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != FileName {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.trigger()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.reload <- struct{}{}:
	default:
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-w.reload:
			if !ok {
				return
			}
			timer.Reset(w.debounce)
		case <-timer.C:
			if err := w.apply(); err != nil {
				logger.Error("config watcher: %v", err)
			}
		}
	}
}

func (w *Watcher) apply() error {
	if err := w.store.Load(); err != nil {
		return fmt.Errorf("reloading %s: %w", w.store.Path(), err)
	}

	settings, err := LoadSettings(w.store)
	if err != nil {
		return err
	}

	logger.Info("config watcher: settings reloaded from %s", w.store.Path())
	return w.onReload(settings)
}
