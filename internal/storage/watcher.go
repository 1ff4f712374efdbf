package storage

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/valter-silva-au/cyber-warrior/pkg/models"
)

// CatalogWatcher reloads a catalog file whenever it changes on disk and
// publishes the parsed missions. The containing directory is watched so
// editors that replace the file on save are picked up.
type CatalogWatcher struct {
	store   CatalogStore
	watcher *fsnotify.Watcher
	updates chan []models.Mission
	errs    chan error
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// NewCatalogWatcher starts watching store's file.
func NewCatalogWatcher(store CatalogStore) (*CatalogWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating catalog watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(store.Path())); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(store.Path()), err)
	}

	cw := &CatalogWatcher{
		store:   store,
		watcher: w,
		updates: make(chan []models.Mission, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	cw.wg.Add(1)
	go cw.loop()
	return cw, nil
}

// Updates delivers the missions parsed after each change. Only the latest
// unread update is kept.
func (cw *CatalogWatcher) Updates() <-chan []models.Mission {
	return cw.updates
}

// Errors delivers reload and watch failures. Only the latest unread error
// is kept.
func (cw *CatalogWatcher) Errors() <-chan error {
	return cw.errs
}

// Close stops the watcher and waits for its goroutine to exit.
func (cw *CatalogWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.done)
		err = cw.watcher.Close()
		cw.wg.Wait()
	})
	return err
}

func (cw *CatalogWatcher) loop() {
	defer cw.wg.Done()
	target := filepath.Clean(cw.store.Path())

	for {
		select {
		case <-cw.done:
			return
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			missions, err := cw.store.Load()
			if err != nil {
				publish(cw.errs, err)
				continue
			}
			publish(cw.updates, missions)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			publish(cw.errs, err)
		}
	}
}

// publish replaces any unread value in a one-slot channel.
func publish[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
