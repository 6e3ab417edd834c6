package main

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// ConfigWatcher reloads the config file when it changes on disk. Reloaded
// configs are handed to the game loop over a channel; the watcher goroutine
// never touches viewer state itself.
type ConfigWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	updates chan ConfigLoadResult
	done    chan struct{}
	once    sync.Once
	log     zerolog.Logger
}

// NewConfigWatcher starts watching configPath. The parent directory is
// watched so editors that replace the file are picked up too.
func NewConfigWatcher(configPath string) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	cw := &ConfigWatcher{
		path:    filepath.Clean(configPath),
		watcher: watcher,
		updates: make(chan ConfigLoadResult, 1),
		done:    make(chan struct{}),
		log:     componentLogger("config"),
	}
	go cw.run()
	return cw, nil
}

// Updates delivers the latest reloaded config. Only the newest pending
// reload is kept.
func (cw *ConfigWatcher) Updates() <-chan ConfigLoadResult {
	return cw.updates
}

// Close stops the watcher goroutine
func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.done)
		err = cw.watcher.Close()
	})
	return err
}

func (cw *ConfigWatcher) run() {
	for {
		select {
		case <-cw.done:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			cw.publish(loadConfigFromPath(cw.path))
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.Warn().Err(err).Msg("config watcher error")
		}
	}
}

func (cw *ConfigWatcher) publish(result ConfigLoadResult) {
	cw.log.Info().Str("status", result.Status).Msg("config reloaded")
	for {
		select {
		case cw.updates <- result:
			return
		default:
		}
		// Drop the stale pending reload, then retry
		select {
		case <-cw.updates:
		default:
		}
	}
}
