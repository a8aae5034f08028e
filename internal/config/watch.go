package config

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the configuration whenever the file changes on disk, so
// tuning constants can be adjusted while a phone is connected. The returned
// stop function releases the watcher.
func (m *Manager) Watch() (stop func() error, err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors replace config files by
	// rename, which drops a file-level watch.
	if err := watcher.Add(filepath.Dir(m.configPath)); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(m.configPath) {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := m.Load(); err != nil {
					m.log.Warnf("reload failed: %v", err)
					continue
				}
				m.log.Infof("configuration reloaded from %s", m.configPath)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				m.log.Warnf("watch error: %v", err)
			}
		}
	}()

	return watcher.Close, nil
}
