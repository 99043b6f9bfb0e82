package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceWindow = 100 * time.Millisecond

// Watcher reports edits to prefab yaml and scenario scripts so tuning
// can be reloaded live. Bursts of events for one file (editors write,
// rename, and chmod in quick succession) collapse into a single report.
type Watcher struct {
	fs   *fsnotify.Watcher
	done chan struct{}
	once sync.Once

	// Events carries paths of changed prefab files; Errors surfaces
	// watcher failures. Both close with the Watcher.
	Events chan string
	Errors chan error
}

// NewWatcher watches the given directories for prefab changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:     fs,
		done:   make(chan struct{}),
		Events: make(chan string, 16),
		Errors: make(chan error, 1),
	}
	go w.pump()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
		close(w.Events)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) pump() {
	seen := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !changes(event.Op) || !watchable(event.Name) {
				continue
			}
			now := time.Now()
			if last, ok := seen[event.Name]; ok && now.Sub(last) < debounceWindow {
				continue
			}
			seen[event.Name] = now
			select {
			case w.Events <- event.Name:
			default: // receiver stalled; the next edit re-reports
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.done:
			return
		}
	}
}

func changes(op fsnotify.Op) bool {
	return op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

func watchable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".tengo":
		return true
	}
	return false
}
