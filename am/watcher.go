package am

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/teranos/stackgrid/errors"
	"github.com/teranos/stackgrid/logger"
)

// FileWatcher watches a set of files (instance and config) and triggers
// callbacks after writes settle.
type FileWatcher struct {
	watcher        *fsnotify.Watcher
	files          map[string]bool // cleaned absolute paths being watched
	callbacks      []ChangeCallback
	mu             sync.RWMutex
	debounceTimer  *time.Timer
	pending        []string   // changed paths not yet delivered, in arrival order
	fireMu         sync.Mutex // held while callbacks run; one delivery at a time
	debouncePeriod time.Duration
	done           chan struct{}
}

// ChangeCallback is called with the path that changed
type ChangeCallback func(path string) error

// NewFileWatcher creates a watcher for the given files. Parent directories
// are watched so editors that replace files on save are still seen.
func NewFileWatcher(debounce time.Duration, paths ...string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	fw := &FileWatcher{
		watcher:        watcher,
		files:          make(map[string]bool),
		debouncePeriod: debounce,
		done:           make(chan struct{}),
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "failed to resolve %s", p)
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "failed to watch directory %s", dir)
		}
	}

	return fw, nil
}

// OnChange registers a callback to be called when a watched file changes
func (fw *FileWatcher) OnChange(callback ChangeCallback) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	fw.callbacks = append(fw.callbacks, callback)
}

// Start begins watching for file changes
func (fw *FileWatcher) Start() {
	go fw.watchLoop()
}

// watchLoop monitors file system events
func (fw *FileWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}

			if !fw.watches(event.Name) {
				continue
			}

			// Only react to Write or Create events
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				logger.Debugw("File watcher detected change",
					logger.FieldFile, event.Name,
					logger.FieldOp, event.Op.String())
				fw.scheduleChange(event.Name)
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnw("File watcher error", logger.FieldError, err)

		case <-fw.done:
			return
		}
	}
}

func (fw *FileWatcher) watches(name string) bool {
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return fw.files[abs]
}

// scheduleChange debounces rapid file changes and fires the callbacks once
func (fw *FileWatcher) scheduleChange(path string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	queued := false
	for _, p := range fw.pending {
		if p == path {
			queued = true
			break
		}
	}
	if !queued {
		fw.pending = append(fw.pending, path)
	}

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.debounceTimer = time.AfterFunc(fw.debouncePeriod, fw.fire)
}

// fire delivers every pending path. Timers that expire while a delivery is
// running wait on fireMu, so callbacks never overlap and a later change is
// always delivered after an earlier one. A timer that finds nothing pending
// was superseded by the delivery ahead of it.
func (fw *FileWatcher) fire() {
	fw.fireMu.Lock()
	defer fw.fireMu.Unlock()

	fw.mu.Lock()
	paths := fw.pending
	fw.pending = nil
	callbacks := make([]ChangeCallback, len(fw.callbacks))
	copy(callbacks, fw.callbacks)
	fw.mu.Unlock()

	for _, path := range paths {
		for _, callback := range callbacks {
			if err := callback(path); err != nil {
				// Keep calling the rest; one bad render must not stop the watch
				logger.Warnw("File change callback error",
					logger.FieldFile, path,
					logger.FieldError, err)
			}
		}
	}
}

// Stop stops watching for changes
func (fw *FileWatcher) Stop() error {
	fw.mu.Lock()
	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.mu.Unlock()

	select {
	case <-fw.done:
	default:
		close(fw.done)
	}
	return fw.watcher.Close()
}
