package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type ChangeEvent struct {
	Path      string
	Timestamp time.Time
}

// Watcher reports writes to a fixed set of files. It watches the parent
// directories so that editors which save by rename are still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debounce  time.Duration

	mu    sync.Mutex
	files map[string]bool
}

// New creates a Watcher. A zero debounce emits one ChangeEvent per
// filesystem event.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsw,
		debounce:  debounce,
		files:     make(map[string]bool),
	}, nil
}

// AddFile starts watching path. The file does not need to exist yet.
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if err := w.fsWatcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	w.mu.Lock()
	w.files[abs] = true
	w.mu.Unlock()
	return nil
}

// Watch returns a channel that emits change events for the added files.
func (w *Watcher) Watch(ctx context.Context) <-chan ChangeEvent {
	out := make(chan ChangeEvent)

	go func() {
		defer close(out)

		var pending *time.Timer
		var lastPath string
		fire := make(chan struct{}, 1)

		emit := func(path string) bool {
			select {
			case out <- ChangeEvent{Path: path, Timestamp: time.Now()}:
				return true
			case <-ctx.Done():
				return false
			}
		}

		for {
			select {
			case <-ctx.Done():
				if pending != nil {
					pending.Stop()
				}
				return

			case <-fire:
				if !emit(lastPath) {
					return
				}

			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}

				if !w.shouldWatch(event.Name) {
					continue
				}

				// Write for in-place saves, Create and Rename for atomic ones.
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}

				if w.debounce <= 0 {
					if !emit(event.Name) {
						return
					}
					continue
				}

				lastPath = event.Name
				if pending != nil {
					pending.Stop()
				}
				pending = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})

			case _, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return out
}

func (w *Watcher) shouldWatch(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[abs]
}

func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
