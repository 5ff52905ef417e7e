// Package watcher reports changes to a single file made by other processes,
// such as a second promptdeck instance rewriting the history slot.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Event describes what happened to the watched file.
type Event int

const (
	// Changed means the file was written, created or renamed into place.
	Changed Event = iota
	// Deleted means the file is gone.
	Deleted
)

func (e Event) String() string {
	if e == Deleted {
		return "deleted"
	}
	return "changed"
}

// Watcher monitors a file and calls onEvent after a quiet period.
// It watches the parent directory because atomic writers replace the file
// via rename and fsnotify cannot watch a file that does not exist yet.
type Watcher struct {
	targetPath string
	parentPath string
	onEvent    func(Event)
	watcher    *fsnotify.Watcher
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	running    bool
	debounce   time.Duration
}

// New creates a Watcher for targetPath.
func New(targetPath string, onEvent func(Event)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		targetPath: filepath.Clean(targetPath),
		parentPath: filepath.Dir(filepath.Clean(targetPath)),
		onEvent:    onEvent,
		watcher:    fsw,
		ctx:        ctx,
		cancel:     cancel,
		debounce:   100 * time.Millisecond,
	}, nil
}

// SetDebounce changes the quiet period. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Start begins watching.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addWatch(); err != nil {
		return err
	}

	go w.watchLoop()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	w.cancel()
	return w.watcher.Close()
}

func (w *Watcher) addWatch() error {
	if _, err := os.Stat(w.parentPath); err != nil {
		return err
	}
	return w.watcher.Add(w.parentPath)
}

func (w *Watcher) watchLoop() {
	var timer *time.Timer
	fire := func(ev Event) {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(w.debounce, func() {
			w.dispatch(ev)
		})
	}

	for {
		select {
		case <-w.ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.targetPath {
				continue
			}

			switch {
			case event.Op&fsnotify.Remove != 0:
				fire(Deleted)
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				fire(Changed)
			case event.Op&fsnotify.Rename != 0:
				// renamed away; a replacement usually follows as Create
				fire(Deleted)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Str("path", w.targetPath).Msg("Watcher error")
		}
	}
}

func (w *Watcher) dispatch(ev Event) {
	if w.ctx.Err() != nil {
		return
	}
	log.Debug().Str("path", w.targetPath).Stringer("event", ev).Msg("Watched file event")
	if w.onEvent != nil {
		w.onEvent(ev)
	}
}
