// Package watch reloads the animation source text when its file changes.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/texteffects/scramble/internal/logging"
	"github.com/texteffects/scramble/internal/safego"
)

// TextWatcher watches one text file and reports its contents after each
// change, debounced. Editors save atomically (write temp file, then rename),
// and fsnotify watches inodes, so the parent directory is watched rather
// than the file itself.
type TextWatcher struct {
	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	path      string
	onChanged func(text string)
	onError   func(err error)
	debounce  time.Duration
	timer     *time.Timer
	closeOnce sync.Once
}

// NewTextWatcher starts watching path. onChanged receives the trimmed file
// contents after each debounced change; onError reports watcher failures and
// may be nil.
func NewTextWatcher(path string, onChanged func(text string), onError func(err error)) (*TextWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &TextWatcher{
		watcher:   fw,
		path:      abs,
		onChanged: onChanged,
		onError:   onError,
		debounce:  200 * time.Millisecond,
	}

	safego.Go("text-watcher", w.loop)
	return w, nil
}

func (w *TextWatcher) loop() {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Warn("text watcher error: %v", err)
			if w.onError != nil {
				w.onError(err)
			}
		}
	}
}

// scheduleReload collapses bursts of events into one reload.
func (w *TextWatcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		safego.Run("text-reload", w.reload)
	})
}

func (w *TextWatcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		// The file may be mid-rename; the next event retries.
		logging.Debug("text reload skipped: %v", err)
		return
	}
	w.onChanged(strings.TrimRight(string(data), "\n"))
}

// Close stops the watcher. Safe to call repeatedly.
func (w *TextWatcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}
