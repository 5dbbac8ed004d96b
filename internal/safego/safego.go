package safego

import (
	"runtime/debug"

	"github.com/texteffects/scramble/internal/logging"
)

// Run executes fn and converts panics into logged errors. An animation frame
// or watcher callback that panics must never take down the terminal session.
// This does not recover from runtime-fatal errors (e.g., concurrent map writes).
func Run(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			label := name
			if label == "" {
				label = "goroutine"
			}
			logging.Error("panic in %s: %v\n%s", label, r, debug.Stack())
		}
	}()
	fn()
}

// Go runs fn in a new goroutine with panic recovery.
func Go(name string, fn func()) {
	go Run(name, fn)
}
