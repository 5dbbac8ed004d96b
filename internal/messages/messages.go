// Package messages defines the bubbletea messages shared between the app
// shell and the effect component.
package messages

// TextChanged is sent when the watched source file produced new text. The
// app rebinds the running animation to the new content.
type TextChanged struct {
	Text string
}

// WatchFailed is sent when the source file watcher stops working.
type WatchFailed struct {
	Err error
}

// RevealCompleted is sent after a once-mode run has written its final text.
type RevealCompleted struct{}

// Error is a generic failure message for display and logging.
type Error struct {
	Err     error
	Context string
	Logged  bool // true when the sender already wrote it to the log
}
