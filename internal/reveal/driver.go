package reveal

import (
	"sync"
	"time"

	"github.com/texteffects/scramble/internal/logging"
)

// Target is anything with settable plain-text content. The driver never
// writes markup to it.
type Target interface {
	SetText(text string) error
}

// Scheduler queues a single frame callback and returns a handle that
// deschedules it. Implementations must not invoke fn synchronously from
// Schedule; the driver re-schedules from inside the callback.
type Scheduler interface {
	Schedule(fn func(now time.Time)) (cancel func())
}

// Visibility is an externally-owned boolean gate. The driver reads it every
// frame and never writes it.
type Visibility interface {
	Visible() bool
}

// CancelFunc stops a running animation. It is idempotent: the first call
// deschedules any pending frame and releases the run; later calls are no-ops.
// No write to the target happens after it returns.
type CancelFunc func()

// DefaultFrameInterval is the frame rate used when Options leaves both
// Scheduler and FrameInterval unset.
const DefaultFrameInterval = 33 * time.Millisecond

// Options tunes how Start binds a run to its surroundings.
type Options struct {
	// Scheduler supplies frame callbacks. Nil gets a timer scheduler at
	// FrameInterval.
	Scheduler Scheduler

	// FrameInterval configures the default timer scheduler. Ignored when
	// Scheduler is set.
	FrameInterval time.Duration

	// Visibility gates the run. While it reports false the run holds its
	// last frame and the reveal clock pauses; nil means always visible.
	Visibility Visibility

	// OnComplete fires exactly once when a once-mode run reaches its final
	// text, after that text has been written to the target.
	OnComplete func()
}

type driver struct {
	mu          sync.Mutex
	run         *Run
	target      Target
	sched       Scheduler
	vis         Visibility
	onComplete  func()
	active      bool
	cancelFrame func()
	hiddenSince time.Time
}

// Start validates cfg, writes a fully-scrambled pre-render to target, and
// begins the frame loop. The returned CancelFunc owns cleanup on every path;
// callers may invoke it any number of times.
func Start(target Target, cfg Config, opts Options) (CancelFunc, error) {
	run, err := NewRun(cfg)
	if err != nil {
		return nil, err
	}

	sched := opts.Scheduler
	if sched == nil {
		interval := opts.FrameInterval
		if interval <= 0 {
			interval = DefaultFrameInterval
		}
		sched = NewTimerScheduler(interval)
	}

	d := &driver{
		run:        run,
		target:     target,
		sched:      sched,
		vis:        opts.Visibility,
		onComplete: opts.OnComplete,
		active:     true,
	}

	// Synchronous pre-render so there is no flash of final or empty content
	// before the first scheduled frame.
	if err := target.SetText(run.Prerender()); err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.scheduleLocked()
	d.mu.Unlock()
	return d.cancel, nil
}

// tick is the per-frame callback. At most one is pending at any moment.
func (d *driver) tick(now time.Time) {
	d.mu.Lock()
	if !d.active {
		d.mu.Unlock()
		return
	}
	d.cancelFrame = nil

	if d.vis != nil && !d.vis.Visible() {
		// Hold the last frame; remember when we went dark so the reveal
		// clock can be rebased on resume.
		if d.hiddenSince.IsZero() {
			d.hiddenSince = now
		}
		d.scheduleLocked()
		d.mu.Unlock()
		return
	}
	if !d.hiddenSince.IsZero() {
		d.run.Rebase(now.Sub(d.hiddenSince))
		d.hiddenSince = time.Time{}
	}

	display, cont := d.run.Frame(now)
	if err := d.target.SetText(display); err != nil {
		// Target loss mid-run is absorbed by cancelling, not surfaced.
		logging.Debug("reveal: target write failed, cancelling run: %v", err)
		d.releaseLocked()
		d.mu.Unlock()
		return
	}

	if !cont {
		d.releaseLocked()
		done := d.onComplete
		d.onComplete = nil
		d.mu.Unlock()
		if done != nil {
			done()
		}
		return
	}

	d.scheduleLocked()
	d.mu.Unlock()
}

func (d *driver) cancel() {
	d.mu.Lock()
	d.releaseLocked()
	d.mu.Unlock()
}

func (d *driver) releaseLocked() {
	d.active = false
	if d.cancelFrame != nil {
		d.cancelFrame()
		d.cancelFrame = nil
	}
}

func (d *driver) scheduleLocked() {
	d.cancelFrame = d.sched.Schedule(d.tick)
}
