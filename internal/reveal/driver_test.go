package reveal

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"
)

// manualScheduler lets tests fire frame callbacks deterministically.
type manualScheduler struct {
	mu        sync.Mutex
	pending   func(time.Time)
	scheduled int
	cancelled int
}

func (s *manualScheduler) Schedule(fn func(now time.Time)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = fn
	s.scheduled++
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.pending = nil
		s.cancelled++
	}
}

// fire invokes the pending callback, if any, and reports whether one ran.
func (s *manualScheduler) fire(now time.Time) bool {
	s.mu.Lock()
	fn := s.pending
	s.pending = nil
	s.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(now)
	return true
}

type fakeTarget struct {
	mu       sync.Mutex
	writes   []string
	failFrom int // fail writes once len(writes) reaches this; 0 disables
}

func (f *fakeTarget) SetText(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFrom > 0 && len(f.writes) >= f.failFrom {
		return errors.New("target detached")
	}
	f.writes = append(f.writes, text)
	return nil
}

func (f *fakeTarget) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

func (f *fakeTarget) lastWrite() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.writes) == 0 {
		return ""
	}
	return f.writes[len(f.writes)-1]
}

type fakeVisibility struct {
	mu      sync.Mutex
	visible bool
}

func (v *fakeVisibility) Visible() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visible
}

func (v *fakeVisibility) set(visible bool) {
	v.mu.Lock()
	v.visible = visible
	v.mu.Unlock()
}

func driverConfig() Config {
	return Config{
		Text:     "HELLO",
		Alphabet: []rune("xy"),
		Duration: 100 * time.Millisecond,
		Tick:     10 * time.Millisecond,
		Mode:     ModeOnce,
		Policy:   PolicyProgressLength,
		Rand:     rand.New(rand.NewSource(7)),
	}
}

func TestStartWritesPrerenderSynchronously(t *testing.T) {
	sched := &manualScheduler{}
	target := &fakeTarget{}

	cancel, err := Start(target, driverConfig(), Options{Scheduler: sched})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cancel()

	if target.writeCount() != 1 {
		t.Fatalf("expected exactly one pre-render write, got %d", target.writeCount())
	}
	if !allFrom(target.lastWrite(), "xy") {
		t.Fatalf("pre-render must be fully scrambled, got %q", target.lastWrite())
	}
	if sched.scheduled != 1 {
		t.Fatalf("expected one scheduled frame after Start, got %d", sched.scheduled)
	}
}

func TestStartRejectsInvalidConfig(t *testing.T) {
	target := &fakeTarget{}
	cfg := driverConfig()
	cfg.Alphabet = nil

	if _, err := Start(target, cfg, Options{Scheduler: &manualScheduler{}}); !errors.Is(err, ErrEmptyAlphabet) {
		t.Fatalf("expected ErrEmptyAlphabet, got %v", err)
	}
	if target.writeCount() != 0 {
		t.Fatal("invalid config must not write to the target")
	}
}

func TestRunToCompletion(t *testing.T) {
	sched := &manualScheduler{}
	target := &fakeTarget{}
	var completions int

	cancel, err := Start(target, driverConfig(), Options{
		Scheduler:  sched,
		OnComplete: func() { completions++ },
	})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cancel()

	sched.fire(base)
	sched.fire(base.Add(50 * time.Millisecond))
	sched.fire(base.Add(100 * time.Millisecond))

	if target.lastWrite() != "HELLO" {
		t.Fatalf("final write = %q, want %q", target.lastWrite(), "HELLO")
	}
	if completions != 1 {
		t.Fatalf("completion fired %d times, want 1", completions)
	}
	if sched.fire(base.Add(200 * time.Millisecond)) {
		t.Fatal("a frame was still scheduled after completion")
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	sched := &manualScheduler{}
	target := &fakeTarget{}

	cancel, err := Start(target, driverConfig(), Options{Scheduler: sched})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	sched.fire(base)
	writes := target.writeCount()

	cancel()
	cancel()
	cancel()

	if sched.fire(base.Add(50 * time.Millisecond)) {
		t.Fatal("frame fired after cancel")
	}
	if target.writeCount() != writes {
		t.Fatalf("writes after cancel: %d, want %d", target.writeCount(), writes)
	}
}

func TestQueuedFrameDoesNotWriteAfterCancel(t *testing.T) {
	sched := &manualScheduler{}
	target := &fakeTarget{}

	cancel, err := Start(target, driverConfig(), Options{Scheduler: sched})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	// Simulate a callback already pulled off the queue when cancel lands.
	sched.mu.Lock()
	queued := sched.pending
	sched.mu.Unlock()

	cancel()
	writes := target.writeCount()
	queued(base)

	if target.writeCount() != writes {
		t.Fatal("queued frame wrote to the target after cancel returned")
	}
}

func TestHiddenRunNeverWrites(t *testing.T) {
	sched := &manualScheduler{}
	target := &fakeTarget{}
	vis := &fakeVisibility{visible: false}

	cancel, err := Start(target, driverConfig(), Options{Scheduler: sched, Visibility: vis})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cancel()

	for i := 0; i < 10; i++ {
		if !sched.fire(base.Add(time.Duration(i) * 20 * time.Millisecond)) {
			t.Fatalf("driver stopped rescheduling while hidden at frame %d", i)
		}
	}

	// Only the synchronous pre-render; no timestamp-derived content.
	if target.writeCount() != 1 {
		t.Fatalf("hidden run wrote %d times, want 1 (pre-render only)", target.writeCount())
	}
}

func TestHiddenTimeDoesNotCountAgainstReveal(t *testing.T) {
	sched := &manualScheduler{}
	target := &fakeTarget{}
	vis := &fakeVisibility{visible: true}

	cancel, err := Start(target, driverConfig(), Options{Scheduler: sched, Visibility: vis})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cancel()

	sched.fire(base)

	vis.set(false)
	sched.fire(base.Add(20 * time.Millisecond))
	sched.fire(base.Add(400 * time.Millisecond))
	vis.set(true)

	// 430ms of wall time, but 380ms of it hidden: the run resumes at ~50ms
	// of reveal instead of completing.
	sched.fire(base.Add(430 * time.Millisecond))
	last := target.lastWrite()
	if last == "HELLO" {
		t.Fatal("hidden time counted against the reveal clock")
	}
	if rev := revealedPositions(last, "HELLO"); !rev[0] {
		t.Fatalf("reveal did not resume after visibility returned: %q", last)
	}
}

func TestTargetLossCancelsRun(t *testing.T) {
	sched := &manualScheduler{}
	target := &fakeTarget{failFrom: 2}

	cancel, err := Start(target, driverConfig(), Options{Scheduler: sched})
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer cancel()

	sched.fire(base)                           // write 2 succeeds
	sched.fire(base.Add(20 * time.Millisecond)) // write fails, run cancels

	if sched.fire(base.Add(40 * time.Millisecond)) {
		t.Fatal("driver kept scheduling after target loss")
	}
}

func TestTimerSchedulerCancelStopsCallback(t *testing.T) {
	sched := NewTimerScheduler(5 * time.Millisecond)
	fired := make(chan struct{}, 1)

	cancel := sched.Schedule(func(time.Time) { fired <- struct{}{} })
	cancel()

	select {
	case <-fired:
		t.Fatal("cancelled timer frame still fired")
	case <-time.After(30 * time.Millisecond):
	}
}
