package reveal

import (
	"testing"
	"time"
)

func TestBindCancelsPreviousRun(t *testing.T) {
	target := &fakeTarget{}
	first := &manualScheduler{}
	second := &manualScheduler{}
	b := NewBinder()

	if _, err := b.Bind(target, driverConfig(), Options{Scheduler: first}); err != nil {
		t.Fatalf("first Bind failed: %v", err)
	}
	first.fire(base)

	// Re-binding the same target (text changed) must stop the old loop
	// before the new one starts.
	cfg := driverConfig()
	cfg.Text = "WORLD"
	cancel, err := b.Bind(target, cfg, Options{Scheduler: second})
	if err != nil {
		t.Fatalf("second Bind failed: %v", err)
	}
	defer cancel()

	if first.fire(base.Add(50 * time.Millisecond)) {
		t.Fatal("previous run still scheduled after rebind")
	}

	second.fire(base)
	second.fire(base.Add(100 * time.Millisecond))
	if target.lastWrite() != "WORLD" {
		t.Fatalf("rebound run final write = %q, want %q", target.lastWrite(), "WORLD")
	}
}

func TestStaleCancelDoesNotUnbindSuccessor(t *testing.T) {
	target := &fakeTarget{}
	scheds := []*manualScheduler{{}, {}, {}}
	b := NewBinder()

	cancel1, err := b.Bind(target, driverConfig(), Options{Scheduler: scheds[0]})
	if err != nil {
		t.Fatalf("first Bind failed: %v", err)
	}
	if _, err := b.Bind(target, driverConfig(), Options{Scheduler: scheds[1]}); err != nil {
		t.Fatalf("second Bind failed: %v", err)
	}

	// A cancel held over from the replaced run must not erase the second
	// run's binding.
	cancel1()

	cfg := driverConfig()
	cfg.Text = "WORLD"
	cancel3, err := b.Bind(target, cfg, Options{Scheduler: scheds[2]})
	if err != nil {
		t.Fatalf("third Bind failed: %v", err)
	}
	defer cancel3()

	if scheds[1].fire(base) {
		t.Fatal("replaced run still scheduled: two loops share one target")
	}

	scheds[2].fire(base)
	scheds[2].fire(base.Add(100 * time.Millisecond))
	if target.lastWrite() != "WORLD" {
		t.Fatalf("surviving run final write = %q, want %q", target.lastWrite(), "WORLD")
	}
}

func TestBinderCancelClearsBinding(t *testing.T) {
	target := &fakeTarget{}
	sched := &manualScheduler{}
	b := NewBinder()

	cancel, err := b.Bind(target, driverConfig(), Options{Scheduler: sched})
	if err != nil {
		t.Fatalf("Bind failed: %v", err)
	}

	cancel()
	cancel()

	if sched.fire(base) {
		t.Fatal("frame fired after binder cancel")
	}
}

func TestReleaseAllStopsEverything(t *testing.T) {
	b := NewBinder()
	targets := []*fakeTarget{{}, {}}
	scheds := []*manualScheduler{{}, {}}

	for i := range targets {
		if _, err := b.Bind(targets[i], driverConfig(), Options{Scheduler: scheds[i]}); err != nil {
			t.Fatalf("Bind %d failed: %v", i, err)
		}
	}

	b.ReleaseAll()
	b.ReleaseAll()

	for i, sched := range scheds {
		if sched.fire(base) {
			t.Fatalf("run %d still scheduled after ReleaseAll", i)
		}
	}
}
