package reveal

import "sync"

// Binder tracks at most one active run per target. Re-binding a target (new
// text, new config) cancels the previous run before the next one starts, so
// two frame loops never write to the same target.
type Binder struct {
	mu     sync.Mutex
	active map[Target]*binding
}

// binding identifies one bound run. The identity matters: a stale CancelFunc
// from a replaced run must not clear the binding of its successor.
type binding struct {
	cancel CancelFunc
}

// NewBinder returns an empty binder.
func NewBinder() *Binder {
	return &Binder{active: make(map[Target]*binding)}
}

// Bind starts a run for target, cancelling any previous run bound to the
// same target first. The returned CancelFunc also clears the binding, but
// only while this run still owns it.
func (b *Binder) Bind(target Target, cfg Config, opts Options) (CancelFunc, error) {
	b.mu.Lock()
	prev := b.active[target]
	delete(b.active, target)
	b.mu.Unlock()
	if prev != nil {
		prev.cancel()
	}

	cancel, err := Start(target, cfg, opts)
	if err != nil {
		return nil, err
	}

	entry := &binding{cancel: cancel}
	b.mu.Lock()
	b.active[target] = entry
	b.mu.Unlock()

	return func() {
		cancel()
		b.mu.Lock()
		if b.active[target] == entry {
			delete(b.active, target)
		}
		b.mu.Unlock()
	}, nil
}

// ReleaseAll cancels every active run. Safe to call repeatedly.
func (b *Binder) ReleaseAll() {
	b.mu.Lock()
	cancels := make([]CancelFunc, 0, len(b.active))
	for _, entry := range b.active {
		cancels = append(cancels, entry.cancel)
	}
	b.active = make(map[Target]*binding)
	b.mu.Unlock()

	for _, c := range cancels {
		c()
	}
}
