package debounce

import (
	"sync"
	"time"
)

// Option configures a Debouncer.
type Option func(*config)

type config struct {
	clock Clock
}

// WithClock overrides the scheduler used for pending updates.
func WithClock(clock Clock) Option {
	return func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// Debouncer holds the last raw and last stable value of a binding. Set
// restarts the quiet window; the stable value only changes when a timer fires
// without being cancelled.
type Debouncer[T comparable] struct {
	mu        sync.Mutex
	clock     Clock
	delay     time.Duration
	raw       T
	stable    T
	timer     Timer
	gen       uint64
	stopped   bool
	listeners []func(T)
}

// New returns a Debouncer whose raw and stable values both start at initial.
// A non-positive delay settles every Set synchronously.
func New[T comparable](initial T, delay time.Duration, options ...Option) *Debouncer[T] {
	cfg := config{clock: RuntimeClock()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Debouncer[T]{
		clock:  cfg.clock,
		delay:  delay,
		raw:    initial,
		stable: initial,
	}
}

// Delay reports the configured quiet window.
func (d *Debouncer[T]) Delay() time.Duration {
	return d.delay
}

// OnStable registers a listener invoked whenever the stable value changes.
// Listeners run on the goroutine that settled the value, outside any lock.
func (d *Debouncer[T]) OnStable(fn func(T)) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	d.listeners = append(d.listeners, fn)
	d.mu.Unlock()
}

// Set records a new raw value, cancels the outstanding timer and schedules a
// fresh one. Calls after Stop are ignored.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.raw = value
	d.cancelLocked()

	if d.delay <= 0 {
		d.settleLocked(value)
		return
	}

	gen := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.fire(gen)
	})
	d.mu.Unlock()
}

// Flush settles the pending raw value immediately. It is a no-op when nothing
// is pending.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	if d.stopped || d.timer == nil {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	d.settleLocked(d.raw)
}

// Stable returns the last settled value.
func (d *Debouncer[T]) Stable() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stable
}

// Raw returns the most recent value passed to Set.
func (d *Debouncer[T]) Raw() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raw
}

// Pending reports whether a timer is outstanding.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Stop tears the binding down: the pending timer is cancelled and no listener
// fires afterwards. Stop is idempotent.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	d.cancelLocked()
	d.listeners = nil
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// a newer Set or Stop invalidated this timer after it was already due
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.settleLocked(d.raw)
}

func (d *Debouncer[T]) cancelLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// settleLocked expects d.mu held and releases it before notifying.
func (d *Debouncer[T]) settleLocked(value T) {
	d.timer = nil
	if value == d.stable {
		d.mu.Unlock()
		return
	}
	d.stable = value
	listeners := make([]func(T), len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
}
