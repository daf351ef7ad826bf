package field

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-formkit/pkg/debounce"
)

// Default debounce windows per unit family.
const (
	DefaultDelay  = 800 * time.Millisecond
	SearchDelay   = 300 * time.Millisecond
	PasswordDelay = 400 * time.Millisecond
)

// Option configures the infrastructure shared by every field unit.
type Option func(*options)

type options struct {
	delay    time.Duration
	clock    debounce.Clock
	logger   *slog.Logger
	onChange []func(string)
	now      func() time.Time
}

func newOptions(delay time.Duration, opts []Option) options {
	cfg := options{
		delay: delay,
		clock: debounce.RuntimeClock(),
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

// WithDelay overrides the unit's default debounce window.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		o.delay = d
	}
}

// WithClock injects the scheduler driving the debounce timers.
func WithClock(clock debounce.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithLogger attaches a structured logger for state transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithOnChange registers a listener invoked synchronously on every change.
func WithOnChange(fn func(string)) Option {
	return func(o *options) {
		if fn != nil {
			o.onChange = append(o.onChange, fn)
		}
	}
}

// WithNow overrides the wall clock used by the date picker.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func (o options) controllerOptions() []ControllerOption {
	out := []ControllerOption{
		WithControllerDelay(o.delay),
		WithControllerClock(o.clock),
		WithControllerLogger(o.logger),
	}
	for _, fn := range o.onChange {
		out = append(out, WithControllerOnChange(fn))
	}
	return out
}
