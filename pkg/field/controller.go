package field

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/goliatone/go-formkit/pkg/debounce"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// Phase is the touched state of a field.
type Phase int

const (
	// PhasePristine means the field has not been interacted with yet.
	PhasePristine Phase = iota
	// PhaseTouched is terminal: validation results are surfaced from here on.
	PhaseTouched
)

func (p Phase) String() string {
	switch p {
	case PhaseTouched:
		return "touched"
	default:
		return "pristine"
	}
}

// Checker evaluates a settled value and returns every issue to surface. An
// empty result means the value is acceptable.
type Checker func(value string) []validation.Issue

// ControllerOption configures a Controller.
type ControllerOption func(*controllerConfig)

type controllerConfig struct {
	delay    time.Duration
	clock    debounce.Clock
	logger   *slog.Logger
	initial  string
	onChange []func(string)
}

// WithControllerDelay sets the debounce window.
func WithControllerDelay(d time.Duration) ControllerOption {
	return func(cfg *controllerConfig) {
		cfg.delay = d
	}
}

// WithControllerClock injects the debounce scheduler.
func WithControllerClock(clock debounce.Clock) ControllerOption {
	return func(cfg *controllerConfig) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// WithControllerLogger attaches a logger.
func WithControllerLogger(logger *slog.Logger) ControllerOption {
	return func(cfg *controllerConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithInitialValue seeds both the raw and the debounced value.
func WithInitialValue(value string) ControllerOption {
	return func(cfg *controllerConfig) {
		cfg.initial = value
	}
}

// WithControllerOnChange registers a synchronous change listener.
func WithControllerOnChange(fn func(string)) ControllerOption {
	return func(cfg *controllerConfig) {
		if fn != nil {
			cfg.onChange = append(cfg.onChange, fn)
		}
	}
}

// Controller is the per-field state machine: value changes feed a debouncer,
// and once the field is touched every settled value runs through the checker.
// A Controller is owned by exactly one field; nothing is shared across fields.
type Controller struct {
	mu        sync.Mutex
	name      string
	value     string
	phase     Phase
	issues    []validation.Issue
	check     Checker
	debouncer *debounce.Debouncer[string]
	onChange  []func(string)
	onIssues  []func([]validation.Issue)
	logger    *slog.Logger
	closed    bool
}

// NewController wires a debouncer to check. A nil checker accepts every value.
func NewController(name string, check Checker, options ...ControllerOption) *Controller {
	cfg := controllerConfig{
		delay: DefaultDelay,
		clock: debounce.RuntimeClock(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	c := &Controller{
		name:     name,
		value:    cfg.initial,
		check:    check,
		onChange: cfg.onChange,
		logger:   cfg.logger.With("field", name),
	}
	c.debouncer = debounce.New(cfg.initial, cfg.delay, debounce.WithClock(cfg.clock))
	c.debouncer.OnStable(c.settled)
	return c
}

// Name returns the field name the controller reports under.
func (c *Controller) Name() string {
	return c.name
}

// Change records a new raw value. Change listeners run immediately; the
// checker only sees the value once it has been stable for the delay.
func (c *Controller) Change(value string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.value = value
	listeners := slices.Clone(c.onChange)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(value)
	}
	c.debouncer.Set(value)
}

// Blur marks the field as touched.
func (c *Controller) Blur() {
	c.touch()
}

// Commit is the change path for choice controls: the selection settles
// without waiting for the debounce window and the field becomes touched.
func (c *Controller) Commit(value string) {
	c.Change(value)
	c.debouncer.Flush()
	c.touch()
}

// Flush settles a pending value immediately.
func (c *Controller) Flush() {
	c.debouncer.Flush()
}

// SetChecker replaces the checker. Rules are supplied fresh on every change,
// so a touched field is re-checked right away against the settled value.
func (c *Controller) SetChecker(check Checker) {
	c.mu.Lock()
	c.check = check
	c.mu.Unlock()
	c.Recheck()
}

// Recheck re-runs the checker on the settled value when the field is touched.
func (c *Controller) Recheck() {
	c.mu.Lock()
	if c.closed || c.phase != PhaseTouched {
		c.mu.Unlock()
		return
	}
	c.evaluateAndNotify(c.debouncer.Stable())
}

// OnIssues registers a listener invoked whenever the surfaced issues change.
func (c *Controller) OnIssues(fn func([]validation.Issue)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.onIssues = append(c.onIssues, fn)
	c.mu.Unlock()
}

// OnChange registers a synchronous change listener.
func (c *Controller) OnChange(fn func(string)) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.onChange = append(c.onChange, fn)
	c.mu.Unlock()
}

// Value returns the latest raw value.
func (c *Controller) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Stable returns the debounced value.
func (c *Controller) Stable() string {
	return c.debouncer.Stable()
}

// Pending reports whether a debounced update is outstanding.
func (c *Controller) Pending() bool {
	return c.debouncer.Pending()
}

// Phase returns the touched state.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Touched reports whether the field left the pristine phase.
func (c *Controller) Touched() bool {
	return c.Phase() == PhaseTouched
}

// Issues returns the surfaced issues; always empty while pristine.
func (c *Controller) Issues() []validation.Issue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.issues)
}

// Errors returns the surfaced messages.
func (c *Controller) Errors() []string {
	return validation.Messages(c.Issues())
}

// Error returns the first surfaced message or "".
func (c *Controller) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.issues) == 0 {
		return ""
	}
	return c.issues[0].Message
}

// Close tears the controller down and cancels any pending debounce timer so
// no state is updated after the field is gone.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.closed = true
	c.onChange = nil
	c.onIssues = nil
	c.mu.Unlock()
	c.debouncer.Stop()
	return nil
}

func (c *Controller) touch() {
	c.mu.Lock()
	if c.closed || c.phase == PhaseTouched {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseTouched
	c.logger.Debug("field touched")
	c.evaluateAndNotify(c.debouncer.Stable())
}

func (c *Controller) settled(value string) {
	c.mu.Lock()
	if c.closed || c.phase != PhaseTouched {
		c.mu.Unlock()
		return
	}
	c.evaluateAndNotify(value)
}

// evaluateAndNotify expects c.mu held and releases it before notifying.
func (c *Controller) evaluateAndNotify(value string) {
	var issues []validation.Issue
	if c.check != nil {
		issues = c.check(value)
	}
	if len(issues) == 0 {
		issues = nil
	}

	changed := !slices.Equal(c.issues, issues)
	c.issues = issues
	listeners := slices.Clone(c.onIssues)
	c.mu.Unlock()

	c.logger.Debug("field validated", "issues", len(issues))
	if !changed {
		return
	}
	snapshot := slices.Clone(issues)
	for _, fn := range listeners {
		fn(snapshot)
	}
}
