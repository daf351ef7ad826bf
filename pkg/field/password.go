package field

import (
	"sync"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// PasswordConfig describes a password field using the multi-flag policy:
// every active strength violation is surfaced at once.
type PasswordConfig struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	Required    bool
	Policy      validation.PasswordPolicy
}

// Password is a masked input with independent strength flags.
type Password struct {
	base

	mu      sync.Mutex
	policy  validation.PasswordPolicy
	visible bool
}

// NewPassword constructs a password field. Label and placeholder default to
// "Password" and "Enter your password"; the debounce window to PasswordDelay.
func NewPassword(cfg PasswordConfig, opts ...Option) *Password {
	label := cfg.Label
	if label == "" {
		label = "Password"
	}
	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = "Enter your password"
	}
	policy := cfg.Policy
	if policy == (validation.PasswordPolicy{}) {
		policy = validation.DefaultPasswordPolicy()
	}

	p := &Password{
		base:   newBase(cfg.Name, label, placeholder, WidgetPassword, cfg.Required),
		policy: policy,
	}

	o := newOptions(PasswordDelay, opts)
	ctrlOpts := append(o.controllerOptions(), WithInitialValue(cfg.Value))
	p.ctrl = NewController(p.name, func(value string) []validation.Issue {
		return validation.CheckPassword(value, cfg.Required, policy).Issues()
	}, ctrlOpts...)
	return p
}

// Change records a keystroke-level value change.
func (p *Password) Change(value string) {
	p.ctrl.Change(value)
}

// Report evaluates the strength flags for the settled value.
func (p *Password) Report() validation.PasswordReport {
	return validation.CheckPassword(p.ctrl.Stable(), p.required, p.policy)
}

// ToggleVisibility flips between masked and plain display.
func (p *Password) ToggleVisibility() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible = !p.visible
	return p.visible
}

// Visible reports whether the value is displayed in plain text.
func (p *Password) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.visible
}

// State returns the presentational snapshot. The widget switches to text
// while the value is visible.
func (p *Password) State() State {
	st := p.base.State()
	if p.Visible() {
		st.Widget = WidgetText
	}
	return st
}
