package field

import (
	"sync"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// InputConfig describes a text, email, number or password input using the
// single-message policy: only the first failing rule is surfaced.
type InputConfig struct {
	Name        string
	Label       string
	Kind        validation.FieldKind
	Placeholder string
	Value       string
	Rules       validation.RuleSet
}

// Input is a single-line text style field.
type Input struct {
	base

	mu    sync.Mutex
	kind  validation.FieldKind
	rules validation.RuleSet
}

// NewInput constructs an input. The placeholder defaults to "Enter {label}".
func NewInput(cfg InputConfig, opts ...Option) *Input {
	kind := cfg.Kind
	if kind == "" {
		kind = validation.KindText
	}
	placeholder := cfg.Placeholder
	if placeholder == "" && cfg.Label != "" {
		placeholder = "Enter " + cfg.Label
	}

	in := &Input{
		base:  newBase(cfg.Name, cfg.Label, placeholder, string(kind), cfg.Rules.Required),
		kind:  kind,
		rules: cfg.Rules,
	}

	o := newOptions(DefaultDelay, opts)
	ctrlOpts := append(o.controllerOptions(), WithInitialValue(cfg.Value))
	in.ctrl = NewController(in.name, inputChecker(cfg.Rules, kind), ctrlOpts...)
	return in
}

// Kind returns the validation branch of the input.
func (in *Input) Kind() validation.FieldKind {
	return in.kind
}

// Rules returns the current rule set.
func (in *Input) Rules() validation.RuleSet {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.rules
}

// SetRules swaps the rule set; a touched field is re-checked immediately.
func (in *Input) SetRules(rules validation.RuleSet) {
	in.mu.Lock()
	in.rules = rules
	in.mu.Unlock()
	in.ctrl.SetChecker(inputChecker(rules, in.kind))
}

// Required reports whether the current rules mark the input as required.
func (in *Input) Required() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.rules.Required
}

// Change records a keystroke-level value change.
func (in *Input) Change(value string) {
	in.ctrl.Change(value)
}

// State returns the presentational snapshot.
func (in *Input) State() State {
	st := in.base.State()
	st.Required = in.Required()
	return st
}

func inputChecker(rules validation.RuleSet, kind validation.FieldKind) Checker {
	return func(value string) []validation.Issue {
		if issue, ok := validation.Validate(value, rules, kind); !ok {
			return []validation.Issue{issue}
		}
		if issue, ok := validation.MatchPattern(value, rules, kind); !ok {
			return []validation.Issue{issue}
		}
		return nil
	}
}
