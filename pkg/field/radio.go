package field

// RadioGroupConfig describes a set of mutually exclusive options.
type RadioGroupConfig struct {
	Name     string
	Label    string
	Value    string
	Choices  []Choice
	Required bool
}

// RadioGroup is a single-choice field rendered as a set of radio buttons.
type RadioGroup struct {
	base
	choices choiceSet
}

// NewRadioGroup validates the option list and constructs the field.
func NewRadioGroup(cfg RadioGroupConfig, opts ...Option) (*RadioGroup, error) {
	choices, err := newChoiceSet(cfg.Choices)
	if err != nil {
		return nil, err
	}
	if err := choices.validSelection(cfg.Value); err != nil {
		return nil, err
	}

	r := &RadioGroup{
		base:    newBase(cfg.Name, cfg.Label, "", WidgetRadio, cfg.Required),
		choices: choices,
	}
	o := newOptions(DefaultDelay, opts)
	ctrlOpts := append(o.controllerOptions(), WithInitialValue(cfg.Value))
	r.ctrl = NewController(r.name, requiredChecker(cfg.Required), ctrlOpts...)
	return r, nil
}

// Choices returns the offered options in order.
func (r *RadioGroup) Choices() []Choice {
	return r.choices.all()
}

// Select checks the option with the given value.
func (r *RadioGroup) Select(value string) error {
	if err := r.choices.validSelection(value); err != nil {
		return err
	}
	r.ctrl.Commit(value)
	return nil
}

// Selected returns the checked option, if any.
func (r *RadioGroup) Selected() (Choice, bool) {
	return r.choices.lookup(r.ctrl.Value())
}

// IsSelected reports whether value is the checked option.
func (r *RadioGroup) IsSelected(value string) bool {
	return value != "" && r.ctrl.Value() == value
}

// State returns the presentational snapshot including the option list.
func (r *RadioGroup) State() State {
	st := r.base.State()
	st.Choices = r.choices.all()
	return st
}
