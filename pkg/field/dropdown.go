package field

// DefaultDropdownPlaceholder is the label of the empty leading option.
const DefaultDropdownPlaceholder = "Select an option"

// DropdownConfig describes a single-select list.
type DropdownConfig struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	Choices     []Choice
	Required    bool
}

// Dropdown is a single-select field. It becomes touched on its first
// committed selection.
type Dropdown struct {
	base
	choices choiceSet
}

// NewDropdown validates the option list and constructs the field.
func NewDropdown(cfg DropdownConfig, opts ...Option) (*Dropdown, error) {
	choices, err := newChoiceSet(cfg.Choices)
	if err != nil {
		return nil, err
	}
	if err := choices.validSelection(cfg.Value); err != nil {
		return nil, err
	}
	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = DefaultDropdownPlaceholder
	}

	d := &Dropdown{
		base:    newBase(cfg.Name, cfg.Label, placeholder, WidgetDropdown, cfg.Required),
		choices: choices,
	}
	o := newOptions(DefaultDelay, opts)
	ctrlOpts := append(o.controllerOptions(), WithInitialValue(cfg.Value))
	d.ctrl = NewController(d.name, requiredChecker(cfg.Required), ctrlOpts...)
	return d, nil
}

// Choices returns the offered options in order.
func (d *Dropdown) Choices() []Choice {
	return d.choices.all()
}

// Select commits a choice; "" returns the list to its placeholder.
func (d *Dropdown) Select(value string) error {
	if err := d.choices.validSelection(value); err != nil {
		return err
	}
	d.ctrl.Commit(value)
	return nil
}

// Selected returns the chosen option, if any.
func (d *Dropdown) Selected() (Choice, bool) {
	return d.choices.lookup(d.ctrl.Value())
}

// State returns the presentational snapshot including the option list.
func (d *Dropdown) State() State {
	st := d.base.State()
	st.Choices = d.choices.all()
	return st
}
