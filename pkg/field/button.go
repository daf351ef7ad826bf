package field

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ButtonType mirrors the HTML button types.
type ButtonType string

const (
	ButtonTypeButton ButtonType = "button"
	ButtonTypeSubmit ButtonType = "submit"
	ButtonTypeReset  ButtonType = "reset"
)

// ParseButtonType normalises raw, defaulting to ButtonTypeButton.
func ParseButtonType(raw string) (ButtonType, error) {
	switch ButtonType(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ButtonTypeButton:
		return ButtonTypeButton, nil
	case ButtonTypeSubmit:
		return ButtonTypeSubmit, nil
	case ButtonTypeReset:
		return ButtonTypeReset, nil
	default:
		return "", fmt.Errorf("field: unknown button type %q", raw)
	}
}

// ButtonConfig describes an action trigger.
type ButtonConfig struct {
	Name     string
	Label    string
	Type     ButtonType
	Disabled bool
	OnClick  func()
}

// Button triggers an action. It carries no value and never validates.
type Button struct {
	name  string
	label string
	kind  ButtonType

	mu       sync.Mutex
	disabled bool
	onClick  func()
}

// NewButton constructs a button; Type defaults to ButtonTypeButton.
func NewButton(cfg ButtonConfig) *Button {
	kind := cfg.Type
	if kind == "" {
		kind = ButtonTypeButton
	}
	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = WidgetButton + "-" + uuid.NewString()
	}
	return &Button{
		name:     name,
		label:    sanitizeText(cfg.Label),
		kind:     kind,
		disabled: cfg.Disabled,
		onClick:  cfg.OnClick,
	}
}

// Name returns the button name.
func (b *Button) Name() string { return b.name }

// Label returns the plain-text caption.
func (b *Button) Label() string { return b.label }

// Type returns the button type.
func (b *Button) Type() ButtonType { return b.kind }

// Disabled reports whether clicks are ignored.
func (b *Button) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

// SetDisabled toggles the disabled flag.
func (b *Button) SetDisabled(disabled bool) {
	b.mu.Lock()
	b.disabled = disabled
	b.mu.Unlock()
}

// Click runs the handler unless the button is disabled, and reports whether
// the click was delivered.
func (b *Button) Click() bool {
	b.mu.Lock()
	if b.disabled {
		b.mu.Unlock()
		return false
	}
	fn := b.onClick
	b.mu.Unlock()

	if fn != nil {
		fn()
	}
	return true
}

// State returns the presentational snapshot.
func (b *Button) State() State {
	return State{
		ID:     b.name,
		Name:   b.name,
		Label:  b.label,
		Widget: WidgetButton,
		Value:  string(b.kind),
	}
}
