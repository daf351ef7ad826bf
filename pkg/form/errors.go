package form

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicateField is returned when two fields or buttons share a name.
	ErrDuplicateField = errors.New("form: duplicate field name")
	// ErrSubmitInProgress is returned when Submit is re-entered while the
	// submit callback is still running.
	ErrSubmitInProgress = errors.New("form: submission already in progress")
	// ErrUnknownButton is returned by Press for names that were never added.
	ErrUnknownButton = errors.New("form: unknown button")
	// ErrButtonDisabled is returned by Press when the button ignores clicks.
	ErrButtonDisabled = errors.New("form: button is disabled")
)

// FieldError is one gate failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SubmitError reports every empty required field of a blocked submission.
type SubmitError struct {
	Fields []FieldError `json:"fields"`
}

func (e *SubmitError) Error() string {
	return "form: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the failure messages in field order.
func (e *SubmitError) Messages() []string {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		out = append(out, fe.Message)
	}
	return out
}

// Has reports whether name failed the gate.
func (e *SubmitError) Has(name string) bool {
	if e == nil {
		return false
	}
	for _, fe := range e.Fields {
		if fe.Field == name {
			return true
		}
	}
	return false
}

// AsSubmitError unwraps err into a *SubmitError.
func AsSubmitError(err error) (*SubmitError, bool) {
	var target *SubmitError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
