package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldKind selects which branch of the validation precedence applies.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindNumber   FieldKind = "number"
	KindPassword FieldKind = "password"
)

// ParseKind maps an input type name onto a FieldKind. Empty names map to
// KindText; unknown names return an error.
func ParseKind(raw string) (FieldKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(KindText):
		return KindText, nil
	case string(KindEmail):
		return KindEmail, nil
	case string(KindNumber):
		return KindNumber, nil
	case string(KindPassword):
		return KindPassword, nil
	default:
		return KindText, fmt.Errorf("validation: unknown field kind %q", raw)
	}
}

// Code identifies the rule that produced an Issue.
type Code string

const (
	CodeRequired           Code = "required"
	CodeTooShort           Code = "tooShort"
	CodeTooLong            Code = "tooLong"
	CodeInvalidFormat      Code = "invalidFormat"
	CodePatternMismatch    Code = "patternMismatch"
	CodeMissingDigit       Code = "missingDigit"
	CodeMissingLetter      Code = "missingLetter"
	CodeMissingSpecialChar Code = "missingSpecialChar"
	CodeTypeNotAllowed     Code = "typeNotAllowed"
	CodeSizeExceeded       Code = "sizeExceeded"
)

// Issue is a user-facing validation message tagged with the rule that
// produced it.
type Issue struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Messages returns the message text of every issue, preserving order.
func Messages(issues []Issue) []string {
	if len(issues) == 0 {
		return nil
	}
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Message)
	}
	return out
}

// RuleSet is the constraint set configured for a field instance. Zero length
// bounds are treated as unset.
type RuleSet struct {
	Required  bool
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
}

const (
	MessageRequired      = "This field is required"
	MessageInvalidEmail  = "Invalid email format"
	MessageInvalidFormat = "Invalid format"
)

var (
	// EmailPattern is the default local@domain.tld shape for email fields.
	EmailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
	// DigitsPattern is the default pattern for number fields.
	DigitsPattern = regexp.MustCompile(`^[0-9]*$`)
)

func tooShortMessage(n int) string {
	return fmt.Sprintf("Must be at least %d characters", n)
}

func tooLongMessage(n int) string {
	return fmt.Sprintf("Must be no more than %d characters", n)
}
