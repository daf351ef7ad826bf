package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultSpecialChars is the punctuation set accepted as a password special
// character.
const DefaultSpecialChars = `!@#$%^&*(),.?":{}|<>`

// PasswordPolicy bounds the password strength checks.
type PasswordPolicy struct {
	MinLength    int
	MaxLength    int
	SpecialChars string
}

// DefaultPasswordPolicy requires 8 to 15 characters with a digit, a letter and
// a special character.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:    8,
		MaxLength:    15,
		SpecialChars: DefaultSpecialChars,
	}
}

func (p PasswordPolicy) withDefaults() PasswordPolicy {
	def := DefaultPasswordPolicy()
	if p.MinLength <= 0 {
		p.MinLength = def.MinLength
	}
	if p.MaxLength <= 0 {
		p.MaxLength = def.MaxLength
	}
	if p.SpecialChars == "" {
		p.SpecialChars = def.SpecialChars
	}
	return p
}

// PasswordReport holds one flag per strength constraint. Every flag is
// evaluated on every check; a true flag means the constraint is violated.
type PasswordReport struct {
	Required           bool `json:"required"`
	TooShort           bool `json:"minLength"`
	TooLong            bool `json:"maxLength"`
	MissingDigit       bool `json:"hasNumber"`
	MissingLetter      bool `json:"hasLetter"`
	MissingSpecialChar bool `json:"hasSpecialChar"`

	policy PasswordPolicy
}

// CheckPassword evaluates every strength constraint for value.
func CheckPassword(value string, required bool, policy PasswordPolicy) PasswordReport {
	policy = policy.withDefaults()
	length := utf8.RuneCountInString(value)

	report := PasswordReport{
		Required:           required && strings.TrimSpace(value) == "",
		TooShort:           length < policy.MinLength,
		TooLong:            length > policy.MaxLength,
		MissingDigit:       !strings.ContainsFunc(value, isASCIIDigit),
		MissingLetter:      !strings.ContainsFunc(value, isASCIILetter),
		MissingSpecialChar: !strings.ContainsAny(value, policy.SpecialChars),
		policy:             policy,
	}
	return report
}

// Valid reports whether no flag is active.
func (r PasswordReport) Valid() bool {
	return !r.Required && !r.TooShort && !r.TooLong &&
		!r.MissingDigit && !r.MissingLetter && !r.MissingSpecialChar
}

// Issues lists the active violations in display order.
func (r PasswordReport) Issues() []Issue {
	policy := r.policy.withDefaults()

	var out []Issue
	if r.TooShort {
		out = append(out, Issue{Code: CodeTooShort, Message: fmt.Sprintf("Min %d characters", policy.MinLength)})
	}
	if r.TooLong {
		out = append(out, Issue{Code: CodeTooLong, Message: fmt.Sprintf("Max %d characters", policy.MaxLength)})
	}
	if r.MissingDigit {
		out = append(out, Issue{Code: CodeMissingDigit, Message: "Must contain a number"})
	}
	if r.MissingLetter {
		out = append(out, Issue{Code: CodeMissingLetter, Message: "Must contain a letter"})
	}
	if r.MissingSpecialChar {
		out = append(out, Issue{Code: CodeMissingSpecialChar, Message: "Must contain a special character"})
	}
	if r.Required {
		out = append(out, Issue{Code: CodeRequired, Message: MessageRequired})
	}
	return out
}

// Messages returns the text of every active violation.
func (r PasswordReport) Messages() []string {
	return Messages(r.Issues())
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
