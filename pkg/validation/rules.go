package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// notblank rejects whitespace-only strings, which the builtin required
	// tag lets through.
	if err := v.RegisterValidation("notblank", notBlank); err != nil {
		panic(fmt.Sprintf("validation: register notblank: %v", err))
	}
	return v
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Validate evaluates value against rules for the given kind and returns the
// first failing rule. It never mutates its inputs.
//
// Email fields check required, then the email shape (rules.Pattern overrides
// the default). Every other kind checks required, minimum length and maximum
// length. Length bounds count runes. Custom patterns on non-email kinds are
// left to the caller, see MatchPattern.
func Validate(value string, rules RuleSet, kind FieldKind) (Issue, bool) {
	if rules.Required && validate.Var(value, "notblank") != nil {
		return Issue{Code: CodeRequired, Message: MessageRequired}, false
	}

	if kind == KindEmail {
		pattern := rules.Pattern
		if pattern == nil {
			pattern = EmailPattern
		}
		if !pattern.MatchString(value) {
			return Issue{Code: CodeInvalidFormat, Message: MessageInvalidEmail}, false
		}
		return Issue{}, true
	}

	if rules.MinLength > 0 && validate.Var(value, fmt.Sprintf("min=%d", rules.MinLength)) != nil {
		return Issue{Code: CodeTooShort, Message: tooShortMessage(rules.MinLength)}, false
	}
	if rules.MaxLength > 0 && validate.Var(value, fmt.Sprintf("max=%d", rules.MaxLength)) != nil {
		return Issue{Code: CodeTooLong, Message: tooLongMessage(rules.MaxLength)}, false
	}

	return Issue{}, true
}

// MatchPattern reports a pattern mismatch for non-email kinds. Number fields
// default to digits only. Empty values pass so optional fields can stay
// blank. Email kinds always pass here because Validate owns their shape check.
func MatchPattern(value string, rules RuleSet, kind FieldKind) (Issue, bool) {
	if kind == KindEmail || value == "" {
		return Issue{}, true
	}
	pattern := rules.Pattern
	if pattern == nil && kind == KindNumber {
		pattern = DigitsPattern
	}
	if pattern != nil && !pattern.MatchString(value) {
		return Issue{Code: CodePatternMismatch, Message: MessageInvalidFormat}, false
	}
	return Issue{}, true
}

// Message is a convenience wrapper returning the message of the first failing
// rule, or "" when value passes.
func Message(value string, rules RuleSet, kind FieldKind) string {
	if issue, ok := Validate(value, rules, kind); !ok {
		return issue.Message
	}
	return ""
}
