// Package config loads formkit settings from a YAML or TOML file, optional
// .env files and FORMKIT_* environment variables, in increasing order of
// precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/validation"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FORMKIT_"

// Config holds every tunable of the field units and the CLI.
type Config struct {
	Debounce DebounceConfig `yaml:"debounce" toml:"debounce" envPrefix:"DEBOUNCE_"`
	Password PasswordConfig `yaml:"password" toml:"password" envPrefix:"PASSWORD_"`
	Upload   UploadConfig   `yaml:"upload" toml:"upload" envPrefix:"UPLOAD_"`
	Output   string         `yaml:"output" toml:"output" env:"OUTPUT"`
	LogLevel string         `yaml:"log_level" toml:"log_level" env:"LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
}

// DebounceConfig holds the quiet windows per unit family. Values are Go
// duration strings such as "300ms" in every source.
type DebounceConfig struct {
	Field    time.Duration `yaml:"field" toml:"field" env:"FIELD" validate:"gte=0"`
	Search   time.Duration `yaml:"search" toml:"search" env:"SEARCH" validate:"gte=0"`
	Password time.Duration `yaml:"password" toml:"password" env:"PASSWORD" validate:"gte=0"`
}

// PasswordConfig bounds the password strength checks. A zero MaxLength leaves
// the upper bound unset.
type PasswordConfig struct {
	MinLength    int    `yaml:"min_length" toml:"min_length" env:"MIN_LENGTH" validate:"gte=0"`
	MaxLength    int    `yaml:"max_length" toml:"max_length" env:"MAX_LENGTH" validate:"gte=0"`
	SpecialChars string `yaml:"special_chars" toml:"special_chars" env:"SPECIAL_CHARS"`
}

// UploadConfig holds the default upload checks.
type UploadConfig struct {
	MaxSizeMB    float64  `yaml:"max_size_mb" toml:"max_size_mb" env:"MAX_SIZE_MB" validate:"gte=0"`
	AllowedTypes []string `yaml:"allowed_types" toml:"allowed_types" env:"ALLOWED_TYPES" envSeparator:","`
}

// Default returns the built-in settings.
func Default() Config {
	policy := validation.DefaultPasswordPolicy()
	return Config{
		Debounce: DebounceConfig{
			Field:    field.DefaultDelay,
			Search:   field.SearchDelay,
			Password: field.PasswordDelay,
		},
		Password: PasswordConfig{
			MinLength:    policy.MinLength,
			MaxLength:    policy.MaxLength,
			SpecialChars: policy.SpecialChars,
		},
		Upload: UploadConfig{
			MaxSizeMB: 5,
		},
		Output:   "json",
		LogLevel: "info",
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(passwordBounds, PasswordConfig{})
	return v
}

// passwordBounds applies ltefield=MaxLength to MinLength only when an upper
// bound is configured.
func passwordBounds(sl validator.StructLevel) {
	pc := sl.Current().Interface().(PasswordConfig)
	if pc.MaxLength > 0 && pc.MinLength > pc.MaxLength {
		sl.ReportError(pc.MinLength, "min_length", "MinLength", "ltefield", "MaxLength")
	}
}

// Validate rejects settings the field units cannot honour. LogLevel is
// compared case-insensitively.
func (c Config) Validate() error {
	normalised := c
	normalised.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	err := validate.Struct(normalised)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must not be negative", fe.Namespace())
	case "ltefield":
		return fmt.Sprintf("%s %v exceeds %s", fe.Namespace(), fe.Value(), fe.Param())
	case "oneof":
		return fmt.Sprintf("unknown log level %q", fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}
}

// PasswordPolicy converts the password settings.
func (c Config) PasswordPolicy() validation.PasswordPolicy {
	return validation.PasswordPolicy{
		MinLength:    c.Password.MinLength,
		MaxLength:    c.Password.MaxLength,
		SpecialChars: c.Password.SpecialChars,
	}
}

// FileRules converts the upload settings.
func (c Config) FileRules(required bool) validation.FileRules {
	return validation.FileRules{
		Required:     required,
		AllowedTypes: append([]string(nil), c.Upload.AllowedTypes...),
		MaxSizeMB:    c.Upload.MaxSizeMB,
	}
}

// FieldOptions returns the options for a text style field.
func (c Config) FieldOptions(extra ...field.Option) []field.Option {
	return append([]field.Option{field.WithDelay(c.Debounce.Field)}, extra...)
}

// SearchOptions returns the options for a searchable dropdown.
func (c Config) SearchOptions(extra ...field.Option) []field.Option {
	return append([]field.Option{field.WithDelay(c.Debounce.Search)}, extra...)
}

// PasswordOptions returns the options for a password field.
func (c Config) PasswordOptions(extra ...field.Option) []field.Option {
	return append([]field.Option{field.WithDelay(c.Debounce.Password)}, extra...)
}

// Level returns the slog level for LogLevel, defaulting to info.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel maps debug, info, warn and error onto slog levels. Blank input
// yields info.
func ParseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", raw)
	}
}
