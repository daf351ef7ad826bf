package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadOption customizes Load.
type LoadOption func(*loader)

type loader struct {
	dotenv  []string
	environ map[string]string
}

// WithDotEnv reads the given .env files before the environment overrides are
// applied. Missing files are skipped. Process variables win over .env values.
func WithDotEnv(paths ...string) LoadOption {
	return func(l *loader) {
		l.dotenv = append(l.dotenv, paths...)
	}
}

// WithEnvironment replaces the process environment as the override source.
func WithEnvironment(environ map[string]string) LoadOption {
	return func(l *loader) {
		l.environ = environ
	}
}

// Load starts from Default, merges the file at path (when non-empty) and
// applies FORMKIT_* overrides. The result is validated.
func Load(path string, opts ...LoadOption) (Config, error) {
	l := &loader{}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	environ, err := l.environment()
	if err != nil {
		return Config{}, err
	}
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environ,
	}); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: decode yaml %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("config: decode toml %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config: unsupported file extension %q", ext)
	}
	return nil
}

func (l *loader) environment() (map[string]string, error) {
	out := make(map[string]string)
	for _, path := range l.dotenv {
		values, err := godotenv.Read(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		for key, value := range values {
			if _, seen := out[key]; !seen {
				out[key] = value
			}
		}
	}

	base := l.environ
	if base == nil {
		base = processEnvironment()
	}
	for key, value := range base {
		out[key] = value
	}
	return out, nil
}

func processEnvironment() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok {
			out[key] = value
		}
	}
	return out
}
