// Package config loads the calc command's YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/parsec"
)

// Config is the contents of a .calc.yaml file.
type Config struct {
	// Prec is the precision of calculations in bits. 0 means float64.
	Prec uint `yaml:"prec,omitempty"`

	// Format is the fmt verb used to print expression results. Defaults to %g.
	Format string `yaml:"format,omitempty"`

	// Color is one of auto, always, or never. Defaults to auto, which colors
	// output only on terminals and only when NO_COLOR is unset.
	Color string `yaml:"color,omitempty"`

	// History is the file where the REPL keeps line history. Defaults to
	// ~/.calc_history. "-" disables history.
	History string `yaml:"history,omitempty"`

	// Vars are global variables, as with -given.
	Vars map[string]float64 `yaml:"vars,omitempty"`

	// Prelude is a list of statements evaluated in order at start-up,
	// typically definitions.
	Prelude []string `yaml:"prelude,omitempty"`
}

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultPath returns the path of the per-user config file, ~/.calc.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".calc.yaml")
}

// Default returns a configuration with every field defaulted.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// LoadConfig reads and parses a config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// LoadDefault loads the per-user config file, returning defaults if it does
// not exist.
func LoadDefault() (*Config, error) {
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// ParseConfig parses config file content. The path argument is used only for
// error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever: // ok
	default:
		return fmt.Errorf("%s: color must be auto, always, or never, not %q", path, c.Color)
	}
	if c.Format != "" && !strings.Contains(c.Format, "%") {
		return fmt.Errorf("%s: format %q has no verb", path, c.Format)
	}
	for name, v := range c.Vars {
		if !IsName(name) {
			return fmt.Errorf("%s: vars: %q is not a valid name", path, name)
		}
		if math.IsNaN(v) {
			return fmt.Errorf("%s: vars: %s is NaN", path, name)
		}
	}
	for i, src := range c.Prelude {
		if _, err := calc.Parse(src); err != nil {
			return fmt.Errorf("%s: prelude[%d]: %w", path, i, err)
		}
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.Format == "" {
		c.Format = "%g"
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.History == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.History = filepath.Join(home, ".calc_history")
		}
	}
}

// Options returns the session options the configuration describes.
func (c *Config) Options() []calc.Option {
	opts := []calc.Option{calc.Prec(c.Prec)}
	if len(c.Vars) != 0 {
		opts = append(opts, calc.SetVars(c.Vars))
	}
	return opts
}

// IsName reports whether s is a variable or function name in its entirety.
func IsName(s string) bool {
	r := calc.Varname().Parse(parsec.NewCharStream(s))
	if !r.OK() {
		return false
	}
	_, more := r.Rest.Head()
	return !more
}
