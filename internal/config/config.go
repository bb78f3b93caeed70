package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "TABTEX_CONFIG"

// Config represents the CLI configuration. Every field is optional; unset
// fields fall back to the built-in defaults.
type Config struct {
	// Default field delimiter for text sources
	Delimiter string `yaml:"delimiter,omitempty"`

	// Default decimal places, or "none" to disable rounding
	Round *Round `yaml:"round,omitempty"`

	// Default caption, label, and float placement
	Caption  string `yaml:"caption,omitempty"`
	Label    string `yaml:"label,omitempty"`
	Location string `yaml:"location,omitempty"`

	// Escape LaTeX special characters in cells by default
	Escape *bool `yaml:"escape,omitempty"`

	// Path to a default table template
	Template string `yaml:"template,omitempty"`

	// Default color mode (auto, always, never)
	Color string `yaml:"color,omitempty"`

	// Default output format for inspect (text, json, ndjson, yaml, table)
	Output string `yaml:"output,omitempty"`

	// Default error format (auto, text, json, yaml)
	ErrorFormat string `yaml:"error_format,omitempty"`
}

// Round is the round setting: a non-negative number of places, or "none".
type Round struct {
	Places int
	None   bool
}

// ParseRound parses "none" or a non-negative integer.
func ParseRound(s string) (Round, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "none") {
		return Round{None: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Round{}, fmt.Errorf("invalid value %q (expected a non-negative integer or \"none\")", s)
	}
	return Round{Places: n}, nil
}

func (r Round) String() string {
	if r.None {
		return "none"
	}
	return strconv.Itoa(r.Places)
}

// UnmarshalYAML accepts `round: 3` and `round: none`.
func (r *Round) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: round must be an integer or \"none\"", value.Line)
	}
	parsed, err := ParseRound(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: round: %w", value.Line, err)
	}
	*r = parsed
	return nil
}

// MarshalYAML writes "none" or the number of places.
func (r Round) MarshalYAML() (interface{}, error) {
	if r.None {
		return "none", nil
	}
	return r.Places, nil
}

// configPathFunc is the function used to get the default config path
// It can be overridden for testing
var configPathFunc = defaultConfigPath

// SetConfigPathFunc sets the config path function for testing.
// Returns the original function so it can be restored.
func SetConfigPathFunc(fn func() (string, error)) func() (string, error) {
	orig := configPathFunc
	configPathFunc = fn
	return orig
}

// defaultConfigPath returns $TABTEX_CONFIG or ~/.config/tabtex/config.yaml
func defaultConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tabtex", "config.yaml"), nil
}

// DefaultConfigPath returns the path config is loaded from.
func DefaultConfigPath() (string, error) {
	return configPathFunc()
}

// Load loads config from the default path, returns empty config if not found
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil // Return empty config if file doesn't exist
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return &cfg, nil
}

// Save saves config to the default path
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveToPath(path)
}

// SaveToPath saves config to a specific path
func (c *Config) SaveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// RoundPlaces returns the configured precision. ok is false when unset;
// disabled is true when the config turns rounding off.
func (c *Config) RoundPlaces() (places int, disabled bool, ok bool) {
	if c.Round == nil {
		return 0, false, false
	}
	if c.Round.None {
		return 0, true, true
	}
	return c.Round.Places, false, true
}

type field struct {
	get   func(c *Config) string
	set   func(c *Config, v string) error
	unset func(c *Config)
}

func stringField(ptr func(c *Config) *string, validate func(string) error) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error {
			if validate != nil {
				if err := validate(v); err != nil {
					return err
				}
			}
			*ptr(c) = v
			return nil
		},
		unset: func(c *Config) { *ptr(c) = "" },
	}
}

func oneOf(values ...string) func(string) error {
	return func(v string) error {
		for _, allowed := range values {
			if strings.EqualFold(v, allowed) {
				return nil
			}
		}
		return fmt.Errorf("invalid value %q (expected %s)", v, strings.Join(values, "|"))
	}
}

var fields = map[string]field{
	"delimiter": stringField(func(c *Config) *string { return &c.Delimiter }, nil),
	"caption":   stringField(func(c *Config) *string { return &c.Caption }, nil),
	"label":     stringField(func(c *Config) *string { return &c.Label }, nil),
	"location":  stringField(func(c *Config) *string { return &c.Location }, nil),
	"template":  stringField(func(c *Config) *string { return &c.Template }, nil),
	"color":     stringField(func(c *Config) *string { return &c.Color }, oneOf("auto", "always", "never")),
	"output":    stringField(func(c *Config) *string { return &c.Output }, oneOf("text", "json", "ndjson", "yaml", "table")),
	"error_format": stringField(func(c *Config) *string { return &c.ErrorFormat },
		oneOf("auto", "text", "json", "yaml")),
	"round": {
		get: func(c *Config) string {
			if c.Round == nil {
				return ""
			}
			return c.Round.String()
		},
		set: func(c *Config, v string) error {
			r, err := ParseRound(v)
			if err != nil {
				return err
			}
			c.Round = &r
			return nil
		},
		unset: func(c *Config) { c.Round = nil },
	},
	"escape": {
		get: func(c *Config) string {
			if c.Escape == nil {
				return ""
			}
			return strconv.FormatBool(*c.Escape)
		},
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value %q (expected true or false)", v)
			}
			c.Escape = &b
			return nil
		},
		unset: func(c *Config) { c.Escape = nil },
	},
}

// Keys returns the settable config keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of a key's value ("" when unset).
func (c *Config) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", unknownKey(key)
	}
	return f.get(c), nil
}

// Set parses and stores a value for key.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return unknownKey(key)
	}
	return f.set(c, value)
}

// Unset clears key.
func (c *Config) Unset(key string) error {
	f, ok := fields[key]
	if !ok {
		return unknownKey(key)
	}
	f.unset(c)
	return nil
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
}
