package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSkiprows    = 1
	DefaultMissingChar = "---"
	DefaultMatchStr    = "presn"
	DefaultStrip       = "s_presn"
)

// Derived column names understood by profile assembly.
const (
	Compactness    = "compactness"
	Luminosity     = "luminosity"
	IronGroup      = "iron_group"
	EnclosedMass   = "enclosed_mass"
	CenteredRadius = "centered_radius"
	Velz           = "velz"
	Sums           = "sums"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// requires lists the columns each derived column is computed from.
var requires = map[string][]string{
	Compactness:    {"radius", "mass"},
	Luminosity:     {"radius", "temperature"},
	IronGroup:      nil,
	EnclosedMass:   {"zone_mass"},
	CenteredRadius: {"radius"},
	Velz:           {"radius", "ang_velocity"},
	Sums:           nil,
}

type Config struct {
	Load    LoadConfig     `yaml:"load"`
	Columns map[string]int `yaml:"columns"`
	Network NetworkConfig  `yaml:"network"`
}

type LoadConfig struct {
	Skiprows        int      `yaml:"skiprows"`
	DelimWhitespace bool     `yaml:"delim_whitespace"`
	MissingChar     string   `yaml:"missing_char"`
	MatchStr        string   `yaml:"match_str"`
	Strip           string   `yaml:"strip"`
	DerivedColumns  []string `yaml:"derived_columns"`
}

type NetworkConfig struct {
	Name      string   `yaml:"name"`
	IronGroup []string `yaml:"iron_group"`
}

func DefaultConfig() *Config {
	return &Config{
		Load: LoadConfig{
			Skiprows:        DefaultSkiprows,
			DelimWhitespace: true,
			MissingChar:     DefaultMissingChar,
			MatchStr:        DefaultMatchStr,
			Strip:           DefaultStrip,
		},
		Columns: map[string]int{},
	}
}

// DerivedColumnNames returns every derived column name, sorted.
func DerivedColumnNames() []string {
	names := make([]string, 0, len(requires))
	for name := range requires {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFile reads a series configuration. Files ending in .yaml or .yml are
// YAML, anything else is INI. The result is validated.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = ParseYAML(data)
	default:
		cfg, err = ParseINI(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func ParseYAML(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseINI reads the [load], [columns] and [network] sections. List values
// may be written either as "a, b" or as "['a', 'b']".
func ParseINI(data []byte) (*Config, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	load := file.Section("load")
	cfg.Load.Skiprows = load.Key("skiprows").MustInt(DefaultSkiprows)
	cfg.Load.DelimWhitespace = load.Key("delim_whitespace").MustBool(true)
	cfg.Load.MissingChar = unquote(load.Key("missing_char").MustString(DefaultMissingChar))
	cfg.Load.MatchStr = unquote(load.Key("match_str").MustString(DefaultMatchStr))
	cfg.Load.Strip = unquote(load.Key("strip").MustString(DefaultStrip))
	cfg.Load.DerivedColumns = listValue(load.Key("derived_columns").String())

	for _, key := range file.Section("columns").Keys() {
		idx, err := key.Int()
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %v", ErrInvalidConfig, key.Name(), err)
		}
		cfg.Columns[key.Name()] = idx
	}

	network := file.Section("network")
	cfg.Network.Name = unquote(network.Key("name").String())
	cfg.Network.IronGroup = listValue(network.Key("iron_group").String())

	return cfg, nil
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `'"`)
}

func listValue(s string) []string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := unquote(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration once so later column lookups cannot
// fail on a misspelt key.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Load.Skiprows < 0 {
		return invalid("skiprows must be non-negative, got %d", c.Load.Skiprows)
	}
	if !c.Load.DelimWhitespace {
		return invalid("only whitespace-delimited tables are supported")
	}
	if len(c.Columns) == 0 {
		return invalid("no columns configured")
	}

	byIndex := make(map[int]string, len(c.Columns))
	for name, idx := range c.Columns {
		if idx < 0 {
			return invalid("column %q has negative index %d", name, idx)
		}
		if other, ok := byIndex[idx]; ok {
			return invalid("columns %q and %q share index %d", other, name, idx)
		}
		byIndex[idx] = name
	}

	if c.Network.Name == "" {
		return invalid("network name is empty")
	}

	for _, derived := range c.Load.DerivedColumns {
		needs, ok := requires[derived]
		if !ok {
			return invalid("unknown derived column %q (known: %s)", derived, strings.Join(DerivedColumnNames(), ", "))
		}
		for _, col := range needs {
			if _, ok := c.Columns[col]; !ok {
				return invalid("derived column %q needs column %q", derived, col)
			}
		}
	}

	if c.Derives(IronGroup) {
		if len(c.Network.IronGroup) == 0 {
			return invalid("iron_group requested without iron group isotopes")
		}
		for _, iso := range c.Network.IronGroup {
			if _, ok := c.Columns[iso]; !ok {
				return invalid("iron group isotope %q is not a configured column", iso)
			}
		}
	}

	return nil
}

// Derives reports whether the named derived column is requested.
func (c *Config) Derives(name string) bool {
	for _, d := range c.Load.DerivedColumns {
		if d == name {
			return true
		}
	}
	return false
}

// ColumnNames returns the configured column names ordered by raw index.
func (c *Config) ColumnNames() []string {
	names := make([]string, 0, len(c.Columns))
	for name := range c.Columns {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return c.Columns[names[i]] < c.Columns[names[j]]
	})
	return names
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Columns = make(map[string]int, len(c.Columns))
	for k, v := range c.Columns {
		out.Columns[k] = v
	}
	out.Load.DerivedColumns = append([]string(nil), c.Load.DerivedColumns...)
	out.Network.IronGroup = append([]string(nil), c.Network.IronGroup...)
	return &out
}
