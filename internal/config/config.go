// =============================================================================
// SW Maps to Emlid Converter - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has
// a default, so the converter runs without any file at all.
//
// EXAMPLE (swmaps2emlid.yaml):
//
//   csv_settings:
//     delimiter: ";"
//   xlsx_settings:
//     sheet: "Points"
//   output_name: "{original}_emlid.csv"
//   reveal_output: true
//   log_level: debug
//   log_format: text
//   aliases:
//     name: ["point id", "id", "name"]
//     antenna_height: ["pole height"]
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/swmaps2emlid/internal/fields"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no --config
// flag is given.
const DefaultConfigFile = "swmaps2emlid.yaml"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds all converter settings.
type Config struct {
	// CSVSettings controls how CSV input is read.
	CSVSettings CSVSettings `yaml:"csv_settings"`

	// XLSXSettings controls how spreadsheet input is read.
	XLSXSettings XLSXSettings `yaml:"xlsx_settings"`

	// OutputName is the file name pattern used when no output path is given.
	// Placeholders:
	//   {original}  - Input file name without extension
	//   {date}      - Current date (YYYYMMDD)
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	// Default: "emlid.csv"
	OutputName string `yaml:"output_name"`

	// RevealOutput opens the output folder in the file manager after a
	// successful conversion.
	RevealOutput bool `yaml:"reveal_output"`

	// LogLevel is one of "debug", "info", "warn", "error". Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" or "json". Default: "text"
	LogFormat string `yaml:"log_format"`

	// Aliases replaces the built-in alias list of a field kind. Keys are
	// kind names ("name", "time", "longitude", "latitude", "elevation",
	// "antenna_height"); lists are in priority order.
	Aliases map[string][]string `yaml:"aliases"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter separates fields. Accepts a single character or one of
	// "tab", "pipe", "semicolon". Default: ","
	Delimiter string `yaml:"delimiter"`
}

// XLSXSettings contains settings for reading spreadsheet exports.
type XLSXSettings struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and validates the configuration at path. A missing file is an
// error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when path does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults sets default values for any unset option.
func applyDefaults(cfg *Config) {
	if cfg.CSVSettings.Delimiter == "" {
		cfg.CSVSettings.Delimiter = ","
	}
	if cfg.OutputName == "" {
		cfg.OutputName = "emlid.csv"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks every setting and reports the first problem found.
func (c *Config) Validate() error {
	if _, err := c.CSVSettings.Comma(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}

	for key, aliases := range c.Aliases {
		if _, err := fields.ParseKind(key); err != nil {
			return fmt.Errorf("%w: aliases: %v", ErrInvalidConfig, err)
		}
		if !hasNonBlank(aliases) {
			return fmt.Errorf("%w: aliases for %q must not be empty", ErrInvalidConfig, key)
		}
	}

	return nil
}

// Comma resolves the delimiter setting to a single rune.
func (s CSVSettings) Comma() (rune, error) {
	switch strings.ToLower(s.Delimiter) {
	case "", ",", "comma":
		return ',', nil
	case "\\t", "\t", "tab":
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	case ";", "semicolon":
		return ';', nil
	}

	r := []rune(s.Delimiter)
	if len(r) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character", s.Delimiter)
	}
	if r[0] == '"' || r[0] == '\r' || r[0] == '\n' {
		return 0, fmt.Errorf("delimiter %q is not allowed", s.Delimiter)
	}
	return r[0], nil
}

// AliasTable returns the built-in alias table with the configured overrides
// applied. Call Validate first; unknown kinds are skipped here.
func (c *Config) AliasTable() fields.AliasTable {
	table := fields.DefaultAliases()
	for key, aliases := range c.Aliases {
		kind, err := fields.ParseKind(key)
		if err != nil {
			continue
		}
		table = table.With(kind, aliases)
	}
	return table
}

func hasNonBlank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}
