package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/dataconv/internal/analyzer"
	"github.com/mcncl/dataconv/internal/converter"
	"github.com/mcncl/dataconv/internal/errors"
	"github.com/mcncl/dataconv/internal/formatter"
	"github.com/mcncl/dataconv/internal/parser"
)

// Config represents the complete configuration for dataconv
type Config struct {
	XML    XMLConfig    `yaml:"xml"`
	YAML   YAMLConfig   `yaml:"yaml"`
	JSON   JSONConfig   `yaml:"json"`
	Limits LimitsConfig `yaml:"limits"`
	Naming NamingConfig `yaml:"naming"`
	Input  InputConfig  `yaml:"input"`
	Dev    DevConfig    `yaml:"dev"`
}

// XMLConfig controls XML output
type XMLConfig struct {
	RootName string `yaml:"root_name"`
}

// YAMLConfig controls YAML output
type YAMLConfig struct {
	Indent int    `yaml:"indent"`
	Style  string `yaml:"style"` // plain or strict
}

// JSONConfig controls JSON formatting
type JSONConfig struct {
	Indent int `yaml:"indent"`
}

// LimitsConfig bounds the work done on a single input
type LimitsConfig struct {
	// MaxDepth is the container nesting limit; negative disables it
	MaxDepth int `yaml:"max_depth"`
}

// NamingConfig controls how mapping keys are rendered
type NamingConfig struct {
	KeyCase string `yaml:"key_case"`
}

// InputConfig controls how input is read
type InputConfig struct {
	Format string `yaml:"format"` // json or yaml
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		XML: XMLConfig{
			RootName: converter.DefaultRootName,
		},
		YAML: YAMLConfig{
			Indent: converter.DefaultYAMLIndent,
			Style:  string(converter.YAMLStylePlain),
		},
		JSON: JSONConfig{
			Indent: formatter.DefaultIndent,
		},
		Limits: LimitsConfig{
			MaxDepth: analyzer.DefaultMaxDepth,
		},
		Naming: NamingConfig{
			KeyCase: string(converter.KeyCaseNone),
		},
		Input: InputConfig{
			Format: string(parser.FormatJSON),
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".dataconv.yml", ".dataconv.yaml", "dataconv.yml", "dataconv.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that every setting holds a supported value
func (c *Config) Validate() error {
	if c.YAML.Indent < 0 {
		return errors.NewConfigError(fmt.Sprintf("yaml.indent must not be negative, got %d", c.YAML.Indent), nil)
	}
	if c.JSON.Indent < 0 || c.JSON.Indent > formatter.MaxIndent {
		return errors.NewConfigError(fmt.Sprintf("json.indent must be between 0 and %d, got %d", formatter.MaxIndent, c.JSON.Indent), nil)
	}
	if _, err := converter.ParseYAMLStyle(c.YAML.Style); err != nil {
		return errors.NewConfigError("invalid yaml.style", err)
	}
	if _, err := converter.ParseKeyCase(c.Naming.KeyCase); err != nil {
		return errors.NewConfigError("invalid naming.key_case", err)
	}
	if _, err := parser.ParseFormat(c.Input.Format); err != nil {
		return errors.NewConfigError("invalid input.format", err)
	}
	return nil
}

// ConverterOptions translates the config into converter options
func (c *Config) ConverterOptions() (converter.Options, error) {
	keyCase, err := converter.ParseKeyCase(c.Naming.KeyCase)
	if err != nil {
		return converter.Options{}, err
	}
	style, err := converter.ParseYAMLStyle(c.YAML.Style)
	if err != nil {
		return converter.Options{}, err
	}
	return converter.Options{
		MaxDepth:  c.Limits.MaxDepth,
		KeyCase:   keyCase,
		YAMLStyle: style,
	}, nil
}

// InputFormat returns the configured input format
func (c *Config) InputFormat() (parser.Format, error) {
	return parser.ParseFormat(c.Input.Format)
}

// MergeConfigs merges CLI overrides into a base config.
// Non-zero values from override take precedence over base values.
func MergeConfigs(base, override *Config) *Config {
	merged := *base

	if override.XML.RootName != "" {
		merged.XML.RootName = override.XML.RootName
	}
	if override.YAML.Indent != 0 {
		merged.YAML.Indent = override.YAML.Indent
	}
	if override.YAML.Style != "" {
		merged.YAML.Style = override.YAML.Style
	}
	if override.JSON.Indent != 0 {
		merged.JSON.Indent = override.JSON.Indent
	}
	if override.Limits.MaxDepth != 0 {
		merged.Limits.MaxDepth = override.Limits.MaxDepth
	}
	if override.Naming.KeyCase != "" {
		merged.Naming.KeyCase = override.Naming.KeyCase
	}
	if override.Input.Format != "" {
		merged.Input.Format = override.Input.Format
	}
	// a debug flag can only switch debugging on
	merged.Dev.Debug = base.Dev.Debug || override.Dev.Debug

	return &merged
}

// LoadConfigWithCLI loads the config file at configPath (defaults when
// empty) and applies CLI overrides on top.
func LoadConfigWithCLI(configPath string, overrides *Config) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if overrides != nil {
		cfg = MergeConfigs(cfg, overrides)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
