// Package config provides configuration management for elunadoc.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGlobalClass = "Global"
	DefaultFileSuffix  = "Methods.h"
	DefaultOutputDir   = "build"
)

// DefaultExclude lists method headers that are not documented.
var DefaultExclude = []string{"BigIntMethods.h"}

// Config holds the elunadoc configuration.
type Config struct {
	MethodsDir   string   `yaml:"methods_dir"`
	HooksFile    string   `yaml:"hooks_file,omitempty"`
	OutputDir    string   `yaml:"output_dir"`
	GlobalClass  string   `yaml:"global_class,omitempty"`
	FileSuffix   string   `yaml:"file_suffix,omitempty"`
	Exclude      []string `yaml:"exclude,omitempty"`
	OutputFormat string   `yaml:"output_format,omitempty"`
}

// Validate checks that all required fields are present and valid.
func (c *Config) Validate() error {
	if c.MethodsDir == "" {
		return errors.New("methods_dir is required")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	if c.FileSuffix != "" && !strings.HasSuffix(c.FileSuffix, ".h") {
		return errors.New("file_suffix must end in .h")
	}

	return nil
}

// ApplyDefaults fills optional fields that are unset.
func (c *Config) ApplyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.GlobalClass == "" {
		c.GlobalClass = DefaultGlobalClass
	}
	if c.FileSuffix == "" {
		c.FileSuffix = DefaultFileSuffix
	}
	if c.Exclude == nil {
		c.Exclude = append([]string(nil), DefaultExclude...)
	}
}

// IsExcluded reports whether a method header should be skipped.
func (c *Config) IsExcluded(name string) bool {
	base := filepath.Base(name)
	for _, ex := range c.Exclude {
		if base == ex {
			return true
		}
	}
	return false
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if dir := os.Getenv("ELUNADOC_METHODS_DIR"); dir != "" {
		c.MethodsDir = dir
	}
	if hooks := os.Getenv("ELUNADOC_HOOKS_FILE"); hooks != "" {
		c.HooksFile = hooks
	}
	if out := os.Getenv("ELUNADOC_OUTPUT_DIR"); out != "" {
		c.OutputDir = out
	}
	if class := os.Getenv("ELUNADOC_GLOBAL_CLASS"); class != "" {
		c.GlobalClass = class
	}
	if exclude := os.Getenv("ELUNADOC_EXCLUDE"); exclude != "" {
		c.Exclude = splitList(exclude)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "elunadoc", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".elunadoc", "config.yml")
	}

	return filepath.Join(home, ".config", "elunadoc", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file, overrides it with environment
// variables, and fills in defaults.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}
