// Package config loads oasvariant settings from an optional config file and
// OASVARIANT_* environment variables. Command-line flags are applied on top
// by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "OASVARIANT"

// Log formats.
const (
	LogFormatAuto = "auto"
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds the settings shared by the oasvariant commands.
type Config struct {
	// OutputDir is where build writes the variants
	OutputDir string `mapstructure:"outputDir" yaml:"outputDir" json:"outputDir"`

	// Only restricts build to variants matching these glob patterns
	Only []string `mapstructure:"only" yaml:"only" json:"only"`

	// Parallelism limits concurrent conversions (0 means unlimited)
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism" json:"parallelism"`

	// RefCheck enables the dangling reference check of every variant
	RefCheck bool `mapstructure:"refCheck" yaml:"refCheck" json:"refCheck"`

	// Verbose enables debug logging
	Verbose bool `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// LogFormat is auto, text or json; auto picks text on a terminal
	LogFormat string `mapstructure:"logFormat" yaml:"logFormat" json:"logFormat"`
}

// configFileNames is the list of config file names to search for (in order).
var configFileNames = []string{
	"oasvariant.yaml",
	"oasvariant.json",
	".oasvariant.yaml",
	".oasvariant.json",
}

var logFormats = []string{LogFormatAuto, LogFormatText, LogFormatJSON}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		OutputDir: ".",
		RefCheck:  true,
		LogFormat: LogFormatAuto,
	}
}

// Load reads the configuration. If configPath is empty the first existing
// file of configFileNames is used; with no file, only defaults and the
// environment apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = findConfigFile()
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: failed to read %s: %w", configPath, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func findConfigFile() string {
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// setDefaults sets the default values for viper. Every key needs a default
// for AutomaticEnv to see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("outputDir", d.OutputDir)
	v.SetDefault("only", d.Only)
	v.SetDefault("parallelism", d.Parallelism)
	v.SetDefault("refCheck", d.RefCheck)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("logFormat", d.LogFormat)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !slices.Contains(logFormats, c.LogFormat) {
		return &ValidationError{
			Field:   "logFormat",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.LogFormat, strings.Join(logFormats, ", ")),
		}
	}
	if c.Parallelism < 0 {
		return &ValidationError{Field: "parallelism", Message: "must be non-negative"}
	}
	return nil
}
