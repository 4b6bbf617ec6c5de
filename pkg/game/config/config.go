// Package config loads solver settings from a config file, SEEDSOLVER_
// environment variables and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"seedsolver/locales"
	"seedsolver/pkg/engine/logging"
	"seedsolver/pkg/game/spoiler"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "SEEDSOLVER"

// DefaultMaxAttempts bounds the generation retry loop
const DefaultMaxAttempts = 10

// Settings is the full solver configuration
type Settings struct {
	Seed      string `json:"seed" mapstructure:"seed"`
	WorldFile string `json:"worldFile" mapstructure:"world_file"`
	// Output is the spoiler file path. A ".zst" suffix compresses it.
	Output string `json:"output" mapstructure:"output"`

	CreateSpoiler bool `json:"createSpoiler" mapstructure:"create_spoiler"`
	Hints         bool `json:"hints" mapstructure:"hints"`
	// Report prints the spoiler as text to stdout
	Report bool `json:"report" mapstructure:"report"`

	MaxAttempts          int      `json:"maxAttempts" mapstructure:"max_attempts"`
	NoteworthyExclusions []string `json:"noteworthyExclusions" mapstructure:"noteworthy_exclusions"`
	Locale               string   `json:"locale" mapstructure:"locale"`

	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// Logger builds the logger described by c
func (c LoggingConfig) Logger() logging.Config {
	return logging.Config{
		Format: logging.ParseFormat(c.Format),
		Level:  c.Level,
	}
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() *Settings {
	return &Settings{
		Output:               "spoiler.json",
		CreateSpoiler:        true,
		MaxAttempts:          DefaultMaxAttempts,
		NoteworthyExclusions: slices.Clone(spoiler.DefaultNoteworthyExclusions),
		Locale:               locales.DefaultLanguage,
		Logging: LoggingConfig{
			Format: string(logging.TextFormat),
			Level:  "info",
		},
	}
}

// flagKeys maps command line flag names to setting keys
var flagKeys = map[string]string{
	"seed":         "seed",
	"world":        "world_file",
	"output":       "output",
	"spoiler":      "create_spoiler",
	"hints":        "hints",
	"report":       "report",
	"max-attempts": "max_attempts",
	"locale":       "locale",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
	"noteworthy":   "noteworthy_exclusions",
}

// Load reads settings. An empty path looks for seedsolver.{yaml,toml,json}
// in the working directory and ignores it when missing. Flags, when given,
// override every other source but only if they were set.
func Load(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	def := DefaultSettings()
	v.SetDefault("seed", def.Seed)
	v.SetDefault("world_file", def.WorldFile)
	v.SetDefault("output", def.Output)
	v.SetDefault("create_spoiler", def.CreateSpoiler)
	v.SetDefault("hints", def.Hints)
	v.SetDefault("report", def.Report)
	v.SetDefault("max_attempts", def.MaxAttempts)
	v.SetDefault("noteworthy_exclusions", def.NoteworthyExclusions)
	v.SetDefault("locale", def.Locale)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("seedsolver")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &s, nil
}

// Validate checks the settings needed to run the solver
func (s *Settings) Validate() error {
	if s.WorldFile == "" {
		return &ConfigError{Field: "world_file", Message: "a world file is required"}
	}
	if s.MaxAttempts < 1 {
		return &ConfigError{Field: "max_attempts", Message: "must be at least 1"}
	}
	switch strings.ToLower(s.Logging.Format) {
	case "", string(logging.TextFormat), string(logging.JSONFormat):
	default:
		return &ConfigError{Field: "logging.format", Message: fmt.Sprintf("unknown format %q", s.Logging.Format)}
	}
	if s.Locale != "" && !slices.Contains(locales.Languages(), s.Locale) {
		return &ConfigError{Field: "locale", Message: fmt.Sprintf("no translations for %q", s.Locale)}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
