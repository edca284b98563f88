// Package config provides configuration loading and validation for the
// cutline tool.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidRate       = errors.New("default edit rate must be positive")
	ErrInvalidTimeFormat = errors.New("invalid time display format")
	ErrInvalidTrackKind  = errors.New("invalid default track kind")
	ErrInvalidLogLevel   = errors.New("invalid log level")
)

// Default configuration values.
const (
	defaultEditRate  = 24
	defaultTrackKind = "Video"
)

// Recognized time display formats.
const (
	TimeFormatFrames   = "frames"
	TimeFormatSeconds  = "seconds"
	TimeFormatRational = "rational"
)

// Config holds all configuration for the cutline tool.
type Config struct {
	Edit    EditConfig    `mapstructure:"edit"`
	Display DisplayConfig `mapstructure:"display"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EditConfig holds defaults applied when building or querying timelines.
type EditConfig struct {
	DefaultRate      float64 `mapstructure:"default_rate"`
	DefaultTrackKind string  `mapstructure:"default_track_kind"`
}

// DisplayConfig holds output formatting configuration.
type DisplayConfig struct {
	TimeFormat string `mapstructure:"time_format"`
	Color      bool   `mapstructure:"color"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// LoadConfig loads configuration from file and environment variables.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("config")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/cutline")
	}

	viperCfg.SetEnvPrefix("CUTLINE")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validateConfig(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	// Edit defaults.
	viperCfg.SetDefault("edit.default_rate", defaultEditRate)
	viperCfg.SetDefault("edit.default_track_kind", defaultTrackKind)

	// Display defaults.
	viperCfg.SetDefault("display.time_format", TimeFormatFrames)
	viperCfg.SetDefault("display.color", true)

	// Logging defaults.
	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "json")
	viperCfg.SetDefault("logging.output", "stderr")
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if config.Edit.DefaultRate <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidRate, config.Edit.DefaultRate)
	}

	switch config.Edit.DefaultTrackKind {
	case "Video", "Audio":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTrackKind, config.Edit.DefaultTrackKind)
	}

	switch config.Display.TimeFormat {
	case TimeFormatFrames, TimeFormatSeconds, TimeFormatRational:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, config.Display.TimeFormat)
	}

	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	return nil
}
