package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	SourceHost      = "host"
	SourceSimulator = "simulator"
	SourceFixture   = "fixture"
)

type SimulatorConfig struct {
	Device string `mapstructure:"device"` // UDID, name, or "booted"
}

type FixtureConfig struct {
	Path     string        `mapstructure:"path"`
	Debounce time.Duration `mapstructure:"debounce"`
}

type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	Source    string          `mapstructure:"source"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Fixture   FixtureConfig   `mapstructure:"fixture"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// New returns a viper instance with defaults, the DEVICECTL_ environment
// prefix and the standard search paths for devicectl.yaml.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("source", SourceHost)
	v.SetDefault("simulator.device", "booted")
	v.SetDefault("fixture.path", "")
	v.SetDefault("fixture.debounce", time.Duration(0))

	v.SetConfigName("devicectl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "devicectl"))
	}

	v.SetEnvPrefix("DEVICECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads file, or the first devicectl.yaml on the search path when
// file is empty. A missing search-path config is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}

	var used string
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	c.Source = strings.ToLower(strings.TrimSpace(c.Source))

	switch c.Source {
	case SourceHost, SourceSimulator:
	case SourceFixture:
		if c.Fixture.Path == "" {
			return fmt.Errorf("fixture.path is required when source is %q", SourceFixture)
		}
	default:
		return fmt.Errorf("unknown source %q (want host, simulator or fixture)", c.Source)
	}

	if c.Fixture.Debounce < 0 {
		return fmt.Errorf("fixture.debounce must not be negative")
	}

	return nil
}

// NewLogger builds the process logger. Unknown levels fall back to info.
func NewLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "devicectl",
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
