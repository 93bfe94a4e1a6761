// Package config loads seatplan settings.
//
// Precedence (highest to lowest): flags > SEATPLAN_* env vars > config file > defaults.
// A .env file in the working directory is loaded into the environment first.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"seatplan-viewer-cli/logging"
	"seatplan-viewer-cli/service"
)

const (
	AppName   = "seatplan-viewer-cli"
	EnvPrefix = "SEATPLAN_"
)

var configFileNames = []string{"seatplan.yaml", "seatplan.yml"}

type Config struct {
	BaseURL         string        `koanf:"base_url"`
	UserAgent       string        `koanf:"user_agent"`
	HTTPTimeout     time.Duration `koanf:"http_timeout"`
	LogFile         string        `koanf:"log_file"`
	LogLevel        string        `koanf:"log_level"`
	ShowSeatNumbers bool          `koanf:"show_seat_numbers"`

	// FileUsed is the config file that was read, if any.
	FileUsed string `koanf:"-"`
}

// Defaults returns the built-in configuration.
func Defaults() map[string]any {
	return map[string]any{
		"base_url":          service.DefaultBaseURL,
		"user_agent":        "",
		"http_timeout":      "0s",
		"log_file":          "",
		"log_level":         "info",
		"show_seat_numbers": false,
	}
}

// Load reads configuration. cfgFile may be empty, in which case the working
// directory and the user config directory are searched. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	path := findConfigFile(cfgFile)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// SEATPLAN_BASE_URL -> base_url
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later in a confusing way.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("invalid base_url %q: must start with http:// or https://", c.BaseURL)
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("invalid http_timeout %s: must not be negative", c.HTTPTimeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	return nil
}

// findConfigFile resolves the config file to read.
// Priority: explicit path > ./seatplan.yaml > ./seatplan.yml > user config dir.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFileNames {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	candidate := filepath.Join(dir, AppName, "config.yaml")
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}
