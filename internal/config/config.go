// Package config provides Viper-based configuration for tally.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrInvalid marks a configuration that failed validation.
var ErrInvalid = errors.New("invalid config")

// Dataset names, as used for config keys and --source overrides.
const (
	DatasetAnki        = "anki"
	DatasetReading     = "reading"
	DatasetReadingAll  = "reading_all"
	DatasetProgramming = "programming"
	DatasetGoals       = "goals"
	DatasetForecast    = "forecast"
	DatasetThoughts    = "thoughts"
	DatasetSearch      = "search"
)

// Config represents the complete tally configuration.
type Config struct {
	Site        SiteConfig        `mapstructure:"site"`
	Datasets    map[string]string `mapstructure:"datasets"`
	Programming ProgrammingConfig `mapstructure:"programming"`
	Forecast    ForecastConfig    `mapstructure:"forecast"`
	Schedule    ScheduleConfig    `mapstructure:"schedule"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// SiteConfig locates the published datasets.
type SiteConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Timezone string        `mapstructure:"timezone"`
}

// ProgrammingConfig holds the language drop lists of the coding page.
type ProgrammingConfig struct {
	StatExclude   []string `mapstructure:"stat_exclude"`
	ManualExclude []string `mapstructure:"manual_exclude"`
	AIExclude     []string `mapstructure:"ai_exclude"`
	DailyExclude  []string `mapstructure:"daily_exclude"`
}

// ForecastConfig selects whose predictions a CSV export contributes.
type ForecastConfig struct {
	Forecaster string `mapstructure:"forecaster"`
}

// ScheduleConfig points at an optional timetable file.
type ScheduleConfig struct {
	File string `mapstructure:"file"`
	Zone string `mapstructure:"zone"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from file and environment variables. Without
// cfgFile, .tally.yaml is searched in the working directory and
// $HOME/.config/tally; a missing file leaves the defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".tally")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/tally")
	}

	v.SetEnvPrefix("TALLY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("site.base_url", "http://localhost:4000")
	v.SetDefault("site.timeout", 10*time.Second)
	v.SetDefault("site.timezone", "Local")

	v.SetDefault("datasets."+DatasetAnki, "/anki-2026-data.json")
	v.SetDefault("datasets."+DatasetReading, "/2026/reading-2026-data.json")
	v.SetDefault("datasets."+DatasetReadingAll, "/reading-all-data.json")
	v.SetDefault("datasets."+DatasetProgramming, "/programming-2026-data.json")
	v.SetDefault("datasets."+DatasetGoals, "/2026/goals-2026-data.json")
	v.SetDefault("datasets."+DatasetForecast, "fatebook-forecasts.csv")
	v.SetDefault("datasets."+DatasetThoughts, "/thoughts.json")
	v.SetDefault("datasets."+DatasetSearch, "/search.json")

	v.SetDefault("programming.stat_exclude", []string{
		"yaml", "unknown", "css", "markdown", "json", "text", "git", "gitignore", "org", "",
	})
	v.SetDefault("programming.manual_exclude", []string{
		"yaml", "unknown", "css", "markdown", "json", "text", "git", "gitignore",
		"ini", "csv", "netrw", "toml", "conf", "hyprlang", "taskrc", "org",
	})
	v.SetDefault("programming.ai_exclude", []string{
		"yaml", "unknown", "markdown", "text", "git", "gitignore", "ini", "scss",
		"ruby", "org", "csv", "css", "toml", "typst", "json",
	})
	v.SetDefault("programming.daily_exclude", []string{
		"unknown", "text", "git", "gitignore", "ini", "csv", "markdown", "netrw",
		"toml", "conf", "hyprlang", "scss", "taskrc", "org",
	})

	v.SetDefault("forecast.forecaster", "ash")
	v.SetDefault("schedule.file", "")
	v.SetDefault("schedule.zone", "")
	v.SetDefault("logging.level", "info")
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Site.BaseURL != "" {
		u, err := url.Parse(c.Site.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: base_url %q must be an absolute http(s) URL", ErrInvalid, c.Site.BaseURL)
		}
	}
	if c.Site.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalid, c.Site.Timeout)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	for name, loc := range c.Datasets {
		if strings.TrimSpace(loc) == "" {
			return fmt.Errorf("%w: dataset %q has no location", ErrInvalid, name)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("%w: logging level %q (must be debug, info, warn, or error)", ErrInvalid, c.Logging.Level)
	}
	return nil
}

// Location returns the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Site.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Site.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalid, c.Site.Timezone, err)
	}
	return loc, nil
}

// DatasetLocation resolves where a dataset is read from. Site paths (leading
// "/") are joined to the base URL when one is set, unless a local file exists
// at that path; URLs, "sqlite:" locations and other paths are returned
// unchanged.
func (c *Config) DatasetLocation(name string) (string, error) {
	loc, ok := c.Datasets[name]
	if !ok || strings.TrimSpace(loc) == "" {
		return "", fmt.Errorf("%w: unknown dataset %q", ErrInvalid, name)
	}
	return c.Resolve(loc), nil
}

// Resolve applies the site-path rule of DatasetLocation to loc.
func (c *Config) Resolve(loc string) string {
	loc = strings.TrimSpace(loc)
	if c.Site.BaseURL == "" || !strings.HasPrefix(loc, "/") {
		return loc
	}
	if _, err := os.Stat(loc); err == nil {
		return loc
	}
	return strings.TrimRight(c.Site.BaseURL, "/") + loc
}
