package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level taskwatch configuration.
type Config struct {
	DBPath    string    `mapstructure:"db_path"`
	User      string    `mapstructure:"user"`
	Analytics Analytics `mapstructure:"analytics"`
	Streak    Streak    `mapstructure:"streak"`
	Output    Output    `mapstructure:"output"`
}

// Analytics defines the trailing windows used by aggregate queries.
type Analytics struct {
	StatsWindowDays  int `mapstructure:"stats_window_days"`
	StreakWindowDays int `mapstructure:"streak_window_days"`
}

// Streak selects how streaks are counted.
type Streak struct {
	Mode string `mapstructure:"mode"`
}

// Output defines output preferences.
type Output struct {
	Color       bool `mapstructure:"color"`
	ChartWidth  int  `mapstructure:"chart_width"`
	ChartHeight int  `mapstructure:"chart_height"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func newViper() *viper.Viper {
	v := viper.New()

	// Set defaults.
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("user", "")
	v.SetDefault("analytics.stats_window_days", DefaultAnalytics.StatsWindowDays)
	v.SetDefault("analytics.streak_window_days", DefaultAnalytics.StreakWindowDays)
	v.SetDefault("streak.mode", DefaultStreak.Mode)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.chart_width", DefaultOutput.ChartWidth)
	v.SetDefault("output.chart_height", DefaultOutput.ChartHeight)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// readConfig points v at cfgFile (or the default location) and reads it.
// A missing file is not an error.
func readConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}

// Load reads configuration from the given path (or the default location)
// and returns a validated Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := newViper()
	if err := readConfig(v, cfgFile); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.DBPath = expandPath(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the analyzer cannot work with.
func (c *Config) Validate() error {
	if c.Analytics.StatsWindowDays < 1 {
		return fmt.Errorf("analytics.stats_window_days must be at least 1, got %d", c.Analytics.StatsWindowDays)
	}
	if c.Analytics.StreakWindowDays < 1 {
		return fmt.Errorf("analytics.streak_window_days must be at least 1, got %d", c.Analytics.StreakWindowDays)
	}
	switch c.Streak.Mode {
	case StreakLogged, StreakCalendar:
	default:
		return fmt.Errorf("streak.mode must be %q or %q, got %q", StreakLogged, StreakCalendar, c.Streak.Mode)
	}
	return nil
}

// SaveUser records the active user in the config file, creating the file
// and its directory if needed. Other keys already in the file are kept.
func SaveUser(cfgFile, username string) (string, error) {
	path := expandPath(cfgFile)
	if path == "" {
		path = filepath.Join(ConfigDir(), DefaultConfigFile)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return "", err
		}
	}
	v.Set("user", username)
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
