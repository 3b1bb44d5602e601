package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Session  SessionConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path     string
	SeedDemo bool `mapstructure:"seed_demo"`
}

// SessionConfig holds focus session timing and identity settings.
type SessionConfig struct {
	UserID             string `mapstructure:"user_id"`
	Background         string
	TransitionSeconds  int `mapstructure:"transition_seconds"`
	PomodoroMinutes    int `mapstructure:"pomodoro_minutes"`
	SnoozeMinutes      int `mapstructure:"snooze_minutes"`
	PostponeHours      int `mapstructure:"postpone_hours"`
	PersistTimeoutSecs int `mapstructure:"persist_timeout_seconds"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ShortcutsPath string `mapstructure:"shortcuts_path"`
}

// Load reads configuration from file and env. Env var overrides use prefix FOCUSLINE_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "focusline", "focusline.db"))
	v.SetDefault("database.seed_demo", true)
	v.SetDefault("session.user_id", "local")
	v.SetDefault("session.background", "none")
	v.SetDefault("session.transition_seconds", 3)
	v.SetDefault("session.pomodoro_minutes", 25)
	v.SetDefault("session.snooze_minutes", 60)
	v.SetDefault("session.postpone_hours", 24)
	v.SetDefault("session.persist_timeout_seconds", 10)
	v.SetDefault("ui.shortcuts_path", filepath.Join(os.Getenv("HOME"), ".config", "focusline", "shortcuts.toml"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FOCUSLINE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "focusline"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FOCUSLINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Session.TransitionSeconds < 0 {
		return fmt.Errorf("session.transition_seconds must not be negative")
	}
	if c.Session.PomodoroMinutes <= 0 {
		return fmt.Errorf("session.pomodoro_minutes must be positive")
	}
	if c.Session.SnoozeMinutes <= 0 || c.Session.PostponeHours <= 0 {
		return fmt.Errorf("snooze and postpone durations must be positive")
	}
	return nil
}

// TransitionDelay returns the dwell between screens as a duration.
func (c Config) TransitionDelay() time.Duration {
	return time.Duration(c.Session.TransitionSeconds) * time.Second
}

// PomodoroLength returns the configured pomodoro unit.
func (c Config) PomodoroLength() time.Duration {
	return time.Duration(c.Session.PomodoroMinutes) * time.Minute
}

// SnoozeFor returns how far a snoozed task is pushed out.
func (c Config) SnoozeFor() time.Duration {
	return time.Duration(c.Session.SnoozeMinutes) * time.Minute
}

// PostponeFor returns how far a postponed due date is pushed out.
func (c Config) PostponeFor() time.Duration {
	return time.Duration(c.Session.PostponeHours) * time.Hour
}

// PersistTimeout returns the per-write deadline for gateway calls.
func (c Config) PersistTimeout() time.Duration {
	return time.Duration(c.Session.PersistTimeoutSecs) * time.Second
}
