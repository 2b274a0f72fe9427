// Package config provides YAML configuration parsing for LeaguePulse.
//
// This package enables running LeaguePulse as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	league_id: "289646328504385536"
//	username: my_sleeper_name
//	timeout: 10s
//
//	schedule:
//	  timezone: America/New_York
//	  saturday_from_week: 15
//	  intervals:
//	    live_window: 5m
//	    game_day: 15m
//	    non_game_day: 1h
//	    offseason: 24h
package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// minInterval is the minimum allowed polling interval. This prevents
// accidental DoS of the upstream API with overly aggressive polling.
const minInterval = 30 * time.Second

// Config is the root configuration structure for LeaguePulse.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// LeagueID is the Sleeper league identifier (required).
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	LeagueID string `yaml:"league_id"`

	// Username is the personal Sleeper username (optional). When set,
	// the personal-team queries resolve it against the league members.
	// Supports environment variable substitution.
	Username string `yaml:"username"`

	// BaseURL overrides the Sleeper API base URL. Defaults to the
	// public API.
	BaseURL string `yaml:"base_url"`

	// Timeout is the per-request timeout for upstream calls.
	// Accepts duration strings like "10s", "1m". Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// Schedule holds the schedule-policy constants that shift season
	// to season.
	Schedule ScheduleConfig `yaml:"schedule"`
}

// ScheduleConfig externalizes the NFL calendar constants.
type ScheduleConfig struct {
	// Timezone is the IANA name of the league's home time zone.
	// Defaults to America/New_York.
	Timezone string `yaml:"timezone"`

	// SaturdayFromWeek is the regular-season week from which Saturday
	// counts as a game day. Defaults to 15.
	SaturdayFromWeek int `yaml:"saturday_from_week"`

	// FinalWeek is the last week of the regular season. Defaults to 18.
	FinalWeek int `yaml:"final_week"`

	// Intervals overrides the per-phase polling intervals.
	Intervals IntervalsConfig `yaml:"intervals"`
}

// IntervalsConfig maps each polling phase to a refresh interval.
// Unset fields keep the built-in defaults (5m/15m/1h/24h).
type IntervalsConfig struct {
	LiveWindow Duration `yaml:"live_window"`
	GameDay    Duration `yaml:"game_day"`
	NonGameDay Duration `yaml:"non_game_day"`
	Offseason  Duration `yaml:"offseason"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with
// environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before validation.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in LeagueID, Username, and BaseURL.
// Defaults are applied for Timeout (10s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = Duration(10 * time.Second)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	expanded, err := expandEnvVars(c.LeagueID)
	if err != nil {
		return fmt.Errorf("league_id: %w", err)
	}
	c.LeagueID = expanded

	if c.LeagueID == "" {
		return fmt.Errorf("league_id is required")
	}

	expanded, err = expandEnvVars(c.Username)
	if err != nil {
		return fmt.Errorf("username: %w", err)
	}
	c.Username = expanded

	if c.BaseURL != "" {
		expanded, err = expandEnvVars(c.BaseURL)
		if err != nil {
			return fmt.Errorf("base_url: %w", err)
		}
		c.BaseURL = expanded

		parsed, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base_url: %w", err)
		}
		if parsed.Scheme != "http" && parsed.Scheme != "https" {
			return fmt.Errorf("base_url scheme must be http or https, got %q", parsed.Scheme)
		}
	}

	if c.Timeout.Duration() < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout.Duration())
	}

	if c.Schedule.Timezone != "" {
		if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
			return fmt.Errorf("schedule: invalid timezone %q: %w", c.Schedule.Timezone, err)
		}
	}
	if c.Schedule.SaturdayFromWeek < 0 {
		return fmt.Errorf("schedule: saturday_from_week cannot be negative")
	}
	if c.Schedule.FinalWeek < 0 {
		return fmt.Errorf("schedule: final_week cannot be negative")
	}

	return c.Schedule.Intervals.validate()
}

func (iv IntervalsConfig) validate() error {
	for _, field := range []struct {
		name string
		d    Duration
	}{
		{"live_window", iv.LiveWindow},
		{"game_day", iv.GameDay},
		{"non_game_day", iv.NonGameDay},
		{"offseason", iv.Offseason},
	} {
		if field.d != 0 && field.d.Duration() < minInterval {
			return fmt.Errorf("schedule: intervals.%s must be at least %s, got %s",
				field.name, minInterval, field.d.Duration())
		}
	}
	return nil
}
