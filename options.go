package leaguepulse

import (
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/leaguepulse/leaguepulse/internal/schedule"
)

// lpConfig holds mutable state during LeaguePulse construction.
type lpConfig struct {
	username    string
	baseURL     string
	timeout     time.Duration
	logger      *slog.Logger
	scheduleCfg schedule.Config
	callbacks   []func(*Snapshot)
	registerer  prometheus.Registerer
	source      DataSource
}

// Option configures a [LeaguePulse] instance during construction.
//
// Option implements the functional options pattern. Options return an
// error if validation fails.
type Option func(*lpConfig) error

// WithUsername sets the personal Sleeper username.
//
// When set, [Snapshot.MyMember] and [Snapshot.MyRoster] resolve it against
// the league's members by case-insensitive display-name match. Optional; an
// empty username simply disables the personal queries.
func WithUsername(username string) Option {
	return func(cfg *lpConfig) error {
		cfg.username = username
		return nil
	}
}

// WithBaseURL overrides the Sleeper API base URL, mainly for testing
// against a local fake upstream.
func WithBaseURL(baseURL string) Option {
	return func(cfg *lpConfig) error {
		if baseURL == "" {
			return errors.New("base URL cannot be empty")
		}
		cfg.baseURL = baseURL
		return nil
	}
}

// WithTimeout sets the per-request timeout for upstream calls.
// Defaults to 10 seconds.
//
// Returns an error if the duration is zero or negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *lpConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger]. If not specified,
// [slog.Default] is used.
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *lpConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithSchedule replaces the schedule-policy constants: time zone, game-day
// table, regular-season length, and per-phase intervals. Zero fields keep
// their defaults. These constants shift season to season, so they are
// configuration rather than code.
func WithSchedule(cfg schedule.Config) Option {
	return func(c *lpConfig) error {
		c.scheduleCfg = cfg
		return nil
	}
}

// WithIntervals overrides only the per-phase polling intervals, keeping
// the default calendar rules.
//
// Returns an error if any specified interval is negative.
func WithIntervals(iv schedule.Intervals) Option {
	return func(cfg *lpConfig) error {
		if iv.LiveWindow < 0 || iv.GameDay < 0 || iv.NonGameDay < 0 || iv.Offseason < 0 {
			return errors.New("intervals must not be negative")
		}
		cfg.scheduleCfg.Intervals = iv
		return nil
	}
}

// WithSnapshotCallback registers a function called each time a new
// Snapshot is published.
//
// Multiple callbacks may be registered; they execute in registration
// order. Callbacks must be non-blocking: they run synchronously on the
// polling goroutine, so long-running work should be dispatched elsewhere.
// Panics within callbacks are recovered and logged; they do not crash the
// polling loop.
//
// Nil callbacks are silently ignored.
func WithSnapshotCallback(cb func(*Snapshot)) Option {
	return func(cfg *lpConfig) error {
		if cb == nil {
			return nil
		}
		cfg.callbacks = append(cfg.callbacks, cb)
		return nil
	}
}

// WithMetrics registers Prometheus collectors for the polling loop
// (cycle counts by outcome, cycle duration, snapshot publications) with
// the given registerer. Metrics are disabled when this option is absent.
//
// Returns an error if the registerer is nil.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(cfg *lpConfig) error {
		if reg == nil {
			return errors.New("registerer cannot be nil")
		}
		cfg.registerer = reg
		return nil
	}
}

// WithDataSource replaces the Sleeper-backed upstream entirely. Intended
// for tests and for embedding against a different fantasy data provider.
//
// Returns an error if the source is nil.
func WithDataSource(source DataSource) Option {
	return func(cfg *lpConfig) error {
		if source == nil {
			return errors.New("data source cannot be nil")
		}
		cfg.source = source
		return nil
	}
}
