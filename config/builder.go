package config

import (
	"github.com/leaguepulse/leaguepulse"
	"github.com/leaguepulse/leaguepulse/internal/schedule"
)

// BuildOptions converts parsed configuration into SDK options.
//
// The returned options are passed to [leaguepulse.New] together with the
// config's LeagueID. Only non-zero config values produce options, so SDK
// defaults stay in effect for everything the file leaves unset.
func BuildOptions(cfg *Config) []leaguepulse.Option {
	var opts []leaguepulse.Option

	if cfg.Username != "" {
		opts = append(opts, leaguepulse.WithUsername(cfg.Username))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, leaguepulse.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout != 0 {
		opts = append(opts, leaguepulse.WithTimeout(cfg.Timeout.Duration()))
	}

	opts = append(opts, leaguepulse.WithSchedule(buildSchedule(cfg.Schedule)))

	return opts
}

// buildSchedule maps the YAML schedule section onto the schedule config,
// leaving zero fields for the classifier's own defaulting.
func buildSchedule(sc ScheduleConfig) schedule.Config {
	cfg := schedule.DefaultConfig()
	if sc.Timezone != "" {
		cfg.Timezone = sc.Timezone
	}
	if sc.SaturdayFromWeek > 0 {
		cfg.SaturdayFromWeek = sc.SaturdayFromWeek
	}
	if sc.FinalWeek > 0 {
		cfg.FinalWeek = sc.FinalWeek
	}
	cfg.Intervals = schedule.Intervals{
		LiveWindow: sc.Intervals.LiveWindow.Duration(),
		GameDay:    sc.Intervals.GameDay.Duration(),
		NonGameDay: sc.Intervals.NonGameDay.Duration(),
		Offseason:  sc.Intervals.Offseason.Duration(),
	}
	return cfg
}
