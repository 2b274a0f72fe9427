package config

import (
	"testing"
	"time"

	"github.com/leaguepulse/leaguepulse"
)

func TestBuildOptions_AcceptedByNew(t *testing.T) {
	cfg, err := Parse([]byte(`
league_id: "123"
username: alice
base_url: http://localhost:8080/v1
timeout: 5s
schedule:
  timezone: America/Chicago
  intervals:
    live_window: 2m
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	opts := BuildOptions(cfg)
	if _, err := leaguepulse.New(cfg.LeagueID, opts...); err != nil {
		t.Fatalf("New() with built options = %v", err)
	}
}

func TestBuildOptions_SkipsUnsetFields(t *testing.T) {
	cfg, err := Parse([]byte(`league_id: "123"`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// league id plus the schedule option only; Parse defaults the timeout,
	// so a timeout option is always produced
	opts := BuildOptions(cfg)
	if len(opts) != 2 {
		t.Errorf("len(opts) = %d, want 2 (timeout and schedule)", len(opts))
	}
	if _, err := leaguepulse.New(cfg.LeagueID, opts...); err != nil {
		t.Fatalf("New() with built options = %v", err)
	}
}

func TestBuildSchedule_MapsOntoDefaults(t *testing.T) {
	sc := ScheduleConfig{
		Timezone:         "America/Chicago",
		SaturdayFromWeek: 14,
		Intervals: IntervalsConfig{
			LiveWindow: Duration(2 * time.Minute),
		},
	}

	got := buildSchedule(sc)
	if got.Timezone != "America/Chicago" {
		t.Errorf("Timezone = %q", got.Timezone)
	}
	if got.SaturdayFromWeek != 14 {
		t.Errorf("SaturdayFromWeek = %d", got.SaturdayFromWeek)
	}
	if got.FinalWeek != 18 {
		t.Errorf("FinalWeek = %d, want default 18", got.FinalWeek)
	}
	if got.Intervals.LiveWindow != 2*time.Minute {
		t.Errorf("Intervals.LiveWindow = %v", got.Intervals.LiveWindow)
	}
	// unset intervals stay zero; the policy applies its own defaults
	if got.Intervals.GameDay != 0 {
		t.Errorf("Intervals.GameDay = %v, want 0", got.Intervals.GameDay)
	}
}

func TestBuildSchedule_ZeroConfigKeepsDefaults(t *testing.T) {
	got := buildSchedule(ScheduleConfig{})
	if got.Timezone != "America/New_York" {
		t.Errorf("Timezone = %q, want default", got.Timezone)
	}
	if got.SaturdayFromWeek != 15 {
		t.Errorf("SaturdayFromWeek = %d, want 15", got.SaturdayFromWeek)
	}
}
