package leaguepulse

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/leaguepulse/leaguepulse/internal/schedule"
)

func TestOptions_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr bool
	}{
		{"valid username", WithUsername("alice"), false},
		{"empty base url", WithBaseURL(""), true},
		{"valid base url", WithBaseURL("http://localhost:8080"), false},
		{"zero timeout", WithTimeout(0), true},
		{"negative timeout", WithTimeout(-time.Second), true},
		{"valid timeout", WithTimeout(5 * time.Second), false},
		{"nil logger", WithLogger(nil), true},
		{"valid logger", WithLogger(discardLogger()), false},
		{"negative interval", WithIntervals(schedule.Intervals{LiveWindow: -time.Minute}), true},
		{"valid intervals", WithIntervals(schedule.Intervals{LiveWindow: time.Minute}), false},
		{"nil registerer", WithMetrics(nil), true},
		{"valid registerer", WithMetrics(prometheus.NewRegistry()), false},
		{"nil data source", WithDataSource(nil), true},
		{"valid data source", WithDataSource(newFakeSource()), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("league-1", tt.opt)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithSnapshotCallback_NilIgnored(t *testing.T) {
	if _, err := New("league-1", WithSnapshotCallback(nil)); err != nil {
		t.Errorf("New() with nil callback = %v, want nil", err)
	}
}

func TestWithSchedule_InvalidTimezoneRejectedByNew(t *testing.T) {
	cfg := schedule.DefaultConfig()
	cfg.Timezone = "Mars/Olympus_Mons"
	if _, err := New("league-1", WithSchedule(cfg)); err == nil {
		t.Error("New() = nil with invalid timezone, want error")
	}
}

func TestNew_RequiresLeagueID(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Error(`New("") = nil, want error`)
	}
}
