package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/leaguepulse/leaguepulse"
	"github.com/leaguepulse/leaguepulse/config"
)

const shutdownTimeout = 10 * time.Second

// newLogger creates a JSON logger for CLI use.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// watchCmd starts the league watcher.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a league and log each published snapshot",
	Long: `Watch a Sleeper league on the adaptive schedule.

The watcher will:
  - Load configuration from the specified YAML file
  - Fetch the league immediately, then on the adaptive schedule
  - Log a standings summary each time a fresh snapshot is published

The watcher runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  leaguepulse watch -c config.yaml
  leaguepulse watch --config /etc/leaguepulse/config.yaml --debug`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	watchCmd.Flags().Bool("debug", false, "log every fetch cycle, not just failures")
	_ = watchCmd.MarkFlagRequired("config")
}

func runWatch(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	logger := newLogger(debug)

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded",
		"league_id", cfg.LeagueID,
		"username_set", cfg.Username != "",
	)

	opts := config.BuildOptions(cfg)
	opts = append(opts,
		leaguepulse.WithLogger(logger),
		leaguepulse.WithSnapshotCallback(func(snap *leaguepulse.Snapshot) {
			logSnapshot(logger, snap)
		}),
	)

	lp, err := leaguepulse.New(cfg.LeagueID, opts...)
	if err != nil {
		return fmt.Errorf("failed to create leaguepulse: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		errChan <- lp.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("watcher error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("watcher error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}

// logSnapshot logs a compact league summary for one published snapshot.
func logSnapshot(logger *slog.Logger, snap *leaguepulse.Snapshot) {
	attrs := []any{
		"league", snap.League.Name,
		"season", snap.Season.Season,
		"week", snap.Season.Week,
		"phase", string(snap.Season.Phase),
	}

	if standings := snap.Standings(); len(standings) > 0 {
		leader := standings[0].Roster
		name := fmt.Sprintf("roster %d", leader.RosterID)
		if owner, ok := snap.OwnerOf(leader.RosterID); ok {
			name = owner.Name()
		}
		attrs = append(attrs,
			"leader", name,
			"leader_record", fmt.Sprintf("%d-%d-%d", leader.Wins, leader.Losses, leader.Ties),
		)
	}

	if mine, ok := snap.MyRoster(); ok {
		attrs = append(attrs,
			"my_record", fmt.Sprintf("%d-%d-%d", mine.Wins, mine.Losses, mine.Ties),
			"my_points", mine.PointsFor,
		)
		if pairing, ok := snap.MatchupFor(mine.RosterID); ok {
			if pairing.Bye {
				attrs = append(attrs, "my_matchup", "bye")
			} else {
				attrs = append(attrs, "my_matchup",
					fmt.Sprintf("%.2f - %.2f", pairing.Self.Points, pairing.Opponent.Points))
			}
		}
	}

	logger.Info("snapshot published", attrs...)
}
