package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leaguepulse/leaguepulse/config"
	"github.com/leaguepulse/leaguepulse/internal/sleeper"
)

const remoteCheckTimeout = 30 * time.Second

// validateCmd validates a config file without starting the watcher.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a LeaguePulse configuration file without starting the watcher.

This command parses the YAML, expands environment variables, and validates
all fields. With --remote it additionally checks the configuration against
the Sleeper API: the league must exist, and the username (if set) must
belong to an account that is a member of the league.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  leaguepulse validate -c config.yaml
  leaguepulse validate -c config.yaml --remote`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	validateCmd.Flags().Bool("remote", false, "verify the league and username against the Sleeper API")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  League ID: %s\n", cfg.LeagueID)
	if cfg.Username != "" {
		fmt.Printf("  Username:  %s\n", cfg.Username)
	}

	remote, _ := cmd.Flags().GetBool("remote")
	if !remote {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), remoteCheckTimeout)
	defer cancel()

	if err := checkRemote(ctx, cfg); err != nil {
		return fmt.Errorf("remote check failed: %w", err)
	}

	fmt.Printf("Remote check passed!\n")
	return nil
}

// checkRemote verifies the configured league and username upstream.
func checkRemote(ctx context.Context, cfg *config.Config) error {
	client := sleeper.NewClient(cfg.BaseURL, cfg.Timeout.Duration())
	defer client.Close()

	league, err := client.League(ctx, cfg.LeagueID)
	if err != nil {
		if sleeper.IsNotFound(err) {
			return fmt.Errorf("league %s not found", cfg.LeagueID)
		}
		return err
	}
	fmt.Printf("  League:    %s (season %s, %d rosters)\n", league.Name, league.Season, league.TotalRosters)

	if cfg.Username == "" {
		return nil
	}

	if _, err := client.User(ctx, cfg.Username); err != nil {
		if sleeper.IsNotFound(err) {
			return fmt.Errorf("user %q not found", cfg.Username)
		}
		return err
	}

	members, err := client.Members(ctx, cfg.LeagueID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if strings.EqualFold(m.DisplayName, cfg.Username) {
			fmt.Printf("  Member:    %s\n", m.DisplayName)
			return nil
		}
	}
	return fmt.Errorf("user %q is not a member of league %s", cfg.Username, cfg.LeagueID)
}
