// Package main is the entry point for the leaguepulse CLI.
//
// LeaguePulse can be run either as a library (SDK) or as a standalone
// binary with YAML configuration. This CLI provides the standalone binary
// approach.
//
// Usage:
//
//	leaguepulse watch -c config.yaml    # Start watching the league
//	leaguepulse validate -c config.yaml # Validate configuration
//	leaguepulse version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "leaguepulse",
	Short: "An adaptive Sleeper fantasy-league watcher",
	Long: `LeaguePulse polls a Sleeper fantasy-football league on an adaptive
schedule and logs a consistent view of league state.

Polling cadence tracks the NFL calendar: every five minutes while games are
live, every fifteen minutes on a game day, hourly on quiet regular-season
days, and daily in the offseason.

Quick start:
  1. Create a config file (leaguepulse.yaml)
  2. Run: leaguepulse watch -c leaguepulse.yaml

Example config:
  league_id: "289646328504385536"
  username: my_sleeper_name`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this leaguepulse binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("leaguepulse %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
