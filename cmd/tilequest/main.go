// tilequest is a small tile puzzle game.
//
// Usage:
//
//	tilequest [play]        - Play the game (default)
//	tilequest levels        - List the levels
//	tilequest runs          - Show recorded runs
//	tilequest soak          - Drive a headless game with random input
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.tilequest and ./configs)
//	--log-level <level> - Override the configured log level
package main

import (
	"fmt"
	"os"

	"github.com/plus3/tilequest/internal/config"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, eris.ToString(err, false))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilequest",
	Short: "TileQuest - a small tile puzzle game",
	Long: `TileQuest is a tile puzzle game: walk to the exit, collect gold,
pull levers to open doors.

Examples:
  tilequest
  tilequest play --level level03
  tilequest levels
  tilequest runs -n 5
  tilequest soak --duration 30s`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	addPlayFlags(rootCmd)
	addPlayFlags(playCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(soakCmd)
}

// loadConfig reads the config and applies the logging flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if err := logging.Configure(os.Stderr, cfg.LogLevel); err != nil {
		return cfg, err
	}
	return cfg, nil
}
