package main

import (
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/audio"
	"github.com/plus3/tilequest/internal/game"
	"github.com/plus3/tilequest/internal/levels"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/store"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	flagLevel     string
	flagMute      bool
	flagDebugUI   bool
	flagSkipIntro bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Opens the game window. Runs are recorded to the configured database.

Examples:
  tilequest play
  tilequest play --level level04 --skip-intro
  tilequest play --debug-ui`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagLevel, "level", "", "Start level, e.g. level03")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	cmd.Flags().BoolVar(&flagDebugUI, "debug-ui", false, "Show the ECS debug windows")
	cmd.Flags().BoolVar(&flagSkipIntro, "skip-intro", false, "Start at the main menu")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.For("tilequest")

	if flagLevel != "" {
		cfg.StartLevel = flagLevel
	}
	if flagMute {
		cfg.Mute = true
	}
	if err := cfg.Validate(); err != nil {
		return eris.Wrap(err, "invalid flags")
	}

	catalog, err := levels.Load()
	if err != nil {
		return err
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	opts := game.Options{
		Config:   cfg,
		Catalog:  catalog,
		Recorder: db,
		DebugUI:  flagDebugUI,
	}
	if flagSkipIntro {
		opts.Initial = appstate.MainMenu
	}
	if last, ok, err := db.LastRun(); err != nil {
		logger.Warn("failed to read last run", "err", err)
	} else if ok {
		opts.Last = &last
	}

	if !cfg.Mute {
		speaker := audio.NewSpeaker(cfg.Volume)
		if err := speaker.Init(); err != nil {
			logger.Warn("audio disabled", "err", err)
		} else {
			defer speaker.Close()
			opts.Player = speaker
		}
	}

	return game.New(opts).Run(cfg.Title)
}
