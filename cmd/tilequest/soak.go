package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/config"
	"github.com/plus3/tilequest/internal/game"
	"github.com/plus3/tilequest/internal/input"
	"github.com/plus3/tilequest/internal/levels"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagSoakDuration time.Duration
	flagSoakSeed     uint64
	flagSoakIdle     float64
)

var soakCmd = &cobra.Command{
	Use:   "soak",
	Short: "Drive a headless game with random input",
	Long: `Runs the game without a window, pressing random keys every frame, and
prints a frame time report. A game that quits through the menu is restarted.

Examples:
  tilequest soak --duration 1m --seed 42`,
	Args: cobra.NoArgs,
	RunE: runSoak,
}

func init() {
	soakCmd.Flags().DurationVar(&flagSoakDuration, "duration", 10*time.Second, "How long to run")
	soakCmd.Flags().Uint64Var(&flagSoakSeed, "seed", 0, "RNG seed (0 = time based)")
	soakCmd.Flags().Float64Var(&flagSoakIdle, "idle", 0.5, "Chance of a frame without input")
}

var soakKeys = []ebiten.Key{
	ebiten.KeyW, ebiten.KeyA, ebiten.KeyS, ebiten.KeyD,
	ebiten.KeyArrowUp, ebiten.KeyArrowLeft, ebiten.KeyArrowDown, ebiten.KeyArrowRight,
	ebiten.KeyEnter, ebiten.KeyEscape,
}

// soakSession is one headless game and its event readers.
type soakSession struct {
	game     *game.Game
	script   *input.Scripted
	finished *ecs.EventReader[levels.LevelFinished]
}

func newSoakSession(cfg config.Config, catalog *levels.Catalog) *soakSession {
	script := input.NewScripted()
	g := game.NewHeadless(cfg, catalog, script)
	return &soakSession{
		game:     g,
		script:   script,
		finished: ecs.NewEventReader[levels.LevelFinished](g.App().Storage),
	}
}

func runSoak(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.For("soak")

	catalog, err := levels.Load()
	if err != nil {
		return err
	}

	seed := flagSoakSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	report := &Report{
		Duration: flagSoakDuration,
		Seed:     seed,
		Levels:   catalog.Len(),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	ctx, cancel := context.WithTimeout(cmd.Context(), flagSoakDuration)
	defer cancel()

	logger.Info("soaking", "duration", flagSoakDuration, "seed", seed)
	session := newSoakSession(cfg, catalog)
	report.Sessions = 1
	start := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		if rng.Float64() >= flagSoakIdle {
			session.script.Press(soakKeys[rng.IntN(len(soakKeys))])
		}

		frameStart := time.Now()
		done := session.game.Step()
		report.Frame.Add(time.Since(frameStart))
		report.Frames++

		for ev := range session.finished.Read() {
			if ev.Completed {
				report.LevelsCompleted++
			}
		}
		if done {
			session = newSoakSession(cfg, catalog)
			report.Sessions++
		}
	}

	report.TotalTime = time.Since(start)
	report.Frame.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	logger.Info("soak finished", "frames", report.Frames, "sessions", report.Sessions)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	return report.Generate(out)
}
