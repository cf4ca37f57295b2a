// Package game assembles the app from every plugin and hosts it in Ebitengine.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/ecs/debugui"
	debugui_ebiten "github.com/plus3/tilequest/ecs/debugui/ebiten"
	"github.com/plus3/tilequest/internal/animation"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/audio"
	"github.com/plus3/tilequest/internal/camera"
	"github.com/plus3/tilequest/internal/config"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/gold"
	"github.com/plus3/tilequest/internal/health"
	"github.com/plus3/tilequest/internal/history"
	"github.com/plus3/tilequest/internal/ingameui"
	"github.com/plus3/tilequest/internal/input"
	"github.com/plus3/tilequest/internal/interaction"
	"github.com/plus3/tilequest/internal/keyboard"
	"github.com/plus3/tilequest/internal/levels"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/mainmenu"
	"github.com/plus3/tilequest/internal/movement"
	"github.com/plus3/tilequest/internal/render"
	"github.com/plus3/tilequest/internal/splash"
	"github.com/plus3/tilequest/internal/sprites"
	"github.com/plus3/tilequest/internal/store"
	"github.com/plus3/tilequest/internal/tiles"
	"github.com/plus3/tilequest/internal/tutorial"
)

const NAME = "game"

// TPS is the fixed update rate. Systems receive 1/TPS as their delta.
const TPS = 60

type Options struct {
	Config  config.Config
	Catalog *levels.Catalog
	// Source defaults to the Ebitengine keyboard and mouse.
	Source input.Source
	// Player defaults to silence.
	Player audio.SoundPlayer
	// Recorder persists finished runs. Nil keeps them in memory only.
	Recorder history.Recorder
	Last     *store.Run
	Initial  appstate.AppState
	DebugUI  bool
}

// NewApp builds the app. Plugin order is system order within a schedule.
func NewApp(opts Options) *ecs.App {
	cfg := opts.Config
	app := ecs.NewApp()
	app.AddPlugins(
		input.Plugin{Source: opts.Source},
		appstate.Plugin{Initial: opts.Initial, StartLevel: cfg.Level()},
		tiles.Plugin{},
		controls.Plugin{},
		keyboard.Plugin{},
		animation.Plugin{MoveDuration: cfg.MoveDuration(), MoveEase: cfg.Ease()},
		movement.Plugin{},
		interaction.Plugin{},
		sprites.Plugin{SheetPath: cfg.SheetPath},
		gold.Plugin{},
		health.Plugin{},
		tutorial.Plugin{},
		levels.Plugin{Catalog: opts.Catalog},
		camera.Plugin{Follow: cfg.CameraFollow},
		render.Plugin{},
		ingameui.Plugin{},
		splash.Plugin{Title: cfg.Title, Duration: cfg.SplashDuration()},
		mainmenu.Plugin{Width: cfg.Width, Height: cfg.Height},
		history.Plugin{Recorder: opts.Recorder, Last: opts.Last},
		audio.Plugin{Player: opts.Player},
	)
	if opts.DebugUI {
		app.AddPlugins(debugui.Plugin{})
	}
	return app
}

// Game implements ebiten.Game around an App.
type Game struct {
	app     *ecs.App
	width   int
	height  int
	backend *debugui_ebiten.ImguiBackend
	screen  *ecs.Singleton[render.Screen]
}

func newGame(app *ecs.App, width, height int) *Game {
	return &Game{
		app:    app,
		width:  width,
		height: height,
		screen: ecs.NewSingleton(app.Storage, render.Screen{}),
	}
}

// New builds a windowed game. With DebugUI set it also creates the ImGui
// backend, which opens the window.
func New(opts Options) *Game {
	g := newGame(NewApp(opts), opts.Config.Width, opts.Config.Height)
	if opts.DebugUI {
		g.backend = debugui_ebiten.NewImguiBackend(opts.Config.Title, g.width, g.height)
	}
	return g
}

// NewHeadless builds a game driven by scripted input with no audio, no
// sprite sheet and no persistence.
func NewHeadless(cfg config.Config, catalog *levels.Catalog, script *input.Scripted) *Game {
	cfg.SheetPath = ""
	return newGame(NewApp(Options{Config: cfg, Catalog: catalog, Source: script}), cfg.Width, cfg.Height)
}

func (g *Game) App() *ecs.App {
	return g.app
}

// Step runs one fixed update and reports whether the app asked to exit.
func (g *Game) Step() bool {
	g.app.Update(1.0 / TPS)
	return g.app.ShouldExit()
}

func (g *Game) Update() error {
	if g.backend != nil {
		g.backend.BeginFrame()
	}
	done := g.Step()
	if g.backend != nil {
		g.backend.EndFrame()
	}
	if done {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.setScreen(screen)
	g.app.RunDraw()
	if g.backend != nil {
		g.backend.Draw(screen)
	}
}

// setScreen points the Screen resource at this frame's image in place.
func (g *Game) setScreen(img *ebiten.Image) {
	if current := g.screen.Get(); current != nil {
		current.Image = img
		return
	}
	g.screen.Set(render.Screen{Image: img})
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend != nil {
		g.backend.Layout(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

// Run opens the window and blocks until the game exits.
func (g *Game) Run(title string) error {
	logger := logging.For(NAME)
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(TPS)

	logger.Info("starting", "width", g.width, "height", g.height, "debug_ui", g.backend != nil)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	logger.Info("stopped", "frames", g.app.Frames())
	return nil
}
