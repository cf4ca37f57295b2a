// Package splash shows the title for a moment before the main menu.
package splash

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/animation"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/input"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/render"
)

const NAME = "splash"

const DefaultDuration = 2 * time.Second

// Splash is present while the title is shown.
type Splash struct {
	Title string
	Timer animation.Timer
}

type Plugin struct {
	Title    string
	Duration time.Duration
}

func (p Plugin) Build(app *ecs.App) {
	d := p.Duration
	if d <= 0 {
		d = DefaultDuration
	}
	logger := logging.For(NAME)

	ecs.OnEnter(app, appstate.Splash, &startSystem{title: p.Title, duration: d, logger: logger})
	ecs.OnExit(app, appstate.Splash, &stopSystem{})

	inSplash := ecs.InState(appstate.Splash)
	app.AddSystems(ecs.Update, &CountdownSystem{logger: logger}, inSplash, ecs.ResourceExists[Splash]())
	app.AddSystems(ecs.Draw, &DrawSystem{}, inSplash, ecs.ResourceExists[Splash]())
}

type startSystem struct {
	Splash   ecs.Singleton[Splash]
	title    string
	duration time.Duration
	logger   *log.Logger
}

func (s *startSystem) Execute(frame *ecs.UpdateFrame) {
	s.logger.Debug("showing splash", "duration", s.duration)
	s.Splash.Set(Splash{Title: s.title, Timer: animation.NewTimer(s.duration)})
}

type stopSystem struct{}

func (s *stopSystem) Execute(frame *ecs.UpdateFrame) {
	ecs.RemoveSingleton[Splash](frame.Storage)
}

// CountdownSystem moves on to the main menu when the timer runs out or a
// key is pressed.
type CountdownSystem struct {
	Splash ecs.Singleton[Splash]
	Input  ecs.Singleton[input.Input]
	Next   ecs.Singleton[ecs.NextState[appstate.AppState]]
	logger *log.Logger
}

func (s *CountdownSystem) Execute(frame *ecs.UpdateFrame) {
	splash := s.Splash.Get()
	splash.Timer.Tick(animation.Seconds(frame.DeltaTime))
	skipped := s.Input.Get().JustPressed(ebiten.KeyEnter, ebiten.KeySpace, ebiten.KeyEscape)
	if splash.Timer.Finished() || skipped {
		s.logger.Debug("splash done", "skipped", skipped)
		s.Next.Get().Set(appstate.MainMenu)
	}
}

// TitleAlpha is the title opacity at a point of the splash timer: it fades
// in over the first half and then stays opaque.
func TitleAlpha(fraction float64) float64 {
	return max(0, min(1, fraction*2))
}

// DrawSystem fades the title in over the first half of the splash, then
// shows the skip hint.
type DrawSystem struct {
	Splash ecs.Singleton[Splash]
	Screen ecs.Singleton[render.Screen]
	title  *ebiten.Image
}

func (s *DrawSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	splash := s.Splash.Get()
	w, h := screen.Size()
	fraction := splash.Timer.Fraction()

	// DebugPrint glyphs are 6x16.
	if len(splash.Title) > 0 {
		if s.title == nil {
			s.title = ebiten.NewImage(len(splash.Title)*6, 16)
			ebitenutil.DebugPrint(s.title, splash.Title)
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(w/2-len(splash.Title)*3), float64(h/2-8))
		op.ColorScale.ScaleAlpha(float32(TitleAlpha(fraction)))
		screen.Image.DrawImage(s.title, op)
	}
	if fraction > 0.5 {
		hint := "press enter"
		ebitenutil.DebugPrintAt(screen.Image, hint, w/2-len(hint)*3, h/2+16)
	}
}
