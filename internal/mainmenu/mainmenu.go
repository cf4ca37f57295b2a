// Package mainmenu shows the start and quit buttons.
package mainmenu

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/history"
	"github.com/plus3/tilequest/internal/input"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/render"
)

const NAME = "mainmenu"

const (
	buttonWidth  = 240
	buttonHeight = 64
	buttonGap    = 24
)

var (
	NormalButton  = color.RGBA{R: 38, G: 38, B: 38, A: 255}
	HoveredButton = color.RGBA{R: 64, G: 64, B: 64, A: 255}
	PressedButton = color.RGBA{R: 89, G: 191, B: 89, A: 255}
)

// Button leads to Target when pressed.
type Button struct {
	Label  string
	Target appstate.AppState
	Rect   image.Rectangle
}

// Menu is present while the main menu is shown. Selected is the button
// highlighted by keyboard or mouse. Pressed is -1 until a button is chosen.
type Menu struct {
	Buttons  []Button
	Selected int
	Pressed  int
}

// NewMenu lays the buttons out centred on a w by h screen.
func NewMenu(w, h int) Menu {
	labels := []struct {
		label  string
		target appstate.AppState
	}{
		{"Start Game", appstate.Running},
		{"GGs", appstate.Quitting},
	}
	total := len(labels)*buttonHeight + (len(labels)-1)*buttonGap
	x := w/2 - buttonWidth/2
	y := h/2 - total/2

	menu := Menu{Pressed: -1}
	for i, l := range labels {
		top := y + i*(buttonHeight+buttonGap)
		menu.Buttons = append(menu.Buttons, Button{
			Label:  l.label,
			Target: l.target,
			Rect:   image.Rect(x, top, x+buttonWidth, top+buttonHeight),
		})
	}
	return menu
}

// ButtonAt returns the index of the button under the point, or -1.
func (m *Menu) ButtonAt(x, y int) int {
	p := image.Pt(x, y)
	for i, b := range m.Buttons {
		if p.In(b.Rect) {
			return i
		}
	}
	return -1
}

// ColorOf returns the fill of button i.
func (m *Menu) ColorOf(i int) color.RGBA {
	switch {
	case i == m.Pressed:
		return PressedButton
	case i == m.Selected:
		return HoveredButton
	default:
		return NormalButton
	}
}

type Plugin struct {
	Width, Height int
}

func (p Plugin) Build(app *ecs.App) {
	logger := logging.For(NAME)
	ecs.OnEnter(app, appstate.MainMenu, &openSystem{width: p.Width, height: p.Height, logger: logger})
	ecs.OnExit(app, appstate.MainMenu, &closeSystem{})

	inMenu := ecs.InState(appstate.MainMenu)
	app.AddSystems(ecs.Update, &InputSystem{logger: logger}, inMenu, ecs.ResourceExists[Menu]())
	app.AddSystems(ecs.Draw, &DrawSystem{}, inMenu, ecs.ResourceExists[Menu]())
}

type openSystem struct {
	Menu   ecs.Singleton[Menu]
	Screen ecs.Singleton[render.Screen]
	width  int
	height int
	logger *log.Logger
}

func (s *openSystem) Execute(frame *ecs.UpdateFrame) {
	w, h := s.Screen.Get().Size()
	if w == 0 || h == 0 {
		w, h = s.width, s.height
	}
	s.logger.Debug("opening menu", "width", w, "height", h)
	s.Menu.Set(NewMenu(w, h))
}

type closeSystem struct{}

func (s *closeSystem) Execute(frame *ecs.UpdateFrame) {
	ecs.RemoveSingleton[Menu](frame.Storage)
}

// InputSystem moves the selection with Up/Down or the mouse and presses the
// selected button with Enter, Space or a click.
type InputSystem struct {
	Menu   ecs.Singleton[Menu]
	Input  ecs.Singleton[input.Input]
	Next   ecs.Singleton[ecs.NextState[appstate.AppState]]
	logger *log.Logger

	lastX, lastY int
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	menu := s.Menu.Get()
	in := s.Input.Get()
	if menu.Pressed >= 0 {
		return
	}

	n := len(menu.Buttons)
	switch {
	case in.JustPressed(ebiten.KeyArrowUp, ebiten.KeyW):
		menu.Selected = (menu.Selected + n - 1) % n
	case in.JustPressed(ebiten.KeyArrowDown, ebiten.KeyS):
		menu.Selected = (menu.Selected + 1) % n
	}

	x, y := in.Cursor()
	hovered := menu.ButtonAt(x, y)
	if (x != s.lastX || y != s.lastY) && hovered >= 0 {
		menu.Selected = hovered
	}
	s.lastX, s.lastY = x, y

	pressed := -1
	if in.JustPressed(ebiten.KeyEnter, ebiten.KeySpace) {
		pressed = menu.Selected
	}
	if in.Clicked() && hovered >= 0 {
		pressed = hovered
	}
	if pressed < 0 {
		return
	}

	menu.Pressed = pressed
	button := menu.Buttons[pressed]
	s.logger.Info("menu", "pressed", button.Label)
	s.Next.Get().Set(button.Target)
}

// DrawSystem draws the buttons and the last run's result.
type DrawSystem struct {
	Menu   ecs.Singleton[Menu]
	Last   ecs.Singleton[history.LastRun]
	Screen ecs.Singleton[render.Screen]
}

func (s *DrawSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	menu := s.Menu.Get()
	for i, b := range menu.Buttons {
		r := b.Rect
		vector.DrawFilledRect(screen.Image, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), menu.ColorOf(i), false)
		ebitenutil.DebugPrintAt(screen.Image, b.Label, r.Min.X+r.Dx()/2-len(b.Label)*3, r.Min.Y+r.Dy()/2-8)
	}

	if line := LastRunLine(s.Last.Get()); line != "" {
		w, h := screen.Size()
		ebitenutil.DebugPrintAt(screen.Image, line, w/2-len(line)*3, h-32)
	}
}

// LastRunLine describes the last run, or is empty when there was none.
func LastRunLine(last *history.LastRun) string {
	if last == nil || !last.Known {
		return ""
	}
	return fmt.Sprintf("Last run: %d gold, %d levels", last.Run.Gold, last.Run.Levels)
}
