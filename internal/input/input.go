// Package input abstracts the keyboard and mouse so systems can be driven by
// Ebitengine in the game and by a script in tests and headless runs.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/tilequest/ecs"
)

// Source reports the input state of the current frame.
type Source interface {
	KeyJustPressed(key ebiten.Key) bool
	CursorPosition() (int, int)
	MouseJustPressed() bool
}

// ticker is implemented by sources that advance once per frame.
type ticker interface {
	Tick()
}

// Input is the resource systems read input through.
type Input struct {
	Source Source
}

// JustPressed reports whether any of keys went down this frame.
func (in *Input) JustPressed(keys ...ebiten.Key) bool {
	if in == nil || in.Source == nil {
		return false
	}
	for _, key := range keys {
		if in.Source.KeyJustPressed(key) {
			return true
		}
	}
	return false
}

func (in *Input) Cursor() (int, int) {
	if in == nil || in.Source == nil {
		return 0, 0
	}
	return in.Source.CursorPosition()
}

func (in *Input) Clicked() bool {
	return in != nil && in.Source != nil && in.Source.MouseJustPressed()
}

// Ebiten reads the live keyboard and mouse.
type Ebiten struct{}

func (Ebiten) KeyJustPressed(key ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(key)
}

func (Ebiten) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (Ebiten) MouseJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// Plugin installs the Input resource and advances scripted sources at the
// start of every update. Add it before any plugin that reads input.
type Plugin struct {
	Source Source
}

func (p Plugin) Build(app *ecs.App) {
	source := p.Source
	if source == nil {
		source = Ebiten{}
	}
	ecs.NewSingleton(app.Storage, Input{Source: source})
	app.AddSystems(ecs.Update, &TickSystem{})
}

// TickSystem advances sources that replay input frame by frame.
type TickSystem struct {
	Input ecs.Singleton[Input]
}

func (s *TickSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get()
	if in == nil {
		return
	}
	if t, ok := in.Source.(ticker); ok {
		t.Tick()
	}
}
