// Package ingameui shows the player's hearts, gold and the level name.
package ingameui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/gold"
	"github.com/plus3/tilequest/internal/health"
	"github.com/plus3/tilequest/internal/levels"
	"github.com/plus3/tilequest/internal/render"
	"github.com/plus3/tilequest/internal/sprites"
)

const NAME = "ingameui"

const (
	margin     = 8
	lineHeight = 18
	iconScale  = 2
)

// HUD is the text state of the overlay. It is rebuilt when the player
// spawns or picks something up.
type HUD struct {
	Health string
	Gold   string
	Level  string
	stale  bool
}

// Lines returns the non-empty HUD lines top to bottom.
func (h *HUD) Lines() []string {
	var out []string
	for _, line := range []string{h.Level, h.Health, h.Gold} {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func HealthLine(h health.Health) string {
	return fmt.Sprintf("Health: %d/%d", h.Hearts, h.Max)
}

func GoldLine(g gold.Gold) string {
	return fmt.Sprintf("Gold: %d", g.Coins)
}

type Plugin struct{}

func (Plugin) Build(app *ecs.App) {
	ecs.OnEnter(app, appstate.Running, &showSystem{})
	ecs.OnExit(app, appstate.Running, &hideSystem{})

	hud := ecs.ResourceExists[HUD]()
	running := ecs.InState(appstate.Running)
	app.AddSystems(ecs.PostUpdate, &RefreshSystem{}, running, hud)
	app.AddSystems(ecs.Draw, &DrawSystem{}, running, hud)
}

type showSystem struct {
	HUD ecs.Singleton[HUD]
}

func (s *showSystem) Execute(frame *ecs.UpdateFrame) {
	s.HUD.Set(HUD{stale: true})
}

type hideSystem struct{}

func (s *hideSystem) Execute(frame *ecs.UpdateFrame) {
	ecs.RemoveSingleton[HUD](frame.Storage)
}

// RefreshSystem rebuilds the HUD text after spawns and pickups.
type RefreshSystem struct {
	Spawned ecs.EventReader[controls.PlayerSpawned]
	Hearts  ecs.EventReader[health.PickedUpHearts]
	Coins   ecs.EventReader[gold.PlayerPickedUpGoldCoins]
	Levels  ecs.EventReader[levels.LevelFinished]
	Players ecs.Query[struct {
		*controls.PlayerControlled
		Health *health.Health `ecs:"optional"`
		Gold   *gold.Gold     `ecs:"optional"`
	}]
	Active ecs.Singleton[levels.ActiveLevel]
	HUD    ecs.Singleton[HUD]
}

func (s *RefreshSystem) Execute(frame *ecs.UpdateFrame) {
	hud := s.HUD.Get()
	for _, r := range []interface{ IsEmpty() bool }{&s.Spawned, &s.Hearts, &s.Coins, &s.Levels} {
		if !r.IsEmpty() {
			hud.stale = true
		}
	}
	s.Spawned.Clear()
	s.Hearts.Clear()
	s.Coins.Clear()
	s.Levels.Clear()
	if !hud.stale {
		return
	}

	if active := s.Active.Get(); active != nil {
		hud.Level = active.Level.Name
	} else {
		hud.Level = ""
	}

	_, player, ok := s.Players.Single()
	if !ok {
		return
	}
	if player.Health != nil {
		hud.Health = HealthLine(*player.Health)
	}
	if player.Gold != nil {
		hud.Gold = GoldLine(*player.Gold)
	}
	hud.stale = player.Health == nil || player.Gold == nil
}

// DrawSystem prints the HUD in the top left corner with a heart icon.
type DrawSystem struct {
	HUD    ecs.Singleton[HUD]
	Sheet  ecs.Singleton[sprites.Spritesheet]
	Screen ecs.Singleton[render.Screen]
}

func (s *DrawSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	x := margin
	if heart := s.Sheet.Get().Tile(sprites.Heart); heart != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(iconScale, iconScale)
		op.GeoM.Translate(margin, margin)
		op.ColorScale.Scale(1, 0, 0, 1)
		screen.Image.DrawImage(heart, op)
		x += heart.Bounds().Dx()*iconScale + margin
	}
	for i, line := range s.HUD.Get().Lines() {
		ebitenutil.DebugPrintAt(screen.Image, line, x, margin+i*lineHeight)
	}
}
