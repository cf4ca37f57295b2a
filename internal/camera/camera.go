// Package camera keeps the view centred on the player.
package camera

import (
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/tiles"
)

const NAME = "camera"

// DefaultFollow is the share of the distance to the player closed per frame.
const DefaultFollow = 0.125

// GameCamera is the world position at the centre of the screen.
type GameCamera struct {
	X, Y float64
	Zoom float64
}

// ToScreen maps a world position to pixels on a w by h screen. World Y
// grows upwards, screen Y downwards.
func (c GameCamera) ToScreen(p tiles.Vec3, w, h int) (float64, float64) {
	zoom := c.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return float64(w)/2 + (p.X-c.X)*zoom, float64(h)/2 - (p.Y-c.Y)*zoom
}

type Plugin struct {
	Follow float64
}

func (p Plugin) Build(app *ecs.App) {
	follow := p.Follow
	if follow <= 0 || follow > 1 {
		follow = DefaultFollow
	}
	ecs.OnEnter(app, appstate.Running, &resetSystem{})
	ecs.OnExit(app, appstate.Running, &removeSystem{})
	app.AddSystems(ecs.PostUpdate, &FollowSystem{follow: follow}, ecs.InState(appstate.Running), ecs.ResourceExists[GameCamera]())
}

type resetSystem struct {
	Camera ecs.Singleton[GameCamera]
}

func (s *resetSystem) Execute(frame *ecs.UpdateFrame) {
	s.Camera.Set(GameCamera{Zoom: 1})
}

type removeSystem struct{}

func (s *removeSystem) Execute(frame *ecs.UpdateFrame) {
	ecs.RemoveSingleton[GameCamera](frame.Storage)
}

// FollowSystem eases the camera towards the only player.
type FollowSystem struct {
	Players ecs.Query[struct {
		*controls.PlayerControlled
		*tiles.Transform
	}]
	Camera ecs.Singleton[GameCamera]
	follow float64
}

func (s *FollowSystem) Execute(frame *ecs.UpdateFrame) {
	_, player, ok := s.Players.Single()
	if !ok {
		return
	}
	cam := s.Camera.Get()
	cam.X += (player.Transform.Position.X - cam.X) * s.follow
	cam.Y += (player.Transform.Position.Y - cam.Y) * s.follow
}
