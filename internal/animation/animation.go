// Package animation eases tile moves and plays short transform effects.
package animation

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/tiles"
)

const NAME = "animation"

const (
	DefaultMoveDuration = 200 * time.Millisecond
	DefaultMoveEase     = CircularInOut

	wiggleAngle = 0.2
	pulseAmount = 0.2
)

// Settings is the resource holding how tile moves are animated.
type Settings struct {
	MoveDuration time.Duration
	MoveEase     Ease
}

// MoveAnimation slides the transform from Start to End.
type MoveAnimation struct {
	Start, End tiles.TileCoordinate
	Timer      Timer
	Ease       Ease
}

func NewMove(start, end tiles.TileCoordinate, settings Settings) MoveAnimation {
	return MoveAnimation{Start: start, End: end, Timer: NewTimer(settings.MoveDuration), Ease: settings.MoveEase}
}

type AnimationType uint8

const (
	// Wiggle rocks the sprite side to side.
	Wiggle AnimationType = iota
	// Pulse briefly grows and shrinks the sprite.
	Pulse
	// Popup grows the sprite in from nothing.
	Popup
	// Burst grows the sprite while fading it out.
	Burst
	// Move is only reported by AnimationFinished for a finished MoveAnimation.
	Move
)

func (t AnimationType) String() string {
	switch t {
	case Wiggle:
		return "Wiggle"
	case Pulse:
		return "Pulse"
	case Popup:
		return "Popup"
	case Burst:
		return "Burst"
	case Move:
		return "Move"
	default:
		return "AnimationType(?)"
	}
}

// Animation plays a transform effect once.
type Animation struct {
	Type  AnimationType
	Timer Timer
	Ease  Ease
}

func New(kind AnimationType, d time.Duration, ease Ease) Animation {
	return Animation{Type: kind, Timer: NewTimer(d), Ease: ease}
}

// AnimationFinished is sent when an animation completes and is removed.
type AnimationFinished struct {
	Entity ecs.EntityId
	Type   AnimationType
}

type Plugin struct {
	MoveDuration time.Duration
	MoveEase     Ease
}

func (p Plugin) Build(app *ecs.App) {
	ecs.Register[MoveAnimation](app)
	ecs.Register[Animation](app)

	settings := Settings{MoveDuration: p.MoveDuration, MoveEase: p.MoveEase}
	if settings.MoveDuration <= 0 {
		settings.MoveDuration = DefaultMoveDuration
	}
	ecs.NewSingleton(app.Storage, settings)

	logger := logging.For(NAME)
	app.AddSystems(ecs.PostUpdate, &MoveAnimationSystem{logger: logger})
	app.AddSystems(ecs.PostUpdate, &EffectSystem{logger: logger})
}

// MoveAnimationSystem eases positions and snaps to End when done.
type MoveAnimationSystem struct {
	Moving ecs.Query[struct {
		ecs.EntityId
		*MoveAnimation
		*tiles.Transform
	}]
	Finished ecs.EventWriter[AnimationFinished]
	logger   *log.Logger
}

func (s *MoveAnimationSystem) Execute(frame *ecs.UpdateFrame) {
	dt := Seconds(frame.DeltaTime)
	for m := range s.Moving.Values() {
		m.MoveAnimation.Timer.Tick(dt)
		start, end := m.MoveAnimation.Start.World(), m.MoveAnimation.End.World()

		if m.MoveAnimation.Timer.Finished() {
			m.Transform.Position = end
			ecs.Remove[MoveAnimation](frame.Commands, m.EntityId)
			s.Finished.Send(AnimationFinished{Entity: m.EntityId, Type: Move})
			s.logger.Debug("move finished", "entity", m.EntityId, "at", m.MoveAnimation.End)
			continue
		}
		m.Transform.Position = start.Lerp(end, m.MoveAnimation.Ease.Sample(m.MoveAnimation.Timer.Fraction()))
	}
}

// EffectSystem applies Animation effects and clears them when done.
type EffectSystem struct {
	Animated ecs.Query[struct {
		ecs.EntityId
		*Animation
		*tiles.Transform
	}]
	Finished ecs.EventWriter[AnimationFinished]
	logger   *log.Logger
}

func (s *EffectSystem) Execute(frame *ecs.UpdateFrame) {
	dt := Seconds(frame.DeltaTime)
	for a := range s.Animated.Values() {
		a.Animation.Timer.Tick(dt)
		if a.Animation.Timer.Finished() {
			a.Transform.ResetEffects()
			ecs.Remove[Animation](frame.Commands, a.EntityId)
			s.Finished.Send(AnimationFinished{Entity: a.EntityId, Type: a.Animation.Type})
			continue
		}
		Apply(a.Animation, a.Transform)
	}
}

// Apply sets the transform for the animation's current progress.
func Apply(a *Animation, t *tiles.Transform) {
	p := a.Ease.Sample(a.Timer.Fraction())
	switch a.Type {
	case Wiggle:
		t.Rotation = wiggleAngle * math.Sin(p*4*math.Pi)
	case Pulse:
		t.Scale = 1 + pulseAmount*math.Sin(p*math.Pi)
	case Popup:
		t.Scale = p
		t.Alpha = p
	case Burst:
		t.Scale = 1 + p
		t.Alpha = 1 - p
	}
}
