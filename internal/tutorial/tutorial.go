// Package tutorial counts player inputs down on tutorial tiles and clears
// the tutorial once the count reaches zero.
package tutorial

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/animation"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/logging"
)

const NAME = "tutorial"

const (
	StartingCount = 3

	addedPulse = 400 * time.Millisecond
	inputPulse = 100 * time.Millisecond
)

// Tutorial marks a tile that hints at an action.
type Tutorial struct{}

// TutorialCountdown is the number of inputs left before the hint clears.
type TutorialCountdown uint64

// TutorialAdded is sent when a tutorial tile spawns.
type TutorialAdded struct {
	Entity ecs.EntityId
}

type CountDownTutorialCounter struct {
	Entity ecs.EntityId
}

type CountDownFinished struct {
	Entity ecs.EntityId
}

type Plugin struct{}

func (Plugin) Build(app *ecs.App) {
	ecs.Register[Tutorial](app)
	ecs.Register[TutorialCountdown](app)

	logger := logging.For(NAME)
	running := ecs.InState(appstate.Running)
	app.AddSystems(ecs.Update, &AddedSystem{}, running)
	app.AddSystems(ecs.Update, &InputSystem{}, running)
	app.AddSystems(ecs.Update, &CountdownSystem{logger: logger}, running)
	app.AddSystems(ecs.Update, &FinishedSystem{logger: logger}, running)
}

// AddedSystem starts the countdown of new tutorial tiles.
type AddedSystem struct {
	Added ecs.EventReader[TutorialAdded]
}

func (s *AddedSystem) Execute(frame *ecs.UpdateFrame) {
	for ev := range s.Added.Read() {
		frame.Commands.AddComponent(ev.Entity, TutorialCountdown(StartingCount))
		frame.Commands.AddComponent(ev.Entity, animation.New(animation.Pulse, addedPulse, animation.SineInOut))
	}
}

// InputSystem sends one countdown per tutorial tile on frames with direction input.
type InputSystem struct {
	Inputs    ecs.EventReader[controls.DirectionInput]
	Tutorials ecs.Query[struct {
		ecs.EntityId
		*Tutorial
	}]
	Countdown ecs.EventWriter[CountDownTutorialCounter]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Inputs.IsEmpty() {
		return
	}
	s.Inputs.Clear()

	for tut := range s.Tutorials.Values() {
		s.Countdown.Send(CountDownTutorialCounter{Entity: tut.EntityId})
		frame.Commands.AddComponent(tut.EntityId, animation.New(animation.Pulse, inputPulse, animation.SineInOut))
	}
}

// CountdownSystem decrements counters and reports the ones reaching zero.
type CountdownSystem struct {
	Countdown ecs.EventReader[CountDownTutorialCounter]
	Finished  ecs.EventWriter[CountDownFinished]
	logger    *log.Logger
}

func (s *CountdownSystem) Execute(frame *ecs.UpdateFrame) {
	for ev := range s.Countdown.Read() {
		counter := ecs.ReadComponent[TutorialCountdown](frame.Storage, ev.Entity)
		if counter == nil || *counter == 0 {
			continue
		}
		*counter--
		s.logger.Debug("tutorial countdown", "entity", ev.Entity, "left", *counter)
		if *counter == 0 {
			s.Finished.Send(CountDownFinished{Entity: ev.Entity})
		}
	}
}

// FinishedSystem clears finished tutorials.
type FinishedSystem struct {
	Finished ecs.EventReader[CountDownFinished]
	logger   *log.Logger
}

func (s *FinishedSystem) Execute(frame *ecs.UpdateFrame) {
	for ev := range s.Finished.Read() {
		s.logger.Info("tutorial finished", "entity", ev.Entity)
		ecs.Remove[TutorialCountdown](frame.Commands, ev.Entity)
		ecs.Remove[Tutorial](frame.Commands, ev.Entity)
	}
}
