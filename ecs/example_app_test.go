package ecs_test

import (
	"fmt"

	"github.com/plus3/tilequest/ecs"
)

type Door struct {
	Open bool
}

type DoorToggled struct {
	Door ecs.EntityId
}

type doorMode int

const (
	doorsLocked doorMode = iota
	doorsUnlocked
)

type toggleDoors struct {
	Doors   ecs.Query[struct {
		ecs.EntityId
		*Door
	}]
	Toggled ecs.EventWriter[DoorToggled]
}

func (s *toggleDoors) Execute(frame *ecs.UpdateFrame) {
	for door := range s.Doors.Values() {
		door.Open = !door.Open
		s.Toggled.Send(DoorToggled{Door: door.EntityId})
	}
}

type reportDoors struct {
	Toggled ecs.EventReader[DoorToggled]
}

func (s *reportDoors) Execute(frame *ecs.UpdateFrame) {
	for ev := range s.Toggled.Read() {
		door := ecs.ReadComponent[Door](frame.Storage, ev.Door)
		fmt.Printf("%s open=%v\n", ev.Door, door.Open)
	}
}

type doorsPlugin struct{}

func (doorsPlugin) Build(app *ecs.App) {
	ecs.Register[Door](app)
	ecs.AddState(app, doorsLocked)
	ecs.OnEnter(app, doorsUnlocked, ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		fmt.Println("doors unlocked")
	}))
	app.AddSystems(ecs.Update, &toggleDoors{}, ecs.InState(doorsUnlocked))
	app.AddSystems(ecs.PostUpdate, &reportDoors{})
}

// ExampleApp wires a plugin with a state machine, a gated system and events.
func ExampleApp() {
	app := ecs.NewApp()
	app.AddPlugins(doorsPlugin{})
	app.Storage.Spawn(Door{})

	app.Update(0.016)
	ecs.SetNextState(app.Storage, doorsUnlocked)
	app.Update(0.016)
	app.Update(0.016)

	// Output:
	// doors unlocked
	// entity#1 open=true
	// entity#1 open=false
}
