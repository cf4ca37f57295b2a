package ecs_test

import (
	"testing"

	"github.com/plus3/tilequest/ecs"
	"github.com/stretchr/testify/assert"
)

type phase int

const (
	phaseIntro phase = iota
	phasePlay
	phaseOver
)

type sublevel int

const (
	sublevelNone sublevel = iota
	sublevelOne
)

type recordSystem struct {
	log   *[]string
	entry string
}

func (s *recordSystem) Execute(frame *ecs.UpdateFrame) {
	*s.log = append(*s.log, s.entry)
}

type requestSystem struct {
	Next ecs.Singleton[ecs.NextState[phase]]
	to   phase
}

func (s *requestSystem) Execute(frame *ecs.UpdateFrame) {
	s.Next.Get().Set(s.to)
}

type recordPlugin struct {
	log *[]string
}

func (p recordPlugin) Build(app *ecs.App) {
	ecs.AddState(app, phaseIntro)
	ecs.AddState(app, sublevelNone)
	ecs.OnEnter(app, phaseIntro, &recordSystem{log: p.log, entry: "enter intro"})
	ecs.OnExit(app, phaseIntro, &recordSystem{log: p.log, entry: "exit intro"})
	ecs.OnEnter(app, phasePlay,
		&recordSystem{log: p.log, entry: "enter play"},
		ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
			ecs.SetNextState(frame.Storage, sublevelOne)
		}),
	)
	ecs.OnEnter(app, sublevelOne, &recordSystem{log: p.log, entry: "enter sublevel"})
	app.AddSystems(ecs.Startup, &recordSystem{log: p.log, entry: "startup"})
	app.AddSystems(ecs.Update, &recordSystem{log: p.log, entry: "update play"}, ecs.InState(phasePlay))
}

func TestAppStateTransitions(t *testing.T) {
	var log []string
	app := ecs.NewApp()
	app.AddPlugins(recordPlugin{log: &log})

	app.Update(0.016)
	assert.Equal(t, []string{"startup", "enter intro"}, log)

	ecs.SetNextState(app.Storage, phasePlay)
	app.Update(0.016)
	assert.Equal(t, []string{
		"startup", "enter intro",
		"exit intro", "enter play", "enter sublevel", "update play",
	}, log)

	current, ok := ecs.CurrentState[sublevel](app.Storage)
	assert.True(t, ok)
	assert.Equal(t, sublevelOne, current)
	assert.Equal(t, uint64(2), app.Frames())
}

func TestAppSameStateRequestIsIgnored(t *testing.T) {
	var log []string
	app := ecs.NewApp()
	app.AddPlugins(recordPlugin{log: &log})
	app.AddSystems(ecs.Update, &requestSystem{to: phaseIntro})

	app.Update(0)
	app.Update(0)
	assert.Equal(t, []string{"startup", "enter intro"}, log)
}

func TestAppExit(t *testing.T) {
	app := ecs.NewApp()
	assert.False(t, app.ShouldExit())
	app.Exit()
	assert.True(t, app.ShouldExit())
}
