// Package appstate defines the top-level app states and the level sub-state.
package appstate

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/logging"
)

const NAME = "appstate"

// AppState is the top-level state machine: Splash, MainMenu, Running, Quitting.
type AppState int

const (
	Splash AppState = iota
	MainMenu
	Running
	Quitting
)

func (s AppState) String() string {
	switch s {
	case Splash:
		return "Splash"
	case MainMenu:
		return "MainMenu"
	case Running:
		return "Running"
	case Quitting:
		return "Quitting"
	default:
		return "AppState(?)"
	}
}

// LevelState is the level sub-state. It is only meaningful while Running.
type LevelState int

const (
	None LevelState = iota
	Level01
	Level02
	Level03
	Level04
	Level05
)

var levelNames = map[LevelState]string{
	None:    "None",
	Level01: "Level01",
	Level02: "Level02",
	Level03: "Level03",
	Level04: "Level04",
	Level05: "Level05",
}

func (s LevelState) String() string {
	if name, ok := levelNames[s]; ok {
		return name
	}
	return "LevelState(?)"
}

// ParseLevel maps a level id such as "level03" to its state.
func ParseLevel(id string) (LevelState, bool) {
	for state, name := range levelNames {
		if state != None && strings.EqualFold(name, id) {
			return state, true
		}
	}
	return None, false
}

// LevelID is the data id of a level state, "level01" for Level01.
func (s LevelState) LevelID() string {
	if s == None {
		return ""
	}
	return fmt.Sprintf("level%02d", int(s))
}

// Plugin installs both state machines.
type Plugin struct {
	// Initial is the first app state, Splash unless a command skips ahead.
	Initial AppState
	// StartLevel is entered whenever Running is entered.
	StartLevel LevelState
}

func (p Plugin) Build(app *ecs.App) {
	logger := logging.For(NAME)
	start := p.StartLevel
	if start == None {
		start = Level01
	}

	ecs.AddState(app, p.Initial)
	ecs.AddState(app, None)

	ecs.OnEnter(app, Running, &startLevelSystem{logger: logger, level: start})
	ecs.OnExit(app, Running, &stopLevelSystem{logger: logger})
	ecs.OnEnter(app, Quitting, &quitSystem{logger: logger, app: app})
}

type startLevelSystem struct {
	Next   ecs.Singleton[ecs.NextState[LevelState]]
	logger *log.Logger
	level  LevelState
}

func (s *startLevelSystem) Execute(frame *ecs.UpdateFrame) {
	s.logger.Debug("entering level", "level", s.level)
	s.Next.Get().Set(s.level)
}

type stopLevelSystem struct {
	Next   ecs.Singleton[ecs.NextState[LevelState]]
	logger *log.Logger
}

func (s *stopLevelSystem) Execute(frame *ecs.UpdateFrame) {
	s.logger.Debug("leaving running, clearing level")
	s.Next.Get().Set(None)
}

type quitSystem struct {
	logger *log.Logger
	app    *ecs.App
}

func (s *quitSystem) Execute(frame *ecs.UpdateFrame) {
	s.logger.Info("quitting")
	s.app.Exit()
}

// RequestApp asks for an app state transition.
func RequestApp(storage *ecs.Storage, s AppState) {
	ecs.SetNextState(storage, s)
}

// RequestLevel asks for a level state transition.
func RequestLevel(storage *ecs.Storage, s LevelState) {
	ecs.SetNextState(storage, s)
}
