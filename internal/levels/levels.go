// Package levels spawns and tears down the level scenes and moves between
// them when the player reaches an exit.
package levels

import (
	"github.com/charmbracelet/log"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/interaction"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/sprites"
	"github.com/plus3/tilequest/internal/tiles"
)

const NAME = "levels"

// ActiveLevel is present while a level is loaded.
type ActiveLevel struct {
	State     appstate.LevelState
	Level     *Level
	Completed bool
}

// LevelFinished is sent when a level is torn down. Completed is false when
// the run was left before reaching the exit.
type LevelFinished struct {
	Id        string
	Next      string
	Completed bool
}

type Plugin struct {
	Catalog *Catalog
}

func (p Plugin) Build(app *ecs.App) {
	logger := logging.For(NAME)

	for _, state := range []appstate.LevelState{appstate.Level01, appstate.Level02, appstate.Level03, appstate.Level04, appstate.Level05} {
		level, ok := p.Catalog.Get(state.LevelID())
		if !ok {
			logger.Warn("no data for level state", "state", state)
			continue
		}
		ecs.OnEnter(app, state, &enterLevelSystem{state: state, level: level, logger: logger})
		ecs.OnExit(app, state, &exitLevelSystem{logger: logger})
	}

	running := ecs.InState(appstate.Running)
	active := ecs.ResourceExists[ActiveLevel]()
	app.AddSystems(ecs.Update, &InteractedSystem{logger: logger}, running, active)
	app.AddSystems(ecs.Update, &CheckForExitSystem{logger: logger}, running, active)
}

type enterLevelSystem struct {
	Spawn  ecs.EventWriter[sprites.SpawnSprite]
	Active ecs.Singleton[ActiveLevel]
	state  appstate.LevelState
	level  *Level
	logger *log.Logger
}

func (s *enterLevelSystem) Execute(frame *ecs.UpdateFrame) {
	requests, err := s.level.Requests()
	if err != nil {
		// Levels are validated on load.
		s.logger.Error("cannot spawn level", "level", s.level.Id, "err", err)
		return
	}
	s.logger.Info("starting level", "level", s.level.Id, "name", s.level.Name)
	for _, req := range requests {
		s.Spawn.Send(req)
	}
	s.Active.Set(ActiveLevel{State: s.state, Level: s.level})
}

type exitLevelSystem struct {
	LevelTiles ecs.Query[struct {
		ecs.EntityId
		*tiles.LevelTile
	}]
	Active   ecs.Singleton[ActiveLevel]
	Finished ecs.EventWriter[LevelFinished]
	logger   *log.Logger
}

func (s *exitLevelSystem) Execute(frame *ecs.UpdateFrame) {
	for tile := range s.LevelTiles.Values() {
		frame.Commands.Delete(tile.EntityId)
	}

	active := s.Active.Get()
	if active == nil {
		return
	}
	s.logger.Info("stopping level", "level", active.Level.Id, "completed", active.Completed)
	s.Finished.Send(LevelFinished{Id: active.Level.Id, Next: active.Level.Next, Completed: active.Completed})
	ecs.RemoveSingleton[ActiveLevel](frame.Storage)
}

// CheckForExitSystem moves on once the player stands on an exit.
type CheckForExitSystem struct {
	Players ecs.Query[struct {
		*controls.PlayerControlled
		*tiles.TileCoordinate
	}]
	Exits ecs.Query[struct {
		*tiles.ExfilTile
		*tiles.TileCoordinate
	}]
	Active    ecs.Singleton[ActiveLevel]
	NextApp   ecs.Singleton[ecs.NextState[appstate.AppState]]
	NextLevel ecs.Singleton[ecs.NextState[appstate.LevelState]]
	logger    *log.Logger
}

func (s *CheckForExitSystem) Execute(frame *ecs.UpdateFrame) {
	active := s.Active.Get()
	if active.Completed {
		return
	}
	_, player, ok := s.Players.Single()
	if !ok {
		return
	}

	for exit := range s.Exits.Values() {
		if !exit.TileCoordinate.Eq2D(*player.TileCoordinate) {
			continue
		}
		active.Completed = true

		next, ok := appstate.ParseLevel(active.Level.Next)
		if !ok {
			s.logger.Info("last level done", "level", active.Level.Id)
			s.NextApp.Get().Set(appstate.MainMenu)
			return
		}
		s.logger.Info("level done", "level", active.Level.Id, "next", next)
		s.NextLevel.Get().Set(next)
		return
	}
}

// InteractedSystem applies the level's reaction to an interaction.
type InteractedSystem struct {
	Interacted ecs.EventReader[interaction.Interacted]
	Spawn      ecs.EventWriter[sprites.SpawnSprite]
	Active     ecs.Singleton[ActiveLevel]
	logger     *log.Logger
}

func (s *InteractedSystem) Execute(frame *ecs.UpdateFrame) {
	level := s.Active.Get().Level
	for ev := range s.Interacted.Read() {
		spec, ok := level.Interaction(ev.Id)
		if !ok {
			continue
		}
		if spec.DespawnTarget {
			s.logger.Debug("despawning target", "target", ev.Target, "id", ev.Id)
			frame.Commands.Delete(ev.Target)
		}
		for _, t := range spec.Spawn {
			req, err := t.Request()
			if err != nil {
				s.logger.Error("bad interaction tile", "level", level.Id, "err", err)
				continue
			}
			req.Popup = true
			s.Spawn.Send(req)
		}
	}
}
