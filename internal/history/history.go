// Package history records every finished run.
package history

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/animation"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/gold"
	"github.com/plus3/tilequest/internal/levels"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/store"
)

const NAME = "history"

// Recorder persists finished runs.
type Recorder interface {
	SaveRun(run store.Run) error
}

// LastRun is the most recent finished run, shown on the main menu.
type LastRun struct {
	Run   store.Run
	Known bool
}

// RunTracker is present from the start of a run until it is recorded.
type RunTracker struct {
	ID      uuid.UUID
	Elapsed time.Duration
	Levels  int
}

type Plugin struct {
	// Recorder may be nil, in which case runs are only kept in LastRun.
	Recorder Recorder
	// Last seeds LastRun, usually from the store.
	Last *store.Run
	// Clock stamps finished runs. Defaults to time.Now.
	Clock func() time.Time
}

func (p Plugin) Build(app *ecs.App) {
	last := LastRun{}
	if p.Last != nil {
		last = LastRun{Run: *p.Last, Known: true}
	}
	ecs.NewSingleton(app.Storage, last)

	clock := p.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := logging.For(NAME)

	ecs.OnEnter(app, appstate.Running, &startRunSystem{logger: logger})
	app.AddSystems(ecs.PostUpdate, &RunSystem{recorder: p.Recorder, clock: clock, logger: logger}, ecs.ResourceExists[RunTracker]())
}

type startRunSystem struct {
	Tracker ecs.Singleton[RunTracker]
	logger  *log.Logger
}

func (s *startRunSystem) Execute(frame *ecs.UpdateFrame) {
	id := uuid.New()
	s.logger.Debug("run started", "id", id)
	s.Tracker.Set(RunTracker{ID: id})
}

// RunSystem counts completed levels and play time, and records the run once
// the final gold arrives.
type RunSystem struct {
	Tracker  ecs.Singleton[RunTracker]
	Last     ecs.Singleton[LastRun]
	State    ecs.Singleton[ecs.State[appstate.AppState]]
	Levels   ecs.EventReader[levels.LevelFinished]
	Final    ecs.EventReader[gold.FinalPlayerGoldAmount]
	recorder Recorder
	clock    func() time.Time
	logger   *log.Logger
}

func (s *RunSystem) Execute(frame *ecs.UpdateFrame) {
	tracker := s.Tracker.Get()
	if state := s.State.Get(); state != nil && state.Is(appstate.Running) {
		tracker.Elapsed += animation.Seconds(frame.DeltaTime)
	}
	for ev := range s.Levels.Read() {
		if ev.Completed {
			tracker.Levels++
		}
	}

	for final := range s.Final.Read() {
		run := store.Run{
			ID:         tracker.ID.String(),
			Gold:       final.Coins,
			Levels:     tracker.Levels,
			Duration:   tracker.Elapsed,
			FinishedAt: s.clock(),
		}
		s.logger.Info("run recorded", "id", run.ID, "gold", run.Gold, "levels", run.Levels, "duration", run.Duration)
		if s.recorder != nil {
			if err := s.recorder.SaveRun(run); err != nil {
				s.logger.Warn("failed to save run", "err", err)
			}
		}
		s.Last.Set(LastRun{Run: run, Known: true})
		ecs.RemoveSingleton[RunTracker](frame.Storage)
		return
	}
}
