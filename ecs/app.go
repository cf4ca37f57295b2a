package ecs

// Schedule names a group of systems that run together.
type Schedule int

const (
	// Startup runs once, before the first update.
	Startup Schedule = iota
	// Update runs every frame after pending state transitions are applied.
	Update
	// PostUpdate runs every frame after Update.
	PostUpdate
	// Draw runs when the host renders a frame.
	Draw

	scheduleCount
)

func (s Schedule) String() string {
	switch s {
	case Startup:
		return "Startup"
	case Update:
		return "Update"
	case PostUpdate:
		return "PostUpdate"
	case Draw:
		return "Draw"
	default:
		return "Schedule(?)"
	}
}

// Plugin bundles the components, resources and systems of one feature.
type Plugin interface {
	Build(app *App)
}

// AppExit is present as a resource once the app has been asked to stop.
type AppExit struct{}

// maxTransitionPasses bounds how many chained state transitions one frame applies.
const maxTransitionPasses = 8

// App owns a Storage and the schedules that run over it.
type App struct {
	Registry *ComponentRegistry
	Storage  *Storage

	schedules [scheduleCount]*Scheduler
	states    []stateMachineRunner
	started   bool
	frames    uint64
}

// NewApp creates an app with an empty registry and storage.
func NewApp() *App {
	registry := NewComponentRegistry()
	storage := NewStorage(registry)
	app := &App{
		Registry: registry,
		Storage:  storage,
	}
	for i := range app.schedules {
		app.schedules[i] = NewScheduler(storage)
	}
	return app
}

// AddPlugins builds each plugin in order.
func (a *App) AddPlugins(plugins ...Plugin) *App {
	for _, p := range plugins {
		p.Build(a)
	}
	return a
}

// AddSystems registers systems on a schedule. Conditions apply to every system given.
func (a *App) AddSystems(schedule Schedule, system System, conditions ...Condition) *App {
	a.schedules[schedule].Register(system, conditions...)
	return a
}

// Scheduler returns the scheduler behind a schedule.
func (a *App) Scheduler(schedule Schedule) *Scheduler {
	return a.schedules[schedule]
}

// Frames returns the number of completed updates.
func (a *App) Frames() uint64 {
	return a.frames
}

// Update runs one frame: Startup on the first call, pending state
// transitions, Update, PostUpdate, and finally the event buffer swap.
func (a *App) Update(dt float64) {
	if !a.started {
		a.started = true
		a.schedules[Startup].Once(0)
	}

	a.applyTransitions()
	a.schedules[Update].Once(dt)
	a.schedules[PostUpdate].Once(dt)
	a.Storage.UpdateEvents()
	a.frames++
}

// RunDraw runs the Draw schedule.
func (a *App) RunDraw() {
	a.schedules[Draw].Once(0)
}

func (a *App) applyTransitions() {
	for pass := 0; pass < maxTransitionPasses; pass++ {
		changed := false
		for _, machine := range a.states {
			if machine.apply(a.Storage) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// Exit asks the host loop to stop.
func (a *App) Exit() {
	a.Storage.AddSingleton(AppExit{})
}

// ShouldExit reports whether Exit was requested.
func (a *App) ShouldExit() bool {
	return GetSingleton[AppExit](a.Storage) != nil
}

// Register registers a component type with the app's registry.
func Register[T any](app *App) {
	RegisterComponent[T](app.Registry)
}
