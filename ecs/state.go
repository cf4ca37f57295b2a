package ecs

import "reflect"

// State is the resource holding the active value of a state machine.
type State[S comparable] struct {
	Current S
}

// Is reports whether the machine is in s.
func (st *State[S]) Is(s S) bool {
	return st.Current == s
}

// NextState is the resource through which systems request a transition.
// The request is applied at the start of the next update.
type NextState[S comparable] struct {
	value   S
	pending bool
}

// Set requests a transition to s. A later Set in the same frame wins.
func (n *NextState[S]) Set(s S) {
	n.value = s
	n.pending = true
}

// Pending returns the requested state, if any.
func (n *NextState[S]) Pending() (S, bool) {
	return n.value, n.pending
}

func (n *NextState[S]) take() (S, bool) {
	v, ok := n.value, n.pending
	var zero S
	n.value, n.pending = zero, false
	return v, ok
}

type stateMachineRunner interface {
	apply(storage *Storage) bool
}

type stateMachine[S comparable] struct {
	enter   map[S]*Scheduler
	exit    map[S]*Scheduler
	entered bool
	added   bool
}

// apply runs the initial OnEnter once, then any pending transition.
// It reports whether anything ran.
func (m *stateMachine[S]) apply(storage *Storage) bool {
	if !m.added {
		return false
	}
	current := GetSingleton[State[S]](storage)
	next := GetSingleton[NextState[S]](storage)
	if current == nil || next == nil {
		return false
	}

	if !m.entered {
		m.entered = true
		m.run(m.enter, current.Current)
		return true
	}

	target, ok := next.take()
	if !ok || target == current.Current {
		return false
	}

	m.run(m.exit, current.Current)
	current.Current = target
	m.run(m.enter, target)
	return true
}

func (m *stateMachine[S]) run(schedules map[S]*Scheduler, s S) {
	if sched, ok := schedules[s]; ok {
		sched.Once(0)
	}
}

func machineFor[S comparable](app *App) *stateMachine[S] {
	for _, runner := range app.states {
		if m, ok := runner.(*stateMachine[S]); ok {
			return m
		}
	}
	m := &stateMachine[S]{
		enter: make(map[S]*Scheduler),
		exit:  make(map[S]*Scheduler),
	}
	app.states = append(app.states, m)
	return m
}

// AddState installs a state machine starting in initial. The OnEnter systems
// of initial run on the first update. Machines are applied in the order they
// were added.
func AddState[S comparable](app *App, initial S) {
	m := machineFor[S](app)
	m.added = true
	app.Storage.AddSingleton(State[S]{Current: initial})
	app.Storage.AddSingleton(NextState[S]{})
}

// OnEnter registers systems that run once when the machine enters state.
func OnEnter[S comparable](app *App, state S, systems ...System) {
	addTransitionSystems(app, machineFor[S](app).enter, state, systems)
}

// OnExit registers systems that run once when the machine leaves state.
func OnExit[S comparable](app *App, state S, systems ...System) {
	addTransitionSystems(app, machineFor[S](app).exit, state, systems)
}

func addTransitionSystems[S comparable](app *App, schedules map[S]*Scheduler, state S, systems []System) {
	sched, ok := schedules[state]
	if !ok {
		sched = NewScheduler(app.Storage)
		schedules[state] = sched
	}
	for _, system := range systems {
		sched.Register(system)
	}
}

// InState holds while the machine for S is in state.
func InState[S comparable](state S) Condition {
	return func(storage *Storage) bool {
		current := GetSingleton[State[S]](storage)
		return current != nil && current.Current == state
	}
}

// ResourceExists holds while a T resource is present.
func ResourceExists[T any]() Condition {
	t := reflect.TypeFor[T]()
	return func(storage *Storage) bool {
		return storage.HasSingleton(t)
	}
}

// SetNextState requests a transition outside of a system.
func SetNextState[S comparable](storage *Storage, s S) {
	if next := GetSingleton[NextState[S]](storage); next != nil {
		next.Set(s)
	}
}

// CurrentState returns the active value of the machine for S.
func CurrentState[S comparable](storage *Storage) (S, bool) {
	if current := GetSingleton[State[S]](storage); current != nil {
		return current.Current, true
	}
	var zero S
	return zero, false
}
