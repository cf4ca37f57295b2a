package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems should implement this interface and can include Query,
// Singleton, EventReader and EventWriter fields, as well as custom state fields
// that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}

// Condition gates a system. The system runs only when every condition holds.
type Condition func(storage *Storage) bool

// initializer is implemented by system fields the Scheduler wires to storage.
type initializer interface {
	Init(storage *Storage)
}

// executor is implemented by system fields refreshed before each run.
type executor interface {
	Execute()
}
