package ecs

import (
	"iter"
	"reflect"
)

// eventQueue is the type-erased side of Events[T] that the App ticks.
type eventQueue interface {
	update()
	Len() int
}

type eventInstance[T any] struct {
	id   uint64
	data T
}

// Events is a double-buffered queue of T. Events live for two updates, so
// every reader that runs at least once per frame sees each event exactly once,
// regardless of whether it runs before or after the sender.
type Events[T any] struct {
	prev  []eventInstance[T]
	curr  []eventInstance[T]
	count uint64
}

// Send appends an event to the current buffer.
func (e *Events[T]) Send(event T) {
	e.curr = append(e.curr, eventInstance[T]{id: e.count, data: event})
	e.count++
}

// Len returns the number of events still readable.
func (e *Events[T]) Len() int {
	return len(e.prev) + len(e.curr)
}

// update retires the previous buffer and starts a new current one.
func (e *Events[T]) update() {
	clear(e.prev)
	e.prev, e.curr = e.curr, e.prev[:0]
}

// eventsFor returns the queue for T, creating it on first use.
func eventsFor[T any](storage *Storage) *Events[T] {
	t := reflect.TypeFor[T]()
	if q, ok := storage.events[t]; ok {
		return q.(*Events[T])
	}
	q := &Events[T]{}
	storage.events[t] = q
	return q
}

// UpdateEvents advances every event queue by one frame. App calls this once
// per update; code driving a Scheduler directly must call it itself.
func (s *Storage) UpdateEvents() {
	for _, q := range s.events {
		q.update()
	}
}

// SendEvent sends an event outside of a system.
func SendEvent[T any](storage *Storage, event T) {
	eventsFor[T](storage).Send(event)
}

// EventWriter sends events of type T. Declare it as a system field.
type EventWriter[T any] struct {
	events *Events[T]
}

// Init is called by the Scheduler during system registration.
func (w *EventWriter[T]) Init(storage *Storage) {
	w.events = eventsFor[T](storage)
}

// Send queues an event for readers.
func (w *EventWriter[T]) Send(event T) {
	w.events.Send(event)
}

// EventReader reads events of type T that it has not seen yet. Each reader
// keeps its own cursor. Declare it as a system field.
type EventReader[T any] struct {
	events *Events[T]
	next   uint64
}

// Init is called by the Scheduler during system registration.
func (r *EventReader[T]) Init(storage *Storage) {
	r.events = eventsFor[T](storage)
	r.next = 0
}

// NewEventReader creates a reader outside of a scheduler.
func NewEventReader[T any](storage *Storage) *EventReader[T] {
	r := &EventReader[T]{}
	r.Init(storage)
	return r
}

// Read yields unseen events in send order and marks them as seen.
func (r *EventReader[T]) Read() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, buf := range [][]eventInstance[T]{r.events.prev, r.events.curr} {
			for _, ev := range buf {
				if ev.id < r.next {
					continue
				}
				r.next = ev.id + 1
				if !yield(ev.data) {
					return
				}
			}
		}
	}
}

// Len returns the number of unseen events.
func (r *EventReader[T]) Len() int {
	n := 0
	for _, buf := range [][]eventInstance[T]{r.events.prev, r.events.curr} {
		for _, ev := range buf {
			if ev.id >= r.next {
				n++
			}
		}
	}
	return n
}

// IsEmpty reports whether there is nothing to read.
func (r *EventReader[T]) IsEmpty() bool {
	return r.Len() == 0
}

// Clear marks every pending event as seen.
func (r *EventReader[T]) Clear() {
	r.next = r.events.count
}
