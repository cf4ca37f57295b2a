package ecs_test

import (
	"slices"
	"testing"

	"github.com/plus3/tilequest/ecs"
	"github.com/stretchr/testify/assert"
)

type Ping struct {
	N int
}

type pingSender struct {
	Pings ecs.EventWriter[Ping]
	next  int
}

func (s *pingSender) Execute(frame *ecs.UpdateFrame) {
	s.next++
	s.Pings.Send(Ping{N: s.next})
}

type pingReader struct {
	Pings ecs.EventReader[Ping]
	seen  []int
}

func (s *pingReader) Execute(frame *ecs.UpdateFrame) {
	for ping := range s.Pings.Read() {
		s.seen = append(s.seen, ping.N)
	}
}

func TestEventsSeenOnceWhateverTheOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	before := &pingReader{}
	after := &pingReader{}
	scheduler.Register(before)
	scheduler.Register(&pingSender{})
	scheduler.Register(after)

	for i := 0; i < 3; i++ {
		scheduler.Once(0.016)
		storage.UpdateEvents()
	}

	// the reader that runs first sees the last ping on the next frame
	assert.Equal(t, []int{1, 2}, before.seen)
	assert.Equal(t, []int{1, 2, 3}, after.seen)
}

func TestEventsExpireAfterTwoUpdates(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	ecs.SendEvent(storage, Ping{N: 1})
	storage.UpdateEvents()
	storage.UpdateEvents()

	reader := ecs.NewEventReader[Ping](storage)
	assert.True(t, reader.IsEmpty())
}

func TestEventReaderClear(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	reader := ecs.NewEventReader[Ping](storage)

	ecs.SendEvent(storage, Ping{N: 1})
	ecs.SendEvent(storage, Ping{N: 2})
	assert.Equal(t, 2, reader.Len())

	reader.Clear()
	assert.True(t, reader.IsEmpty())

	ecs.SendEvent(storage, Ping{N: 3})
	assert.Equal(t, []Ping{{N: 3}}, slices.Collect(reader.Read()))
}
