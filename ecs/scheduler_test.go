package ecs_test

import (
	"testing"
	"time"

	"github.com/plus3/tilequest/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestSystem struct {
	executeCount int
	sleepDur     time.Duration
}

func (s *TestSystem) Execute(frame *ecs.UpdateFrame) {
	s.executeCount++
	if s.sleepDur > 0 {
		time.Sleep(s.sleepDur)
	}
}

type movingSystem struct {
	Moving ecs.Query[movingView]
}

func (s *movingSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Moving.Values() {
		item.Coord.X += item.Step.DX * float32(frame.DeltaTime)
	}
}

type counterResource struct {
	Count int
}

type counterSystem struct {
	Counter ecs.Singleton[counterResource]
}

func (s *counterSystem) Execute(frame *ecs.UpdateFrame) {
	if c := s.Counter.Get(); c != nil {
		c.Count++
	}
}

func TestSchedulerExecutesQueriesBeforeEachSystem(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	// the spawn system is flushed at the end of the first frame, so the
	// moving system only sees the entity from the second frame on
	scheduler.Register(&testSpawnSystem{})
	scheduler.Register(&movingSystem{})

	scheduler.Once(1)
	scheduler.Once(1)

	total := float32(0)
	for item := range ecs.NewView[struct{ *Coord }](storage).Values() {
		total += item.Coord.X
	}
	// two spawned entities at X=1, the first moved once by DX=0.5
	assert.Equal(t, float32(2.5), total)
}

func TestSchedulerConditions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	system := &counterSystem{}
	scheduler.Register(system, ecs.ResourceExists[counterResource]())

	scheduler.Once(0)
	assert.Nil(t, system.Counter.Get())

	ecs.SetSingleton(storage, counterResource{})
	scheduler.Once(0)
	scheduler.Once(0)
	assert.Equal(t, 2, ecs.GetSingleton[counterResource](storage).Count)

	stats := scheduler.GetStats()
	require.Len(t, stats.Systems, 1)
	assert.Equal(t, "counterSystem", stats.Systems[0].Name)
	assert.Equal(t, int64(2), stats.Systems[0].ExecutionCount)
	assert.Equal(t, int64(1), stats.Systems[0].SkipCount)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	fast := &TestSystem{}
	slow := &TestSystem{sleepDur: 2 * time.Millisecond}
	scheduler.Register(fast)
	scheduler.Register(slow)

	for i := 0; i < 3; i++ {
		scheduler.Once(0.016)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, 3, fast.executeCount)

	slowStats := stats.Systems[1]
	assert.Equal(t, "TestSystem", slowStats.Name)
	assert.GreaterOrEqual(t, slowStats.MinDuration, 2*time.Millisecond)
	assert.GreaterOrEqual(t, slowStats.MaxDuration, slowStats.MinDuration)
	assert.Equal(t, slowStats.TotalDuration/3, slowStats.AvgDuration)
}

func TestSchedulerStatsBeforeFirstRun(t *testing.T) {
	scheduler := ecs.NewScheduler(ecs.NewStorage(newTestRegistry()))
	scheduler.Register(&TestSystem{})

	stats := scheduler.GetStats()
	assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)
	assert.Equal(t, 1, scheduler.Len())
}
