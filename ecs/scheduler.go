package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	SkipCount      int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	skipCount      int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type registeredSystem struct {
	system     System
	conditions []Condition
	executors  []executor
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	storage     *Storage
	commands    *Commands
	systems     []registeredSystem
	systemStats []*systemStatsInternal
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(storage),
	}
}

// Register adds a system to the scheduler and initializes its Query,
// Singleton and event fields. The system only runs on frames where every
// condition holds.
func (s *Scheduler) Register(system System, conditions ...Condition) {
	executors := s.initializeFields(system)
	s.systems = append(s.systems, registeredSystem{
		system:     system,
		conditions: conditions,
		executors:  executors,
	})

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemName(system),
		minDuration: time.Duration(1<<63 - 1),
	})
}

func systemName(system System) string {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	if name := systemType.Name(); name != "" {
		return name
	}
	return systemType.String()
}

// initializeFields calls Init on every exported field that has one and
// returns the fields that must be refreshed before each run.
func (s *Scheduler) initializeFields(system System) []executor {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Ptr {
		systemValue = systemValue.Elem()
	}

	// Systems passed by value cannot hold initialized fields.
	if systemValue.Kind() != reflect.Struct || !systemValue.CanAddr() {
		return nil
	}

	var executors []executor
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		ptr := field.Addr().Interface()
		initField, ok := ptr.(initializer)
		if !ok {
			continue
		}
		initField.Init(s.storage)

		if exec, ok := ptr.(executor); ok {
			executors = append(executors, exec)
		}
	}
	return executors
}

// Once executes all registered systems once with the given delta time and
// then applies the queued commands.
func (s *Scheduler) Once(dt float64) {
	frame := newUpdateFrame(dt, s.storage, s.commands)

	for i, registered := range s.systems {
		stats := s.systemStats[i]
		if !s.shouldRun(registered) {
			stats.skipCount++
			continue
		}

		start := time.Now()
		for _, exec := range registered.executors {
			exec.Execute()
		}
		registered.system.Execute(frame)
		duration := time.Since(start)

		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.commands.Flush(s.storage)
}

func (s *Scheduler) shouldRun(registered registeredSystem) bool {
	for _, cond := range registered.conditions {
		if !cond(s.storage) {
			return false
		}
	}
	return true
}

// Len returns the number of registered systems.
func (s *Scheduler) Len() int {
	return len(s.systems)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
// Event queues are advanced after every pass.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
			s.storage.UpdateEvents()
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			SkipCount:      internal.skipCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
