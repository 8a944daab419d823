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
	Ticks           uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

type storageBinder interface {
	Init(*Storage)
}

type queryRefresher interface {
	Execute()
}

type registeredSystem struct {
	system  System
	queries []queryRefresher
	stats   *systemStatsInternal
}

// Scheduler manages and executes systems in registration order.
type Scheduler struct {
	storage  *Storage
	systems  []*registeredSystem
	commands *Commands
	tick     uint64
	paused   bool
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Storage returns the storage the scheduler's systems operate on.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register adds a system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Pointer {
		systemType = systemType.Elem()
	}

	s.systems = append(s.systems, &registeredSystem{
		system:  system,
		queries: s.bindFields(system),
		stats: &systemStatsInternal{
			name:        systemType.Name(),
			minDuration: time.Duration(1<<63 - 1),
		},
	})
}

func (s *Scheduler) bindFields(system System) []queryRefresher {
	systemValue := reflect.ValueOf(system)
	if systemValue.Kind() == reflect.Pointer {
		systemValue = systemValue.Elem()
	}
	if systemValue.Kind() != reflect.Struct {
		return nil
	}

	var queries []queryRefresher
	for i := 0; i < systemValue.NumField(); i++ {
		field := systemValue.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}

		binder, ok := field.Addr().Interface().(storageBinder)
		if !ok {
			continue
		}
		binder.Init(s.storage)

		if q, ok := binder.(queryRefresher); ok {
			queries = append(queries, q)
		}
	}
	return queries
}

// Pause stops Once from running systems until Resume is called.
func (s *Scheduler) Pause() {
	s.paused = true
}

// Resume undoes Pause.
func (s *Scheduler) Resume() {
	s.paused = false
}

// Paused reports whether the scheduler is paused.
func (s *Scheduler) Paused() bool {
	return s.paused
}

// Tick returns the number of frames executed so far.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// Once runs every system once with the given delta time and then flushes the
// frame's commands. It does nothing while paused.
func (s *Scheduler) Once(dt float64) {
	if s.paused {
		return
	}

	s.tick++
	frame := newUpdateFrame(s.tick, dt, s.storage, s.commands)

	for _, rs := range s.systems {
		start := time.Now()
		for _, q := range rs.queries {
			q.Execute()
		}
		rs.system.Execute(frame)
		duration := time.Since(start)

		stats := rs.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration
		stats.minDuration = min(stats.minDuration, duration)
		stats.maxDuration = max(stats.maxDuration, duration)
	}

	s.commands.Flush(s.storage)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
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
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, rs := range s.systems {
		internal := rs.stats
		var avgDuration time.Duration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		stats.TotalExecutions += internal.executionCount
	}

	return stats
}
