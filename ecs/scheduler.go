package ecs

import (
	"cmp"
	"context"
	"fmt"
	"reflect"
	"slices"
	"time"

	"github.com/kamstrup/intmap"
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
	Priority       int
	EntityCount    int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

// SystemId identifies a registered system.
type SystemId int

type systemEntry struct {
	id       SystemId
	system   System
	name     string
	priority int
	filter   Filter

	// matches caches the filter verdict per archetype id. Archetypes are never
	// removed and their type sets never change, so verdicts stay valid.
	matches  *intmap.Map[uint32, bool]
	entities []EntityId

	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler owns the systems of a world and runs them in priority order.
type Scheduler struct {
	world   *World
	systems []*systemEntry
	nextId  SystemId
	tick    uint64
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:   world,
		systems: make([]*systemEntry, 0),
	}
}

// Register adds a system. Systems are kept sorted by ascending priority; ties
// keep registration order.
func (s *Scheduler) Register(system System, opts ...SystemOption) SystemId {
	entry := &systemEntry{
		id:          s.nextId,
		system:      system,
		name:        systemName(system),
		matches:     intmap.New[uint32, bool](16),
		minDuration: time.Duration(1<<63 - 1),
	}
	s.nextId++
	for _, opt := range opts {
		opt(entry)
	}

	s.systems = append(s.systems, entry)
	slices.SortStableFunc(s.systems, func(a, b *systemEntry) int {
		return cmp.Compare(a.priority, b.priority)
	})
	return entry.id
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

// ApplyFilters re-evaluates every system's filter so that entities created
// since the previous pass are picked up.
func (s *Scheduler) ApplyFilters() {
	archetypes := s.world.Archetypes()
	for _, entry := range s.systems {
		entry.entities = entry.entities[:0]
		for _, archetype := range archetypes {
			if !entry.matchesArchetype(archetype) {
				continue
			}
			for id := range archetype.Iter() {
				entry.entities = append(entry.entities, id)
			}
		}
		s.world.sortByCreation(entry.entities)
	}
}

func (e *systemEntry) matchesArchetype(archetype *Archetype) bool {
	if e.filter == nil {
		return true
	}
	if verdict, ok := e.matches.Get(archetype.id); ok {
		return verdict
	}
	verdict := e.filter(archetype)
	e.matches.Put(archetype.id, verdict)
	return verdict
}

// Execute runs every system once against its current working set, in
// priority order. The first failing system stops the pass.
func (s *Scheduler) Execute(ctx context.Context) error {
	s.tick++
	for _, entry := range s.systems {
		frame := &Frame{
			Context:  ctx,
			World:    s.world,
			Entities: entry.entities,
			Tick:     s.tick,
		}

		start := time.Now()
		err := entry.system.Execute(frame)
		entry.record(time.Since(start))

		if err != nil {
			return fmt.Errorf("system %s: %w", entry.name, err)
		}
	}
	return nil
}

func (e *systemEntry) record(duration time.Duration) {
	e.executionCount++
	e.lastDuration = duration
	e.totalDuration += duration

	if duration < e.minDuration {
		e.minDuration = duration
	}
	if duration > e.maxDuration {
		e.maxDuration = duration
	}
}

// Once re-applies all filters and then executes all systems.
func (s *Scheduler) Once(ctx context.Context) error {
	s.ApplyFilters()
	return s.Execute(ctx)
}

// Entities returns the working set of a system from the last filter pass.
func (s *Scheduler) Entities(id SystemId) []EntityId {
	for _, entry := range s.systems {
		if entry.id == id {
			return slices.Clone(entry.entities)
		}
	}
	return nil
}

// Len returns the number of registered systems.
func (s *Scheduler) Len() int {
	return len(s.systems)
}

// Ticks returns how many execution passes have run.
func (s *Scheduler) Ticks() uint64 {
	return s.tick
}

// Stats returns statistics about system execution, in execution order.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, entry := range s.systems {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if entry.executionCount > 0 {
			avgDuration = entry.totalDuration / time.Duration(entry.executionCount)
			minDuration = entry.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           entry.name,
			Priority:       entry.priority,
			EntityCount:    len(entry.entities),
			ExecutionCount: entry.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    entry.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   entry.lastDuration,
			TotalDuration:  entry.totalDuration,
		}
		totalExecs += entry.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
