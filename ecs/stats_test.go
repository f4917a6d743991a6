package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/ooui/ecs"
	"github.com/stretchr/testify/assert"
)

func TestWorldStats(t *testing.T) {
	world := ecs.NewWorld(newTestRegistry())

	stats := world.CollectStats()
	assert.Equal(t, 0, stats.ArchetypeCount)
	assert.Equal(t, 0, stats.TotalEntityCount)

	world.Spawn(Bounds{}, Style{})
	world.Spawn(Bounds{}, Style{})
	world.Spawn(Opacity(0.5), Style{})

	stats = world.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Len(t, stats.ArchetypeBreakdown, 2)

	counts := map[int]bool{}
	for _, arch := range stats.ArchetypeBreakdown {
		counts[arch.EntityCount] = true
		assert.Len(t, arch.ComponentTypes, 2)
	}
	assert.Equal(t, map[int]bool{1: true, 2: true}, counts)
}

type sleepySystem struct {
	executeCount int
	sleepDur     time.Duration
}

func (s *sleepySystem) Execute(*ecs.Frame) error {
	s.executeCount++
	time.Sleep(s.sleepDur)
	return nil
}

func TestSchedulerStats(t *testing.T) {
	world := ecs.NewWorld(newTestRegistry())
	scheduler := ecs.NewScheduler(world)

	stats := scheduler.Stats()
	assert.Equal(t, 0, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)

	sys1 := &sleepySystem{sleepDur: 1 * time.Millisecond}
	sys2 := &sleepySystem{sleepDur: 2 * time.Millisecond}
	scheduler.Register(sys1, ecs.WithFilter(ecs.Requires(Style{})))
	scheduler.Register(sys2, ecs.WithPriority(3))

	world.Spawn(Style{})
	world.Spawn(Bounds{})

	for i := 0; i < 3; i++ {
		assert.NoError(t, scheduler.Once(context.Background()))
	}

	stats = scheduler.Stats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, 1, stats.Systems[0].EntityCount)
	assert.Equal(t, 2, stats.Systems[1].EntityCount)
	assert.Equal(t, 3, stats.Systems[1].Priority)

	for _, sysStats := range stats.Systems {
		assert.Equal(t, "sleepySystem", sysStats.Name)
		assert.Equal(t, int64(3), sysStats.ExecutionCount)
		assert.NotZero(t, sysStats.MinDuration)
		assert.NotZero(t, sysStats.LastDuration)
		assert.LessOrEqual(t, sysStats.MinDuration, sysStats.AvgDuration)
		assert.LessOrEqual(t, sysStats.AvgDuration, sysStats.MaxDuration)
	}

	assert.Equal(t, 3, sys1.executeCount)
	assert.Equal(t, 3, sys2.executeCount)
}
