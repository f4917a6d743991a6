package main

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorTreeSize(t *testing.T) {
	for _, n := range []int{1, 10, 500, 5000} {
		gen := NewGenerator(rand.New(rand.NewSource(42)), 6)
		widgets, err := widget.Expand(gen.Tree(n))
		require.NoError(t, err)

		assert.GreaterOrEqual(t, len(widgets), n, "n=%d", n)
		assert.LessOrEqual(t, len(widgets), n+1, "n=%d", n)
	}
}

func TestGeneratorIsDeterministic(t *testing.T) {
	a, err := widget.Expand(NewGenerator(rand.New(rand.NewSource(3)), 4).Tree(200))
	require.NoError(t, err)
	b, err := widget.Expand(NewGenerator(rand.New(rand.NewSource(3)), 4).Tree(200))
	require.NoError(t, err)

	require.Len(t, b, len(a))
	for i := range a {
		assert.IsType(t, a[i], b[i])
	}
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestReportGenerate(t *testing.T) {
	r := &Report{
		Duration:       time.Second,
		Roots:          2,
		Widgets:        10,
		Entities:       10,
		TotalFrames:    60,
		GCPauseMetrics: true,
		Systems: []ecs.SystemStats{
			{Name: "render", Priority: 0, EntityCount: 4, ExecutionCount: 60},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Generate(&buf))
	out := buf.String()
	assert.Contains(t, out, "**Roots:** 2")
	assert.Contains(t, out, "**Total Frames:** 60")
	assert.Contains(t, out, "| render | 0 | 4 | 60 |")
	assert.Contains(t, out, "## GC Pause Durations")
}
