// Package debugui provides a Dear ImGui inspector for widget worlds. It runs
// as an ecs.System after rendering and lists entities, their components and
// scheduler statistics.
package debugui

import (
	"time"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/widget"
)

// Priority places the inspector after the render system.
const Priority = 100

// Inspector is the debug system. It refreshes its panels every frame and
// draws them when Drawing is enabled, which requires an active ImGui frame.
type Inspector struct {
	Browser    *EntityBrowser
	Components *ComponentInspector
	Stats      *StatsPanel

	scheduler *ecs.Scheduler
	drawing   bool
	now       func() time.Time
}

type Option func(*Inspector)

// WithDrawing makes Execute issue ImGui calls.
func WithDrawing() Option {
	return func(i *Inspector) {
		i.drawing = true
	}
}

// WithClock replaces time.Now for frame timing.
func WithClock(now func() time.Time) Option {
	return func(i *Inspector) {
		i.now = now
	}
}

func NewInspector(scheduler *ecs.Scheduler, opts ...Option) *Inspector {
	i := &Inspector{
		Browser:    NewEntityBrowser(100),
		Components: NewComponentInspector(),
		Stats:      NewStatsPanel(120),
		scheduler:  scheduler,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Attach registers a new inspector on m.
func Attach(m *widget.Manager, opts ...Option) *Inspector {
	i := NewInspector(m.Scheduler(), opts...)
	m.RegisterSystem(i, ecs.WithPriority(Priority), ecs.WithName("inspector"))
	return i
}

func (i *Inspector) Execute(frame *ecs.Frame) error {
	i.Browser.Rebuild(frame.World)
	i.Stats.Collect(frame.World, i.scheduler, i.now())

	if i.drawing {
		i.Browser.Draw()
		i.Components.Draw(frame.World, i.Browser.Selected())
		i.Stats.Draw()
	}
	return nil
}
