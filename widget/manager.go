package widget

import (
	"context"
	"log/slog"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/theme"
)

// Manager owns the world of one window: it turns widget trees into entities
// and runs the systems that render them.
type Manager struct {
	world         *ecs.World
	scheduler     *ecs.Scheduler
	render        *RenderSystem
	renderId      ecs.SystemId
	logger        *slog.Logger
	defaultBounds Rect
	roots         int
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used by the manager and its render system.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithDefaultBounds replaces DefaultRect as the bounds attached to new entities.
func WithDefaultBounds(bounds Rect) ManagerOption {
	return func(m *Manager) {
		m.defaultBounds = bounds
	}
}

// NewManager creates a manager rendering through backend.
func NewManager(backend Backend, opts ...ManagerOption) *Manager {
	m := &Manager{
		logger:        slog.Default(),
		defaultBounds: DefaultRect,
	}
	for _, opt := range opts {
		opt(m)
	}

	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Drawable](registry)
	ecs.RegisterComponent[theme.Selector](registry)
	ecs.RegisterComponent[Rect](registry)
	ecs.RegisterComponent[Text](registry)
	ecs.RegisterComponent[Placement](registry)

	m.world = ecs.NewWorld(registry)
	m.scheduler = ecs.NewScheduler(m.world)
	m.render = NewRenderSystem(backend, m.logger)
	m.renderId = m.scheduler.Register(m.render,
		ecs.WithPriority(0),
		ecs.WithFilter(m.render.Filter),
		ecs.WithName("render"),
	)
	return m
}

// SetRoot expands root and creates one entity per widget, children before
// parents. Each entity gets the widget's components followed by the default
// bounds. It returns the new entity ids in creation order. Calling SetRoot
// again adds another independent set of entities.
func (m *Manager) SetRoot(root Widget) ([]ecs.EntityId, error) {
	widgets, err := Expand(root)
	if err != nil {
		return nil, err
	}

	ids := make([]ecs.EntityId, 0, len(widgets))
	for _, w := range widgets {
		builder := m.world.CreateEntity()
		for _, box := range w.Components() {
			builder.WithBox(box)
		}
		ids = append(ids, builder.With(m.defaultBounds).Build())
	}
	m.roots++

	m.logger.Debug("root attached", "widgets", len(widgets), "entities", m.world.Len())
	return ids, nil
}

// Run re-applies every system's filter and executes all systems once.
func (m *Manager) Run(ctx context.Context) error {
	return m.scheduler.Once(ctx)
}

// RegisterSystem adds a system next to the render system.
func (m *Manager) RegisterSystem(system ecs.System, opts ...ecs.SystemOption) ecs.SystemId {
	return m.scheduler.Register(system, opts...)
}

// World returns the manager's world.
func (m *Manager) World() *ecs.World {
	return m.world
}

// Scheduler returns the manager's scheduler.
func (m *Manager) Scheduler() *ecs.Scheduler {
	return m.scheduler
}

// RenderSystem returns the built-in render system.
func (m *Manager) RenderSystem() *RenderSystem {
	return m.render
}

// RenderSystemId returns the id the render system was registered under.
func (m *Manager) RenderSystemId() ecs.SystemId {
	return m.renderId
}

// Roots returns how many times SetRoot has succeeded.
func (m *Manager) Roots() int {
	return m.roots
}
