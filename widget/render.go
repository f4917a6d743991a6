package widget

import (
	"log/slog"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/theme"
)

// RenderSystem presents a frame through the backend and then draws every
// entity that carries both a Drawable and a Selector.
type RenderSystem struct {
	backend Backend
	painter Painter
	logger  *slog.Logger

	frames uint64
	draws  uint64
}

// NewRenderSystem returns a render system drawing through backend.
func NewRenderSystem(backend Backend, logger *slog.Logger) *RenderSystem {
	if logger == nil {
		logger = slog.Default()
	}
	painter, _ := backend.(Painter)
	return &RenderSystem{
		backend: backend,
		painter: painter,
		logger:  logger,
	}
}

// Filter selects entities holding a Drawable.
func (s *RenderSystem) Filter(set ecs.ComponentSet) bool {
	return ecs.Contains[Drawable](set)
}

// Execute renders one frame.
func (s *RenderSystem) Execute(frame *ecs.Frame) error {
	if err := s.backend.Render(frame.Context); err != nil {
		return err
	}
	s.frames++

	for _, id := range frame.Entities {
		s.visit(frame.World, id)
	}
	return nil
}

// visit emits one diagnostic record per entity, including entities whose
// Drawable cannot be borrowed.
func (s *RenderSystem) visit(world *ecs.World, id ecs.EntityId) {
	var selector *theme.Selector
	name := "none"
	if ref, err := ecs.Borrow[theme.Selector](world, id); err == nil {
		defer ref.Release()
		selector = ref.Get()
		name = selector.String()
	}

	drawable, err := ecs.Borrow[Drawable](world, id)
	if err != nil {
		s.logger.Debug("render entity", "entity", id, "selector", name, "skipped", err)
		return
	}
	defer drawable.Release()

	s.logger.Debug("render entity", "entity", id, "selector", name)
	if selector != nil {
		drawable.Get().Draw(*selector)
		s.draws++
	}

	if s.painter != nil {
		s.painter.Paint(s.paintItem(world, id, selector))
	}
}

func (s *RenderSystem) paintItem(world *ecs.World, id ecs.EntityId, selector *theme.Selector) PaintItem {
	item := PaintItem{Entity: id, Bounds: DefaultRect}
	if selector != nil {
		sel := *selector
		item.Selector = &sel
	}
	if placed := ecs.ReadComponent[Placement](world, id); placed != nil {
		item.Bounds = placed.Bounds
	} else if rect := ecs.ReadComponent[Rect](world, id); rect != nil {
		item.Bounds = *rect
	}
	if text := ecs.ReadComponent[Text](world, id); text != nil {
		item.Text = text.Value
	}
	return item
}

// Frames returns how many frames have been presented.
func (s *RenderSystem) Frames() uint64 {
	return s.frames
}

// Draws returns the total number of Drawable.Draw calls made.
func (s *RenderSystem) Draws() uint64 {
	return s.draws
}
