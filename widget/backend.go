package widget

import (
	"context"
	"errors"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/theme"
)

// ErrQuit is returned by Backend.Render once the platform has asked to close.
var ErrQuit = errors.New("widget: quit requested")

// Backend presents frames for one window.
type Backend interface {
	// Render presents one frame. It is called once per Manager.Run, before
	// any entity is visited, and must return promptly.
	Render(ctx context.Context) error
	// SetBounds applies the window position and size.
	SetBounds(bounds Rect)
}

// PaintItem describes one drawable entity handed to a Painter.
type PaintItem struct {
	Entity   ecs.EntityId
	Bounds   Rect
	Selector *theme.Selector
	Text     string
}

// Painter is implemented by backends that want to know what each drawable
// entity looks like. Items arrive in creation order after Render.
type Painter interface {
	Paint(item PaintItem)
}
