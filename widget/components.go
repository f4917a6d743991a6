package widget

import (
	"fmt"

	"github.com/plus3/ooui/theme"
)

// Drawable is the component marking an entity as renderable.
type Drawable struct {
	fn func(theme.Selector)
}

// NewDrawable wraps fn as a Drawable. A nil fn draws nothing.
func NewDrawable(fn func(theme.Selector)) Drawable {
	return Drawable{fn: fn}
}

// Draw invokes the drawing function with the entity's selector.
func (d Drawable) Draw(selector theme.Selector) {
	if d.fn != nil {
		d.fn(selector)
	}
}

// Rect is the bounding rectangle of an entity or a window.
type Rect struct {
	X      int32
	Y      int32
	Width  uint32
	Height uint32
}

// DefaultRect is attached to every entity created by a Manager unless
// overridden with WithDefaultBounds. It is attached after the widget's own
// components, so it replaces any Rect a widget declares.
var DefaultRect = Rect{X: 0, Y: 0, Width: 200, Height: 50}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Placement is an explicit position chosen by the widget. Painting uses it
// in place of the entity's Rect.
type Placement struct {
	Bounds Rect
}

// Text is string content shown by an entity.
type Text struct {
	Value string
}
