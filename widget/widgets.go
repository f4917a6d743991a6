package widget

import (
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/theme"
)

// Border is a leaf widget that draws a frame. It optionally wraps one child.
type Border struct {
	child    Widget
	selector *theme.Selector
	text     *string
	bounds   *Placement
	draw     func(theme.Selector)
}

// NewBorder returns a border without a child.
func NewBorder() *Border {
	return &Border{}
}

// WithChild sets the wrapped widget.
func (b *Border) WithChild(child Widget) *Border {
	b.child = child
	return b
}

// WithSelector gives the border a selector so the render system draws it.
func (b *Border) WithSelector(selector theme.Selector) *Border {
	b.selector = &selector
	return b
}

// WithText gives the border a caption.
func (b *Border) WithText(text string) *Border {
	b.text = &text
	return b
}

// WithBounds places the border. The bounds are carried as a Placement.
func (b *Border) WithBounds(bounds Rect) *Border {
	b.bounds = &Placement{Bounds: bounds}
	return b
}

// OnDraw sets the function run when the border is drawn.
func (b *Border) OnDraw(fn func(theme.Selector)) *Border {
	b.draw = fn
	return b
}

func (b *Border) Template() Template {
	if b.child == nil {
		return EmptyTemplate()
	}
	return SingleChild(b.child)
}

func (b *Border) Components() []ecs.ComponentBox {
	boxes := []ecs.ComponentBox{ecs.Box(NewDrawable(b.draw))}
	if b.selector != nil {
		boxes = append(boxes, ecs.Box(*b.selector))
	}
	if b.text != nil {
		boxes = append(boxes, ecs.Box(Text{Value: *b.text}))
	}
	if b.bounds != nil {
		boxes = append(boxes, ecs.Box(*b.bounds))
	}
	return boxes
}

// Label shows text styled by its selector.
type Label struct {
	selector theme.Selector
	text     *string
}

// NewLabel returns a label carrying selector.
func NewLabel(selector theme.Selector) *Label {
	return &Label{selector: selector}
}

// WithText sets the label's text.
func (l *Label) WithText(text string) *Label {
	l.text = &text
	return l
}

func (l *Label) Template() Template {
	return EmptyTemplate()
}

func (l *Label) Components() []ecs.ComponentBox {
	boxes := []ecs.ComponentBox{ecs.Box(l.selector)}
	if l.text != nil {
		boxes = append(boxes, ecs.Box(Text{Value: *l.text}))
	}
	return boxes
}

// Button is a bordered control identified by the "button" element.
type Button struct {
	border *Border
}

// NewButton returns a button wrapping a fresh Border.
func NewButton() *Button {
	return &Button{border: NewBorder()}
}

func (b *Button) Template() Template {
	return SingleChild(b.border)
}

func (b *Button) Components() []ecs.ComponentBox {
	return []ecs.ComponentBox{ecs.Box(theme.NewSelector("button"))}
}

// Column groups its children vertically.
type Column struct {
	children []Widget
}

// NewColumn returns a column holding children in order.
func NewColumn(children ...Widget) *Column {
	return &Column{children: children}
}

func (c *Column) Template() Template {
	return MultiChild(c.children...)
}

func (c *Column) Components() []ecs.ComponentBox {
	return []ecs.ComponentBox{ecs.Box(theme.NewSelector("column"))}
}
