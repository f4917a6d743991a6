// Package widget turns trees of widgets into entities of an ecs.World and
// renders them through a pluggable backend.
package widget

import (
	"errors"
	"fmt"

	"github.com/plus3/ooui/ecs"
)

// MaxTemplateDepth bounds template nesting during expansion.
const MaxTemplateDepth = 1024

// ErrMalformedTemplate is returned when a template tree nests deeper than
// MaxTemplateDepth, which in practice means it refers back to itself.
var ErrMalformedTemplate = errors.New("widget: malformed template")

// Widget is a node of the UI tree. A widget describes its children through
// Template and the components its own entity carries through Components.
// Widgets are shared by reference and must not be mutated once they have been
// handed to a template or to Manager.SetRoot.
type Widget interface {
	Template() Template
	Components() []ecs.ComponentBox
}

// TemplateKind tags the variant held by a Template.
type TemplateKind uint8

const (
	TemplateEmpty TemplateKind = iota
	TemplateSingle
	TemplateMultiple
)

func (k TemplateKind) String() string {
	switch k {
	case TemplateEmpty:
		return "empty"
	case TemplateSingle:
		return "single"
	case TemplateMultiple:
		return "multiple"
	}
	return fmt.Sprintf("TemplateKind(%d)", uint8(k))
}

// Template describes the children of a widget.
type Template struct {
	kind     TemplateKind
	children []Widget
}

// EmptyTemplate returns a template without children.
func EmptyTemplate() Template {
	return Template{kind: TemplateEmpty}
}

// SingleChild returns a template with exactly one child.
func SingleChild(child Widget) Template {
	return Template{kind: TemplateSingle, children: []Widget{child}}
}

// MultiChild returns a template with the given children in order.
func MultiChild(children ...Widget) Template {
	return Template{kind: TemplateMultiple, children: children}
}

// Kind returns the variant of t.
func (t Template) Kind() TemplateKind {
	return t.kind
}

// Children returns the child widgets of t. The slice must not be modified.
func (t Template) Children() []Widget {
	return t.children
}
