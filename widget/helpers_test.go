package widget_test

import (
	"reflect"
	"slices"
	"strconv"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/widget"
)

// boxed is a leaf widget declaring a fixed component list.
type boxed struct {
	boxes []ecs.ComponentBox
}

func (b *boxed) Template() widget.Template      { return widget.EmptyTemplate() }
func (b *boxed) Components() []ecs.ComponentBox { return b.boxes }

func reflectType[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

func contains(ids []ecs.EntityId, id ecs.EntityId) bool {
	return slices.Contains(ids, id)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
