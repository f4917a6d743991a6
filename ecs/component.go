package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for a World.
// Each World has its own registry, so independent worlds (one per window)
// never share storage layouts.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent registers a component type with the given registry.
// Types that only ever arrive inside a ComponentBox are registered lazily.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = newBlockStorage[T]
}

// Registered reports whether t has a storage factory.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) ensure(t reflect.Type, factory func() componentStorage) {
	if _, ok := r.factories[t]; ok || factory == nil {
		return
	}
	r.factories[t] = factory
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

// ComponentBox is a type-erased container holding exactly one component value.
// The box remembers the concrete type so the value can be downcast safely.
type ComponentBox struct {
	typ     reflect.Type
	value   any
	factory func() componentStorage
}

// Box wraps value in a ComponentBox.
func Box[T any](value T) ComponentBox {
	t := reflect.TypeFor[T]()
	checkComponentKind(t)
	return ComponentBox{
		typ:     t,
		value:   value,
		factory: newBlockStorage[T],
	}
}

// Type returns the concrete component type held by the box.
func (b ComponentBox) Type() reflect.Type {
	return b.typ
}

// Value returns the boxed component.
func (b ComponentBox) Value() any {
	return b.value
}

// IsZero reports whether the box is empty.
func (b ComponentBox) IsZero() bool {
	return b.typ == nil
}

// Unbox returns the boxed value if it has type T.
func Unbox[T any](b ComponentBox) (T, bool) {
	v, ok := b.value.(T)
	return v, ok
}

// Is reports whether the box holds a component of type T.
func Is[T any](b ComponentBox) bool {
	return b.typ == reflect.TypeFor[T]()
}

// componentType resolves the storage type of a component value, looking through one pointer.
func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t == nil {
		panic("component cannot be nil")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	checkComponentKind(t)
	return t
}

// Components can be structs or primitives (int, string, etc.) but not pointers,
// maps, channels, or functions. Structs holding funcs are fine.
func checkComponentKind(t reflect.Type) {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}
}

// componentStorage is a type-erased column of components.
type componentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Iter() iter.Seq[int]
	Len() int
}

const blockSize = 64

// blockStorage stores components of type T in fixed-size blocks so that
// pointers handed out by Get stay valid while the column grows.
type blockStorage[T any] struct {
	blocks    [][blockSize]T
	filled    [][blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func newBlockStorage[T any]() componentStorage {
	return &blockStorage[T]{}
}

func (cs *blockStorage[T]) Append(item any) int {
	var concrete T
	if ptr, ok := item.(*T); ok {
		concrete = *ptr
	} else if val, ok := item.(T); ok {
		concrete = val
	} else {
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/blockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, [blockSize]T{})
			cs.filled = append(cs.filled, [blockSize]bool{})
		}
	}

	cs.blocks[index/blockSize][index%blockSize] = concrete
	cs.filled[index/blockSize][index%blockSize] = true
	cs.count++
	return index
}

func (cs *blockStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/blockSize][index%blockSize]
}

func (cs *blockStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}
	var zero T
	cs.blocks[index/blockSize][index%blockSize] = zero
	cs.filled[index/blockSize][index%blockSize] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

func (cs *blockStorage[T]) Has(index int) bool {
	if index < 0 || index/blockSize >= len(cs.filled) {
		return false
	}
	return cs.filled[index/blockSize][index%blockSize]
}

func (cs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			if cs.filled[i/blockSize][i%blockSize] && !yield(i) {
				return
			}
		}
	}
}

func (cs *blockStorage[T]) Len() int {
	return cs.count
}
