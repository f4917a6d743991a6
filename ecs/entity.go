package ecs

import (
	"fmt"
	"reflect"
)

// EntityId encodes both the archetype ID (upper 32 bits) and the slot index (lower 32 bits)
type EntityId uint64

// NewEntityId creates an EntityId from an archetype ID and slot index
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

func (e EntityId) String() string {
	return fmt.Sprintf("%08x:%d", e.ArchetypeId(), e.Index())
}

// EntityBuilder collects components for an entity that has not been created yet.
// Components are kept in insertion order; adding a second component of the same
// type replaces the first one in place.
type EntityBuilder struct {
	world      *World
	components []any
	types      map[reflect.Type]int
	built      bool
}

// CreateEntity begins a new entity. Nothing is stored until Build is called.
func (w *World) CreateEntity() *EntityBuilder {
	return &EntityBuilder{
		world: w,
		types: make(map[reflect.Type]int),
	}
}

// With attaches a component value (or a pointer to one) to the entity being built.
func (b *EntityBuilder) With(component any) *EntityBuilder {
	b.add(componentType(component), component)
	return b
}

// WithBox attaches the component held by box. Boxes carry their own storage
// factory, so their types do not need to be registered up front.
func (b *EntityBuilder) WithBox(box ComponentBox) *EntityBuilder {
	if box.IsZero() {
		return b
	}
	b.world.registry.ensure(box.typ, box.factory)
	b.add(box.typ, box.value)
	return b
}

func (b *EntityBuilder) add(t reflect.Type, component any) {
	if idx, ok := b.types[t]; ok {
		b.components[idx] = component
		return
	}
	b.types[t] = len(b.components)
	b.components = append(b.components, component)
}

// Len returns the number of distinct component types collected so far.
func (b *EntityBuilder) Len() int {
	return len(b.components)
}

// Build finalizes the entity and returns its id.
// It panics if called twice or with no components.
func (b *EntityBuilder) Build() EntityId {
	if b.built {
		panic("entity already built")
	}
	b.built = true
	return b.world.Spawn(b.components...)
}
