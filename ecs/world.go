package ecs

import (
	"reflect"
	"slices"
)

// World owns every entity and component of one widget tree. Structural
// changes (spawn, insert, remove, delete) are not allowed while a component
// of the affected entity is borrowed.
type World struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	typeIds    map[reflect.Type]uint32
	nextSeq    uint64
	borrows    borrowTable
}

// NewWorld creates an empty world using the given component registry.
// A nil registry gets a fresh one.
func NewWorld(registry *ComponentRegistry) *World {
	if registry == nil {
		registry = NewComponentRegistry()
	}
	return &World{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		typeIds:    make(map[reflect.Type]uint32),
		borrows:    newBorrowTable(),
	}
}

// Registry returns the component registry backing this world.
func (w *World) Registry() *ComponentRegistry {
	return w.registry
}

// Spawn creates a new entity with the provided components.
// Pointers are dereferenced; every component type must be distinct and registered.
func (w *World) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		if slices.Contains(types, t) {
			panic("duplicate component type " + t.String())
		}
		types = append(types, t)
	}
	sortTypes(types)

	w.nextSeq++
	return w.place(types, components, w.nextSeq)
}

func (w *World) place(types []reflect.Type, components []any, seq uint64) EntityId {
	archetype := w.archetypeFor(types)
	slot := archetype.spawn(components, seq)
	return NewEntityId(archetype.id, slot)
}

// archetypeFor finds or creates the archetype for a sorted type list. Hash
// collisions are resolved by probing the next id.
func (w *World) archetypeFor(types []reflect.Type) *Archetype {
	id := w.hashTypes(types)
	for {
		if id == 0 {
			id = 1
		}
		archetype, ok := w.archetypes[id]
		if !ok {
			archetype = NewArchetype(id, types, w.registry)
			w.archetypes[id] = archetype
			return archetype
		}
		if slices.Equal(archetype.types, types) {
			return archetype
		}
		id++
	}
}

// hashTypes generates a FNV-1a hash over the interned ids of a sorted type list
func (w *World) hashTypes(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		tid, ok := w.typeIds[t]
		if !ok {
			tid = uint32(len(w.typeIds) + 1)
			w.typeIds[t] = tid
		}
		for shift := 0; shift < 32; shift += 8 {
			h ^= (tid >> shift) & 0xFF
			h *= prime
		}
	}
	return h
}

func (w *World) lookup(id EntityId) (*Archetype, bool) {
	archetype, ok := w.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Alive(id.Index()) {
		return nil, false
	}
	return archetype, true
}

// Alive reports whether id refers to a live entity.
func (w *World) Alive(id EntityId) bool {
	_, ok := w.lookup(id)
	return ok
}

// Delete removes all data related to the entity. It reports whether the entity existed.
func (w *World) Delete(id EntityId) bool {
	archetype, ok := w.lookup(id)
	if !ok {
		return false
	}
	w.borrows.assertFree(id)
	archetype.Delete(id.Index())
	return true
}

// Insert attaches component to the entity. A component of the same type is
// overwritten in place and the id is unchanged; otherwise the entity moves to
// another archetype and its new id is returned. Creation order is preserved.
func (w *World) Insert(id EntityId, component any) EntityId {
	old, ok := w.lookup(id)
	if !ok {
		panic("insert on dead entity " + id.String())
	}
	w.borrows.assertFree(id)

	compType := componentType(component)
	if idx := old.storageIndex(compType); idx >= 0 {
		slot := int(id.Index())
		old.storages[idx].Delete(slot)
		if got := old.storages[idx].Append(component); got != slot {
			panic("component storage out of step")
		}
		return id
	}

	types := append(slices.Clone(old.types), compType)
	sortTypes(types)
	components := make([]any, 0, len(types))
	for _, typ := range types {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, old.GetComponent(id.Index(), typ))
		}
	}
	return w.move(old, id, types, components)
}

// Remove detaches the component of type compType. When no components remain
// the entity is deleted and 0 is returned.
func (w *World) Remove(id EntityId, compType reflect.Type) EntityId {
	old, ok := w.lookup(id)
	if !ok || !old.Has(compType) {
		return id
	}
	w.borrows.assertFree(id)

	types := make([]reflect.Type, 0, len(old.types)-1)
	components := make([]any, 0, len(old.types)-1)
	for _, typ := range old.types {
		if typ != compType {
			types = append(types, typ)
			components = append(components, old.GetComponent(id.Index(), typ))
		}
	}
	if len(types) == 0 {
		old.Delete(id.Index())
		return 0
	}
	return w.move(old, id, types, components)
}

func (w *World) move(old *Archetype, id EntityId, types []reflect.Type, components []any) EntityId {
	seq, _ := old.born.Get(id.Index())
	// components still point into the old archetype; append copies them before the slot is freed
	newId := w.place(types, components, seq)
	old.Delete(id.Index())
	return newId
}

// GetComponent returns a pointer to the component for the given entity and type, or nil.
// The pointer bypasses borrow tracking; use Borrow when access must be checked.
func (w *World) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := w.lookup(id)
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (w *World) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := w.lookup(id)
	return ok && archetype.Has(compType)
}

// ComponentSet returns the component set of a live entity.
func (w *World) ComponentSet(id EntityId) (ComponentSet, bool) {
	archetype, ok := w.lookup(id)
	if !ok {
		return nil, false
	}
	return archetype, true
}

// Seq returns the creation sequence number of a live entity. Earlier entities have smaller numbers.
func (w *World) Seq(id EntityId) (uint64, bool) {
	archetype, ok := w.lookup(id)
	if !ok {
		return 0, false
	}
	return archetype.born.Get(id.Index())
}

// Entities returns every live entity in creation order.
func (w *World) Entities() []EntityId {
	ids := make([]EntityId, 0, w.Len())
	for _, archetype := range w.archetypes {
		for id := range archetype.Iter() {
			ids = append(ids, id)
		}
	}
	w.sortByCreation(ids)
	return ids
}

func (w *World) sortByCreation(ids []EntityId) {
	slices.SortFunc(ids, func(a, b EntityId) int {
		sa, _ := w.archetypes[a.ArchetypeId()].born.Get(a.Index())
		sb, _ := w.archetypes[b.ArchetypeId()].born.Get(b.Index())
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	})
}

// Len returns the number of live entities.
func (w *World) Len() int {
	n := 0
	for _, archetype := range w.archetypes {
		n += archetype.Len()
	}
	return n
}

// Archetypes returns all archetypes ordered by id.
func (w *World) Archetypes() []*Archetype {
	out := make([]*Archetype, 0, len(w.archetypes))
	for _, archetype := range w.archetypes {
		out = append(out, archetype)
	}
	slices.SortFunc(out, func(a, b *Archetype) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return out
}

// ComponentReader is anything that can hand out components by entity and type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the component of type T for the entity, or nil when absent.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	c, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}
