package ecs

import (
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/kamstrup/intmap"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// ComponentSet is the read-only view of one entity's component types handed to
// system filters. All entities of an archetype share the same set.
type ComponentSet interface {
	Has(t reflect.Type) bool
	Types() []reflect.Type
}

// Contains reports whether set holds a component of type T.
func Contains[T any](set ComponentSet) bool {
	return set.Has(reflect.TypeFor[T]())
}

// Archetype stores every entity that has exactly one particular combination of component types
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []componentStorage
	// born maps a slot index to the world-wide creation sequence of the entity living there
	born *intmap.Map[uint32, uint64]
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentStorage, len(types)),
		born:     intmap.New[uint32, uint64](64),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// spawn appends one entity's components and records its creation sequence.
// Every storage of an archetype is appended and deleted in lockstep, so they
// all hand back the same slot.
func (a *Archetype) spawn(components []any, seq uint64) uint32 {
	slot := -1
	for _, comp := range components {
		idx := a.storageIndex(componentType(comp))
		if idx < 0 {
			panic("component does not belong to archetype")
		}
		slot = a.storages[idx].Append(comp)
	}
	a.born.Put(uint32(slot), seq)
	return uint32(slot)
}

func (a *Archetype) storageIndex(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the component of the given type stored in slot, or nil
func (a *Archetype) GetComponent(slot uint32, compType reflect.Type) any {
	idx := a.storageIndex(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(slot))
}

// Alive reports whether slot currently holds an entity.
func (a *Archetype) Alive(slot uint32) bool {
	return len(a.storages) > 0 && a.storages[0].Has(int(slot))
}

// Delete frees the slot. Indices of other entities remain stable.
func (a *Archetype) Delete(slot uint32) {
	for _, storage := range a.storages {
		storage.Delete(int(slot))
	}
	a.born.Del(slot)
}

// Has reports whether this archetype has the given component type
func (a *Archetype) Has(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

func (a *Archetype) String() string {
	names := make([]string, len(a.types))
	for i, t := range a.types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Iter returns an iterator over all live EntityIds in this archetype
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for slot := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}

func sortTypes(types []reflect.Type) {
	sort.Sort(byTypeName(types))
}
