package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrComponentNotFound is returned when an entity does not carry the requested component.
	ErrComponentNotFound = errors.New("ecs: component not found")
	// ErrBorrowConflict is returned when a borrow would overlap an incompatible one on the same slot.
	ErrBorrowConflict = errors.New("ecs: component already borrowed")
)

type borrowKey struct {
	entity EntityId
	typ    reflect.Type
}

// borrowTable tracks outstanding borrows: a positive count is that many shared
// borrows, -1 is a single exclusive borrow.
type borrowTable struct {
	slots    map[borrowKey]int
	entities map[EntityId]int
}

func newBorrowTable() borrowTable {
	return borrowTable{
		slots:    make(map[borrowKey]int),
		entities: make(map[EntityId]int),
	}
}

func (t *borrowTable) acquire(key borrowKey, exclusive bool) error {
	state := t.slots[key]
	switch {
	case exclusive && state != 0:
		return fmt.Errorf("%w: %s of entity %s", ErrBorrowConflict, key.typ, key.entity)
	case !exclusive && state < 0:
		return fmt.Errorf("%w: %s of entity %s is borrowed mutably", ErrBorrowConflict, key.typ, key.entity)
	}
	if exclusive {
		t.slots[key] = -1
	} else {
		t.slots[key] = state + 1
	}
	t.entities[key.entity]++
	return nil
}

func (t *borrowTable) release(key borrowKey) {
	switch state := t.slots[key]; {
	case state <= 1:
		delete(t.slots, key)
	default:
		t.slots[key] = state - 1
	}
	if n := t.entities[key.entity]; n <= 1 {
		delete(t.entities, key.entity)
	} else {
		t.entities[key.entity] = n - 1
	}
}

func (t *borrowTable) assertFree(id EntityId) {
	if t.entities[id] > 0 {
		panic("structural change on borrowed entity " + id.String())
	}
}

// Outstanding returns the number of live borrows.
func (w *World) Outstanding() int {
	n := 0
	for _, c := range w.borrows.entities {
		n += c
	}
	return n
}

// Ref is a shared borrow of one component. Release it before borrowing the
// same slot mutably or changing the entity's structure.
type Ref[T any] struct {
	value    *T
	world    *World
	key      borrowKey
	released bool
}

// Get returns the borrowed component. The value must be treated as read-only.
func (r *Ref[T]) Get() *T {
	return r.value
}

// Release ends the borrow. Releasing twice is a no-op.
func (r *Ref[T]) Release() {
	if r.released {
		return
	}
	r.released = true
	r.world.borrows.release(r.key)
}

// RefMut is an exclusive borrow of one component.
type RefMut[T any] struct {
	Ref[T]
}

// Borrow acquires a shared borrow of the T component of id.
func Borrow[T any](w *World, id EntityId) (*Ref[T], error) {
	value, key, err := borrowTarget[T](w, id)
	if err != nil {
		return nil, err
	}
	if err := w.borrows.acquire(key, false); err != nil {
		return nil, err
	}
	return &Ref[T]{value: value, world: w, key: key}, nil
}

// BorrowMut acquires an exclusive borrow of the T component of id.
func BorrowMut[T any](w *World, id EntityId) (*RefMut[T], error) {
	value, key, err := borrowTarget[T](w, id)
	if err != nil {
		return nil, err
	}
	if err := w.borrows.acquire(key, true); err != nil {
		return nil, err
	}
	return &RefMut[T]{Ref[T]{value: value, world: w, key: key}}, nil
}

func borrowTarget[T any](w *World, id EntityId) (*T, borrowKey, error) {
	key := borrowKey{entity: id, typ: reflect.TypeFor[T]()}
	value := ReadComponent[T](w, id)
	if value == nil {
		return nil, key, fmt.Errorf("%w: %s on entity %s", ErrComponentNotFound, key.typ, id)
	}
	return value, key, nil
}
