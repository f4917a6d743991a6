package ecs

import (
	"context"
	"reflect"
)

// Frame is handed to every system on each run. Entities is the system's
// working set as computed by the last filter pass, in creation order.
type Frame struct {
	Context  context.Context
	World    *World
	Entities []EntityId
	Tick     uint64
}

// System represents a behavior that operates on the entities its filter selects.
type System interface {
	Execute(frame *Frame) error
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *Frame) error

func (f SystemFunc) Execute(frame *Frame) error {
	return f(frame)
}

// Filter decides from an entity's component set whether the entity belongs to
// a system's working set. Filters must not mutate anything.
type Filter func(set ComponentSet) bool

// Requires builds a filter matching entities that carry every one of the given component types.
func Requires(components ...any) Filter {
	required := make([]reflect.Type, 0, len(components))
	for _, c := range components {
		required = append(required, componentType(c))
	}
	return func(set ComponentSet) bool {
		for _, t := range required {
			if !set.Has(t) {
				return false
			}
		}
		return true
	}
}

// SystemOption configures a system at registration.
type SystemOption func(*systemEntry)

// WithPriority sets the execution priority. Lower values run first; equal
// priorities run in registration order.
func WithPriority(priority int) SystemOption {
	return func(e *systemEntry) {
		e.priority = priority
	}
}

// WithFilter restricts the system's working set. Without a filter a system sees every entity.
func WithFilter(filter Filter) SystemOption {
	return func(e *systemEntry) {
		e.filter = filter
	}
}

// WithName overrides the name reported in statistics and errors.
func WithName(name string) SystemOption {
	return func(e *systemEntry) {
		e.name = name
	}
}
