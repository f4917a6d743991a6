package ecs_test

import "github.com/plus3/ooui/ecs"

// Common test component types
type Bounds struct {
	X, Y          int32
	Width, Height uint32
}

type Style struct {
	Class string
}

type Caption struct {
	Value string
}

type Focus struct {
	Order int
}

type Hidden struct{}

type Opacity float64

// Lazy is never registered up front; it only reaches a world through ecs.Box.
type Lazy struct {
	N int
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Bounds](registry)
	ecs.RegisterComponent[Style](registry)
	ecs.RegisterComponent[Caption](registry)
	ecs.RegisterComponent[Focus](registry)
	ecs.RegisterComponent[Hidden](registry)
	ecs.RegisterComponent[Opacity](registry)
	return registry
}
