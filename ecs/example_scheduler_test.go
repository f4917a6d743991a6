package ecs_test

import (
	"context"
	"fmt"

	"github.com/plus3/ooui/ecs"
)

type layoutSystem struct{}

func (layoutSystem) Execute(frame *ecs.Frame) error {
	for i, id := range frame.Entities {
		bounds := ecs.ReadComponent[Bounds](frame.World, id)
		bounds.Y = int32(i) * 20
	}
	return nil
}

// ExampleScheduler shows systems registered with a priority and a filter.
// Filters are re-applied on every Once, and systems run lowest priority first.
func ExampleScheduler() {
	world := ecs.NewWorld(newTestRegistry())
	scheduler := ecs.NewScheduler(world)

	scheduler.Register(ecs.SystemFunc(func(frame *ecs.Frame) error {
		for _, id := range frame.Entities {
			b := ecs.ReadComponent[Bounds](frame.World, id)
			fmt.Printf("%s at y=%d\n", ecs.ReadComponent[Caption](frame.World, id).Value, b.Y)
		}
		return nil
	}), ecs.WithPriority(1), ecs.WithFilter(ecs.Requires(Caption{}, Bounds{})))
	scheduler.Register(layoutSystem{}, ecs.WithFilter(ecs.Requires(Bounds{})))

	world.Spawn(Caption{Value: "first"}, Bounds{})
	world.Spawn(Bounds{})
	world.Spawn(Caption{Value: "third"}, Bounds{})

	if err := scheduler.Once(context.Background()); err != nil {
		fmt.Println(err)
	}

	// Output:
	// first at y=0
	// third at y=40
}
