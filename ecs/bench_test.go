package ecs_test

import (
	"context"
	"testing"

	"github.com/plus3/ooui/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	world := ecs.NewWorld(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Spawn(Bounds{Width: 200, Height: 50}, Style{Class: "button"})
	}
}

func BenchmarkBuilder(b *testing.B) {
	world := ecs.NewWorld(newTestRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.CreateEntity().
			WithBox(ecs.Box(Style{Class: "button"})).
			WithBox(ecs.Box(Caption{Value: "ok"})).
			With(Bounds{Width: 200, Height: 50}).
			Build()
	}
}

func BenchmarkBorrow(b *testing.B) {
	world := ecs.NewWorld(newTestRegistry())
	id := world.Spawn(Style{Class: "button"})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ref, err := ecs.Borrow[Style](world, id)
		if err != nil {
			b.Fatal(err)
		}
		ref.Release()
	}
}

func BenchmarkSchedulerOnce(b *testing.B) {
	world := ecs.NewWorld(newTestRegistry())
	scheduler := ecs.NewScheduler(world)
	scheduler.Register(ecs.SystemFunc(func(*ecs.Frame) error { return nil }),
		ecs.WithFilter(ecs.Requires(Style{})))

	for i := 0; i < 1000; i++ {
		if i%2 == 0 {
			world.Spawn(Style{}, Bounds{})
		} else {
			world.Spawn(Bounds{})
		}
	}

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = scheduler.Once(ctx)
	}
}
