package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/plus3/ooui/backend/headless"
	"github.com/plus3/ooui/debugui"
	"github.com/plus3/ooui/widget"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	widgetCount := flag.Int("widgets", 10000, "The approximate number of widgets per root.")
	roots := flag.Int("roots", 1, "How many times SetRoot is called with a fresh tree.")
	maxChildren := flag.Int("fanout", 8, "The maximum number of children of a column.")
	seed := flag.Int64("seed", 1, "Seed for the tree generator.")
	inspector := flag.Bool("inspector", false, "Also run the debug inspector system every frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting widget stress test...")

	backend := headless.New(headless.KeepFrames(0))
	manager := widget.NewManager(backend)
	if *inspector {
		debugui.Attach(manager)
	}

	report := &Report{
		Duration:       *duration,
		Roots:          *roots,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Building %d tree(s) of ~%d widgets...\n", *roots, *widgetCount)
	gen := NewGenerator(rand.New(rand.NewSource(*seed)), *maxChildren)
	for i := 0; i < *roots; i++ {
		root := gen.Tree(*widgetCount)

		start := time.Now()
		widgets, err := widget.Expand(root)
		if err != nil {
			log.Fatalf("Failed to expand tree: %v", err)
		}
		report.ExpandTime.Samples = append(report.ExpandTime.Samples, time.Since(start))

		start = time.Now()
		if _, err := manager.SetRoot(root); err != nil {
			log.Fatalf("Failed to attach tree: %v", err)
		}
		report.SetRootTime.Samples = append(report.SetRootTime.Samples, time.Since(start))
		report.Widgets += len(widgets)
	}
	report.Entities = manager.World().Len()
	report.Archetypes = len(manager.World().Archetypes())
	log.Println("Population complete.")

	log.Printf("Running frames for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			err := manager.Run(ctx)
			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) {
					break Loop
				}
				log.Fatalf("Frame failed: %v", err)
			}
			report.FrameTime.Samples = append(report.FrameTime.Samples, time.Since(frameStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalFrames = int64(len(report.FrameTime.Samples))
	report.Draws = manager.RenderSystem().Draws()
	report.Systems = manager.Scheduler().Stats().Systems
	report.ExpandTime.Finalize()
	report.SetRootTime.Finalize()
	report.FrameTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
