// Command arcade-bench drives the runner and nexus simulations headless with
// scripted players and reports per-system timings.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/plus3/arcade/draw"
)

const tick = time.Second / 60

var quietLogger = log.New(io.Discard, "", 0)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "How long to drive each game.")
	games := flag.String("games", "runner,nexus", "Comma-separated games to run.")
	seed := flag.Uint64("seed", 1, "Random seed for the scripted players and the games.")
	render := flag.Bool("render", false, "Also render every frame into a recorder.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	report := &Report{
		Duration:       *duration,
		Seed:           *seed,
		Render:         *render,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	rng := rand.New(rand.NewPCG(*seed, 0))
	for _, name := range strings.Split(*games, ",") {
		t, err := newTarget(strings.TrimSpace(name), rng)
		if err != nil {
			log.Fatalf("%v", err)
		}

		log.Printf("Running %s for %s...", t.Name(), *duration)
		ctx, cancel := context.WithTimeout(context.Background(), *duration)
		result := drive(ctx, t, 0, *render)
		cancel()
		log.Printf("%s: %d frames, %d runs finished", t.Name(), result.Frames, result.Runs)

		report.Results = append(report.Results, result)
	}

	runtime.ReadMemStats(&report.MemStatsEnd)

	fmt.Println("\n--- Arcade Bench Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}

// drive steps t at a fixed 60 Hz until ctx is done or maxFrames frames have
// run (0 means no limit).
func drive(ctx context.Context, t target, maxFrames int64, render bool) Result {
	result := Result{Game: t.Name()}
	var canvas *draw.Recorder
	if render {
		canvas = draw.NewRecorder(800, 600)
	}

	start := time.Now()
	dt := tick.Seconds()

Loop:
	for maxFrames == 0 || result.Frames < maxFrames {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		updateStart := time.Now()
		t.Step(dt)
		result.UpdateTime.Add(time.Since(updateStart))

		if canvas != nil {
			canvas.Reset()
			renderStart := time.Now()
			t.Draw(canvas)
			result.RenderTime.Add(time.Since(renderStart))
		}
		result.Frames++
	}

	result.WallTime = time.Since(start)
	result.SimTime = time.Duration(result.Frames) * time.Second / 60
	result.Runs = t.Runs()
	result.BestScore = t.Best()
	result.UpdateTime.Finalize()
	result.RenderTime.Finalize()
	result.Systems = t.Scheduler().GetStats().Systems
	result.Storage = t.Scheduler().Storage().CollectStats()
	return result
}
