package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laser-maze/internal/config"
	"github.com/vovakirdan/laser-maze/internal/engine"
	"github.com/vovakirdan/laser-maze/internal/platform/tui"
	"github.com/vovakirdan/laser-maze/internal/transport"
)

var flagInstant bool

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a scripted demo run without hardware",
	Long: `Run a canned sensor script through the engine: start, two touches,
then the buzzer. Useful for checking a configuration and the monitor
without wiring up the maze.

By default the script plays in real time inside the live monitor.
With --instant it runs on a simulated clock and prints the outcome.

Examples:
  lasermaze simulate
  lasermaze simulate --instant`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&flagInstant, "instant", false, "Run on a simulated clock and print the outcome")
}

func runSimulate(cmd *cobra.Command, args []string) {
	logger := newLogger("lasermaze-sim")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagInstant {
		simulateInstant(cfg)
		return
	}

	sink := engine.NewChannelSink(256)
	eng := buildEngine(cfg, sink, nil, logger)

	go transport.DemoScript().Run(eng, time.Sleep, logger)

	defer eng.Reset()
	if err := tui.Run(eng, sink); err != nil {
		fmt.Fprintf(os.Stderr, "Error running monitor: %v\n", err)
		os.Exit(1)
	}
}

// simulateInstant plays the demo script on a manual clock, so a run that
// takes ten wall seconds finishes immediately.
func simulateInstant(cfg config.Config) {
	clock := engine.NewManualClock()

	var finished *engine.FinishedEvent
	var triggers int
	eng := engine.New(engine.Options{
		Beams:   cfg.Beams,
		Session: cfg.Session,
		Clock:   clock,
		Sink: engine.SinkFunc(func(evt engine.Event) {
			switch evt := evt.(type) {
			case engine.TriggerEvent:
				triggers = evt.Count
			case engine.FinishedEvent:
				f := evt
				finished = &f
			}
		}),
	})

	transport.DemoScript().Run(eng, clock.Advance, nil)

	if finished == nil {
		fmt.Println("Script ended without finishing a run.")
		return
	}

	rec := finished.Record
	fmt.Println("Simulated run finished.")
	fmt.Printf("  outcome:  %s\n", rec.Outcome)
	fmt.Printf("  elapsed:  %.1fs\n", float64(rec.ElapsedMs)/1000)
	fmt.Printf("  touches:  %d", triggers)
	if rec.MaxTouches > 0 {
		fmt.Printf(" of %d allowed", rec.MaxTouches)
	}
	fmt.Println()
}
