package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/laser-maze/internal/engine"
	"github.com/vovakirdan/laser-maze/internal/platform/tui"
	"github.com/vovakirdan/laser-maze/internal/transport"
)

// minMonitorWidth is the narrowest terminal the monitor renders well in.
const minMonitorWidth = 60

var flagDevice string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the maze with the live monitor",
	Long: `Start the session engine and the live monitor.

With --device, sensor frames and button edges are read from the given
serial device (the device must already be configured; it is opened as a
plain file). Without a device the maze is driven from the keyboard.

Controls:
  S/Space    - Start (same as the physical start button)
  B/Enter    - Buzzer (same as the physical stop button)
  R          - Reset to idle
  Q/Ctrl+C   - Quit

Examples:
  lasermaze run
  lasermaze run --device /dev/ttyUSB0
  lasermaze run --config ./my-maze.yaml`,
	Run: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagDevice, "device", "", "Serial device delivering the sensor stream")
}

func runRun(cmd *cobra.Command, args []string) {
	logger := newLogger("lasermaze")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if w, _, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && w < minMonitorWidth {
		fmt.Fprintf(os.Stderr, "Error: terminal too narrow (%d columns, need %d)\n", w, minMonitorWidth)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	sink := engine.NewChannelSink(256)
	eng := buildEngine(cfg, sink, store, logger)

	// One long-lived pump owns the sensor subscription for the whole
	// session; it is created once here and closed once on the way out.
	if flagDevice != "" {
		device, openErr := os.Open(flagDevice)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error opening device: %v\n", openErr)
			os.Exit(1)
		}
		pump := transport.NewPump(device, eng, logger)
		pump.Start()
		defer func() {
			pump.Close()
			device.Close()
		}()
	}

	defer eng.Reset()
	if err := tui.Run(eng, sink); err != nil {
		fmt.Fprintf(os.Stderr, "Error running monitor: %v\n", err)
		os.Exit(1)
	}
}
