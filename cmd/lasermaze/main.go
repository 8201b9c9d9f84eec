// lasermaze drives a physical laser maze: beams report analog readings over
// a line protocol, two buttons signal start and stop, and the engine turns
// that stream into a timed run with a touch count and a final outcome.
//
// Usage:
//
//	lasermaze run                - Run the maze with the live monitor
//	lasermaze simulate           - Play a scripted demo run
//	lasermaze beams              - Show the configured beams
//	lasermaze runs               - Show recorded runs
//	lasermaze serve              - Start SSH server for remote monitoring
//
// Global flags:
//
//	--config <path>  - Maze configuration YAML (default: search order)
//	--db <path>      - Run records database (default: ~/.lasermaze/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig string
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lasermaze",
	Short: "Laser Maze - run a physical laser maze from your terminal",
	Long: `Laser Maze reads beam sensors and buttons from a serial device and
runs timed sessions: countdown, live touch counting, automatic game
over, and a persistent record of every finished run.

Available commands:
  run       - Run the maze with the live monitor
  simulate  - Play a scripted demo run without hardware
  beams     - Show the configured beams
  runs      - Show recorded runs
  serve     - Start SSH server for remote monitoring

Examples:
  lasermaze run --device /dev/ttyUSB0
  lasermaze simulate
  lasermaze runs --limit 10
  lasermaze runs clear
  lasermaze serve --ssh :23235`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to maze configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lasermaze/runs.db", "Path to run records database")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(beamsCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}
