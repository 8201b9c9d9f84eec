package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laser-maze/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded runs",
	Long: `Display the most recent recorded runs, newest first.

Examples:
  lasermaze runs
  lasermaze runs --limit 50
  lasermaze runs clear`,
	Run: runRuns,
}

var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded run",
	Run:   runRunsClear,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
	runsCmd.AddCommand(runsClearCmd)
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	entries, err := store.Runs(flagRunsLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recorded runs:")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'lasermaze run' to play the first one!")
		return
	}

	// Print header
	fmt.Printf("  %-16s  %-9s  %-8s  %-8s  %s\n", "Player", "Time", "Touches", "Outcome", "Date")
	fmt.Printf("  %-16s  %-9s  %-8s  %-8s  %s\n", "------", "----", "-------", "-------", "----")

	for _, e := range entries {
		fmt.Printf("  %-16s  %-9s  %-8d  %-8s  %s\n",
			e.PlayerName,
			formatRunTime(e.ElapsedMs),
			e.TriggeredCount,
			e.Outcome,
			e.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	best, err := store.BestRun()
	if err == nil && best != nil {
		fmt.Printf("Best: %s by %s (%d touches)\n", formatRunTime(best.ElapsedMs), best.PlayerName, best.TriggeredCount)
	}
}

func runRunsClear(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	n, err := store.Count()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error counting runs: %v\n", err)
		os.Exit(1)
	}
	if err := store.DeleteAll(); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting runs: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted %d recorded runs.\n", n)
}

func formatRunTime(ms int64) string {
	secs := ms / 1000
	return fmt.Sprintf("%02d:%02d.%d", secs/60, secs%60, (ms/100)%10)
}
