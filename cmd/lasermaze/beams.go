package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var beamsCmd = &cobra.Command{
	Use:   "beams",
	Short: "Show the configured beams",
	Long:  `Shows the beams from the active configuration, in display order.`,
	Run:   runBeams,
}

func runBeams(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	beams := cfg.SortedBeams()

	fmt.Println("Configured beams:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, b := range beams {
		if len(b.ID) > maxIDLen {
			maxIDLen = len(b.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-16s  %-6s  %-11s  %s\n", maxIDLen, "ID", "Name", "Sensor", "Sensitivity", "Enabled")
	fmt.Printf("  %-*s  %-16s  %-6s  %-11s  %s\n", maxIDLen, "--", "----", "------", "-----------", "-------")

	for _, b := range beams {
		enabled := "yes"
		if !b.Enabled {
			enabled = "no"
		}
		fmt.Printf("  %-*s  %-16s  %-6d  %-11.1f  %s\n", maxIDLen, b.ID, b.Name, b.SensorIndex, b.Sensitivity, enabled)
	}

	fmt.Println()
	fmt.Printf("Session rules: max touches %d", cfg.Session.MaxTouches)
	if cfg.Session.MaxTouches == 0 {
		fmt.Print(" (unlimited)")
	}
	if cfg.Session.Reactivate {
		fmt.Printf(", beams re-arm after %.1fs", cfg.Session.ReactivationSeconds)
	} else {
		fmt.Print(", no reactivation")
	}
	fmt.Println()
}
