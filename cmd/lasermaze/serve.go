package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laser-maze/internal/engine"
	"github.com/vovakirdan/laser-maze/internal/platform/tui"
	"github.com/vovakirdan/laser-maze/internal/transport"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeDevice string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote monitoring",
	Long: `Run the maze engine and serve read-only monitors over SSH. Each
connection sees the live maze state; start and buzzer stay with the
physical buttons (or a local 'lasermaze run' wired to the same maze).

With --device, sensor frames and button edges are read from the given
serial device, so the maze plays entirely from its hardware while any
number of viewers watch remotely.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lasermaze/host_key

Examples:
  lasermaze serve --device /dev/ttyUSB0
  lasermaze serve --ssh :2222
  lasermaze serve --host-key ./my_host_key

Viewers can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23235", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeDevice, "device", "", "Serial device delivering the sensor stream")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger("lasermaze")

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	broadcaster := engine.NewBroadcaster()
	eng := buildEngine(cfg, broadcaster, store, logger)

	if flagServeDevice != "" {
		device, openErr := os.Open(flagServeDevice)
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
	} else {
		logger.Warn("no device given, the maze has no input source")
	}

	sshCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(sshCfg, eng, broadcaster)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting laser maze SSH server on %s\n", sshCfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23235")
	fmt.Println("Press Ctrl+C to stop")

	defer eng.Reset()
	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
