package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/laser-maze/internal/audio"
	"github.com/vovakirdan/laser-maze/internal/config"
	"github.com/vovakirdan/laser-maze/internal/engine"
	"github.com/vovakirdan/laser-maze/internal/storage"
)

// newLogger creates the CLI's logger with the given component prefix.
func newLogger(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// loadConfig loads and validates the maze configuration from the global flag.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, fmt.Errorf("cannot load configuration: %w", err)
	}
	return cfg, nil
}

// openStore opens the run database. A storage failure is not fatal for a
// session; the caller may continue with a nil store and lose persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database, records will not be saved", "error", err)
		return nil
	}
	return store
}

// newCueRouter builds the audio cue router from configuration.
func newCueRouter(cfg config.Audio, logger *log.Logger) *audio.Router {
	var player audio.Player = audio.NopPlayer{}
	if cfg.Enabled {
		if cfg.Command != "" {
			player = audio.ExecPlayer{Command: cfg.Command, AssetDir: cfg.AssetDir}
		} else {
			player = audio.LogPlayer{Logger: logger}
		}
	}
	return audio.NewRouter(player, 0, logger)
}

// buildEngine wires an engine from configuration, with the given event sink.
// The store may be nil.
func buildEngine(cfg config.Config, sink engine.Sink, store *storage.Store, logger *log.Logger) *engine.Engine {
	var runs engine.RunSink
	if store != nil {
		runs = store
	}
	return engine.New(engine.Options{
		Beams:   cfg.Beams,
		Session: cfg.Session,
		Sink:    sink,
		Cues:    newCueRouter(cfg.Audio, logger),
		Runs:    runs,
		Logger:  logger,
	})
}
