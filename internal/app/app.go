package app

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/modorder/internal/audit"
	"github.com/vk/modorder/internal/discovery"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	sink       audit.Sink
	httpServer *http.Server

	// snapshot is assigned exactly once, by Run, after discovery completes.
	// Readers (the query server, tests) only ever see nil or the fully
	// frozen value.
	snapshot *discovery.Snapshot
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. The sink may be nil
// when audit persistence is disabled.
func NewApp(outW io.Writer, config *Config, sink audit.Sink) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: config,
		sink:   sink,
	}
}

// Snapshot returns the published discovery snapshot, or nil before Run
// completed discovery. This is primarily for testing.
func (a *App) Snapshot() *discovery.Snapshot {
	return a.snapshot
}
