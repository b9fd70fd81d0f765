package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/vk/modorder/internal/app"
	"github.com/vk/modorder/internal/audit"
	"github.com/vk/modorder/internal/audit/sqlite"
	"github.com/vk/modorder/internal/cli"
)

// main is the entrypoint for the modorder application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// A .env file is optional; absence is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Debug("No .env file loaded.", "error", err)
	}

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	var sink audit.Sink
	if appConfig.DBPath != "" {
		store, err := sqlite.Open(appConfig.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open audit store: %w", err)
		}
		defer func() { _ = store.Close() }()
		sink = store
	}

	// With a query port configured, Run blocks serving queries until a
	// signal arrives; the signal context is what unblocks it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	modorderApp := app.NewApp(outW, appConfig, sink)
	return modorderApp.Run(ctx)
}
