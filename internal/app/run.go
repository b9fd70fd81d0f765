package app

import (
	"context"
	"fmt"

	"github.com/vk/modorder/internal/audit"
	"github.com/vk/modorder/internal/ctxlog"
	"github.com/vk/modorder/internal/discovery"
)

// Run executes one discovery run, publishes the snapshot, records the audit
// row, and decides between fail-fast and degraded-mode startup.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	snapshot, err := discovery.Run(ctx, discovery.Options{
		ModulesPath: a.config.ModulesPath,
		ScanWorkers: a.config.ScanWorkers,
	})
	if err != nil {
		return fmt.Errorf("discovery run failed: %w", err)
	}

	// Single assignment: from here on the snapshot is frozen and readable
	// by any later-initialized component.
	a.snapshot = snapshot

	rep := snapshot.Report()
	a.logger.Info("📦 Discovery summary.",
		"modules", len(snapshot.Modules()),
		"ordered", len(snapshot.ImportOrder()),
		"errors", rep.ErrorCount(),
		"cycles", rep.CycleCount(),
	)

	a.persistRun(ctx, snapshot)

	if rep.HasFindings() {
		if a.config.FailFast {
			return fmt.Errorf("discovery reported findings and fail-fast is enabled: %s", rep.Summary())
		}
		a.logger.Warn("Starting in degraded mode.", "summary", rep.Summary())
		for _, msg := range rep.Messages() {
			a.logger.Warn("Validation finding.", "finding", msg)
		}
	}

	a.printOrder(snapshot)

	// With a query port configured the process is a server: Run blocks
	// serving snapshot queries until the context is cancelled (e.g. by a
	// signal), then shuts the server down gracefully.
	if a.config.QueryPort > 0 {
		a.startQueryServer(a.config.QueryPort)
		a.logger.Info("Serving import-order queries until interrupted.", "port", a.config.QueryPort)
		<-ctx.Done()
		if err := a.closeQueryServer(); err != nil {
			return fmt.Errorf("query server shutdown failed: %w", err)
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// persistRun writes the audit record. A write failure is logged and never
// unwinds the run.
func (a *App) persistRun(ctx context.Context, snapshot *discovery.Snapshot) {
	if a.sink == nil {
		a.logger.Debug("Audit persistence disabled.")
		return
	}
	if err := a.sink.RecordRun(ctx, audit.NewRunRecord(snapshot)); err != nil {
		a.logger.Error("Failed to persist discovery run.", "run_id", snapshot.RunID(), "error", err)
		return
	}
	a.logger.Debug("Discovery run persisted.", "run_id", snapshot.RunID())
}

// printOrder renders the computed import order to the application's output.
func (a *App) printOrder(snapshot *discovery.Snapshot) {
	order := snapshot.ImportOrder()
	if len(order) == 0 {
		fmt.Fprintln(a.outW, "No importable modules.")
		return
	}
	fmt.Fprintln(a.outW, "Import order:")
	for _, entry := range order {
		fmt.Fprintf(a.outW, "  %d. %s (%s)\n", entry.Position+1, entry.Name, entry.Reason)
	}
}
