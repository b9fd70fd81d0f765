package discovery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vk/modorder/internal/ctxlog"
	"github.com/vk/modorder/internal/depgraph"
	"github.com/vk/modorder/internal/registry"
	"github.com/vk/modorder/internal/report"
	"github.com/vk/modorder/internal/scanner"
)

// Options configures one discovery run.
type Options struct {
	// ModulesPath is the root directory scanned for module definitions.
	ModulesPath string
	// ScanWorkers bounds the concurrent definition-file parsers.
	ScanWorkers int
}

// Run executes one discovery run and returns the frozen snapshot. It fails
// only when the modules path itself cannot be scanned; every per-module
// problem is collected into the snapshot's report instead, leaving the
// degraded-mode decision to the caller.
func Run(ctx context.Context, opts Options) (*Snapshot, error) {
	logger := ctxlog.FromContext(ctx)
	runID := uuid.NewString()
	startedAt := time.Now().UTC()
	logger.Debug("Discovery run starting.", "run_id", runID, "modules_path", opts.ModulesPath)

	scanResult, err := scanner.Scan(ctx, opts.ModulesPath, opts.ScanWorkers)
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	reg, duplicates := registry.Build(ctx, scanResult.Descriptors)
	graph := depgraph.Build(ctx, reg)
	cycles := graph.DetectCycles()

	rep := &report.Report{
		ScanErrors: scanResult.Errors,
		Duplicates: duplicates,
		Unresolved: graph.Unresolved(),
		Cycles:     cycles,
	}

	// Cycle members, modules with unresolved dependencies, and their
	// transitive dependents are excluded up front; the remainder must sort.
	order, err := graph.SortExcluding(graph.Unsortable(cycles))
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	logger.Info("Discovery run finished.",
		"run_id", runID,
		"modules", reg.Len(),
		"ordered", len(order),
		"errors", rep.ErrorCount(),
		"cycles", rep.CycleCount(),
	)

	return &Snapshot{
		runID:     runID,
		startedAt: startedAt,
		registry:  reg,
		graph:     graph,
		order:     order,
		report:    rep,
	}, nil
}
