// Package audit defines the durable record of discovery runs. One record is
// written per run so operators can inspect what was discovered, in what
// order, and with which errors, long after the process restarted.
package audit

import (
	"context"
	"fmt"

	"github.com/vk/modorder/internal/depgraph"
	"github.com/vk/modorder/internal/discovery"
)

// RunRecord is the audit row for one discovery run.
type RunRecord struct {
	RunID       string
	StartedAt   int64 // unix milliseconds, UTC
	ModuleCount int
	ErrorCount  int
	CycleCount  int
	Order       []depgraph.OrderEntry
	Errors      []string
}

// NewRunRecord flattens a snapshot into its audit representation.
func NewRunRecord(snap *discovery.Snapshot) RunRecord {
	rep := snap.Report()
	return RunRecord{
		RunID:       snap.RunID(),
		StartedAt:   snap.StartedAt().UnixMilli(),
		ModuleCount: len(snap.Modules()),
		ErrorCount:  rep.ErrorCount(),
		CycleCount:  rep.CycleCount(),
		Order:       snap.ImportOrder(),
		Errors:      rep.Messages(),
	}
}

// Sink records discovery runs in durable storage. RecordRun is idempotent:
// recording the same run twice must leave exactly one stored record.
type Sink interface {
	RecordRun(ctx context.Context, rec RunRecord) error
	Close() error
}

// PersistenceWriteError reports a failed audit write. It is logged by the
// caller and never rolls back the in-memory snapshot.
type PersistenceWriteError struct {
	RunID string
	Err   error
}

// Error implements the error interface for PersistenceWriteError.
func (e *PersistenceWriteError) Error() string {
	return fmt.Sprintf("failed to record discovery run %s: %v", e.RunID, e.Err)
}

// Unwrap exposes the underlying storage error.
func (e *PersistenceWriteError) Unwrap() error {
	return e.Err
}
