// Package report aggregates every validation finding of a discovery run
// into a single structure. Collection never halts the pipeline: discovery
// completes and the caller decides whether the findings are fatal.
package report

import (
	"fmt"

	"github.com/vk/modorder/internal/depgraph"
	"github.com/vk/modorder/internal/registry"
	"github.com/vk/modorder/internal/scanner"
)

// Report is the aggregated validation outcome of one discovery run.
type Report struct {
	// ScanErrors lists definition files that could not be read or parsed.
	ScanErrors []*scanner.ScanError
	// Duplicates lists module name collisions found during registration.
	Duplicates []*registry.DuplicateModuleError
	// Unresolved lists declared dependencies with no matching registry
	// entry, one record per distinct (module, dependency) pair.
	Unresolved []*depgraph.UnresolvedDependency
	// Cycles lists every circular dependency chain, canonicalized.
	Cycles []depgraph.Cycle
}

// ErrorCount returns the number of validation errors: failed scans,
// duplicate names, and unresolved references. Cycles are counted separately
// because they are reported as data, not thrown.
func (r *Report) ErrorCount() int {
	return len(r.ScanErrors) + len(r.Duplicates) + len(r.Unresolved)
}

// CycleCount returns the number of distinct circular dependency chains.
func (r *Report) CycleCount() int {
	return len(r.Cycles)
}

// HasFindings reports whether the run produced any validation error or cycle.
func (r *Report) HasFindings() bool {
	return r.ErrorCount() > 0 || r.CycleCount() > 0
}

// Messages flattens every finding into human-readable strings, in a stable
// order: scan errors, duplicates, unresolved references, cycles.
func (r *Report) Messages() []string {
	messages := make([]string, 0, r.ErrorCount()+r.CycleCount())
	for _, scanErr := range r.ScanErrors {
		messages = append(messages, scanErr.Error())
	}
	for _, dup := range r.Duplicates {
		messages = append(messages, dup.Error())
	}
	for _, unres := range r.Unresolved {
		messages = append(messages, unres.Error())
	}
	for _, cycle := range r.Cycles {
		messages = append(messages, fmt.Sprintf("circular dependency: %s", cycle))
	}
	return messages
}

// Summary renders a one-line overview suitable for a startup log.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d validation errors, %d cycles", r.ErrorCount(), r.CycleCount())
}
