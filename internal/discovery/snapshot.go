package discovery

import (
	"time"

	"github.com/vk/modorder/internal/depgraph"
	"github.com/vk/modorder/internal/registry"
	"github.com/vk/modorder/internal/report"
)

// Snapshot is the immutable result of one discovery run. All methods are
// reads over frozen state and safe for concurrent use.
type Snapshot struct {
	runID     string
	startedAt time.Time
	registry  *registry.Registry
	graph     *depgraph.Graph
	order     []depgraph.OrderEntry
	report    *report.Report
}

// RunID returns the unique identifier of the discovery run.
func (s *Snapshot) RunID() string {
	return s.runID
}

// StartedAt returns when the discovery run began, in UTC.
func (s *Snapshot) StartedAt() time.Time {
	return s.startedAt
}

// Modules returns every registered module in registration order.
func (s *Snapshot) Modules() []*registry.Entry {
	return s.registry.Entries()
}

// DependenciesOf returns the resolved dependencies of a module in declared
// order, or nil when the module is unknown or has none.
func (s *Snapshot) DependenciesOf(name string) []string {
	return s.graph.Dependencies(name)
}

// ImportOrder returns the computed dependency-respecting import order for
// the importable subset of modules.
func (s *Snapshot) ImportOrder() []depgraph.OrderEntry {
	order := make([]depgraph.OrderEntry, len(s.order))
	copy(order, s.order)
	return order
}

// Cycles returns every detected circular dependency chain.
func (s *Snapshot) Cycles() []depgraph.Cycle {
	return s.report.Cycles
}

// ValidationErrors returns every validation finding as human-readable text.
func (s *Snapshot) ValidationErrors() []string {
	return s.report.Messages()
}

// Report returns the full validation report.
func (s *Snapshot) Report() *report.Report {
	return s.report
}
