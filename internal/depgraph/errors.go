package depgraph

import (
	"fmt"
	"strings"
)

// UnresolvedDependency records a declared dependency name that no registry
// entry satisfies. It is collected, not thrown: one unresolved reference
// must not sink the rest of the run.
type UnresolvedDependency struct {
	Module     string
	Dependency string
}

// Error implements the error interface for UnresolvedDependency.
func (e *UnresolvedDependency) Error() string {
	return fmt.Sprintf("module %q depends on unknown module %q", e.Module, e.Dependency)
}

// UnorderableGraphError reports a sort attempted on a graph that still
// contains a cycle. The sorter never emits a partial or best-effort order.
type UnorderableGraphError struct {
	// Remaining lists the modules that could not be ordered, sorted by name.
	Remaining []string
}

// Error implements the error interface for UnorderableGraphError.
func (e *UnorderableGraphError) Error() string {
	return fmt.Sprintf("dependency graph is not orderable: cycle among [%s]", strings.Join(e.Remaining, ", "))
}
