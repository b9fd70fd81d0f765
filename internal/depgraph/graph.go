package depgraph

import (
	"context"

	"github.com/vk/modorder/internal/ctxlog"
	"github.com/vk/modorder/internal/registry"
)

// Graph is the directed dependency graph over a built registry. An edge
// module -> dep means dep must be imported before module. The graph is
// immutable once built.
type Graph struct {
	// names holds every module in registry insertion order. All traversal
	// starts from this slice, never from a map, to keep runs reproducible.
	names []string
	// deps maps a module to the modules it depends on, in declared order,
	// restricted to dependencies that resolved to a registry entry.
	deps map[string][]string
	// dependents is the reverse adjacency of deps.
	dependents map[string][]string
	// unresolved collects declared dependency names with no registry entry,
	// one record per distinct (module, dependency) pair.
	unresolved []*UnresolvedDependency
}

// Build derives the dependency graph from the registry. A dependency that
// does not resolve is recorded as unresolved and the owning entry is marked
// accordingly; the edge is not silently dropped from the report.
func Build(ctx context.Context, reg *registry.Registry) *Graph {
	logger := ctxlog.FromContext(ctx)

	g := &Graph{
		names:      reg.Names(),
		deps:       make(map[string][]string, reg.Len()),
		dependents: make(map[string][]string, reg.Len()),
	}

	for _, name := range g.names {
		entry, _ := reg.Entry(name)

		seen := make(map[string]bool, len(entry.Descriptor.DependsOn))
		for _, depName := range entry.Descriptor.DependsOn {
			if seen[depName] {
				continue
			}
			seen[depName] = true

			if _, ok := reg.Entry(depName); !ok {
				entry.Resolved = false
				g.unresolved = append(g.unresolved, &UnresolvedDependency{Module: name, Dependency: depName})
				logger.Warn("Unresolved dependency.", "module", name, "dependency", depName)
				continue
			}
			g.deps[name] = append(g.deps[name], depName)
			g.dependents[depName] = append(g.dependents[depName], name)
		}
	}

	logger.Debug("Dependency graph built.", "modules", len(g.names), "unresolved", len(g.unresolved))
	return g
}

// Names returns all modules in registry insertion order.
func (g *Graph) Names() []string {
	names := make([]string, len(g.names))
	copy(names, g.names)
	return names
}

// Dependencies returns the resolved dependencies of a module in declared order.
func (g *Graph) Dependencies(name string) []string {
	return g.deps[name]
}

// Dependents returns the modules that depend on the given module.
func (g *Graph) Dependents(name string) []string {
	return g.dependents[name]
}

// Unresolved returns every distinct unresolved dependency reference.
func (g *Graph) Unresolved() []*UnresolvedDependency {
	return g.unresolved
}
