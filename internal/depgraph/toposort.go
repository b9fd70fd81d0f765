package depgraph

import (
	"fmt"
	"sort"
	"strings"
)

// OrderEntry is one position in the computed import order.
type OrderEntry struct {
	Name     string
	Position int
	Reason   string
}

// Sort computes a total import order over every module in the graph using
// Kahn's algorithm. Every module appears after all modules it depends on;
// ties among equally-ready modules are broken alphabetically. If the graph
// still contains a cycle the sort fails with UnorderableGraphError rather
// than emitting a partial order.
func (g *Graph) Sort() ([]OrderEntry, error) {
	return g.SortExcluding(nil)
}

// SortExcluding sorts the subgraph that remains after removing the excluded
// modules. Callers exclude cycle members and modules with unresolved
// dependencies (plus their transitive dependents) so that the healthy part
// of the graph is still ordered and reported independently.
func (g *Graph) SortExcluding(excluded map[string]bool) ([]OrderEntry, error) {
	indegree := make(map[string]int, len(g.names))
	included := 0

	for _, name := range g.names {
		if excluded[name] {
			continue
		}
		included++
		count := 0
		for _, dep := range g.deps[name] {
			if !excluded[dep] {
				count++
			}
		}
		indegree[name] = count
	}

	var ready []string
	for _, name := range g.names {
		if !excluded[name] && indegree[name] == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]OrderEntry, 0, included)
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]

		order = append(order, OrderEntry{
			Name:     name,
			Position: len(order),
			Reason:   reasonFor(g.deps[name]),
		})

		for _, dependent := range g.dependents[name] {
			if excluded[dependent] {
				continue
			}
			indegree[dependent]--
			if indegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) < included {
		emitted := make(map[string]bool, len(order))
		for _, entry := range order {
			emitted[entry.Name] = true
		}
		var remaining []string
		for _, name := range g.names {
			if !excluded[name] && !emitted[name] {
				remaining = append(remaining, name)
			}
		}
		sort.Strings(remaining)
		return nil, &UnorderableGraphError{Remaining: remaining}
	}

	return order, nil
}

// Unsortable returns the set of modules that must be excluded before
// sorting: members of the given cycles, modules with unresolved
// dependencies, and everything that transitively depends on either. None of
// these can be imported safely, so none of them may claim a position in the
// order.
func (g *Graph) Unsortable(cycles []Cycle) map[string]bool {
	excluded := InCycle(cycles)

	var frontier []string
	for _, unres := range g.unresolved {
		if !excluded[unres.Module] {
			excluded[unres.Module] = true
		}
	}
	for name := range excluded {
		frontier = append(frontier, name)
	}

	for len(frontier) > 0 {
		name := frontier[0]
		frontier = frontier[1:]
		for _, dependent := range g.dependents[name] {
			if !excluded[dependent] {
				excluded[dependent] = true
				frontier = append(frontier, dependent)
			}
		}
	}

	return excluded
}

// reasonFor renders the human-readable justification for an order position.
func reasonFor(deps []string) string {
	if len(deps) == 0 {
		return "no dependencies"
	}
	return fmt.Sprintf("depends on %s", strings.Join(deps, ", "))
}
