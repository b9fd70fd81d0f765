package depgraph

import "strings"

// Cycle is one circular dependency chain. Path starts and ends with the same
// module, e.g. [a b c a], rotated so the lexicographically smallest member
// comes first.
type Cycle struct {
	Path []string
}

// String renders the cycle as "a -> b -> c -> a".
func (c Cycle) String() string {
	return strings.Join(c.Path, " -> ")
}

// color values for the depth-first traversal.
const (
	white = iota // unvisited
	gray         // in the current traversal stack
	black        // fully processed, never re-examined
)

// DetectCycles finds every circular dependency chain in the graph using a
// three-color depth-first search. Traversal follows registry insertion order
// and declared dependency order, so repeated runs over the same input report
// identical cycles. Each distinct cycle is reported once.
func (g *Graph) DetectCycles() []Cycle {
	colors := make(map[string]int, len(g.names))
	stack := make([]string, 0, len(g.names))
	stackIndex := make(map[string]int, len(g.names))

	var cycles []Cycle
	reported := make(map[string]bool)

	var visit func(name string)
	visit = func(name string) {
		colors[name] = gray
		stackIndex[name] = len(stack)
		stack = append(stack, name)

		for _, dep := range g.deps[name] {
			switch colors[dep] {
			case white:
				visit(dep)
			case gray:
				// Back edge: the chain from dep's position on the stack down
				// to the current module closes a cycle.
				start := stackIndex[dep]
				path := make([]string, 0, len(stack)-start+1)
				path = append(path, stack[start:]...)
				path = append(path, dep)
				cycle := canonicalize(path)
				if key := cycle.String(); !reported[key] {
					reported[key] = true
					cycles = append(cycles, cycle)
				}
			}
		}

		stack = stack[:len(stack)-1]
		delete(stackIndex, name)
		colors[name] = black
	}

	for _, name := range g.names {
		if colors[name] == white {
			visit(name)
		}
	}

	return cycles
}

// canonicalize rotates a cycle path so the lexicographically smallest module
// comes first, giving every reporting of the same cycle one canonical form.
func canonicalize(path []string) Cycle {
	members := path[:len(path)-1]

	smallest := 0
	for i, name := range members {
		if name < members[smallest] {
			smallest = i
		}
	}

	rotated := make([]string, 0, len(path))
	for i := 0; i < len(members); i++ {
		rotated = append(rotated, members[(smallest+i)%len(members)])
	}
	rotated = append(rotated, members[smallest])
	return Cycle{Path: rotated}
}

// InCycle returns the set of modules that participate in any of the given cycles.
func InCycle(cycles []Cycle) map[string]bool {
	members := make(map[string]bool)
	for _, cycle := range cycles {
		for _, name := range cycle.Path {
			members[name] = true
		}
	}
	return members
}
