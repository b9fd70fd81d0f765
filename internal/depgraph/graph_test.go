package depgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modorder/internal/manifest"
	"github.com/vk/modorder/internal/registry"
)

// module is a compact test fixture: one name plus its declared dependencies.
type module struct {
	name string
	deps []string
}

// buildGraph registers the given modules in order and derives their graph.
func buildGraph(t *testing.T, modules ...module) (*Graph, *registry.Registry) {
	t.Helper()
	descriptors := make([]*manifest.Descriptor, 0, len(modules))
	for _, m := range modules {
		descriptors = append(descriptors, &manifest.Descriptor{
			Name:      m.name,
			DependsOn: m.deps,
			Source:    m.name + ".hcl",
		})
	}
	reg, duplicates := registry.Build(context.Background(), descriptors)
	require.Empty(t, duplicates)
	return Build(context.Background(), reg), reg
}

func TestBuild(t *testing.T) {
	t.Parallel()

	g, _ := buildGraph(t,
		module{name: "core"},
		module{name: "auth", deps: []string{"core"}},
		module{name: "billing", deps: []string{"core", "auth"}},
	)

	assert.Equal(t, []string{"core", "auth", "billing"}, g.Names())
	assert.Empty(t, g.Dependencies("core"))
	assert.Equal(t, []string{"core"}, g.Dependencies("auth"))
	assert.Equal(t, []string{"core", "auth"}, g.Dependencies("billing"))
	assert.ElementsMatch(t, []string{"auth", "billing"}, g.Dependents("core"))
	assert.Empty(t, g.Unresolved())
}

func TestBuild_UnresolvedDependency(t *testing.T) {
	t.Parallel()

	g, reg := buildGraph(t,
		module{name: "a"},
		module{name: "d", deps: []string{"z"}},
	)

	unresolved := g.Unresolved()
	require.Len(t, unresolved, 1)
	assert.Equal(t, "d", unresolved[0].Module)
	assert.Equal(t, "z", unresolved[0].Dependency)
	assert.Contains(t, unresolved[0].Error(), `unknown module "z"`)

	// The missing edge is surfaced, not treated as an edge to nowhere.
	assert.Empty(t, g.Dependencies("d"))

	entry, ok := reg.Entry("d")
	require.True(t, ok)
	assert.False(t, entry.Resolved)

	entry, ok = reg.Entry("a")
	require.True(t, ok)
	assert.True(t, entry.Resolved)
}

func TestBuild_UnresolvedRecordedOncePerPair(t *testing.T) {
	t.Parallel()

	g, _ := buildGraph(t,
		module{name: "d", deps: []string{"z", "z"}},
	)

	assert.Len(t, g.Unresolved(), 1)
}

func TestBuild_DuplicateDeclaredDependency(t *testing.T) {
	t.Parallel()

	g, _ := buildGraph(t,
		module{name: "core"},
		module{name: "auth", deps: []string{"core", "core"}},
	)

	assert.Equal(t, []string{"core"}, g.Dependencies("auth"))
	assert.Equal(t, []string{"auth"}, g.Dependents("core"))
}
