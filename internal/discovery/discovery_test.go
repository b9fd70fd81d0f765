package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModules(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func run(t *testing.T, dir string) *Snapshot {
	t.Helper()
	snap, err := Run(context.Background(), Options{ModulesPath: dir, ScanWorkers: 4})
	require.NoError(t, err)
	return snap
}

func orderNames(snap *Snapshot) []string {
	var names []string
	for _, entry := range snap.ImportOrder() {
		names = append(names, entry.Name)
	}
	return names
}

func TestRun_ResolvableSubsetIsOrdered(t *testing.T) {
	t.Parallel()

	// A has no deps, B needs A, C needs A and B, D needs an undefined Z.
	dir := writeModules(t, map[string]string{
		"mods.hcl": `
module "a" {}
module "b" { depends_on = ["a"] }
module "c" { depends_on = ["a", "b"] }
module "d" { depends_on = ["z"] }
`,
	})

	snap := run(t, dir)

	assert.Equal(t, []string{"a", "b", "c"}, orderNames(snap))
	assert.Empty(t, snap.Cycles())

	rep := snap.Report()
	require.Len(t, rep.Unresolved, 1)
	assert.Equal(t, "d", rep.Unresolved[0].Module)
	assert.Equal(t, "z", rep.Unresolved[0].Dependency)
	assert.Equal(t, 1, rep.ErrorCount())

	// All four modules are still registered and queryable.
	assert.Len(t, snap.Modules(), 4)
	assert.Equal(t, []string{"a", "b"}, snap.DependenciesOf("c"))
}

func TestRun_CycleReportedAndExcluded(t *testing.T) {
	t.Parallel()

	dir := writeModules(t, map[string]string{
		"mods.hcl": `
module "x" { depends_on = ["y"] }
module "y" { depends_on = ["x"] }
`,
	})

	snap := run(t, dir)

	cycles := snap.Cycles()
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"x", "y", "x"}, cycles[0].Path)
	assert.Empty(t, snap.ImportOrder())
	assert.Contains(t, snap.ValidationErrors()[0], "circular dependency")
}

func TestRun_DuplicateNamesSurfaced(t *testing.T) {
	t.Parallel()

	dir := writeModules(t, map[string]string{
		"one.hcl": `module "core" {}`,
		"two.hcl": `module "core" {}`,
	})

	snap := run(t, dir)

	rep := snap.Report()
	require.Len(t, rep.Duplicates, 1)
	assert.Equal(t, "core", rep.Duplicates[0].Name)
	assert.Len(t, snap.Modules(), 1)
	assert.Equal(t, []string{"core"}, orderNames(snap))
}

func TestRun_BrokenFileDegradesThatFileOnly(t *testing.T) {
	t.Parallel()

	dir := writeModules(t, map[string]string{
		"good.hcl":   `module "good" {}`,
		"broken.hcl": `module "broken" {`,
	})

	snap := run(t, dir)

	assert.Equal(t, []string{"good"}, orderNames(snap))
	rep := snap.Report()
	require.Len(t, rep.ScanErrors, 1)
	assert.Contains(t, rep.ScanErrors[0].Path, "broken.hcl")
}

func TestRun_MissingPathIsFatal(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), Options{
		ModulesPath: filepath.Join(t.TempDir(), "missing"),
		ScanWorkers: 2,
	})
	assert.Error(t, err)
}

func TestRun_Idempotent(t *testing.T) {
	t.Parallel()

	dir := writeModules(t, map[string]string{
		"mods.hcl": `
module "a" {}
module "b" { depends_on = ["a"] }
module "c" { depends_on = ["a", "b"] }
module "d" { depends_on = ["z"] }
`,
	})

	first := run(t, dir)
	for i := 0; i < 5; i++ {
		again := run(t, dir)
		// Same order, same reasons, byte for byte.
		assert.Equal(t, first.ImportOrder(), again.ImportOrder())
		assert.Equal(t, first.ValidationErrors(), again.ValidationErrors())
	}
}

func TestSnapshot_RunIdentity(t *testing.T) {
	t.Parallel()

	dir := writeModules(t, map[string]string{"m.hcl": `module "a" {}`})

	snap := run(t, dir)
	assert.NotEmpty(t, snap.RunID())
	assert.False(t, snap.StartedAt().IsZero())

	other := run(t, dir)
	assert.NotEqual(t, snap.RunID(), other.RunID())
}
