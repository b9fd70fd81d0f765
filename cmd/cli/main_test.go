package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modorder/internal/audit/sqlite"
)

func TestRun_ShouldExit(t *testing.T) {
	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should see `shouldExit=true` and return a nil error.
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	// The run function should propagate the error from cli.Parse.
	err := run(out, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_EndToEnd(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	definitions := `
module "core" {}
module "auth" { depends_on = ["core"] }
module "billing" { depends_on = ["core", "auth"] }
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "modules.hcl"), []byte(definitions), 0o600))
	dbPath := filepath.Join(t.TempDir(), "audit.db")

	args := []string{"--db", dbPath, "--log-level", "error", dir}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.NoError(t, err)
	assert.Contains(t, out.String(), "1. core (no dependencies)")
	assert.Contains(t, out.String(), "2. auth (depends on core)")
	assert.Contains(t, out.String(), "3. billing (depends on core, auth)")

	// One audit record was written for the run.
	store, err := sqlite.Open(dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	count, err := store.RunCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRun_FailFast(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "modules.hcl"),
		[]byte(`module "d" { depends_on = ["z"] }`), 0o600))

	args := []string{"--fail-fast", "--log-level", "error", dir}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fail-fast")
}
