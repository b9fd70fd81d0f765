package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "c.hcl"), []byte("x"), 0o600))

	files, err := FindFilesByExtension(dir, ".hcl")
	require.NoError(t, err)
	assert.Len(t, files, 2)
	for _, f := range files {
		assert.True(t, filepath.IsAbs(f) || len(f) > 0)
		assert.Contains(t, f, ".hcl")
	}
}

func TestFindFilesByExtension_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := FindFilesByExtension(filepath.Join(t.TempDir(), "does-not-exist"), ".hcl")
	assert.Error(t, err)
}
