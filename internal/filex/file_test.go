package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir_CreatesAndIsIdempotent(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "scratch")

	first, err := EnsureDir(dir)
	require.NoError(t, err)

	second, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, first, second)

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestEnsureDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "scratch")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o660))

	_, err := EnsureDir(path)
	require.Error(t, err)
}

func TestTempPath_Unique(t *testing.T) {
	tmp := t.TempDir()

	a := TempPath(tmp, ".dump")
	b := TempPath(tmp, ".dump")

	assert.NotEqual(t, a, b)
	assert.Equal(t, tmp, filepath.Dir(a))
	assert.Equal(t, ".dump", filepath.Ext(a))
}

func TestRemoveQuiet(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "gone")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o660))

	RemoveQuiet(path)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Missing file and empty path are both fine.
	RemoveQuiet(path)
	RemoveQuiet("")
}

func TestFreeSpace(t *testing.T) {
	free, err := FreeSpace(t.TempDir())
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))
}
