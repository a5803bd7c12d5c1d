package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "secrets.ejson")

	ok, err := FileExists(path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o600))
	ok, err = FileExists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = FileExists(dir)
	assert.Error(t, err)
}

func TestWriteAndReadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kship.yml")
	require.NoError(t, WriteYAML(path, map[string]string{"namespace": "shop"}, 0o644))

	var got map[string]string
	require.NoError(t, ReadYAML(path, &got))
	assert.Equal(t, "shop", got["namespace"])

	empty := filepath.Join(t.TempDir(), "empty.yml")
	require.NoError(t, WriteFile(empty, nil, 0o644))
	got = nil
	require.NoError(t, ReadYAML(empty, &got))
	assert.Nil(t, got)
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 1, "a": 2, "b": 3}))
}
