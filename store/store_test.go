package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()

	_, ok := m.Get("missing")
	assert.False(t, ok)

	require.NoError(t, m.Set("a", "1"))
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete("a"))
	_, ok = m.Get("a")
	assert.False(t, ok)
	require.NoError(t, m.Delete("a"), "deleting an absent key is not an error")
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	s := Open(path)
	require.NoError(t, s.Set("xpwin:isMax", "1"))
	require.NoError(t, s.Set("xpwin:zTop", "7"))

	reopened := Open(path)
	v, ok := reopened.Get("xpwin:isMax")
	require.True(t, ok)
	assert.Equal(t, "1", v)
	v, ok = reopened.Get("xpwin:zTop")
	require.True(t, ok)
	assert.Equal(t, "7", v)
}

func TestFileStoreMissingFileStartsEmpty(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "absent.json"))
	_, ok := s.Get("anything")
	assert.False(t, ok)
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	s := Open(path)
	_, ok := s.Get("anything")
	assert.False(t, ok)

	// The store stays usable and writes cleanly afterwards.
	require.NoError(t, s.Set("k", "v"))
	v, ok := Open(path).Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestFileStoreDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	s := Open(path)
	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Delete("k"))

	_, ok := Open(path).Get("k")
	assert.False(t, ok)
}
