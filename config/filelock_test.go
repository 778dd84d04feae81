//go:build !windows

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLockRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SessionFileName)
	l := NewFileLock(path)

	require.NoError(t, l.Lock())
	assert.Error(t, l.Lock(), "a handle cannot re-acquire while held")
	require.NoError(t, l.Unlock())
	require.NoError(t, l.Unlock(), "unlocking an unheld lock is a no-op")
}

func TestFileLockSharedReaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), SessionFileName)
	a := NewFileLock(path)
	b := NewFileLock(path)

	require.NoError(t, a.RLock())
	require.NoError(t, b.RLock(), "readers do not exclude each other")
	require.NoError(t, a.Unlock())
	require.NoError(t, b.Unlock())
}
