package config

import (
	"os"
	"path/filepath"
)

const lockFileName = "session.lock"

// FileLock serializes session-store access across concurrently running
// xpdesk processes (the TUI and a `reset` invocation, say). It locks a
// sibling lock file rather than the store file itself, so the store can be
// atomically rewritten while the lock is held.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns the lock guarding the store file at path. The lock
// file lives next to it.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		path: filepath.Join(filepath.Dir(path), lockFileName),
	}
}
