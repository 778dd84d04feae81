//go:build windows

package config

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// Windows has no flock; LockFileEx over a one-byte range of the lock file
// gives the same exclusive/shared semantics.

// Lock takes the exclusive range lock ahead of a store rewrite, blocking
// until no other xpdesk process holds the session store.
func (l *FileLock) Lock() error {
	if l.file != nil {
		return fmt.Errorf("session lock already held")
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open session lock file: %w", err)
	}

	ol := new(windows.Overlapped)
	err = windows.LockFileEx(
		windows.Handle(f.Fd()),
		windows.LOCKFILE_EXCLUSIVE_LOCK,
		0,
		1,
		0,
		ol,
	)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to lock session store for writing: %w", err)
	}

	l.file = f
	return nil
}

// RLock takes the shared range lock for a store read. Any number of readers
// may hold it at once; a writer blocks them and vice versa.
func (l *FileLock) RLock() error {
	if l.file != nil {
		return fmt.Errorf("session lock already held")
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open session lock file: %w", err)
	}

	// No LOCKFILE_EXCLUSIVE_LOCK flag means a shared lock.
	ol := new(windows.Overlapped)
	err = windows.LockFileEx(
		windows.Handle(f.Fd()),
		0,
		0,
		1,
		0,
		ol,
	)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to lock session store for reading: %w", err)
	}

	l.file = f
	return nil
}

// Unlock releases whichever lock is held. Unlocking an unheld lock is a
// no-op so callers can defer it unconditionally.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	ol := new(windows.Overlapped)
	err := windows.UnlockFileEx(
		windows.Handle(l.file.Fd()),
		0,
		1,
		0,
		ol,
	)
	if err != nil {
		return fmt.Errorf("failed to unlock session store: %w", err)
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close session lock file: %w", err)
	}

	l.file = nil
	return nil
}
