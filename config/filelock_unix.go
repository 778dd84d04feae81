//go:build !windows

package config

import (
	"fmt"
	"os"
	"syscall"
)

// Lock takes the exclusive flock ahead of a store rewrite, blocking until no
// other xpdesk process holds the session store.
func (l *FileLock) Lock() error {
	if l.file != nil {
		return fmt.Errorf("session lock already held")
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open session lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		f.Close()
		return fmt.Errorf("failed to lock session store for writing: %w", err)
	}

	l.file = f
	return nil
}

// RLock takes the shared flock for a store read. Any number of readers may
// hold it at once; a writer blocks them and vice versa.
func (l *FileLock) RLock() error {
	if l.file != nil {
		return fmt.Errorf("session lock already held")
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open session lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_SH); err != nil {
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

	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		return fmt.Errorf("failed to unlock session store: %w", err)
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("failed to close session lock file: %w", err)
	}

	l.file = nil
	return nil
}
