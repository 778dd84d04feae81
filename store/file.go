package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"xpdesk/config"
	"xpdesk/log"
)

// FileStore persists keys as a single JSON object file. The file is read once
// when the store is opened; every Set rewrites it under a file lock so that
// concurrent invocations of the program do not interleave partial writes.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// Open loads the store file at path. A missing or corrupt file yields an
// empty store; corruption is not an error because the session data is
// reconstructible (the caller falls back to computed defaults).
func Open(path string) *FileStore {
	s := &FileStore{
		path:   path,
		values: make(map[string]string),
	}

	lock := config.NewFileLock(path)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("failed to acquire read lock on session store: %v", err)
		// Continue without lock - better to have stale data than fail
	} else {
		defer lock.Unlock()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WarningLog.Printf("failed to read session store: %v", err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.values); err != nil {
		log.WarningLog.Printf("session store %s is corrupt, starting empty: %v", path, err)
		s.values = make(map[string]string)
	}
	return s
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	log.StoreTrace("set %s (%d bytes)", key, len(value))
	return s.flush()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// flush writes the whole store file. Callers hold s.mu.
func (s *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	lock := config.NewFileLock(s.path)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session store: %w", err)
	}

	return os.WriteFile(s.path, data, 0644)
}
