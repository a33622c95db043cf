// Package storage provides a durable namespaced key store, the gateway's
// counterpart to the browser's localStorage. Each key is one JSON file;
// writes go through a temp file and rename so a crash never leaves a
// half-written entry. A corrupted entry is not fatal: it reads as missing
// and is overwritten by the next successful write.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Fixed namespace keys shared with the web client.
const (
	KeyLastSession   = "inspire_last_session"
	KeyMessages      = "inspire_messages"
	KeyWorkspaceTags = "workspace-tags"
)

// Store persists JSON values under namespaced keys.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// New creates a store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Set marshals v and durably writes it under key.
func (s *Store) Set(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}
	return nil
}

// Get unmarshals the value stored under key into v. Returns false when
// the key is absent or its entry cannot be decoded.
func (s *Store) Get(key string, v interface{}) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Corrupted entry reads as missing; next Set overwrites it.
		return false, nil
	}
	return true, nil
}

// Delete removes the entry under key. Missing keys are not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) path(key string) string {
	// Keys come from a fixed set but sanitize anyway.
	safe := strings.ReplaceAll(key, string(filepath.Separator), "_")
	return filepath.Join(s.dir, safe+".json")
}
