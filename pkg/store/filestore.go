/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore persists a flat map of string keys to string values in a YAML
// file. Every operation reads or rewrites the file, so separate processes
// observe each other's writes. Saves go through a temp file and rename, so
// a crash mid-write never leaves a truncated store behind.
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store backed by the YAML file at path.
// The file does not need to exist yet; it is created on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file path backing this store.
func (s *FileStore) Path() string {
	return s.path
}

// Get returns the value for key, with ok reporting presence.
// A store file that does not exist yet reads as empty.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := m[key]
	return v, ok, nil
}

// Set writes the value for key, creating the store file if needed.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[key] = value
	return s.save(m)
}

// Delete removes key. Deleting an absent key leaves the file untouched.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	return s.save(m)
}

// Has reports whether key is present.
func (s *FileStore) Has(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return false, err
	}
	_, ok := m[key]
	return ok, nil
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store %s: %w", s.path, err)
	}

	m := map[string]string{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse store %s: %w", s.path, err)
	}
	if m == nil {
		m = map[string]string{}
	}
	return m, nil
}

func (s *FileStore) save(m map[string]string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory %s: %w", dir, err)
	}

	f, err := os.CreateTemp(dir, ".store.*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write store %s: %w", s.path, err)
	}
	tmpPath := f.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write store %s: %w", s.path, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write store %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write store %s: %w", s.path, err)
	}
	// The store is project-visible metadata, not a private state file.
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("failed to write store %s: %w", s.path, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to write store %s: %w", s.path, err)
	}
	return nil
}
