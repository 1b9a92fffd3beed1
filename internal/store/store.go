// Package store persists small JSON documents such as the user preference and
// the user template set.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	// ErrNotFound is returned by Load when no document has been saved yet
	ErrNotFound = errors.New("document not found")

	// ErrPersistence is returned when a document cannot be read or written
	ErrPersistence = errors.New("persistence error")
)

// Store loads and saves a single JSON document.
// Documents are read and written wholesale.
type Store interface {
	// Load decodes the stored document into v
	Load(v any) error

	// Save replaces the stored document with v
	Save(v any) error

	// Clear removes the stored document. Clearing a missing document is not an error.
	Clear() error
}

// FileStore is a Store backed by a JSON file
type FileStore struct {
	path string
}

// NewFileStore creates a new FileStore for the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads and decodes the JSON file
func (s *FileStore) Load(v any) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: failed to read %s: %v", ErrPersistence, s.path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: failed to parse %s: %v", ErrPersistence, s.path, err)
	}
	return nil
}

// Save encodes v and writes it to the JSON file, creating the parent directory
func (s *FileStore) Save(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to encode document: %v", ErrPersistence, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrPersistence, err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("%w: failed to write %s: %v", ErrPersistence, s.path, err)
	}
	return nil
}

// Clear deletes the JSON file
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: failed to remove %s: %v", ErrPersistence, s.path, err)
	}
	return nil
}

// MemoryStore is an in-memory Store holding the encoded document
type MemoryStore struct {
	mu   sync.Mutex
	data []byte

	// FailLoad and FailSave make the corresponding operation fail
	FailLoad bool
	FailSave bool
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load decodes the stored document into v
func (s *MemoryStore) Load(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailLoad {
		return fmt.Errorf("%w: simulated read failure", ErrPersistence)
	}
	if s.data == nil {
		return ErrNotFound
	}
	if err := json.Unmarshal(s.data, v); err != nil {
		return fmt.Errorf("%w: failed to parse document: %v", ErrPersistence, err)
	}
	return nil
}

// Save replaces the stored document
func (s *MemoryStore) Save(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSave {
		return fmt.Errorf("%w: simulated write failure", ErrPersistence)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: failed to encode document: %v", ErrPersistence, err)
	}
	s.data = data
	return nil
}

// Clear removes the stored document
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}

// SetRaw replaces the stored bytes, bypassing encoding
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}

// Raw returns the stored bytes
func (s *MemoryStore) Raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}
