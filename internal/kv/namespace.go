// Package kv is the local key-value namespace the debrief stores persist
// into: a flat set of string keys, each holding one serialized value.
package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Namespace is a flat, process-wide key-value space
type Namespace interface {
	// Get returns the value stored at key. ok is false when the key is absent.
	Get(key string) (value []byte, ok bool, err error)
	// Set replaces the value stored at key
	Set(key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error
}

// FileNamespace stores every key as <dir>/<key>.json
type FileNamespace struct {
	dir string
}

// NewFileNamespace creates a namespace rooted at dir. The directory is created
// lazily on the first write.
func NewFileNamespace(dir string) *FileNamespace {
	return &FileNamespace{dir: dir}
}

// Dir returns the directory backing the namespace
func (n *FileNamespace) Dir() string {
	return n.dir
}

// Path returns the file that holds key
func (n *FileNamespace) Path(key string) string {
	return filepath.Join(n.dir, key+".json")
}

// Get reads the value stored at key
func (n *FileNamespace) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(n.Path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes value to a temporary file and renames it over the key's file so
// a crash mid-write never leaves a truncated value behind
func (n *FileNamespace) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.MkdirAll(n.dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(n.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}

	if err := os.Rename(tmpName, n.Path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}

	return nil
}

// Remove deletes the file holding key
func (n *FileNamespace) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.Remove(n.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// MemoryNamespace keeps values in a map. Used by tests and anywhere the data
// should not outlive the process.
type MemoryNamespace struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryNamespace creates an empty in-memory namespace
func NewMemoryNamespace() *MemoryNamespace {
	return &MemoryNamespace{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored at key
func (n *MemoryNamespace) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}

	n.mu.RLock()
	defer n.mu.RUnlock()

	value, ok := n.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set stores a copy of value at key
func (n *MemoryNamespace) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	n.mu.Lock()
	n.values[key] = append([]byte(nil), value...)
	n.mu.Unlock()
	return nil
}

// Remove deletes key
func (n *MemoryNamespace) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	n.mu.Lock()
	delete(n.values, key)
	n.mu.Unlock()
	return nil
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("empty key")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
