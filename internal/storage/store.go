package storage

import (
	"encoding/json"
	"fmt"

	"github.com/dpshade/pocket-debrief/internal/errors"
	"github.com/dpshade/pocket-debrief/internal/kv"
)

// ListStore persists one ordered sequence of T under a single namespace key.
// The whole sequence is re-read on every access and rewritten on every
// change; there is no in-memory copy between calls.
type ListStore[T any] struct {
	ns  kv.Namespace
	key string
}

// NewListStore creates a store for the sequence kept at key
func NewListStore[T any](ns kv.Namespace, key string) *ListStore[T] {
	return &ListStore[T]{ns: ns, key: key}
}

// Key returns the namespace key the store persists under
func (s *ListStore[T]) Key() string {
	return s.key
}

// Load returns the persisted sequence. An absent key, a value that does not
// parse as a list of T, or an unreadable namespace all yield an empty
// sequence; a corrupted store must never stop the caller.
func (s *ListStore[T]) Load() []T {
	items, err := s.load()
	if err != nil {
		errors.LogWarning("failed to read %s: %v", s.key, err)
		return []T{}
	}
	return items
}

// load separates read failures (returned) from malformed values (treated as
// empty) so mutations never overwrite data they could not read
func (s *ListStore[T]) load() ([]T, error) {
	data, ok, err := s.ns.Get(s.key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		errors.Log(errors.CorruptedDataError(s.key, err))
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save serializes items and replaces the persisted value. Last writer wins.
func (s *ListStore[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", s.key, err)
	}

	if err := s.ns.Set(s.key, data); err != nil {
		return errors.StorageError("save "+s.key, err)
	}
	return nil
}

// AppendFront prepends item, so the newest entry sorts first
func (s *ListStore[T]) AppendFront(item T) error {
	items, err := s.load()
	if err != nil {
		return errors.StorageError("load "+s.key, err)
	}

	updated := make([]T, 0, len(items)+1)
	updated = append(updated, item)
	updated = append(updated, items...)
	return s.Save(updated)
}

// AppendBack appends item, preserving creation order
func (s *ListStore[T]) AppendBack(item T) error {
	items, err := s.load()
	if err != nil {
		return errors.StorageError("load "+s.key, err)
	}
	return s.Save(append(items, item))
}

// RemoveAt drops the element at index. An out-of-range index is a no-op:
// nothing is written and no error is returned.
func (s *ListStore[T]) RemoveAt(index int) error {
	items, err := s.load()
	if err != nil {
		return errors.StorageError("load "+s.key, err)
	}
	if index < 0 || index >= len(items) {
		return nil
	}

	items = append(items[:index], items[index+1:]...)
	return s.Save(items)
}

// Clear deletes the persisted key entirely
func (s *ListStore[T]) Clear() error {
	if err := s.ns.Remove(s.key); err != nil {
		return errors.StorageError("clear "+s.key, err)
	}
	return nil
}
