// Package settingsstore provides a named key-value store for app preferences
// which is persisted as JSON document.
package settingsstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/goccy/go-json"
	"github.com/maniartech/signals"
	"github.com/natefinch/atomic"
)

var ErrCorrupt = errors.New("settings store corrupt")

// Store is a key-value store backed by a file.
// Values are kept as raw JSON, so keys written by other clients are preserved.
//
// Store is safe for concurrent use.
type Store struct {
	// Changed is emitted with the key after a value was set or deleted.
	Changed signals.Signal[string]

	path string

	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// Open opens the store with the given name in dir.
// A store without a file starts empty. The file is created with the first [Store.Save].
func Open(dir, name string) (*Store, error) {
	s := &Store{
		Changed: signals.NewSync[string](),
		path:    filepath.Join(dir, name),
		data:    make(map[string]json.RawMessage),
	}
	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(b, &s.data); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", s.path, ErrCorrupt, err)
	}
	if s.data == nil {
		s.data = make(map[string]json.RawMessage)
	}
	return s, nil
}

// Path returns the path of the store's file.
func (s *Store) Path() string {
	return s.path
}

// Has reports whether a value exists for key.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok
}

// Keys returns all keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.data))
}

// String returns the string value for key and reports whether it was found.
// Values of other types are reported as not found.
func (s *Store) String(key string) (string, bool) {
	var v string
	ok := s.get(key, &v)
	return v, ok
}

// SetString sets a string value.
func (s *Store) SetString(key, v string) error {
	return s.set(key, v)
}

// Bool returns the boolean value for key and reports whether it was found.
// Values of other types are reported as not found.
func (s *Store) Bool(key string) (bool, bool) {
	var v bool
	ok := s.get(key, &v)
	return v, ok
}

// SetBool sets a boolean value.
func (s *Store) SetBool(key string, v bool) error {
	return s.set(key, v)
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	_, found := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()
	if found {
		s.Changed.Emit(context.Background(), key)
	}
}

// Save writes the store to its file.
func (s *Store) Save() error {
	s.mu.RLock()
	b, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return err
	}
	if err := atomic.WriteFile(s.path, bytes.NewReader(b)); err != nil {
		return fmt.Errorf("save settings store %s: %w", s.path, err)
	}
	slog.Debug("Settings store saved", "path", s.path)
	return nil
}

func (s *Store) get(key string, v any) bool {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		slog.Warn("Settings store: ignoring value with unexpected type", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Store) set(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = b
	s.mu.Unlock()
	s.Changed.Emit(context.Background(), key)
	return nil
}
