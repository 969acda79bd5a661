package windowstate

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"
)

// FileName is the name of the file window states are stored in.
const FileName = "window-state.yaml"

// Store persists window states by window label in a YAML file.
type Store struct {
	path string

	mu     sync.Mutex
	states map[string]WindowState
}

// NewStore returns a new store for the file in dir.
// Existing states are loaded. A missing file is not an error.
func NewStore(dir string) (*Store, error) {
	st := &Store{
		path:   filepath.Join(dir, FileName),
		states: make(map[string]WindowState),
	}
	data, err := os.ReadFile(st.path)
	if errors.Is(err, os.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &st.states); err != nil {
		slog.Warn("Discarding invalid window state file", "path", st.path, "error", err)
		st.states = make(map[string]WindowState)
	}
	if st.states == nil {
		st.states = make(map[string]WindowState)
	}
	return st, nil
}

// Path returns the path of the underlying file.
func (st *Store) Path() string {
	return st.path
}

// Load returns the stored state for a window and reports whether it was found.
func (st *Store) Load(label string) (WindowState, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.states[label]
	return s, ok
}

// Save stores the attributes of s selected by flags for a window.
// Attributes not selected keep their previously stored values.
func (st *Store) Save(label string, s WindowState, flags StateFlags) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.states[label] = merge(st.states[label], s, flags)
	data, err := yaml.Marshal(st.states)
	if err != nil {
		return err
	}
	if err := atomic.WriteFile(st.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save window state %s: %w", label, err)
	}
	slog.Debug("Window state saved", "label", label, "flags", flags)
	return nil
}
