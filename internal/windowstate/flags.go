// Package windowstate persists and restores the state of application windows.
package windowstate

import (
	"strings"

	"github.com/ErikKalkoken/go-set"
)

// StateFlags is a set of window attributes which can be persisted.
type StateFlags uint32

// Window state flags. New flags must be added before flagsEnd.
const (
	Size StateFlags = 1 << iota
	Position
	Maximized
	Visible
	Decorations
	Fullscreen
	flagsEnd
)

var flagNames = map[StateFlags]string{
	Size:        "size",
	Position:    "position",
	Maximized:   "maximized",
	Visible:     "visible",
	Decorations: "decorations",
	Fullscreen:  "fullscreen",
}

// All returns the set of all known flags.
func All() StateFlags {
	return flagsEnd - 1
}

// Has reports whether all flags in o are set in f.
func (f StateFlags) Has(o StateFlags) bool {
	return f&o == o
}

// Union returns f with all flags of others added.
func (f StateFlags) Union(others ...StateFlags) StateFlags {
	for _, o := range others {
		f |= o
	}
	return f
}

// Difference returns f with all flags of others removed.
func (f StateFlags) Difference(others ...StateFlags) StateFlags {
	for _, o := range others {
		f &^= o
	}
	return f
}

// Flags returns the single flags contained in f.
func (f StateFlags) Flags() set.Set[StateFlags] {
	var s set.Set[StateFlags]
	for x := Size; x < flagsEnd; x <<= 1 {
		if f.Has(x) {
			s.Add(x)
		}
	}
	return s
}

func (f StateFlags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for x := Size; x < flagsEnd; x <<= 1 {
		if f.Has(x) {
			parts = append(parts, flagNames[x])
		}
	}
	return strings.Join(parts, "|")
}
