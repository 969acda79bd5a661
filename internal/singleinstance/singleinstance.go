// Package singleinstance ensures that only one instance of something runs at a time.
//
// [Group] works within a process and [Lock] across processes.
package singleinstance

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/juju/mutex/v2"
)

// ErrAlreadyRunning is returned when another process holds the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Group represents a class of work and forms a namespace in which units of work
// can be executed with duplicate suppression.
type Group struct {
	mu sync.Mutex
	m  map[string]struct{} // holds the keys for currently running functions
}

func NewGroup() *Group {
	g := &Group{m: make(map[string]struct{})}
	return g
}

// Do executes and returns the results of the given function,
// making sure that only one execution is in-flight for a given key at a time.
// If a duplicate comes in, the duplicate caller will be aborted.
// The return value aborted indicates whether v was aborted.
func (g *Group) Do(key string, fn func() (any, error)) (v any, err error, aborted bool) {
	g.mu.Lock()
	_, found := g.m[key]
	if found {
		g.mu.Unlock()
		return nil, nil, true
	}
	g.m[key] = struct{}{}
	g.mu.Unlock()
	x, err := fn()
	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()
	return x, err, false
}

// Lock acquires a machine wide lock with the given name.
// It returns [ErrAlreadyRunning] when the lock is held by another process.
// The returned function releases the lock.
func Lock(name string) (release func(), err error) {
	r, err := mutex.Acquire(mutex.Spec{
		Name:    name,
		Clock:   wallClock{},
		Delay:   50 * time.Millisecond,
		Timeout: 250 * time.Millisecond,
	})
	if errors.Is(err, mutex.ErrTimeout) {
		return nil, ErrAlreadyRunning
	}
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", name, err)
	}
	return r.Release, nil
}

type wallClock struct{}

func (wallClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

func (wallClock) Now() time.Time {
	return time.Now()
}
