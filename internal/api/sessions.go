package api

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var errSessionNotFound = errors.New("session not found")

type entry[T any] struct {
	mu       sync.Mutex
	val      T
	lastSeen time.Time
}

// registry keeps live sessions in memory, keyed by uuid. Each entry has its
// own lock so transitions on one session never wait on another.
type registry[T any] struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]*entry[T]
}

func newRegistry[T any](ttl time.Duration) *registry[T] {
	return &registry[T]{ttl: ttl, now: time.Now, items: make(map[string]*entry[T])}
}

func (r *registry[T]) add(v T) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.items[id] = &entry[T]{val: v, lastSeen: r.now()}
	r.mu.Unlock()
	return id
}

// with runs fn on the session under its lock and marks it as used.
func (r *registry[T]) with(id string, fn func(T) error) error {
	r.mu.Lock()
	e, ok := r.items[id]
	r.mu.Unlock()
	if !ok {
		return errSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = r.now()
	return fn(e.val)
}

func (r *registry[T]) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	return true
}

func (r *registry[T]) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// sweep evicts sessions idle for longer than the TTL and reports how many
// went.
func (r *registry[T]) sweep() int {
	cutoff := r.now().Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.items {
		// An entry busy in a transition is in use; skip it this round.
		if !e.mu.TryLock() {
			continue
		}
		if e.lastSeen.Before(cutoff) {
			delete(r.items, id)
			n++
		}
		e.mu.Unlock()
	}
	return n
}

func (r *registry[T]) janitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.sweep()
		}
	}
}
