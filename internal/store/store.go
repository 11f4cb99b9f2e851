// Package store keeps small per-session state (quote carts, wishlists) behind
// a get/set/subscribe interface so callers never depend on where it lives.
package store

import "sync"

// Change describes one write to a store
type Change[T any] struct {
	Key     string
	Value   T
	Deleted bool
}

// Store is a keyed value holder with change notification
type Store[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	// Update replaces the value at key with fn(current) atomically. When
	// keep is false the key is deleted instead. It returns the new value.
	Update(key string, fn func(current T, ok bool) (next T, keep bool)) T
	// Subscribe registers fn for every subsequent change and returns a
	// function that removes it.
	Subscribe(fn func(Change[T])) (unsubscribe func())
}

// Memory is an in-process Store. Subscribers run synchronously, after the
// write is visible, outside the lock.
type Memory[T any] struct {
	mu     sync.RWMutex
	values map[string]T
	subs   map[int]func(Change[T])
	nextID int
}

// NewMemory creates an empty in-memory store
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{
		values: make(map[string]T),
		subs:   make(map[int]func(Change[T])),
	}
}

func (m *Memory[T]) Get(key string) (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory[T]) Set(key string, value T) {
	m.mu.Lock()
	m.values[key] = value
	subs := m.snapshot()
	m.mu.Unlock()

	notify(subs, Change[T]{Key: key, Value: value})
}

func (m *Memory[T]) Delete(key string) {
	m.mu.Lock()
	_, existed := m.values[key]
	delete(m.values, key)
	subs := m.snapshot()
	m.mu.Unlock()

	if existed {
		var zero T
		notify(subs, Change[T]{Key: key, Value: zero, Deleted: true})
	}
}

func (m *Memory[T]) Update(key string, fn func(current T, ok bool) (T, bool)) T {
	m.mu.Lock()
	cur, existed := m.values[key]
	next, keep := fn(cur, existed)
	if keep {
		m.values[key] = next
	} else {
		delete(m.values, key)
	}
	subs := m.snapshot()
	m.mu.Unlock()

	switch {
	case keep:
		notify(subs, Change[T]{Key: key, Value: next})
	case existed:
		var zero T
		notify(subs, Change[T]{Key: key, Value: zero, Deleted: true})
	}
	return next
}

func (m *Memory[T]) Subscribe(fn func(Change[T])) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Len returns the number of stored keys
func (m *Memory[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}

// snapshot must be called with mu held.
func (m *Memory[T]) snapshot() []func(Change[T]) {
	subs := make([]func(Change[T]), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify[T any](subs []func(Change[T]), c Change[T]) {
	for _, fn := range subs {
		fn(c)
	}
}
