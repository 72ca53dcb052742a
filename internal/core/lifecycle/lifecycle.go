// Package lifecycle provides scoped ownership of releasable resources.
//
// Resources are acquired when a row is bound and released when it is
// unbound or discarded. A Slot holds at most one resource and releases the
// previous occupant whenever a new one is set, which keeps at most one live
// listener per owner without manual map bookkeeping.
package lifecycle

import "sync"

// Disposable is a resource that must be released exactly once.
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a function to Disposable. The function runs at most
// once no matter how often Dispose is called.
func DisposableFunc(fn func()) Disposable {
	return &funcDisposable{fn: fn}
}

type funcDisposable struct {
	once sync.Once
	fn   func()
}

func (d *funcDisposable) Dispose() {
	d.once.Do(func() {
		if d.fn != nil {
			d.fn()
		}
	})
}

// None is a Disposable that does nothing.
var None Disposable = DisposableFunc(nil)

// Slot owns zero or one Disposable.
type Slot struct {
	current Disposable
}

// Set releases the current resource, if any, and takes ownership of d.
func (s *Slot) Set(d Disposable) {
	if s.current != nil {
		s.current.Dispose()
	}
	s.current = d
}

// Clear releases the current resource.
func (s *Slot) Clear() { s.Set(nil) }

// Held reports whether the slot owns a resource.
func (s *Slot) Held() bool { return s.current != nil }

// Store owns many resources and releases them together.
type Store struct {
	items []Disposable
}

// Add takes ownership of d and returns it for chaining.
func (s *Store) Add(d Disposable) Disposable {
	s.items = append(s.items, d)
	return d
}

// Len returns the number of owned resources.
func (s *Store) Len() int { return len(s.items) }

// Dispose releases all resources in reverse acquisition order.
func (s *Store) Dispose() {
	for i := len(s.items) - 1; i >= 0; i-- {
		s.items[i].Dispose()
	}
	s.items = nil
}

// Table maps keys to owned resources. Replacing or deleting a key releases
// the resource previously stored under it.
type Table[K comparable] struct {
	items map[K]Disposable
}

// Set releases any resource stored under key and stores d.
func (t *Table[K]) Set(key K, d Disposable) {
	if t.items == nil {
		t.items = make(map[K]Disposable)
	}
	if old, ok := t.items[key]; ok {
		old.Dispose()
	}
	t.items[key] = d
}

// Delete releases and forgets the resource stored under key.
func (t *Table[K]) Delete(key K) {
	if old, ok := t.items[key]; ok {
		old.Dispose()
		delete(t.items, key)
	}
}

// Len returns the number of owned resources.
func (t *Table[K]) Len() int { return len(t.items) }

// Dispose releases every resource.
func (t *Table[K]) Dispose() {
	for k, d := range t.items {
		d.Dispose()
		delete(t.items, k)
	}
}
