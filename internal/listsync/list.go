// Package listsync keeps a client-side copy of a server collection.
//
// The list is replaced wholesale by a refresh and patched locally after a
// create (prepend) or delete (filter by id).  Every change takes a
// sequence number; a refresh response is only committed when nothing
// newer has been applied since the refresh was issued, so a slow reply
// cannot roll the list back.
package listsync

import (
	"sync"
)

// Ticket identifies one in-flight refresh.
type Ticket uint64

// List is safe for concurrent use.
type List[T any] struct {
	mu        sync.RWMutex
	items     []T
	keyOf     func(T) string
	issued    uint64
	committed uint64
}

// New returns an empty list whose items are identified by keyOf.  Keys
// are compared as strings, so callers must pass the canonical form.
func New[T any](keyOf func(T) string) *List[T] {
	return &List[T]{items: []T{}, keyOf: keyOf}
}

func (l *List[T]) next() uint64 {
	l.issued++
	return l.issued
}

// Begin reserves a ticket for a refresh about to be issued.
func (l *List[T]) Begin() Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Ticket(l.next())
}

// Commit replaces the contents with items if t is newer than the last
// committed change.  It reports whether the items were applied.
func (l *List[T]) Commit(t Ticket, items []T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if uint64(t) <= l.committed {
		return false
	}
	l.committed = uint64(t)
	l.items = clone(items)
	return true
}

// Refresh replaces the contents unconditionally.
func (l *List[T]) Refresh(items []T) {
	l.Commit(l.Begin(), items)
}

// ApplyCreate puts a freshly created item at the head of the list.
func (l *List[T]) ApplyCreate(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.committed = l.next()
	items := make([]T, 0, len(l.items)+1)
	items = append(items, item)
	l.items = append(items, l.items...)
}

// ApplyDelete drops every item whose key equals key.  It reports whether
// anything was removed.  The list is unchanged when nothing matches.
func (l *List[T]) ApplyDelete(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.committed = l.next()
	kept := make([]T, 0, len(l.items))
	for _, item := range l.items {
		if l.keyOf(item) != key {
			kept = append(kept, item)
		}
	}
	removed := len(kept) != len(l.items)
	if removed {
		l.items = kept
	}
	return removed
}

// Items returns a copy of the contents in display order.
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return clone(l.items)
}

func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Find returns the first item with the given key.
func (l *List[T]) Find(key string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, item := range l.items {
		if l.keyOf(item) == key {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
