// Package list implements an intrusive doubly linked list over an arena
package list

import (
	"fmt"
	"iter"
)

// A LRUListError is a custom error type for list
type LRUListError struct {
	message string
}

func (e *LRUListError) Error() string {
	return fmt.Sprintf("lru list error: %v", e.message)
}

var ErrRoot = &LRUListError{"can't perform operations with root"}
var ErrNotInList = &LRUListError{"handle should point to an element of this list"}

// MaxPrealloc bounds how many slots NewLRUList reserves up front, the arena grows past it on demand
const MaxPrealloc = 1 << 16

// A Handle is a stable position of an element inside LRUList.
// It becomes invalid as soon as the element is removed.
type Handle int

// root is the sentinel slot. root.next is the front, root.prev is the back
const root Handle = 0

// slot is one arena cell
type slot[K comparable, V any] struct {
	Key        K
	Value      V
	next, prev Handle
	used       bool
}

// A LRUList is a doubly linked list whose nodes are stored in a slice and linked by indices.
// It is not safe for concurrent use.
type LRUList[K comparable, V any] struct {
	slots []slot[K, V]
	free  []Handle
	len   int
}

// NewLRUList creates an empty LRUList. It should be created only using this command.
// Room for min(sizeHint, MaxPrealloc) elements is reserved
func NewLRUList[K comparable, V any](sizeHint int) *LRUList[K, V] {
	sizeHint = max(0, min(sizeHint, MaxPrealloc))
	l := &LRUList[K, V]{slots: make([]slot[K, V], 1, sizeHint+1)}
	l.slots[root].used = true
	return l
}

func (l *LRUList[K, V]) valid(h Handle) error {
	if h == root {
		return ErrRoot
	}
	if h < 0 || int(h) >= len(l.slots) || !l.slots[h].used {
		return ErrNotInList
	}
	return nil
}

// Front returns the handle of the element in the front of the list
func (l *LRUList[K, V]) Front() (Handle, bool) {
	h := l.slots[root].next
	return h, h != root
}

// Back returns the handle of the element in the back of the list
func (l *LRUList[K, V]) Back() (Handle, bool) {
	h := l.slots[root].prev
	return h, h != root
}

// Key returns the key stored at h
func (l *LRUList[K, V]) Key(h Handle) (K, error) {
	if err := l.valid(h); err != nil {
		var zero K
		return zero, err
	}
	return l.slots[h].Key, nil
}

// Value returns the value stored at h
func (l *LRUList[K, V]) Value(h Handle) (V, error) {
	if err := l.valid(h); err != nil {
		var zero V
		return zero, err
	}
	return l.slots[h].Value, nil
}

// SetValue replaces the value stored at h without moving it
func (l *LRUList[K, V]) SetValue(h Handle, value V) error {
	if err := l.valid(h); err != nil {
		return err
	}
	l.slots[h].Value = value
	return nil
}

// Size returns the amount of elements that it currently holds
func (l *LRUList[K, V]) Size() int {
	return l.len
}

// Empty return if the list has no elements
func (l *LRUList[K, V]) Empty() bool {
	return l.len == 0
}

// alloc takes a slot from the free list or grows the arena
func (l *LRUList[K, V]) alloc(key K, value V) Handle {
	var h Handle
	if n := len(l.free); n > 0 {
		h = l.free[n-1]
		l.free = l.free[:n-1]
	} else {
		l.slots = append(l.slots, slot[K, V]{})
		h = Handle(len(l.slots) - 1)
	}
	l.slots[h] = slot[K, V]{Key: key, Value: value, used: true}
	return h
}

// link places h right after at
func (l *LRUList[K, V]) link(h, at Handle) {
	next := l.slots[at].next
	l.slots[h].prev = at
	l.slots[h].next = next
	l.slots[at].next = h
	l.slots[next].prev = h
}

// unlink detaches h from its neighbours, the slot itself stays allocated
func (l *LRUList[K, V]) unlink(h Handle) {
	s := &l.slots[h]
	l.slots[s.prev].next = s.next
	l.slots[s.next].prev = s.prev
	s.next, s.prev = root, root
}

// PushFront creates an element with key K and value V and adds it to the front
func (l *LRUList[K, V]) PushFront(key K, value V) Handle {
	h := l.alloc(key, value)
	l.link(h, root)
	l.len += 1
	return h
}

// MoveToFront moves the element pointed by h to the front of the list. The handle stays valid
func (l *LRUList[K, V]) MoveToFront(h Handle) error {
	if err := l.valid(h); err != nil {
		return err
	}
	if l.slots[root].next == h {
		return nil
	}
	l.unlink(h)
	l.link(h, root)
	return nil
}

// Remove deletes the element pointed by h from the list and returns its contents
func (l *LRUList[K, V]) Remove(h Handle) (key K, value V, err error) {
	if err = l.valid(h); err != nil {
		return
	}
	l.unlink(h)
	key, value = l.slots[h].Key, l.slots[h].Value
	l.slots[h] = slot[K, V]{}
	l.free = append(l.free, h)
	l.len -= 1
	return key, value, nil
}

// PopBack removes the element from the back of the list and returns it
func (l *LRUList[K, V]) PopBack() (K, V, error) {
	return l.Remove(l.slots[root].prev)
}

// Reset drops every element. Previously issued handles become invalid
func (l *LRUList[K, V]) Reset() {
	clear(l.slots)
	l.slots = l.slots[:1]
	l.slots[root].used = true
	l.free = l.free[:0]
	l.len = 0
}

// All iterates key-value pairs from front to back
func (l *LRUList[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for h := l.slots[root].next; h != root; h = l.slots[h].next {
			if !yield(l.slots[h].Key, l.slots[h].Value) {
				return
			}
		}
	}
}

// Keys returns all keys from front to back
func (l *LRUList[K, V]) Keys() []K {
	keys := make([]K, 0, l.len)
	for k := range l.All() {
		keys = append(keys, k)
	}
	return keys
}
