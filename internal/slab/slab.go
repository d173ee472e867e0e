// Package slab implements a slot-reusing allocator that hands out
// stable integer handles for values, the way original_source/src/slab.rs does
// for window-manager clients: a handle survives until the entry is removed,
// and removed slots are reused before the backing storage grows.
package slab

// Slab is a stable-index store: Push returns a handle that stays valid
// (and keeps returning the same value from Get) until Remove is called on it.
type Slab[T any] struct {
	entries []*T
}

// New returns an empty slab.
func New[T any]() *Slab[T] {
	return &Slab[T]{}
}

// Push inserts v into the lowest-addressed free slot, or appends a new one,
// and returns its handle.
func (s *Slab[T]) Push(v T) int {
	for i, e := range s.entries {
		if e == nil {
			s.entries[i] = &v
			return i
		}
	}
	s.entries = append(s.entries, &v)
	return len(s.entries) - 1
}

// Get returns the value at handle and whether it is occupied.
func (s *Slab[T]) Get(handle int) (T, bool) {
	if handle < 0 || handle >= len(s.entries) || s.entries[handle] == nil {
		var zero T
		return zero, false
	}
	return *s.entries[handle], true
}

// GetPtr returns a pointer to the value at handle for in-place mutation, or
// nil if handle is not occupied.
func (s *Slab[T]) GetPtr(handle int) *T {
	if handle < 0 || handle >= len(s.entries) {
		return nil
	}
	return s.entries[handle]
}

// Set overwrites the value at an occupied handle. It is a no-op if handle is
// not occupied.
func (s *Slab[T]) Set(handle int, v T) {
	if handle < 0 || handle >= len(s.entries) || s.entries[handle] == nil {
		return
	}
	*s.entries[handle] = v
}

// Remove tombstones handle, freeing it for reuse, and returns the removed
// value.
func (s *Slab[T]) Remove(handle int) (T, bool) {
	v, ok := s.Get(handle)
	if !ok {
		return v, false
	}
	s.entries[handle] = nil
	return v, true
}

// Contains reports whether handle is currently occupied.
func (s *Slab[T]) Contains(handle int) bool {
	return handle >= 0 && handle < len(s.entries) && s.entries[handle] != nil
}

// Len returns the number of occupied slots.
func (s *Slab[T]) Len() int {
	n := 0
	for _, e := range s.entries {
		if e != nil {
			n++
		}
	}
	return n
}

// Each calls fn for every occupied handle in ascending order. fn may mutate
// the pointed-to value but must not call Push or Remove on s.
func (s *Slab[T]) Each(fn func(handle int, v *T)) {
	for i, e := range s.entries {
		if e != nil {
			fn(i, e)
		}
	}
}

// Find returns the handle of the first occupied entry for which pred
// returns true.
func (s *Slab[T]) Find(pred func(v *T) bool) (int, bool) {
	for i, e := range s.entries {
		if e != nil && pred(e) {
			return i, true
		}
	}
	return 0, false
}

// Handles returns the occupied handles in ascending order.
func (s *Slab[T]) Handles() []int {
	out := make([]int, 0, len(s.entries))
	for i, e := range s.entries {
		if e != nil {
			out = append(out, i)
		}
	}
	return out
}
