// Package arena implements the generational-index entity store used
// by every set in this engine (particles, rigid bodies, force
// generators, contact generators). It plays the role the distilled
// original filled with slotmap::SlotMap: a handle is an (index,
// generation) pair that is rejected once its slot has been reused,
// so stale handles never silently alias a different value.
package arena

// Handle is a non-owning, generational reference into an Arena. The
// zero Handle never refers to a live slot.
type Handle struct {
	index      uint32
	generation uint32
}

// Valid reports whether h could conceivably address a slot (it does
// not check liveness against any particular Arena).
func (h Handle) Valid() bool { return h.generation != 0 }

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// Arena is a generational store of values of type T. The zero value
// is ready to use.
type Arena[T any] struct {
	slots    []slot[T]
	freeList []uint32
	len      int
}

// Insert stores value and returns a handle that remains valid until
// the slot is removed.
func (a *Arena[T]) Insert(value T) Handle {
	if n := len(a.freeList); n > 0 {
		idx := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		s := &a.slots[idx]
		s.value = value
		s.occupied = true
		a.len++
		return Handle{index: idx, generation: s.generation}
	}

	a.slots = append(a.slots, slot[T]{value: value, generation: 1, occupied: true})
	a.len++
	return Handle{index: uint32(len(a.slots) - 1), generation: 1}
}

func (a *Arena[T]) resolve(h Handle) (*slot[T], bool) {
	if !h.Valid() || int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return nil, false
	}
	return s, true
}

// Get returns a pointer to the value h addresses, and whether h was
// valid. The pointer is invalidated by any later Remove of the same
// slot's handle generation, and by any later Insert that grows the
// arena's backing storage.
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	s, ok := a.resolve(h)
	if !ok {
		return nil, false
	}
	return &s.value, true
}

// Contains reports whether h currently addresses a live value.
func (a *Arena[T]) Contains(h Handle) bool {
	_, ok := a.resolve(h)
	return ok
}

// Remove deletes the value h addresses, if any, bumping the slot's
// generation so any copy of h (or a handle reusing the same index
// after a later Insert) cannot alias it.
func (a *Arena[T]) Remove(h Handle) bool {
	s, ok := a.resolve(h)
	if !ok {
		return false
	}
	var zero T
	s.value = zero
	s.occupied = false
	s.generation++
	a.len--
	a.freeList = append(a.freeList, h.index)
	return true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int { return a.len }

// GetDisjointMut returns pointers to the values addressed by the
// given handles, refusing if any two handles are equal or any handle
// is missing/stale — the building block pairwise force and contact
// operations use to get two independent mutable borrows from the
// same set.
func (a *Arena[T]) GetDisjointMut(handles ...Handle) ([]*T, bool) {
	out := make([]*T, len(handles))
	for i, hi := range handles {
		for j := i + 1; j < len(handles); j++ {
			if hi == handles[j] {
				return nil, false
			}
		}
		s, ok := a.resolve(hi)
		if !ok {
			return nil, false
		}
		out[i] = &s.value
	}
	return out, true
}

// Iter calls fn for every live (handle, value) pair. Iteration order
// is unspecified but stable between mutations. fn may mutate the
// pointed-to value but must not insert or remove from the arena.
func (a *Arena[T]) Iter(fn func(Handle, *T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.occupied {
			fn(Handle{index: uint32(i), generation: s.generation}, &s.value)
		}
	}
}

// Values returns pointers to every live value, in the same
// unspecified-but-stable order as Iter.
func (a *Arena[T]) Values() []*T {
	out := make([]*T, 0, a.len)
	for i := range a.slots {
		s := &a.slots[i]
		if s.occupied {
			out = append(out, &s.value)
		}
	}
	return out
}

// Handles returns every live handle, in the same order as Iter.
func (a *Arena[T]) Handles() []Handle {
	out := make([]Handle, 0, a.len)
	for i := range a.slots {
		s := &a.slots[i]
		if s.occupied {
			out = append(out, Handle{index: uint32(i), generation: s.generation})
		}
	}
	return out
}
