// Package slot provides a generational slot allocator.
//
// A Table hands out IDs for inserted values and reuses the slots of removed
// values. Every ID carries the generation of its slot, so an ID that outlived
// its value never resolves to a later occupant of the same slot.
package slot

import (
	"fmt"
	"iter"
)

// ID identifies a value stored in a Table.
// The low 32 bits are the slot index, the high 32 bits the slot generation.
// The zero ID is never issued.
type ID uint64

// Nil is the zero ID. No Table ever issues it.
const Nil ID = 0

func makeID(index, gen uint32) ID {
	return ID(uint64(gen)<<32 | uint64(index))
}

// Index returns the slot index of the ID.
func (id ID) Index() uint32 {
	return uint32(id) //nolint:gosec // low half by construction
}

// Generation returns the slot generation of the ID.
func (id ID) Generation() uint32 {
	return uint32(id >> 32) //nolint:gosec // high half by construction
}

// String returns "index:generation".
func (id ID) String() string {
	return fmt.Sprintf("%d:%d", id.Index(), id.Generation())
}

type entry[T any] struct {
	value T
	gen   uint32
	live  bool
}

// Table is a slab of values addressed by ID.
// Insert, Get and Remove are O(1). Freed slots are reused last-in first-out.
//
// Table is not safe for concurrent use.
type Table[T any] struct {
	slots []entry[T]
	free  []uint32
	len   int
}

// New creates a table with room for capacity values before growing.
func New[T any](capacity int) *Table[T] {
	return &Table[T]{
		slots: make([]entry[T], 0, capacity),
	}
}

// Insert stores v and returns its ID.
func (t *Table[T]) Insert(v T) ID {
	var index uint32
	if n := len(t.free); n > 0 {
		index = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		index = uint32(len(t.slots)) //nolint:gosec // a table never holds 2^32 slots
		t.slots = append(t.slots, entry[T]{gen: 1})
	}

	e := &t.slots[index]
	e.value = v
	e.live = true
	t.len++
	return makeID(index, e.gen)
}

// lookup returns the live entry for id, or nil.
func (t *Table[T]) lookup(id ID) *entry[T] {
	index := id.Index()
	if int(index) >= len(t.slots) {
		return nil
	}
	e := &t.slots[index]
	if !e.live || e.gen != id.Generation() {
		return nil
	}
	return e
}

// Get returns the value stored under id.
// It reports false if id was never issued or its value has been removed.
func (t *Table[T]) Get(id ID) (T, bool) {
	if e := t.lookup(id); e != nil {
		return e.value, true
	}
	var zero T
	return zero, false
}

// Contains reports whether id refers to a live value.
func (t *Table[T]) Contains(id ID) bool {
	return t.lookup(id) != nil
}

// Remove deletes the value stored under id and returns it.
// The slot's generation is bumped so id stops resolving.
func (t *Table[T]) Remove(id ID) (T, bool) {
	e := t.lookup(id)
	if e == nil {
		var zero T
		return zero, false
	}

	v := e.value
	var zero T
	e.value = zero
	e.live = false
	e.gen++
	if e.gen == 0 {
		e.gen = 1
	}
	t.free = append(t.free, id.Index())
	t.len--
	return v, true
}

// Len returns the number of live values.
func (t *Table[T]) Len() int {
	return t.len
}

// All iterates over live values in slot order.
func (t *Table[T]) All() iter.Seq2[ID, T] {
	return func(yield func(ID, T) bool) {
		for i := range t.slots {
			e := &t.slots[i]
			if !e.live {
				continue
			}
			if !yield(makeID(uint32(i), e.gen), e.value) { //nolint:gosec // see Insert
				return
			}
		}
	}
}
