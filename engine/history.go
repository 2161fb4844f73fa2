package engine

import (
	"fmt"
	"sync/atomic"
)

// History is a fixed-capacity ring of analysis frames shared between the
// single producer and unsynchronized readers, using the same
// atomic-pointer discipline as the snapshot exchange: every slot holds an
// atomic pointer to a pre-allocated buffer, Push copies the entry into a
// spare buffer and swaps it in, and the displaced buffer goes to the back
// of a two-deep spare rotation. A buffer a reader loaded therefore stays
// untouched until two further pushes have happened — the same stability
// window the published snapshot gives. Cursor and count are atomics, so
// At/Len/Cap are safe from any goroutine; Push is producer-only and never
// allocates (capacity+2 buffers are allocated up front).
//
// Instances of different capacities and element types are fully
// independent.
type History[T any] struct {
	slots  []atomic.Pointer[T]
	spares [2]*T
	copyFn func(dst, src T)

	next   int          // slot the next push writes; producer only
	newest atomic.Int64 // slot of the newest entry
	count  atomic.Int64 // filled slots, <= cap
}

// NewHistory creates a ring of the given capacity. alloc builds one empty
// buffer; copyFn copies a pushed entry into a buffer.
func NewHistory[T any](capacity int, alloc func() T, copyFn func(dst, src T)) (*History[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("history capacity must be positive, got %d", capacity)
	}
	if alloc == nil || copyFn == nil {
		return nil, fmt.Errorf("history alloc and copy functions must be non-nil")
	}

	h := &History[T]{
		slots:  make([]atomic.Pointer[T], capacity),
		copyFn: copyFn,
	}
	for i := range h.slots {
		buf := alloc()
		h.slots[i].Store(&buf)
	}
	for i := range h.spares {
		buf := alloc()
		h.spares[i] = &buf
	}

	return h, nil
}

// Push commits one entry, evicting the oldest once the ring is full. The
// entry is copied; the caller keeps ownership of its argument. Producer
// goroutine only.
func (h *History[T]) Push(entry T) {
	buf := h.spares[0]
	h.copyFn(*buf, entry)

	displaced := h.slots[h.next].Swap(buf)
	h.spares[0] = h.spares[1]
	h.spares[1] = displaced

	h.newest.Store(int64(h.next))
	h.next = (h.next + 1) % len(h.slots)
	if h.count.Load() < int64(len(h.slots)) {
		h.count.Add(1)
	}
}

// At returns the entry i frames before the newest (0 = newest). An index
// past the oldest retained entry is clamped to the oldest; calling At on
// an empty ring returns the zero buffer. Returned entries are read-only
// views into ring storage, stable until two further pushes.
func (h *History[T]) At(i int) T {
	count := h.count.Load()
	if count == 0 {
		return *h.slots[0].Load()
	}
	if i < 0 {
		i = 0
	}
	if int64(i) >= count {
		i = int(count - 1)
	}
	c := int64(len(h.slots))
	slot := (h.newest.Load() - int64(i) + c) % c
	return *h.slots[slot].Load()
}

// Oldest returns the oldest retained entry.
func (h *History[T]) Oldest() T {
	return h.At(int(h.count.Load() - 1))
}

// Len returns the number of retained entries.
func (h *History[T]) Len() int {
	return int(h.count.Load())
}

// Cap returns the fixed capacity.
func (h *History[T]) Cap() int {
	return len(h.slots)
}

// View returns a read-only handle on the ring for consumers.
func (h *History[T]) View() HistoryView[T] {
	return HistoryView[T]{h: h}
}

// HistoryView is the read-only surface of a History handed to rendering
// consumers: At, Len and Cap, no mutators.
type HistoryView[T any] struct {
	h *History[T]
}

// At returns the entry i frames before the newest (0 = newest).
func (v HistoryView[T]) At(i int) T {
	return v.h.At(i)
}

// Len returns the number of retained entries.
func (v HistoryView[T]) Len() int {
	return v.h.Len()
}

// Cap returns the fixed capacity.
func (v HistoryView[T]) Cap() int {
	return v.h.Cap()
}
