// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

import "iter"

// Span is a view of up to two contiguous runs of ring slots.
//
// The ring is circular but its memory is linear, so a logical range may
// cross the physical end: Right runs from the range start to the physical
// end (or the range end), Left holds the part wrapped to the physical
// start. Left is empty when the range does not wrap.
//
// Both slices alias ring memory. A span from Peek is valid until it is
// consumed; a span passed to an EnqueueFunc fill is valid only during fill.
type Span[T any] struct {
	Right []T
	Left  []T

	ring  *Ring[T]
	start uint64 // physical slot of the first element
}

// Len returns the number of elements in the span.
func (s Span[T]) Len() int {
	return len(s.Right) + len(s.Left)
}

// Empty reports whether the span has no elements.
func (s Span[T]) Empty() bool {
	return s.Len() == 0
}

// At returns the i-th element of the span in logical order.
// Panics if i is out of range.
func (s Span[T]) At(i int) *T {
	if i < len(s.Right) {
		return &s.Right[i]
	}
	return &s.Left[i-len(s.Right)]
}

// All yields the elements in logical order with their logical index.
func (s Span[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := range s.Right {
			if !yield(i, &s.Right[i]) {
				return
			}
		}
		for i := range s.Left {
			if !yield(len(s.Right)+i, &s.Left[i]) {
				return
			}
		}
	}
}

// CopyTo copies the span into dst and returns the number of elements copied.
func (s Span[T]) CopyTo(dst []T) int {
	n := copy(dst, s.Right)
	return n + copy(dst[n:], s.Left)
}

// Begin returns an iterator at the first element.
func (s Span[T]) Begin() Iter[T] {
	return Iter[T]{ring: s.ring, base: s.start}
}

// End returns an iterator one past the last element.
func (s Span[T]) End() Iter[T] {
	return Iter[T]{ring: s.ring, base: s.start, off: s.Len()}
}

// Iter is a random-access position in a ring that walks across the wrap
// boundary transparently. Iterators are values; Add and Next return new
// iterators.
//
//	s := r.Peek()
//	for it := s.Begin(); it != s.End(); it = it.Next() {
//	    mix(it.Value())
//	}
type Iter[T any] struct {
	ring *Ring[T]
	base uint64 // physical slot at offset 0
	off  int
}

// Add returns the iterator n elements further (n may be negative).
func (it Iter[T]) Add(n int) Iter[T] {
	it.off += n
	return it
}

// Next returns the iterator one element further.
func (it Iter[T]) Next() Iter[T] {
	return it.Add(1)
}

// Sub returns the logical distance it - o, counting across the wrap.
//
// For iterators derived from the same span the result is exact and may be
// negative. Iterators of different spans carry no common origin, so the
// result is then the forward distance from o to it, in [0, Cap()]: an it
// that lies before o still yields a non-negative value. Both iterators must
// belong to the same ring.
func (it Iter[T]) Sub(o Iter[T]) int {
	if it.base == o.base {
		return it.off - o.off
	}
	size := int64(len(it.ring.buf))
	if size == 0 {
		return it.off - o.off
	}
	d := (int64(it.pos()) - int64(o.pos())) % size
	if d < 0 {
		d += size
	}
	return int(d)
}

// Offset returns the position relative to the span's first element.
func (it Iter[T]) Offset() int {
	return it.off
}

// Value returns the element at the iterator.
// Panics on a zero-capacity ring, which has no elements.
func (it Iter[T]) Value() *T {
	return &it.ring.buf[it.pos()]
}

// pos returns the physical slot of the iterator, or 0 on a ring without
// storage.
func (it Iter[T]) pos() uint64 {
	size := int64(len(it.ring.buf))
	if size == 0 {
		return 0
	}
	p := (int64(it.base) + int64(it.off)) % size
	if p < 0 {
		p += size
	}
	return uint64(p)
}
