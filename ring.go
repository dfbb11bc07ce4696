// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

import "code.hybscloud.com/atomix"

// Ring is a bounded single-producer single-consumer ring buffer with
// all-or-nothing batch transfer and a zero-copy peek.
//
// Based on Lamport's ring buffer with cached cursors. The ring holds
// capacity+1 slots: one slot always stays empty, so equal cursors mean empty
// and never full. Each side owns a cursor record (its live cursor, its cached
// copy of the other side's cursor, and the slot count) on a cache line of
// its own. A side reads the other's live cursor only when its cached copy
// says there is not enough room or data; Peek, which reports everything
// published, always reads it.
//
// Every transfer is a transaction: a failed EnqueueBatch or DequeueBatch
// leaves the ring unchanged. The acquire load of the other side's cursor
// happens before buffer memory is touched, and the release store of the own
// cursor happens after the copy or clear, so a side never observes a cursor
// advance before the matching slot contents.
//
// Thread safety: exactly one producer goroutine may call Enqueue,
// EnqueueBatch and EnqueueFunc, and exactly one consumer goroutine may call
// Dequeue, DequeueBatch, Peek, Consume and ConsumeRange. The two run
// concurrently. Resize must not overlap any other call.
//
// The zero Ring has capacity 0; call Resize before sharing it.
//
// Memory: capacity+1 slots
type Ring[T any] struct {
	_   pad
	enq ringCursor // producer record
	_   pad
	deq ringCursor // consumer record
	_   pad
	buf []T
}

type ringCursor struct {
	pos    atomix.Uint64 // live cursor, stored only by the owning side
	cached uint64        // owning side's last observed cursor of the other side
	size   uint64        // physical slots
	owner  owner
}

func (c *ringCursor) reset(size uint64) {
	c.pos.StoreRelaxed(0)
	c.cached = 0
	c.size = size
}

// free returns the slots the producer at w may fill, per its cached view.
func (c *ringCursor) free(w uint64) uint64 {
	if c.cached > w {
		return c.cached - w - 1
	}
	return c.size - (w - c.cached) - 1
}

// avail returns the slots the consumer at r may read, per its cached view.
func (c *ringCursor) avail(r uint64) uint64 {
	if c.cached >= r {
		return c.cached - r
	}
	return c.size - (r - c.cached)
}

func (c *ringCursor) advance(pos, n uint64) {
	pos += n
	if pos >= c.size {
		pos -= c.size
	}
	c.pos.StoreRelease(pos)
}

// NewRing creates a ring holding up to capacity elements.
// Panics if capacity < 1.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		panic("handoff: capacity must be >= 1")
	}
	r := &Ring[T]{}
	r.Resize(capacity)
	return r
}

// Resize discards the contents and reallocates room for capacity elements.
// Resize(0) releases all backing memory.
//
// Resize is not thread-safe: call it before the ring is shared, or after
// both sides have stopped using it.
func (r *Ring[T]) Resize(capacity int) {
	if capacity < 0 {
		panic("handoff: negative capacity")
	}
	r.enq.owner.enter("Ring.Resize")
	defer r.enq.owner.leave()
	r.deq.owner.enter("Ring.Resize")
	defer r.deq.owner.leave()

	var size uint64
	r.buf = nil
	if capacity > 0 {
		size = uint64(capacity) + 1
		r.buf = make([]T, size)
	}
	r.enq.reset(size)
	r.deq.reset(size)
}

// Cap returns the ring capacity.
func (r *Ring[T]) Cap() int {
	return max(len(r.buf)-1, 0)
}

// Enqueue copies *elem into the ring (producer only).
// Returns ErrWouldBlock if the ring is full, ErrTooLarge if Cap() is 0.
func (r *Ring[T]) Enqueue(elem *T) error {
	r.enq.owner.enter("Ring producer")
	defer r.enq.owner.leave()

	w, err := r.reserve(1)
	if err != nil {
		return err
	}
	r.buf[w] = *elem
	r.enq.advance(w, 1)
	return nil
}

// EnqueueBatch copies all of elems into the ring or none of them
// (producer only). An empty batch succeeds.
// Returns ErrWouldBlock if there is not enough room now, ErrTooLarge if
// len(elems) > Cap().
func (r *Ring[T]) EnqueueBatch(elems []T) error {
	n := uint64(len(elems))
	if n == 0 {
		return nil
	}
	r.enq.owner.enter("Ring producer")
	defer r.enq.owner.leave()

	w, err := r.reserve(n)
	if err != nil {
		return err
	}
	right, left := r.segments(w, n)
	copy(right, elems)
	copy(left, elems[len(right):])
	r.enq.advance(w, n)
	return nil
}

// EnqueueFunc reserves n slots, lets fill construct the elements in place
// through the span, then publishes all n (producer only). fill must write
// every slot of the span and must not retain it. n == 0 succeeds without
// calling fill.
// Returns ErrWouldBlock or ErrTooLarge without calling fill.
func (r *Ring[T]) EnqueueFunc(n int, fill func(s Span[T])) error {
	if n < 0 {
		panic("handoff: negative batch size")
	}
	if n == 0 {
		return nil
	}
	r.enq.owner.enter("Ring producer")
	defer r.enq.owner.leave()

	w, err := r.reserve(uint64(n))
	if err != nil {
		return err
	}
	fill(r.span(w, uint64(n)))
	r.enq.advance(w, uint64(n))
	return nil
}

// reserve returns the producer cursor if n slots are free.
func (r *Ring[T]) reserve(n uint64) (uint64, error) {
	c := &r.enq
	if n >= c.size {
		return 0, ErrTooLarge
	}
	w := c.pos.LoadRelaxed()
	if c.free(w) < n {
		c.cached = r.deq.pos.LoadAcquire()
		if c.free(w) < n {
			return 0, ErrWouldBlock
		}
	}
	return w, nil
}

// Dequeue removes and returns the oldest element (consumer only).
// Returns (zero-value, ErrWouldBlock) if the ring is empty.
func (r *Ring[T]) Dequeue() (T, error) {
	r.deq.owner.enter("Ring consumer")
	defer r.deq.owner.leave()

	var zero T
	rd, ok := r.ready(1)
	if !ok {
		return zero, ErrWouldBlock
	}
	elem := r.buf[rd]
	r.buf[rd] = zero
	r.deq.advance(rd, 1)
	return elem, nil
}

// DequeueBatch fills dst with the oldest len(dst) elements or takes nothing
// (consumer only). An empty dst succeeds.
// Returns ErrWouldBlock if fewer than len(dst) elements are available,
// ErrTooLarge if len(dst) > Cap(). On a zero-capacity ring every non-empty
// dst is too large.
func (r *Ring[T]) DequeueBatch(dst []T) error {
	n := uint64(len(dst))
	if n == 0 {
		return nil
	}
	r.deq.owner.enter("Ring consumer")
	defer r.deq.owner.leave()

	if n >= r.deq.size {
		return ErrTooLarge
	}
	rd, ok := r.ready(n)
	if !ok {
		return ErrWouldBlock
	}
	right, left := r.segments(rd, n)
	copy(dst, right)
	copy(dst[len(right):], left)
	clear(right)
	clear(left)
	r.deq.advance(rd, n)
	return nil
}

// Peek returns every element published so far without consuming them
// (consumer only). The span aliases ring memory and stays valid until the
// consumer commits it with Consume or ConsumeRange. An empty ring yields an
// empty span.
func (r *Ring[T]) Peek() Span[T] {
	r.deq.owner.enter("Ring consumer")
	defer r.deq.owner.leave()

	c := &r.deq
	rd := c.pos.LoadRelaxed()
	c.cached = r.enq.pos.LoadAcquire()
	return r.span(rd, c.avail(rd))
}

// Consume commits a span returned by the latest Peek (consumer only).
// The consumed slots are zeroed before the cursor is published.
func (r *Ring[T]) Consume(s Span[T]) {
	r.ConsumeRange(s.Begin(), s.End(), nil)
}

// ConsumeRange commits [first, last) of the latest peeked span (consumer
// only). first must be the span's Begin; last may be any iterator of the
// same span up to End. release, if not nil, runs on every consumed slot in
// order before the slots are zeroed and the cursor is published.
func (r *Ring[T]) ConsumeRange(first, last Iter[T], release func(elem *T)) {
	r.deq.owner.enter("Ring consumer")
	defer r.deq.owner.leave()

	c := &r.deq
	rd := c.pos.LoadRelaxed()
	n := last.Sub(first)
	if debugChecks {
		assert(first.ring == r && last.ring == r, "iterator from another ring")
		assert(n <= 0 || first.pos() == rd, "consume must start at the dequeue cursor")
		assert(n <= 0 || uint64(n) <= c.avail(rd), "consume beyond the peeked span")
	}
	if n <= 0 {
		return
	}

	right, left := r.segments(rd, uint64(n))
	if release != nil {
		for i := range right {
			release(&right[i])
		}
		for i := range left {
			release(&left[i])
		}
	}
	clear(right)
	clear(left)
	c.advance(rd, uint64(n))
}

// ready returns the consumer cursor if n elements are available.
func (r *Ring[T]) ready(n uint64) (uint64, bool) {
	c := &r.deq
	rd := c.pos.LoadRelaxed()
	if c.avail(rd) < n {
		c.cached = r.enq.pos.LoadAcquire()
		if c.avail(rd) < n {
			return 0, false
		}
	}
	return rd, true
}

// segments splits n slots starting at pos into the run up to the physical
// end (right) and the wrapped run from the physical start (left).
func (r *Ring[T]) segments(pos, n uint64) (right, left []T) {
	end := min(pos+n, uint64(len(r.buf)))
	right = r.buf[pos:end:end]
	rest := n - (end - pos)
	left = r.buf[:rest:rest]
	return right, left
}

func (r *Ring[T]) span(pos, n uint64) Span[T] {
	right, left := r.segments(pos, n)
	return Span[T]{Right: right, Left: left, ring: r, start: pos}
}
