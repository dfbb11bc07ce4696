// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

import "code.hybscloud.com/atomix"

// Pool is a fixed arena of value slots with a lock-free free list.
//
// Each slot carries its value and an intrusive next link, so Pool is also
// the [Links] table for the containers its slots travel through. The free
// list is a [Stack] over those same links: a slot is always in exactly one
// place, either the free list or a caller's container, or held by the
// goroutine that allocated or popped it.
//
// Slot reuse is what makes the free list ABA-prone (a slot popped, used and
// freed again between another goroutine's load and CAS); the Stack's
// generation counter is what keeps it correct.
//
// Memory: capacity+1 slots (slot 0 is None)
type Pool[T any] struct {
	free  Stack
	slots []poolSlot[T]
}

type poolSlot[T any] struct {
	next  atomix.Uint64
	value T
}

// NewPool creates a pool of capacity slots, all free.
// Panics if capacity < 1 or capacity > MaxCapacity.
func NewPool[T any](capacity int) *Pool[T] {
	checkCapacity(capacity)

	p := &Pool[T]{slots: make([]poolSlot[T], capacity+1)}
	p.free.init(p)

	// Chain 1 → 2 → … → capacity and publish it in one head update.
	for i := 1; i < capacity; i++ {
		p.slots[i].next.StoreRelaxed(uint64(i + 1))
	}
	p.free.PushRange(1, Index(capacity))
	return p
}

// Alloc takes a free slot. Safe for concurrent use.
// Returns (None, ErrWouldBlock) if every slot is in use.
func (p *Pool[T]) Alloc() (Index, error) {
	return p.free.TryPop()
}

// Free zeroes slot i and returns it to the free list. Safe for concurrent
// use. The caller must own i: it must not be linked into any container.
func (p *Pool[T]) Free(i Index) {
	var zero T
	p.slots[i].value = zero
	p.free.Push(i)
}

// At returns the value of slot i.
// Only the current owner of i may read or write through the pointer.
func (p *Pool[T]) At(i Index) *T {
	return &p.slots[i].value
}

// Cap returns the number of slots.
func (p *Pool[T]) Cap() int {
	return len(p.slots) - 1
}

// Next returns the link of slot i.
func (p *Pool[T]) Next(i Index) Index {
	return Index(p.slots[i].next.LoadRelaxed())
}

// SetNext sets the link of slot i.
func (p *Pool[T]) SetNext(i, next Index) {
	p.slots[i].next.StoreRelaxed(uint64(next))
}
