// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

import "golang.org/x/sys/cpu"

// Options configures container creation.
type Options struct {
	// Producer/Consumer constraints
	singleProducer bool
	singleConsumer bool

	// Ordering and fallback
	lifo   bool // LIFO instead of FIFO
	locked bool // mutex-protected FIFO instead of lock-free

	capacity int
}

// Builder creates hand-off containers with fluent configuration.
//
// The builder picks the container from the declared constraints:
//
//	// SPSC ring (one producer, one consumer, batch transfer)
//	r := handoff.BuildRing[Frame](handoff.New(512).SingleProducer().SingleConsumer())
//
//	// Lock-free pooled FIFO (any goroutines)
//	q := handoff.Build[Edit](handoff.New(256))
//
//	// Intrusive FIFO over caller-owned slots
//	idle := handoff.New(64).BuildLinked(links)
type Builder struct {
	opts Options
}

// New creates a builder for containers holding up to capacity elements.
// Capacity is exact; it is not rounded.
//
// Panics if capacity < 1 or capacity > MaxCapacity.
func New(capacity int) *Builder {
	checkCapacity(capacity)
	return &Builder{opts: Options{capacity: capacity}}
}

// SingleProducer declares that only one goroutine will enqueue.
func (b *Builder) SingleProducer() *Builder {
	b.opts.singleProducer = true
	return b
}

// SingleConsumer declares that only one goroutine will dequeue.
func (b *Builder) SingleConsumer() *Builder {
	b.opts.singleConsumer = true
	return b
}

// LIFO selects stack order. Hand-offs of interchangeable resources (free
// voices, idle buffers) favor LIFO: the most recently returned slot is the
// one most likely still in cache.
func (b *Builder) LIFO() *Builder {
	b.opts.lifo = true
	return b
}

// Locked selects the mutex-protected FIFO fallback. Use it where lock-free
// behavior is not needed or not trusted; never on a path that must not block.
func (b *Builder) Locked() *Builder {
	b.opts.locked = true
	return b
}

func (b *Builder) validate() {
	if b.opts.lifo && b.opts.locked {
		panic("handoff: LIFO() and Locked() are exclusive")
	}
}

// Build creates a Queue[T] with automatic container selection.
//
//	SingleProducer + SingleConsumer (FIFO) → Ring
//	LIFO                                   → Pooled stack
//	Locked                                 → Pooled locked FIFO
//	default                                → Pooled lock-free FIFO
//
// For concrete types use BuildRing[T], or the NewPooled* constructors.
func Build[T any](b *Builder) Queue[T] {
	b.validate()
	switch {
	case b.opts.lifo:
		return NewPooledStack[T](b.opts.capacity)
	case b.opts.locked:
		return NewPooledLockedFIFO[T](b.opts.capacity)
	case b.opts.singleProducer && b.opts.singleConsumer:
		return NewRing[T](b.opts.capacity)
	default:
		return NewPooledFIFO[T](b.opts.capacity)
	}
}

// BuildRing creates an SPSC Ring with compile-time type safety.
// Panics if builder is not configured with SingleProducer().SingleConsumer(),
// or if LIFO() or Locked() is set.
func BuildRing[T any](b *Builder) *Ring[T] {
	if !b.opts.singleProducer || !b.opts.singleConsumer {
		panic("handoff: BuildRing requires SingleProducer().SingleConsumer()")
	}
	if b.opts.lifo || b.opts.locked {
		panic("handoff: BuildRing does not support LIFO() or Locked()")
	}
	return NewRing[T](b.opts.capacity)
}

// BuildPool creates a Pool[T] of the builder's capacity.
func BuildPool[T any](b *Builder) *Pool[T] {
	return NewPool[T](b.opts.capacity)
}

// BuildLinked creates an intrusive container over links.
//
//	LIFO    → Stack
//	Locked  → LockedFIFO
//	default → FIFO
//
// Capacity does not apply: the link table bounds the container.
func (b *Builder) BuildLinked(links Links) Linked {
	b.validate()
	switch {
	case b.opts.lifo:
		return NewStack(links)
	case b.opts.locked:
		return NewLockedFIFO(links)
	default:
		return NewFIFO(links)
	}
}

// pad is cache line padding to prevent false sharing.
type pad = cpu.CacheLinePad
