// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package handoff provides lock-free primitives for handing data between
// independently scheduled goroutines without blocking.
//
// One side of a hand-off often runs where blocking is unacceptable, such as
// an audio render callback draining parameter edits that a control goroutine
// submits. Every operation here is a non-blocking "try": it either completes
// or returns [ErrWouldBlock] at once, and the caller owns retry policy.
//
//   - Stack: intrusive lock-free LIFO of slot indices (any goroutines)
//   - FIFO: lock-free queue composed of two Stacks (any goroutines)
//   - Ring: bounded SPSC ring buffer with batch transfer and zero-copy peek
//
// # Quick Start
//
// Typed queues:
//
//	r := handoff.NewRing[Frame](512)          // SPSC, batch transfer
//	q := handoff.NewPooledFIFO[Edit](256)     // lock-free, any goroutines
//
// Builder selects the container from constraints:
//
//	q := handoff.Build[Edit](handoff.New(256).SingleProducer().SingleConsumer()) // → Ring
//	q := handoff.Build[Edit](handoff.New(256))                                   // → pooled FIFO
//	q := handoff.Build[Voice](handoff.New(64).LIFO())                            // → pooled Stack
//	q := handoff.Build[Edit](handoff.New(256).Locked())                          // → pooled LockedFIFO
//
// # Intrusive Containers
//
// Go offers no safe compare-and-swap over a pointer paired with a counter,
// so Stack and FIFO link slot indices instead of pointers. Slot i's "next"
// link lives in a [Links] table: either inside each value slot of a [Pool],
// or in a [LinkArray] beside storage the caller already owns. Index 0 is
// [None].
//
//	pool := handoff.NewPool[Edit](256)
//	q := handoff.NewFIFO(pool)
//
//	// Control goroutine
//	i, err := pool.Alloc()
//	if err == nil {
//	    *pool.At(i) = Edit{Param: 7, Value: 0.25}
//	    q.Push(i)
//	}
//
//	// Audio callback
//	for {
//	    i, err := q.TryPop()
//	    if err != nil {
//	        break
//	    }
//	    apply(pool.At(i))
//	    pool.Free(i)
//	}
//
// The containers never allocate or free. A slot is owned by whoever holds
// its index: a container while linked, the popping goroutine afterwards.
// Never push a slot that is already inside a container.
//
// # ABA Safety
//
// The Stack head is a (top index, generation) pair updated with one 128-bit
// compare-and-swap; every successful mutation advances the generation. A
// goroutine that loaded the head before another goroutine popped and
// re-pushed the same slot therefore fails its CAS and retries, instead of
// installing a stale link. The generation is 64 bits wide and does not wrap
// in practice.
//
// # FIFO Ordering
//
// FIFO is exact for one consumer goroutine. With several concurrent
// consumers, order inside each migrated batch is kept but batches may
// interleave. Serialize consumers, or use [LockedFIFO], when global order
// matters.
//
// # Ring Transactions
//
// Ring transfers are all-or-nothing:
//
//	r := handoff.NewRing[float32](1024)
//
//	// Producer
//	if err := r.EnqueueBatch(block); handoff.IsWouldBlock(err) {
//	    // not enough room for the whole block; nothing was written
//	}
//
//	// Consumer: read in place, then commit
//	s := r.Peek()
//	for _, v := range s.All() {
//	    mix(*v)
//	}
//	r.Consume(s)
//
// A ring of capacity n allocates n+1 slots; the spare slot keeps "full" and
// "empty" distinguishable. Capacity is exact, not rounded. Resize is not
// thread-safe and must run before the ring is shared.
//
// # Error Handling
//
// [ErrWouldBlock] (an alias of [code.hybscloud.com/iox.ErrWouldBlock]) is a
// control flow signal: full or empty, nothing changed.
//
//	backoff := iox.Backoff{}
//	for {
//	    err := r.EnqueueBatch(block)
//	    if err == nil {
//	        backoff.Reset()
//	        break
//	    }
//	    if !handoff.IsWouldBlock(err) {
//	        return err // ErrTooLarge: the batch can never fit
//	    }
//	    backoff.Wait()
//	}
//
// Misuse (two producers on one Ring, Resize while shared, pushing [None],
// consuming outside the latest peek) is undefined. Build with
// -tags handoffdebug to turn it into a panic; see [DebugChecks].
//
// # Race Detection
//
// Go's race detector cannot observe the happens-before edges that atomix
// acquire/release operations create between a published index or cursor and
// the plain memory it guards, so concurrent tests report false positives.
// They are skipped when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomics with explicit
// memory ordering (including the 128-bit stack head),
// [code.hybscloud.com/spin] for CPU pause between CAS attempts,
// [code.hybscloud.com/iox] for semantic errors, and [golang.org/x/sys/cpu]
// for cache line padding.
package handoff
