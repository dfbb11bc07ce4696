// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

// FIFO is a lock-free queue of slot indices composed of two Stacks.
//
// Producers push onto the write stack. Consumers pop from the read stack;
// when it runs dry, a consumer detaches the entire write stack in one step,
// reverses the detached chain into arrival order and splices it onto the
// read stack. Reversal is paid once per batch rather than once per element.
//
// Ordering: exact FIFO with one consumer goroutine. With concurrent
// consumers, order inside one migrated batch is kept, but a consumer
// migrating a fresh batch may interleave with another still draining the
// previous one. Callers needing global order across consumers must
// serialize TryPop themselves.
//
// Example:
//
//	pool := handoff.NewPool[Edit](256)
//	q := handoff.NewFIFO(pool)
//
//	i, _ := pool.Alloc()
//	*pool.At(i) = Edit{Param: 1}
//	q.Push(i)
//
//	j, err := q.TryPop()
//	if err == nil {
//	    apply(*pool.At(j))
//	    pool.Free(j)
//	}
type FIFO struct {
	write Stack
	read  Stack
	links Links
}

// NewFIFO creates an empty FIFO over links.
// Panics if links is nil.
func NewFIFO(links Links) *FIFO {
	q := &FIFO{links: links}
	q.write.init(links)
	q.read.init(links)
	return q
}

// Push appends slot i. Safe for any number of producers.
func (q *FIFO) Push(i Index) {
	q.write.Push(i)
}

// TryPop removes and returns the oldest slot.
// Returns (None, ErrWouldBlock) if both stacks are empty.
func (q *FIFO) TryPop() (Index, error) {
	for {
		if i, err := q.read.TryPop(); err == nil {
			return i, nil
		}
		chain, err := q.write.TryPopAll()
		if err != nil {
			return None, ErrWouldBlock
		}
		first, last := reverseChain(q.links, chain)
		q.read.PushRange(first, last)
	}
}

// Empty reports whether both stacks were observed empty.
func (q *FIFO) Empty() bool {
	return q.read.Empty() && q.write.Empty()
}

// reverseChain reverses the None-terminated chain starting at head and
// returns its new first and last slots. The detached chain is private to
// the caller, so plain link rewrites are safe.
func reverseChain(links Links, head Index) (first, last Index) {
	prev := None
	for cur := head; cur != None; {
		next := links.Next(cur)
		links.SetNext(cur, prev)
		prev, cur = cur, next
	}
	return prev, head
}
