// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

import "sync"

// LockedFIFO is a mutex-protected intrusive FIFO list over a Links table.
//
// It is the blocking drop-in for [FIFO]: same Linked interface, same link
// ownership rules, strict FIFO across any number of consumers, but Push and
// TryPop may wait on the mutex. Never call it from a context that must not
// block.
type LockedFIFO struct {
	mu    sync.Mutex
	head  Index
	tail  Index
	links Links
}

// NewLockedFIFO creates an empty locked FIFO over links.
// Panics if links is nil.
func NewLockedFIFO(links Links) *LockedFIFO {
	if links == nil {
		panic("handoff: nil links")
	}
	return &LockedFIFO{links: links}
}

// Push appends slot i.
func (q *LockedFIFO) Push(i Index) {
	assert(i != None, "push of None")
	q.links.SetNext(i, None)

	q.mu.Lock()
	if q.tail == None {
		q.head = i
	} else {
		q.links.SetNext(q.tail, i)
	}
	q.tail = i
	q.mu.Unlock()
}

// TryPop removes and returns the oldest slot.
// Returns (None, ErrWouldBlock) if the list is empty.
func (q *LockedFIFO) TryPop() (Index, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.head
	if i == None {
		return None, ErrWouldBlock
	}
	q.head = q.links.Next(i)
	if q.head == None {
		q.tail = None
	}
	return i, nil
}

// Empty reports whether the list is empty.
func (q *LockedFIFO) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.head == None
}
