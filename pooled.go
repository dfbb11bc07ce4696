// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

// Pooled is a bounded typed queue built from a Pool and a Linked container.
//
// Enqueue copies the value into a pool slot and pushes the slot index;
// Dequeue pops an index, copies the value out and frees the slot. The bound
// is the pool capacity. Ordering and thread safety are those of the
// container:
//
//	NewPooledFIFO       - lock-free, FIFO per consumer
//	NewPooledStack      - lock-free, LIFO
//	NewPooledLockedFIFO - mutex-protected, strict FIFO
type Pooled[T any] struct {
	pool *Pool[T]
	list Linked
}

// NewPooledFIFO creates a lock-free pooled queue with FIFO order.
func NewPooledFIFO[T any](capacity int) *Pooled[T] {
	p := NewPool[T](capacity)
	return &Pooled[T]{pool: p, list: NewFIFO(p)}
}

// NewPooledStack creates a lock-free pooled queue with LIFO order.
func NewPooledStack[T any](capacity int) *Pooled[T] {
	p := NewPool[T](capacity)
	return &Pooled[T]{pool: p, list: NewStack(p)}
}

// NewPooledLockedFIFO creates a mutex-protected pooled queue with FIFO order.
func NewPooledLockedFIFO[T any](capacity int) *Pooled[T] {
	p := NewPool[T](capacity)
	return &Pooled[T]{pool: p, list: NewLockedFIFO(p)}
}

// Enqueue copies *elem into a free slot and links it.
// Returns ErrWouldBlock if the pool is exhausted.
func (q *Pooled[T]) Enqueue(elem *T) error {
	i, err := q.pool.Alloc()
	if err != nil {
		return err
	}
	*q.pool.At(i) = *elem
	q.list.Push(i)
	return nil
}

// Dequeue unlinks the next slot and returns its value.
// Returns (zero-value, ErrWouldBlock) if the queue is empty.
func (q *Pooled[T]) Dequeue() (T, error) {
	i, err := q.list.TryPop()
	if err != nil {
		var zero T
		return zero, err
	}
	elem := *q.pool.At(i)
	q.pool.Free(i)
	return elem, nil
}

// Cap returns the queue capacity.
func (q *Pooled[T]) Cap() int {
	return q.pool.Cap()
}
