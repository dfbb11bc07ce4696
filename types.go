// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

// Queue is the typed hand-off interface shared by [Ring] and [Pooled].
//
// Both operations are non-blocking and return ErrWouldBlock when they cannot
// proceed. Length is not exposed: an exact count would need cross-core
// synchronization on every call.
//
// Example:
//
//	q := handoff.Build[Edit](handoff.New(256))
//
//	e := Edit{Param: 3, Value: 0.5}
//	if err := q.Enqueue(&e); err != nil {
//	    // full
//	}
//
//	e, err := q.Dequeue()
type Queue[T any] interface {
	Producer[T]
	Consumer[T]
	Cap() int
}

// Producer is the push side of a Queue.
type Producer[T any] interface {
	// Enqueue copies *elem into the queue (non-blocking).
	// Returns nil on success, ErrWouldBlock if no slot is free.
	Enqueue(elem *T) error
}

// Consumer is the pop side of a Queue.
type Consumer[T any] interface {
	// Dequeue removes and returns the next element (non-blocking).
	// Returns (zero-value, ErrWouldBlock) if nothing is available.
	// The vacated slot is zeroed so referenced objects can be collected.
	Dequeue() (T, error)
}

// BatchProducer enqueues several elements as one all-or-nothing transaction.
type BatchProducer[T any] interface {
	// EnqueueBatch inserts every element of elems or none of them.
	EnqueueBatch(elems []T) error
}

// BatchConsumer dequeues several elements as one all-or-nothing transaction.
type BatchConsumer[T any] interface {
	// DequeueBatch fills dst completely or leaves the queue unchanged.
	DequeueBatch(dst []T) error
}

// Linked is an intrusive container of slot indices over a [Links] table.
//
// [Stack], [FIFO] and [LockedFIFO] implement Linked. A slot must be inside
// at most one Linked container (or a Pool free list) at a time: the container
// owns the slot's next link while the slot is inside it.
type Linked interface {
	// Push links slot i into the container. Never fails.
	Push(i Index)

	// TryPop unlinks and returns a slot.
	// Returns (None, ErrWouldBlock) if the container is empty.
	TryPop() (Index, error)
}

var (
	_ Queue[int]         = (*Ring[int])(nil)
	_ BatchProducer[int] = (*Ring[int])(nil)
	_ BatchConsumer[int] = (*Ring[int])(nil)
	_ Queue[int]         = (*Pooled[int])(nil)
	_ Linked             = (*Stack)(nil)
	_ Linked             = (*FIFO)(nil)
	_ Linked             = (*LockedFIFO)(nil)
	_ Links              = (*Pool[int])(nil)
	_ Links              = (*LinkArray)(nil)
)
