// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// Stack is an intrusive lock-free LIFO of slot indices.
//
// The head packs the top index and a generation counter into one 128-bit
// atomic entry. Every successful mutation advances the generation, so a
// compare-and-swap that raced with a pop/push cycle returning the same slot
// to the top fails instead of installing a stale link (the ABA hazard).
//
// Head format: [lo=top index | hi=generation]
//
// The 128-bit head needs a 16-byte aligned address. Go guarantees only
// 8-byte alignment for a struct field, and less once the compiler places a
// non-escaping Stack on a goroutine stack, so the head lives in a heap
// buffer of its own at an aligned offset. The zero Stack is not usable;
// create one with NewStack.
//
// Push, PushRange, TryPop and TryPopAll are safe for any number of
// concurrent goroutines. Successful mutations publish with release ordering
// and loads observe with acquire ordering, so a goroutine that pops a slot
// sees every write the pusher made to it before Push.
type Stack struct {
	head  *atomix.Uint128 // lo=top, hi=generation; points into headBuf
	links Links

	headBuf []byte
}

// headBufSize leaves room for alignment padding and keeps the head off the
// cache lines of neighboring allocations.
const headBufSize = 2 * atomix.CacheLineSize

// NewStack creates an empty stack over links.
// Panics if links is nil.
func NewStack(links Links) *Stack {
	s := &Stack{}
	s.init(links)
	return s
}

func (s *Stack) init(links Links) {
	if links == nil {
		panic("handoff: nil links")
	}
	s.links = links
	s.headBuf = make([]byte, headBufSize)
	_, s.head = atomix.PlaceAlignedUint128(s.headBuf, atomix.CacheLineSize-16)
}

// Push links slot i as the new top.
func (s *Stack) Push(i Index) {
	s.PushRange(i, i)
}

// PushRange links the chain first…last as the new top in one head update.
// The chain must already be linked from first to last through the stack's
// Links; last's link is overwritten.
func (s *Stack) PushRange(first, last Index) {
	assert(first != None && last != None, "push of None")
	sw := spin.Wait{}
	for {
		top, gen := s.head.LoadAcquire()
		s.links.SetNext(last, Index(top))
		if s.head.CompareAndSwapAcqRel(top, gen, uint64(first), gen+1) {
			return
		}
		sw.Once()
	}
}

// TryPop unlinks and returns the top slot.
// Returns (None, ErrWouldBlock) if the stack is empty.
func (s *Stack) TryPop() (Index, error) {
	sw := spin.Wait{}
	for {
		top, gen := s.head.LoadAcquire()
		if Index(top) == None {
			return None, ErrWouldBlock
		}
		// The link may be stale if top was popped and re-pushed since the
		// load above; the generation makes the CAS below fail in that case.
		next := s.links.Next(Index(top))
		if s.head.CompareAndSwapAcqRel(top, gen, uint64(next), gen+1) {
			return Index(top), nil
		}
		sw.Once()
	}
}

// TryPopAll detaches the whole chain and returns its first slot, leaving the
// stack empty. The chain is in LIFO order and ends with None.
// Returns (None, ErrWouldBlock) if the stack is empty.
func (s *Stack) TryPopAll() (Index, error) {
	sw := spin.Wait{}
	for {
		top, gen := s.head.LoadAcquire()
		if Index(top) == None {
			return None, ErrWouldBlock
		}
		if s.head.CompareAndSwapAcqRel(top, gen, uint64(None), gen+1) {
			return Index(top), nil
		}
		sw.Once()
	}
}

// Empty reports whether the stack was empty at the moment of the call.
func (s *Stack) Empty() bool {
	top, _ := s.head.LoadAcquire()
	return Index(top) == None
}
