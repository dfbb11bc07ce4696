// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package handoff

import (
	"math"

	"code.hybscloud.com/atomix"
)

// Index addresses a slot in a link table.
type Index uint32

// None is the empty link. Slot 0 of every link table is reserved for it.
const None Index = 0

// MaxCapacity is the largest number of slots a link table can address.
const MaxCapacity = math.MaxUint32 - 1

// Links reads and writes the intrusive next link of each slot.
//
// Implementations must make Next and SetNext atomic: a popper may read the
// link of a slot another goroutine is re-linking at the same moment. The
// stack's generation counter rejects such stale reads, so relaxed ordering
// is enough. [Pool] keeps the link inside each value slot; [LinkArray] keeps
// links beside caller-owned storage.
type Links interface {
	Next(i Index) Index
	SetNext(i, next Index)
}

// LinkArray is a standalone link table for slots 1..n.
//
// Use it when elements already live in a caller-owned array:
//
//	voices := make([]Voice, 65)        // slot 0 unused
//	links := handoff.NewLinkArray(64)
//	idle := handoff.NewStack(links)
//	for i := 1; i <= 64; i++ {
//	    idle.Push(handoff.Index(i))
//	}
type LinkArray struct {
	next []atomix.Uint64
}

// NewLinkArray creates a link table addressing slots 1..n.
// Panics if n < 1 or n > MaxCapacity.
func NewLinkArray(n int) *LinkArray {
	checkCapacity(n)
	return &LinkArray{next: make([]atomix.Uint64, n+1)}
}

// Len returns the number of addressable slots.
func (a *LinkArray) Len() int {
	return len(a.next) - 1
}

// Next returns the link of slot i.
func (a *LinkArray) Next(i Index) Index {
	return Index(a.next[i].LoadRelaxed())
}

// SetNext sets the link of slot i.
func (a *LinkArray) SetNext(i, next Index) {
	a.next[i].StoreRelaxed(uint64(next))
}

func checkCapacity(n int) {
	if n < 1 {
		panic("handoff: capacity must be >= 1")
	}
	if uint64(n) > MaxCapacity {
		panic("handoff: capacity exceeds MaxCapacity")
	}
}
