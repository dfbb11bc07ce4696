// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build handoffdebug

package handoff_test

import (
	"strings"
	"testing"

	"code.hybscloud.com/handoff"
)

// mustPanic runs fn and checks it panics with a message containing want.
func mustPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", want)
		}
		if msg, _ := r.(string); !strings.Contains(msg, want) {
			t.Fatalf("panic: got %v, want message containing %q", r, want)
		}
	}()
	fn()
}

func TestDebugChecksEnabled(t *testing.T) {
	if !handoff.DebugChecks {
		t.Fatal("DebugChecks: got false under handoffdebug")
	}
}

func TestDebugPushNone(t *testing.T) {
	links := handoff.NewLinkArray(2)
	mustPanic(t, "push of None", func() { handoff.NewStack(links).Push(handoff.None) })
	mustPanic(t, "push of None", func() { handoff.NewFIFO(links).Push(handoff.None) })
	mustPanic(t, "push of None", func() { handoff.NewLockedFIFO(links).Push(handoff.None) })
}

// TestDebugOverlappingProducers re-enters the producer side from inside a
// fill callback, which is what a second producer goroutine would do.
func TestDebugOverlappingProducers(t *testing.T) {
	r := handoff.NewRing[int](4)
	mustPanic(t, "concurrent Ring producer access", func() {
		r.EnqueueFunc(1, func(handoff.Span[int]) {
			v := 1
			r.Enqueue(&v)
		})
	})

	// The guard is released on the way out; the ring stays usable.
	v := 2
	if err := r.Enqueue(&v); err != nil {
		t.Fatalf("Enqueue after recovered misuse: %v", err)
	}
}

func TestDebugOverlappingConsumers(t *testing.T) {
	r := handoff.NewRing[int](4)
	if err := r.EnqueueBatch([]int{1, 2}); err != nil {
		t.Fatalf("EnqueueBatch: %v", err)
	}
	s := r.Peek()
	mustPanic(t, "concurrent Ring consumer access", func() {
		r.ConsumeRange(s.Begin(), s.End(), func(*int) { r.Peek() })
	})
}

func TestDebugResizeWhileInUse(t *testing.T) {
	r := handoff.NewRing[int](4)
	mustPanic(t, "concurrent Ring.Resize access", func() {
		r.EnqueueFunc(1, func(handoff.Span[int]) { r.Resize(8) })
	})
}

func TestDebugConsumeOutsidePeek(t *testing.T) {
	r := handoff.NewRing[int](4)
	if err := r.EnqueueBatch([]int{1, 2, 3}); err != nil {
		t.Fatalf("EnqueueBatch: %v", err)
	}
	s := r.Peek()

	mustPanic(t, "consume must start at the dequeue cursor", func() {
		r.ConsumeRange(s.Begin().Add(1), s.End(), nil)
	})
	mustPanic(t, "consume beyond the peeked span", func() {
		r.ConsumeRange(s.Begin(), s.End().Add(1), nil)
	})

	other := handoff.NewRing[int](4)
	if err := other.EnqueueBatch([]int{9}); err != nil {
		t.Fatalf("EnqueueBatch: %v", err)
	}
	o := other.Peek()
	mustPanic(t, "iterator from another ring", func() {
		r.ConsumeRange(o.Begin(), o.End(), nil)
	})

	// Nothing was consumed by the rejected calls.
	if got := r.Peek().Len(); got != 3 {
		t.Fatalf("Peek after rejected consumes: got %d, want 3", got)
	}
}
