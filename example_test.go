// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples that hand data across goroutines through
// atomix-published indices and cursors. Go's race detector cannot see that
// ordering; the examples are correct and excluded from race testing.

package handoff_test

import (
	"fmt"
	"sync"

	"code.hybscloud.com/handoff"
	"code.hybscloud.com/iox"
)

// ExampleNewRing streams audio frames from a decoder goroutine to a render
// loop, reading each block in place.
func ExampleNewRing() {
	r := handoff.NewRing[float32](8)

	done := make(chan struct{})
	go func() {
		defer close(done)
		backoff := iox.Backoff{}
		for _, block := range [][]float32{{0.1, 0.2, 0.3}, {0.4, 0.5}} {
			for handoff.IsWouldBlock(r.EnqueueBatch(block)) {
				backoff.Wait()
			}
			backoff.Reset()
		}
	}()
	<-done

	s := r.Peek()
	var sum float32
	for _, v := range s.All() {
		sum += *v
	}
	r.Consume(s)
	fmt.Printf("%d samples, sum %.1f\n", s.Len(), sum)

	// Output:
	// 5 samples, sum 1.5
}

// ExampleNewFIFO passes parameter edits from a control goroutine to a
// render loop through pool slots.
func ExampleNewFIFO() {
	type Edit struct {
		Param int
		Value float64
	}

	pool := handoff.NewPool[Edit](16)
	q := handoff.NewFIFO(pool)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for p := range 3 {
			i, err := pool.Alloc()
			if err != nil {
				return
			}
			*pool.At(i) = Edit{Param: p, Value: float64(p) / 4}
			q.Push(i)
		}
	}()
	wg.Wait()

	for {
		i, err := q.TryPop()
		if err != nil {
			break
		}
		e := *pool.At(i)
		pool.Free(i)
		fmt.Printf("param %d = %.2f\n", e.Param, e.Value)
	}

	// Output:
	// param 0 = 0.00
	// param 1 = 0.25
	// param 2 = 0.50
}

// ExampleStack keeps idle voices in caller-owned storage; the most recently
// released voice is reused first.
func ExampleStack() {
	voices := make([]string, 4) // slot 0 unused
	voices[1], voices[2], voices[3] = "sine", "saw", "square"

	idle := handoff.NewStack(handoff.NewLinkArray(3))
	for i := handoff.Index(1); i <= 3; i++ {
		idle.Push(i)
	}

	i, _ := idle.TryPop()
	fmt.Println("start", voices[i])
	idle.Push(i)

	j, _ := idle.TryPop()
	fmt.Println("start", voices[j])

	// Output:
	// start square
	// start square
}

// ExampleBuild selects the container from declared constraints.
func ExampleBuild() {
	spsc := handoff.Build[int](handoff.New(4).SingleProducer().SingleConsumer())
	mpmc := handoff.Build[int](handoff.New(4))
	stack := handoff.Build[int](handoff.New(4).LIFO())

	_, isRing := spsc.(*handoff.Ring[int])
	_, isPooled := mpmc.(*handoff.Pooled[int])
	fmt.Println("ring", isRing, "pooled", isPooled)

	for v := range 3 {
		stack.Enqueue(&v)
	}
	v, _ := stack.Dequeue()
	fmt.Println("top", v)

	// Output:
	// ring true pooled true
	// top 2
}

// ExampleRing_EnqueueFunc constructs elements directly in ring memory.
func ExampleRing_EnqueueFunc() {
	r := handoff.NewRing[[2]float32](4)

	err := r.EnqueueFunc(2, func(s handoff.Span[[2]float32]) {
		for i, frame := range s.All() {
			frame[0], frame[1] = float32(i), float32(i)*10
		}
	})
	fmt.Println(err)

	dst := make([][2]float32, 2)
	fmt.Println(r.DequeueBatch(dst), dst)

	// Output:
	// <nil>
	// <nil> [[0 0] [1 10]]
}

// ExampleIsWouldBlock tells a full queue apart from an impossible batch.
func ExampleIsWouldBlock() {
	r := handoff.NewRing[int](2)

	fmt.Println(handoff.IsWouldBlock(r.EnqueueBatch([]int{1, 2})))
	fmt.Println(handoff.IsWouldBlock(r.EnqueueBatch([]int{3})))
	err := r.EnqueueBatch([]int{1, 2, 3})
	fmt.Println(handoff.IsWouldBlock(err), err)

	// Output:
	// false
	// true
	// false handoff: batch exceeds ring capacity
}
