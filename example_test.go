// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

// This file contains examples that use atomix concurrency primitives and
// concurrent goroutines. They trigger false positives with Go's race
// detector because lock-free ring synchronization uses atomic sequences
// the detector cannot see. The examples are correct; they're excluded
// from race testing.

package ringq_test

import (
	"fmt"
	"sync"

	"code.hybscloud.com/iox"
	"code.ringforge.dev/ringq"
)

// ExampleRing demonstrates a basic single-producer single-consumer ring
// used directly, without a Channel.
func ExampleRing() {
	r := ringq.NewRing[int](ringq.DefaultConfig())

	for i := 1; i <= 5; i++ {
		r.Send([]int{i * 10})
	}

	r.ConsumeBatch(func(v *int) {
		fmt.Println(*v)
	})

	// Output:
	// 10
	// 20
	// 30
	// 40
	// 50
}

// ExampleChannel demonstrates fan-in from multiple producer goroutines
// into a single consumer via Channel.
func ExampleChannel() {
	ch := ringq.NewChannel[string](ringq.DefaultConfig())

	var wg sync.WaitGroup
	for p := 0; p < 3; p++ {
		handle, err := ch.Register()
		if err != nil {
			continue
		}
		wg.Add(1)
		go func(id int, h ringq.ProducerHandle[string]) {
			defer wg.Done()
			bo := iox.Backoff{}
			msg := fmt.Sprintf("msg from producer %d", id)
			for h.Send([]string{msg}) == 0 {
				bo.Wait()
			}
		}(p, handle)
	}
	wg.Wait()

	for {
		n := 0
		ch.ConsumeAll(func(msg *string) {
			fmt.Println(*msg)
			n++
		})
		if n == 0 {
			break
		}
	}

	// Unordered output:
	// msg from producer 0
	// msg from producer 1
	// msg from producer 2
}

// Example_pipeline demonstrates a multi-stage pipeline built from chained
// Ring values: generate, double, collect.
func Example_pipeline() {
	stage1to2 := ringq.NewRing[int](ringq.Config{RingBits: 4})
	stage2to3 := ringq.NewRing[int](ringq.Config{RingBits: 4})

	var wg sync.WaitGroup
	var results []int
	var mu sync.Mutex

	wg.Add(1)
	go func() {
		defer wg.Done()
		bo := ringq.Backoff{}
		for i := 1; i <= 5; i++ {
			for stage1to2.Send([]int{i}) == 0 {
				bo.Snooze()
			}
			bo.Reset()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		processed := 0
		boRecv, boSend := ringq.Backoff{}, ringq.Backoff{}
		for processed < 5 {
			var v [1]int
			n := stage1to2.Recv(v[:])
			if n == 0 {
				boRecv.Snooze()
				continue
			}
			boRecv.Reset()
			doubled := v[0] * 2
			for stage2to3.Send([]int{doubled}) == 0 {
				boSend.Snooze()
			}
			boSend.Reset()
			processed++
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		bo := ringq.Backoff{}
		for {
			mu.Lock()
			done := len(results) >= 5
			mu.Unlock()
			if done {
				return
			}
			var v [1]int
			n := stage2to3.Recv(v[:])
			if n == 0 {
				bo.Snooze()
				continue
			}
			bo.Reset()
			mu.Lock()
			results = append(results, v[0])
			mu.Unlock()
		}
	}()

	wg.Wait()

	for i, v := range results {
		fmt.Printf("stage output %d: %d\n", i, v)
	}

	// Output:
	// stage output 0: 2
	// stage output 1: 4
	// stage output 2: 6
	// stage output 3: 8
	// stage output 4: 10
}
