// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"strconv"
	"sync"
	"testing"

	"code.ringforge.dev/ringq"
)

// =============================================================================
// Ring Baselines
// =============================================================================

func BenchmarkRing_SendRecv(b *testing.B) {
	r := ringq.NewRing[int](ringq.HighThroughputConfig())
	var out [1]int

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v := i
		r.Send([]int{v})
		r.Recv(out[:])
	}
}

func BenchmarkRing_ReserveCommit(b *testing.B) {
	r := ringq.NewRing[int](ringq.HighThroughputConfig())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		res, err := r.Reserve(1)
		if err != nil {
			r.ConsumeBatch(func(*int) {})
			res, _ = r.Reserve(1)
		}
		res.Slots()[0] = i
		r.Commit(1)
	}
}

func BenchmarkRing_ConsumeBatch(b *testing.B) {
	r := ringq.NewRing[int](ringq.HighThroughputConfig())
	const batch = 256

	b.ResetTimer()
	for i := 0; i < b.N; i += batch {
		items := make([]int, batch)
		r.Send(items)
		r.ConsumeBatch(func(*int) {})
	}
}

// =============================================================================
// Channel Throughput
// =============================================================================

func BenchmarkChannel_SingleProducer(b *testing.B) {
	ch := ringq.NewChannel[int](ringq.HighThroughputConfig())
	handle, _ := ch.Register()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v := i
		for handle.Send([]int{v}) == 0 {
			ch.ConsumeAll(func(*int) {})
		}
	}
}

func BenchmarkChannel_MultiProducer(b *testing.B) {
	for _, np := range []int{2, 4, 8} {
		b.Run("producers="+strconv.Itoa(np), func(b *testing.B) {
			cfg := ringq.HighThroughputConfig()
			cfg.MaxProducers = np
			ch := ringq.NewChannel[int](cfg)

			var wg sync.WaitGroup
			perProducer := b.N / np
			if perProducer == 0 {
				perProducer = 1
			}

			b.ResetTimer()
			for p := 0; p < np; p++ {
				handle, err := ch.Register()
				if err != nil {
					continue
				}
				wg.Add(1)
				go func(h ringq.ProducerHandle[int]) {
					defer wg.Done()
					for i := 0; i < perProducer; i++ {
						v := i
						for h.Send([]int{v}) == 0 {
						}
					}
				}(handle)
			}

			drained := 0
			want := perProducer * np
			for drained < want {
				drained += int(ch.ConsumeAll(func(*int) {}))
			}
			wg.Wait()
		})
	}
}
