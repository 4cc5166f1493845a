// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ringq provides a lock-free multi-producer single-consumer
// message queue built from ring decomposition: instead of one MPSC queue
// arbitrating producers against each other, a Channel hands each producer
// a dedicated SPSC Ring. Producers never contend with other producers;
// the single consumer multiplexes across the active rings.
//
// # Quick Start
//
// Bare rings, for a single fixed producer/consumer pair:
//
//	r := ringq.NewRing[Event](ringq.DefaultConfig())
//
// Channels, when more than one producer goroutine needs to feed one
// consumer:
//
//	ch := ringq.NewChannel[Event](ringq.DefaultConfig())
//	handle, err := ch.Register()
//
// Builder API, for fluent configuration:
//
//	ch := ringq.BuildChannel[Event](ringq.New().Preset(ringq.HighThroughput))
//	r := ringq.BuildRing[Event](ringq.New().RingBits(12).EnableMetrics(true))
//
// # Producer Path: Reserve/Commit
//
// The zero-copy path is reserve a region, write directly into it, commit:
//
//	res, err := r.Reserve(4)
//	if err == nil {
//	    n := copy(res.Slots(), batch)
//	    r.Commit(n)
//	}
//
// Reserve may hand back fewer slots than requested when the reservation
// would otherwise wrap past the buffer's physical end — commit what you
// got and reserve again for the rest. For the common case of "just copy
// these items in," Send wraps Reserve+copy+Commit:
//
//	n := r.Send(batch) // n <= len(batch)
//
// When a producer wants to wait rather than fail immediately, use
// ReserveWithBackoff, which spins then yields between attempts:
//
//	res, err := r.ReserveWithBackoff(4)
//	if errors.Is(err, ringq.ErrBackoffExhausted) {
//	    // consumer has been lagging for a while; caller decides what to do
//	}
//
// # Consumer Path: Readable/Advance, or ConsumeBatch
//
// The zero-copy read path mirrors the producer path:
//
//	view, err := r.Readable()
//	if err == nil {
//	    for i := range view.Slots() {
//	        process(&view.Slots()[i])
//	    }
//	    r.Advance(view.Len())
//	}
//
// The batch path is almost always preferable: it amortises the single
// release-store that publishes consumption over however many items were
// visible, instead of paying a store-buffer flush per item:
//
//	n := r.ConsumeBatch(func(e *Event) { process(e) })
//
// ConsumeUpTo bounds the batch size; Recv is the copy-based convenience
// consumer for callers that want values rather than a handler callback.
//
// # Channel Fan-In
//
//	ch := ringq.NewChannel[Event](ringq.DefaultConfig())
//
//	// Producers (event sources)
//	for _, src := range sources {
//	    go func(s Source) {
//	        handle, err := ch.Register()
//	        if err != nil {
//	            return // ErrClosed or ErrTooManyProducers
//	        }
//	        for ev := range s.Events() {
//	            for handle.Send([]Event{ev}) == 0 {
//	                // backpressure: retry, or use handle.ReserveWithBackoff
//	            }
//	        }
//	    }(src)
//	}
//
//	// Single consumer (aggregator)
//	for {
//	    n := ch.ConsumeAll(func(e *Event) { aggregate(e) })
//	    if n == 0 {
//	        time.Sleep(time.Microsecond)
//	    }
//	}
//
// ConsumeAll visits rings in id (registration) order within one call; a
// producer registered mid-drain is only guaranteed to be visited starting
// on the *next* call. ConsumeAllUpTo threads a shared budget across rings,
// so earlier producers are served first when the budget is tight.
//
// # Capacity
//
// Ring/Channel capacity is 1<<RingBits, fixed at construction — there is
// no dynamic resizing and no dynamic producer count past MaxProducers.
// Three presets cover the common cases:
//
//	ringq.LowLatency     // RingBits=12 (4K slots, L1-resident), 16 producers
//	ringq.Default        // RingBits=16 (64K slots), 16 producers
//	ringq.HighThroughput // RingBits=18 (256K slots), 32 producers
//
// # Error Handling
//
// Operations return ErrNoCapacity (ring full on Reserve, or ring empty on
// Readable) rather than blocking or panicking; ConsumeBatch and the other
// count-returning operations report an empty ring as a count of 0. This is an
// alias for the ecosystem's semantic would-block error, so
// [IsWouldBlock], [IsSemantic], and [IsNonFailure] classify it the same
// way calling code elsewhere in this ecosystem already expects:
//
//	n := handle.Send(batch)
//	if n < len(batch) {
//	    // handle partial send / backpressure
//	}
//
// Register returns ErrClosed or ErrTooManyProducers, both permanent for
// that channel. ReserveWithBackoff returns ErrBackoffExhausted, which
// errors.Is-matches ErrNoCapacity, carrying the additional hint that the
// consumer has been lagging for the whole backoff window rather than
// merely being momentarily full.
//
// # Metrics
//
// Construct with EnableMetrics to get relaxed atomic counters
// (messages/batches sent and received) via Ring.Metrics / Channel.Metrics.
// When disabled, no RMW is issued at all — not merely unread, genuinely
// not executed — so the feature costs nothing when off.
//
// # Thread Safety
//
// Exactly one producer goroutine and one consumer goroutine per Ring.
// Binding is a documented runtime contract, not enforced by the type
// system: the producer is whichever goroutine holds the ProducerHandle
// returned by Register (or, for a bare Ring, whichever goroutine calls
// Reserve/Commit/Send); the consumer is whichever goroutine calls the
// Ring's or Channel's consume operations. Violating single-producer or
// single-consumer discipline on one ring is undefined behavior, not a
// checked error — there are no hot-path checks for it.
//
// # Race Detection
//
// Go's race detector tracks explicit synchronization primitives (mutex,
// channel, WaitGroup) but not happens-before relationships established
// purely through acquire/release atomics on separate fields. This
// package's SPSC protocol is correct under the C/C++-style memory model
// it's built on, but -race may still report false positives on
// concurrent tests. Tests that would trip this are gated behind the
// RaceEnabled constant (see race.go/race_off.go) the same way the
// underlying atomics package's own test suite gates them.
package ringq
