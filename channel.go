// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// Channel is the MPSC façade: a fixed array of Ring[T], one dedicated to
// each registered producer, plus a registration counter and a closure
// flag. It eliminates producer-producer contention by construction —
// producers never touch a shared tail or CAS against each other, they
// each own a private SPSC ring that only they and the single consumer
// touch.
//
// The cost of ring decomposition versus a monolithic MPSC is
// O(producerCount) drain work per ConsumeAll pass, and "fairness" that
// amounts to whoever registered first gets visited first within a single
// pass. For a single consumer thread that can walk a handful of rings in
// microseconds, this is a good trade against CASing a shared tail across
// many producer cores.
type Channel[T any] struct {
	_             pad128
	producerCount atomix.Uint64
	_             pad128
	closed        atomix.Bool
	_             pad128
	rings         []Ring[T]
	maxProducers  int
}

// NewChannel constructs a Channel[T] with cfg.MaxProducers rings, each of
// capacity 1<<cfg.RingBits. The backing array is allocated once, up
// front — Channel never reallocates or moves a ring after construction,
// so a ProducerHandle's reference into it stays valid for the channel's
// lifetime.
func NewChannel[T any](cfg Config) *Channel[T] {
	if cfg.MaxProducers < 1 {
		panic("ringq: MaxProducers must be >= 1")
	}
	if cfg.RingBits < 1 {
		panic("ringq: RingBits must be >= 1")
	}
	rings := make([]Ring[T], cfg.MaxProducers)
	n := uint64(1) << cfg.RingBits
	for i := range rings {
		rings[i] = Ring[T]{
			buffer:        make([]T, n),
			mask:          n - 1,
			ringBits:      cfg.RingBits,
			enableMetrics: cfg.EnableMetrics,
		}
	}
	return &Channel[T]{
		rings:        rings,
		maxProducers: cfg.MaxProducers,
	}
}

// ProducerHandle is returned by Register. It is bound to exactly one ring
// for its lifetime; all of its methods forward to that ring. A handle is
// only safe to use from the single goroutine that owns it (the channel's
// single-producer-per-ring contract is documented, not enforced by the
// type system — see package docs).
type ProducerHandle[T any] struct {
	ring *Ring[T]
	id   int
}

// ID returns the handle's ring index within the channel, in [0,
// MaxProducers). Ids are assigned in registration order.
func (h ProducerHandle[T]) ID() int { return h.id }

// Reserve forwards to the bound ring's Reserve.
func (h ProducerHandle[T]) Reserve(n int) (Reservation[T], error) {
	return h.ring.Reserve(n)
}

// ReserveWithBackoff forwards to the bound ring's ReserveWithBackoff.
func (h ProducerHandle[T]) ReserveWithBackoff(n int) (Reservation[T], error) {
	return h.ring.ReserveWithBackoff(n)
}

// Commit forwards to the bound ring's Commit.
func (h ProducerHandle[T]) Commit(n int) {
	h.ring.Commit(n)
}

// Send forwards to the bound ring's Send.
func (h ProducerHandle[T]) Send(items []T) int {
	return h.ring.Send(items)
}

// IsClosed forwards to the bound ring's IsClosed.
func (h ProducerHandle[T]) IsClosed() bool {
	return h.ring.IsClosed()
}

// Register binds a new producer to the next free ring.
//
// Registration uses fetch-and-add on producerCount so concurrent Register
// calls from different goroutines never race for the same ring: each
// caller that successfully claims index i (i < MaxProducers) gets rings[i]
// exclusively. A caller that claims an out-of-range index immediately
// gives it back with a matching fetch-and-sub before failing, so
// producerCount exceeds MaxProducers only in the window between those two
// operations; drain passes clamp it to MaxProducers (see activeCount).
//
// Fails with ErrClosed if the channel was already closed at the time of
// the call (checked before incrementing), or ErrTooManyProducers if
// MaxProducers has been reached.
func (ch *Channel[T]) Register() (ProducerHandle[T], error) {
	if ch.closed.LoadAcquire() {
		return ProducerHandle[T]{}, ErrClosed
	}

	prev := ch.producerCount.AddAcqRel(1) - 1
	if prev >= uint64(ch.maxProducers) {
		ch.producerCount.AddAcqRel(^uint64(0)) // fetch-and-sub 1
		return ProducerHandle[T]{}, ErrTooManyProducers
	}

	ring := &ch.rings[prev]
	ring.active.StoreRelease(true)
	return ProducerHandle[T]{ring: ring, id: int(prev)}, nil
}

// ProducerCount returns the number of producers registered so far.
func (ch *Channel[T]) ProducerCount() int {
	return int(ch.producerCount.LoadRelaxed())
}

// IsClosed reports whether Close has been called.
func (ch *Channel[T]) IsClosed() bool {
	return ch.closed.LoadAcquire()
}

// activeCount returns a snapshot of producerCount, clamped to
// maxProducers, for use as the upper bound of a drain pass. A producer
// registered concurrently with a drain call is only guaranteed to be
// visited on the *next* call — see package docs.
func (ch *Channel[T]) activeCount() int {
	n := int(ch.producerCount.LoadRelaxed())
	if n > ch.maxProducers {
		n = ch.maxProducers
	}
	return n
}

// Recv is the non-batched drain fallback: for each active ring in id
// order, it calls Ring.Recv into the remaining slice of out until out is
// full or every ring has been visited once. Returns the total copied.
func (ch *Channel[T]) Recv(out []T) int {
	total := 0
	n := ch.activeCount()
	for i := 0; i < n && total < len(out); i++ {
		total += ch.rings[i].Recv(out[total:])
	}
	return total
}

// ConsumeAll drains every active ring with a single ConsumeBatch call
// each, visiting rings in id order, and returns the summed count.
//
// Rings are visited in a single pass: a producer's commits that land
// after this ring was already visited in this call are seen on the next
// ConsumeAll call, not this one.
func (ch *Channel[T]) ConsumeAll(handler func(*T)) uint64 {
	var total uint64
	n := ch.activeCount()
	for i := 0; i < n; i++ {
		total += uint64(ch.rings[i].ConsumeBatch(handler))
	}
	return total
}

// ConsumeAllUpTo drains active rings in id order with a shared budget of
// max total items: earlier (lower-id) rings are served first, and the
// pass stops once the budget is exhausted, even if later rings still hold
// items.
func (ch *Channel[T]) ConsumeAllUpTo(max uint64, handler func(*T)) uint64 {
	var total uint64
	n := ch.activeCount()
	for i := 0; i < n && total < max; i++ {
		remaining := max - total
		total += uint64(ch.rings[i].ConsumeUpTo(int(remaining), handler))
	}
	return total
}

// Close irrevocably marks the channel closed, then closes every active
// ring. Producers learn of closure cooperatively via IsClosed; the
// consumer should keep draining until every active ring is empty.
func (ch *Channel[T]) Close() {
	ch.closed.StoreRelease(true)
	n := ch.activeCount()
	for i := 0; i < n; i++ {
		ch.rings[i].Close()
	}
}

// Metrics aggregates the optional per-ring counters of every active ring,
// plus channel-wide totals. Reads as all-zero when the channel was
// constructed with EnableMetrics false.
func (ch *Channel[T]) Metrics() ChannelMetrics {
	n := ch.activeCount()
	out := ChannelMetrics{Rings: make([]RingMetrics, n)}
	for i := 0; i < n; i++ {
		m := ch.rings[i].Metrics()
		out.Rings[i] = m
		out.MessagesSent += m.MessagesSent
		out.MessagesReceived += m.MessagesReceived
	}
	return out
}
