// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// Ring is a single-producer single-consumer bounded ring buffer,
// parameterised over element type T and a construction-time power-of-2
// capacity.
//
// Based on Lamport's ring buffer with the cached-opposing-index
// optimization: the producer caches its last-seen view of head, and the
// consumer caches its last-seen view of tail, so that the hot path reads
// its own atomic and only refreshes the other side's cache when it looks
// like it might be out of room.
//
// Ring is the core of this package: see Channel for the MPSC façade that
// hands one Ring to each registered producer.
//
// Field grouping is load-bearing. tail and cachedHead are touched only by
// the producer on the hot path (the consumer reads tail only via
// acquire-loads: on Readable's slow path, and once per
// ConsumeBatch/ConsumeUpTo call); head and cachedTail are touched only by
// the consumer. Each group sits in its own pad128-isolated region so
// that neither side's writes ever share a cache line, let alone an
// adjacent pair of lines a hardware prefetcher might fetch together, with
// the other side's. active/closed/metrics are cold and share a third
// region; buffer's slice header gets a fourth.
type Ring[T any] struct {
	_          pad128
	tail       atomix.Uint64 // producer-written, consumer-read (commit count)
	cachedHead uint64        // producer's stale view of head

	_          pad128
	head       atomix.Uint64 // consumer-written, producer-read (consumed count)
	cachedTail uint64        // consumer's stale view of tail

	_       pad128
	active  atomix.Bool
	closed  atomix.Bool
	metrics ringMetrics

	_             pad128
	buffer        []T
	mask          uint64
	ringBits      uint8
	enableMetrics bool
}

// NewRing constructs a Ring[T] from cfg. Panics if cfg.RingBits would
// yield a capacity below 2 (i.e. RingBits == 0).
func NewRing[T any](cfg Config) *Ring[T] {
	if cfg.RingBits < 1 {
		panic("ringq: RingBits must be >= 1")
	}
	n := uint64(1) << cfg.RingBits
	return &Ring[T]{
		buffer:        make([]T, n),
		mask:          n - 1,
		ringBits:      cfg.RingBits,
		enableMetrics: cfg.EnableMetrics,
	}
}

// Capacity returns the ring's fixed capacity (1<<RingBits).
func (q *Ring[T]) Capacity() int { return int(q.mask + 1) }

// Mask returns capacity-1, the bitmask used to translate a logical
// position into a buffer index.
func (q *Ring[T]) Mask() uint64 { return q.mask }

// Len returns an advisory, non-synchronising snapshot of the number of
// items currently held in the ring.
func (q *Ring[T]) Len() uint64 {
	tail := q.tail.LoadRelaxed()
	head := q.head.LoadRelaxed()
	return tail - head
}

// IsEmpty reports an advisory snapshot of whether the ring currently holds
// no items.
func (q *Ring[T]) IsEmpty() bool {
	return q.tail.LoadRelaxed() == q.head.LoadRelaxed()
}

// IsFull reports an advisory snapshot of whether the ring is at capacity.
func (q *Ring[T]) IsFull() bool {
	return q.Len() >= q.mask+1
}

// IsClosed reports whether Close has been called. Acquire-load: once true,
// it is visible to every subsequent caller and never reverts.
func (q *Ring[T]) IsClosed() bool {
	return q.closed.LoadAcquire()
}

// Active reports whether a producer handle has been bound to this ring.
func (q *Ring[T]) Active() bool {
	return q.active.LoadAcquire()
}

// Reserve requests a contiguous writable region of up to n slots.
//
// Fails (returns the zero Reservation and ErrNoCapacity) if n is zero,
// n exceeds capacity, or the ring does not currently have n free slots.
// On success the returned Reservation may hold fewer than n slots: a
// reservation never wraps past the buffer's physical end, so a producer
// that needs to write across the wrap point must commit what it got and
// Reserve again for the remainder.
func (q *Ring[T]) Reserve(n int) (Reservation[T], error) {
	capacity := q.mask + 1
	if n <= 0 || uint64(n) > capacity {
		return Reservation[T]{}, ErrNoCapacity
	}

	tail := q.tail.LoadRelaxed()
	space := capacity - (tail - q.cachedHead)
	if space > capacity {
		space = 0 // saturate: wrap-aware subtraction went negative
	}
	if space < uint64(n) {
		q.cachedHead = q.head.LoadAcquire()
		space = capacity - (tail - q.cachedHead)
		if space > capacity {
			space = 0
		}
		if space < uint64(n) {
			return Reservation[T]{}, ErrNoCapacity
		}
	}

	start := tail & q.mask
	avail := minInt(n, int(capacity-start))
	return Reservation[T]{
		slots: q.buffer[start : start+uint64(avail)],
		pos:   tail,
	}, nil
}

// ReserveWithBackoff retries Reserve(n), snoozing a Backoff between
// attempts, until either a reservation succeeds, the ring is observed
// closed, or the backoff completes (ErrBackoffExhausted). A closed ring is
// reported as ErrNoCapacity, same as plain exhaustion — Ring has no
// separate "closed" producer error, only Channel.Register does.
func (q *Ring[T]) ReserveWithBackoff(n int) (Reservation[T], error) {
	var bo Backoff
	for {
		res, err := q.Reserve(n)
		if err == nil {
			return res, nil
		}
		if q.IsClosed() {
			return Reservation[T]{}, ErrNoCapacity
		}
		bo.Snooze()
		if bo.IsCompleted() {
			return Reservation[T]{}, ErrBackoffExhausted
		}
	}
}

// Commit publishes n written slots from the most recent Reservation,
// making them visible to the consumer via a single release-store of
// tail+n. n must not exceed that reservation's length — over-committing or
// double-committing is caller error (undefined behavior; see package
// docs).
func (q *Ring[T]) Commit(n int) {
	tail := q.tail.LoadRelaxed()
	q.tail.StoreRelease(tail + uint64(n))
	if q.enableMetrics {
		q.metrics.onCommit(uint64(n))
	}
}

// Send is a convenience wrapper around Reserve+copy+Commit: it reserves
// up to len(items) slots, copies min(len(items), reservation length) of
// them in, commits, and returns the copied count. Returns 0 if Reserve
// fails outright.
func (q *Ring[T]) Send(items []T) int {
	if len(items) == 0 {
		return 0
	}
	res, err := q.Reserve(len(items))
	if err != nil {
		return 0
	}
	n := copy(res.Slots(), items)
	q.Commit(n)
	return n
}

// Readable requests a view of the items currently available to the
// consumer. Returns the zero View and ErrNoCapacity if the ring is empty.
// Like Reserve, a view never wraps past the buffer's physical end.
func (q *Ring[T]) Readable() (View[T], error) {
	head := q.head.LoadRelaxed()
	avail := q.cachedTail - head
	if avail == 0 {
		q.cachedTail = q.tail.LoadAcquire()
		avail = q.cachedTail - head
		if avail == 0 {
			return View[T]{}, ErrNoCapacity
		}
	}

	start := head & q.mask
	n := minInt(int(avail), int(q.mask+1-start))
	return View[T]{
		slots: q.buffer[start : start+uint64(n)],
		pos:   head,
	}, nil
}

// Advance releases n consumed slots back to the producer via a
// release-store of head+n. n must not exceed the length of the most
// recent Readable view.
func (q *Ring[T]) Advance(n int) {
	head := q.head.LoadRelaxed()
	q.head.StoreRelease(head + uint64(n))
	if q.enableMetrics {
		q.metrics.onAdvance(uint64(n))
	}
}

// ConsumeBatch is the fast consumer path: it visits every item currently
// visible between head and tail, invoking handler on each, then publishes
// the entire batch with a single release-store of head. Amortising the
// release-store (and the store-buffer flush, and the producer's
// cached-head cache-line invalidation it causes) over a large batch is the
// single largest throughput lever in the system. Returns the number of
// items visited.
func (q *Ring[T]) ConsumeBatch(handler func(*T)) int {
	head := q.head.LoadRelaxed()
	tail := q.tail.LoadAcquire()
	if tail == head {
		return 0
	}
	for p := head; p != tail; p++ {
		handler(&q.buffer[p&q.mask])
	}
	n := tail - head
	q.head.StoreRelease(tail)
	if q.enableMetrics {
		q.metrics.onAdvance(n)
	}
	return int(n)
}

// ConsumeUpTo behaves like ConsumeBatch but visits at most max items,
// still publishing the visited count with a single release-store.
func (q *Ring[T]) ConsumeUpTo(max int, handler func(*T)) int {
	head := q.head.LoadRelaxed()
	tail := q.tail.LoadAcquire()
	avail := tail - head
	if avail == 0 || max <= 0 {
		return 0
	}
	n := uint64(minInt(max, int(avail)))
	end := head + n
	for p := head; p != end; p++ {
		handler(&q.buffer[p&q.mask])
	}
	q.head.StoreRelease(end)
	if q.enableMetrics {
		q.metrics.onAdvance(n)
	}
	return int(n)
}

// Recv is the non-batched convenience consumer: it copies up to len(out)
// items into out via Readable/Advance and returns the count copied.
func (q *Ring[T]) Recv(out []T) int {
	if len(out) == 0 {
		return 0
	}
	view, err := q.Readable()
	if err != nil {
		return 0
	}
	n := copy(out, view.Slots())
	q.Advance(n)
	return n
}

// Close irrevocably marks the ring closed. Producers observing
// IsClosed() via their slow path should stop calling Reserve, but the
// ring may still hold un-drained items — the consumer should keep draining
// until IsEmpty() && IsClosed(). Calling Close repeatedly is equivalent to
// calling it once.
func (q *Ring[T]) Close() {
	q.closed.StoreRelease(true)
}

// Metrics returns a snapshot of the ring's optional counters. Reads as
// all-zero when the ring was constructed with EnableMetrics false.
func (q *Ring[T]) Metrics() RingMetrics {
	return q.metrics.snapshot()
}
