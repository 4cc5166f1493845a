// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"runtime"

	"code.hybscloud.com/spin"
)

// SpinLimit is the last step value at which Snooze still busy-spins; from a
// fresh Backoff, the first SpinLimit+1 Snooze calls spin and later ones
// yield the thread to the OS scheduler.
const SpinLimit = 6

// YieldLimit is the last step value at which IsCompleted still reports
// false; from a fresh Backoff, IsCompleted reports true after YieldLimit+1
// Snooze calls.
const YieldLimit = 10

// Backoff is a two-phase spin/yield cursor for callers that want to wait
// on a full or empty Ring without blocking on a condvar or semaphore.
//
// The phases: bounded busy spinning (via Spin) covers short contention
// windows where the other side of the ring is merely a few instructions
// behind; once that's exhausted, Snooze escalates to runtime.Gosched() so
// a genuinely slow or stalled peer doesn't burn a core; once that's
// exhausted too, IsCompleted reports true and the caller decides whether
// to retry, close, or give up.
//
// A Backoff is not safe for concurrent use — each goroutine that waits
// should hold its own value.
type Backoff struct {
	step uint32
}

// Spin executes 1<<min(step, SpinLimit) CPU pause hints and, while
// step <= SpinLimit, advances step.
func (b *Backoff) Spin() {
	n := 1 << minInt(int(b.step), SpinLimit)
	var sw spin.Wait
	for i := 0; i < n; i++ {
		sw.Once()
	}
	if b.step <= SpinLimit {
		b.step++
	}
}

// Snooze behaves like Spin while step <= SpinLimit; once past that
// threshold it yields the thread via runtime.Gosched() instead, advancing
// step while step <= YieldLimit.
func (b *Backoff) Snooze() {
	if b.step <= SpinLimit {
		b.Spin()
		return
	}
	runtime.Gosched()
	if b.step <= YieldLimit {
		b.step++
	}
}

// IsCompleted reports whether the backoff has exhausted both the spin and
// the yield phases.
func (b *Backoff) IsCompleted() bool {
	return b.step > YieldLimit
}

// Reset returns the backoff to its initial state.
func (b *Backoff) Reset() {
	b.step = 0
}
