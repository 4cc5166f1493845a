// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq_test

import (
	"testing"

	"code.ringforge.dev/ringq"
)

func TestBackoffSpinThenYieldThenCompleted(t *testing.T) {
	var b ringq.Backoff

	if b.IsCompleted() {
		t.Fatal("fresh backoff should not be completed")
	}

	// SpinLimit+1 calls to Snooze stay in the spin phase (step<=SpinLimit
	// keeps incrementing); subsequent calls escalate to yielding.
	for i := 0; i <= ringq.SpinLimit; i++ {
		b.Snooze()
		if b.IsCompleted() {
			t.Fatalf("completed too early at spin step %d", i)
		}
	}

	for i := 0; i < ringq.YieldLimit-ringq.SpinLimit; i++ {
		if b.IsCompleted() {
			t.Fatalf("completed too early at yield step %d", i)
		}
		b.Snooze()
	}

	if !b.IsCompleted() {
		t.Fatal("expected completed after exhausting spin and yield phases")
	}
}

func TestBackoffReset(t *testing.T) {
	var b ringq.Backoff
	for !b.IsCompleted() {
		b.Snooze()
	}
	b.Reset()
	if b.IsCompleted() {
		t.Fatal("expected not completed after Reset")
	}
}

func TestBackoffSpinDoesNotAdvancePastLimit(t *testing.T) {
	var b ringq.Backoff
	for i := 0; i < ringq.SpinLimit+5; i++ {
		b.Spin()
	}
	// Spin alone never escalates past the spin limit's step ceiling, so
	// it never reports completed (only Snooze can cross into yielding).
	if b.IsCompleted() {
		t.Fatal("Spin-only usage should never complete")
	}
}
