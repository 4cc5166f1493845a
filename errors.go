// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import (
	"errors"
	"fmt"

	"code.hybscloud.com/iox"
)

// ErrNoCapacity indicates Reserve could not produce a reservation because
// the ring is full, or because n was zero or exceeded the ring's capacity.
//
// It is a transient, control-flow signal, not a failure — the caller
// retries or gives up. This is an alias for [iox.ErrWouldBlock] for
// ecosystem consistency with other lock-free producer/consumer code
// built on iox's error taxonomy.
var ErrNoCapacity = iox.ErrWouldBlock

// ErrClosed is returned by Register when the channel has already been
// closed. It is permanent for that channel.
var ErrClosed = errors.New("ringq: channel closed")

// ErrTooManyProducers is returned by Register once producerCount has
// reached the channel's configured MaxProducers. It is permanent for that
// channel.
var ErrTooManyProducers = errors.New("ringq: too many producers")

// errBackoffExhausted wraps ErrNoCapacity so that ReserveWithBackoff's
// failure is equivalent to a plain NoCapacity for errors.Is purposes,
// while still printing a more specific message.
var errBackoffExhausted = fmt.Errorf("ringq: backoff exhausted: %w", ErrNoCapacity)

// ErrBackoffExhausted is returned by ReserveWithBackoff when the backoff
// state machine completes without a successful reservation. It carries the
// hint that the consumer is lagging, but errors.Is(err, ErrNoCapacity)
// still reports true.
var ErrBackoffExhausted = errBackoffExhausted

// IsWouldBlock reports whether err indicates the operation would block
// (ring full on Reserve, ring empty on Readable). Delegates to
// [iox.IsWouldBlock] for wrapped-error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control-flow signal rather than a
// failure. Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition:
// nil, or a wrapped ErrNoCapacity/ErrBackoffExhausted. Delegates to
// [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}
