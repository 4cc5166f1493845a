// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Reservation is a capability granting exclusive write access to a
// contiguous region of a Ring's buffer, returned by Reserve. The
// reservation's lifetime must not outlive the next mutating call
// (Reserve or Commit) on the same ring by the same producer — after
// Commit, the slots it described belong to the consumer.
type Reservation[T any] struct {
	slots []T
	pos   uint64
}

// Slots returns the writable view into the ring's buffer. len(Slots()) may
// be less than the n requested from Reserve — when the reservation would
// have wrapped past the physical end of the buffer, Reserve clips it
// there instead, and the caller either uses the shorter region or commits
// it and reserves again for the remainder.
func (r Reservation[T]) Slots() []T { return r.slots }

// Len returns len(r.Slots()).
func (r Reservation[T]) Len() int { return len(r.slots) }

// Pos returns the logical ring position (the tail value at Reserve time)
// the reservation starts at. Advisory; most callers never need it.
func (r Reservation[T]) Pos() uint64 { return r.pos }

// View is a read-only window into a Ring's buffer, returned by Readable.
// Its lifetime must not outlive the next mutating call (Readable or
// Advance) on the same ring by the same consumer.
type View[T any] struct {
	slots []T
	pos   uint64
}

// Slots returns the readable view into the ring's buffer, clipped at the
// buffer's physical end the same way Reservation.Slots is.
func (v View[T]) Slots() []T { return v.slots }

// Len returns len(v.Slots()).
func (v View[T]) Len() int { return len(v.slots) }

// Pos returns the logical ring position (the head value at Readable time)
// the view starts at.
func (v View[T]) Pos() uint64 { return v.pos }
