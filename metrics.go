// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

import "code.hybscloud.com/atomix"

// ringMetrics holds the optional per-ring counters. All fields are
// updated with relaxed atomic RMW, and only when the owning Ring was
// constructed with EnableMetrics — when disabled, the onCommit/onAdvance
// calls are skipped entirely, so the cost of the feature is genuinely
// zero rather than merely unread.
type ringMetrics struct {
	_                pad128
	messagesSent     atomix.Uint64
	messagesReceived atomix.Uint64
	batchesSent      atomix.Uint64
	batchesReceived  atomix.Uint64
}

// RingMetrics is a point-in-time snapshot of a Ring's optional counters.
// It reads as all-zero when the ring was constructed with metrics
// disabled.
type RingMetrics struct {
	MessagesSent     uint64
	MessagesReceived uint64
	BatchesSent      uint64
	BatchesReceived  uint64
}

func (m *ringMetrics) snapshot() RingMetrics {
	return RingMetrics{
		MessagesSent:     m.messagesSent.LoadRelaxed(),
		MessagesReceived: m.messagesReceived.LoadRelaxed(),
		BatchesSent:      m.batchesSent.LoadRelaxed(),
		BatchesReceived:  m.batchesReceived.LoadRelaxed(),
	}
}

func (m *ringMetrics) onCommit(n uint64) {
	m.messagesSent.AddRelaxed(n)
	m.batchesSent.AddRelaxed(1)
}

func (m *ringMetrics) onAdvance(n uint64) {
	m.messagesReceived.AddRelaxed(n)
	m.batchesReceived.AddRelaxed(1)
}

// ChannelMetrics aggregates RingMetrics across every ring a Channel has
// handed to a registered producer (one entry per ring, in id order), plus
// the channel-wide totals.
type ChannelMetrics struct {
	Rings            []RingMetrics
	MessagesSent     uint64
	MessagesReceived uint64
}
