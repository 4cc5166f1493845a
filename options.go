// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ringq

// Preset selects one of the built-in Config profiles.
type Preset int

const (
	// Default targets general-purpose throughput: 64K slots per ring, 16
	// producers per channel.
	Default Preset = iota
	// LowLatency targets an L1-resident ring at the cost of capacity:
	// 4K slots per ring, 16 producers per channel.
	LowLatency
	// HighThroughput targets maximum sustained throughput at the cost of
	// memory: 256K slots per ring, 32 producers per channel.
	HighThroughput
)

// Config configures Ring and Channel construction.
//
// RingBits is log2 of the ring's capacity (capacity = 1<<RingBits).
// MaxProducers bounds the number of producers a Channel will accept.
// EnableMetrics turns on the relaxed atomic counters returned by Metrics.
type Config struct {
	RingBits      uint8
	MaxProducers  int
	EnableMetrics bool
}

// DefaultConfig returns the Default preset: RingBits=16 (64K slots),
// MaxProducers=16, metrics disabled.
func DefaultConfig() Config {
	return Config{RingBits: 16, MaxProducers: 16}
}

// LowLatencyConfig returns the LowLatency preset: RingBits=12 (4K slots,
// L1-resident), MaxProducers=16, metrics disabled.
func LowLatencyConfig() Config {
	return configForPreset(LowLatency)
}

// HighThroughputConfig returns the HighThroughput preset: RingBits=18
// (256K slots), MaxProducers=32, metrics disabled.
func HighThroughputConfig() Config {
	return configForPreset(HighThroughput)
}

// configForPreset returns the Config for a named preset.
func configForPreset(p Preset) Config {
	switch p {
	case LowLatency:
		return Config{RingBits: 12, MaxProducers: 16}
	case HighThroughput:
		return Config{RingBits: 18, MaxProducers: 32}
	default:
		return DefaultConfig()
	}
}

// Builder configures and constructs Ring and Channel values with a fluent
// API. There is only one algorithm here, so the builder's job is purely
// picking capacity, producer-count, and metrics knobs.
//
// Example:
//
//	ch := ringq.BuildChannel[Event](ringq.New().Preset(ringq.HighThroughput))
//	r := ringq.BuildRing[Event](ringq.New().RingBits(12).EnableMetrics(true))
type Builder struct {
	cfg Config
}

// New creates a Builder seeded with the Default preset.
func New() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// Preset resets the builder to a named profile. Call before any other
// builder method that should override a preset field.
func (b *Builder) Preset(p Preset) *Builder {
	b.cfg = configForPreset(p)
	return b
}

// RingBits sets log2 of the ring capacity directly.
func (b *Builder) RingBits(bits uint8) *Builder {
	b.cfg.RingBits = bits
	return b
}

// Capacity sets the ring capacity, rounding up to the next power of 2.
func (b *Builder) Capacity(capacity int) *Builder {
	b.cfg.RingBits = roundBitsForCapacity(capacity)
	return b
}

// MaxProducers sets the channel's producer cap. Unused when building a
// bare Ring.
func (b *Builder) MaxProducers(n int) *Builder {
	b.cfg.MaxProducers = n
	return b
}

// EnableMetrics turns the relaxed atomic counters on or off.
func (b *Builder) EnableMetrics(enable bool) *Builder {
	b.cfg.EnableMetrics = enable
	return b
}

// Config returns the builder's current configuration.
func (b *Builder) Config() Config {
	return b.cfg
}

// BuildRing constructs a Ring[T] from the builder's configuration.
func BuildRing[T any](b *Builder) *Ring[T] {
	return NewRing[T](b.cfg)
}

// BuildChannel constructs a Channel[T] from the builder's configuration.
func BuildChannel[T any](b *Builder) *Channel[T] {
	return NewChannel[T](b.cfg)
}
