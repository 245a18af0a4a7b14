// Package metrics provides per-tick trajectory metrics for the membrane
// model.
package metrics

import "github.com/san-kum/neurosim/internal/dynamo"

// DefaultSpikeThreshold is the membrane potential an action potential must
// exceed to count as a spike.
const DefaultSpikeThreshold = 0.0

// SpikeCount counts upward threshold crossings of the membrane potential.
type SpikeCount struct {
	threshold float64
	above     bool
	count     int
}

func NewSpikeCount(threshold float64) *SpikeCount {
	return &SpikeCount{threshold: threshold}
}

func (s *SpikeCount) Name() string { return "spikes" }

func (s *SpikeCount) Observe(x dynamo.State, _, _ float64) {
	if x[0] > s.threshold {
		if !s.above {
			s.count++
			s.above = true
		}
	} else {
		s.above = false
	}
}

func (s *SpikeCount) Value() float64 { return float64(s.count) }

func (s *SpikeCount) Reset() {
	s.above = false
	s.count = 0
}

// BurstRate reports spikes per second of observed trajectory.
type BurstRate struct {
	spikes  SpikeCount
	firstT  float64
	lastT   float64
	started bool
}

func NewBurstRate(threshold float64) *BurstRate {
	return &BurstRate{spikes: SpikeCount{threshold: threshold}}
}

func (b *BurstRate) Name() string { return "spike_rate" }

func (b *BurstRate) Observe(x dynamo.State, input, t float64) {
	if !b.started {
		b.firstT = t
		b.started = true
	}
	b.lastT = t
	b.spikes.Observe(x, input, t)
}

func (b *BurstRate) Value() float64 {
	elapsed := b.lastT - b.firstT
	if elapsed <= 0 {
		return 0
	}
	return b.spikes.Value() / elapsed
}

func (b *BurstRate) Reset() {
	b.spikes.Reset()
	b.started = false
	b.firstT = 0
	b.lastT = 0
}
