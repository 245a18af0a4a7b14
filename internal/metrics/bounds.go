package metrics

import "github.com/san-kum/neurosim/internal/dynamo"

// Bounds tracks the largest state norm seen, flagging runaway trajectories.
type Bounds struct {
	maxNorm  float64
	diverged bool
}

func NewBounds() *Bounds {
	return &Bounds{}
}

func (b *Bounds) Name() string { return "max_norm" }

func (b *Bounds) Observe(x dynamo.State, _, _ float64) {
	if !x.IsValid() {
		b.diverged = true
		return
	}
	if n := x.Norm(); n > b.maxNorm {
		b.maxNorm = n
	}
}

func (b *Bounds) Value() float64 { return b.maxNorm }

// Diverged reports whether any observed state contained NaN or Inf.
func (b *Bounds) Diverged() bool { return b.diverged }

func (b *Bounds) Reset() {
	b.maxNorm = 0
	b.diverged = false
}
