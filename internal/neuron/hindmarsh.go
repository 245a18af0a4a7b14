package neuron

import "github.com/san-kum/neurosim/internal/dynamo"

// Default parameter values for a self-sustained bursting regime.
const (
	DefaultE  = 3.25
	DefaultMu = 0.006
	DefaultS  = 4.0
	DefaultVh = 1.0
)

// HindmarshRose is the three-variable membrane-potential model.
// State: [x, y, z] where x is the membrane potential.
// Equations:
//
//	dx/dt = y + 3x² − x³ − vh·z + e − i_syn
//	dy/dt = 1 − 5x² − y
//	dz/dt = mu(−vh·z + s(x + 1.6))
type HindmarshRose struct {
	e  float64 // external drive baseline
	mu float64 // slow-variable time scale
	s  float64 // slow-variable coupling
	vh float64 // fast/slow coupling weight
}

func New() *HindmarshRose {
	return &HindmarshRose{e: DefaultE, mu: DefaultMu, s: DefaultS, vh: DefaultVh}
}

func (h *HindmarshRose) StateDim() int { return dynamo.Dim }

// Derive calculates the model derivatives. input is the synaptic current
// i_syn. Divergence under pathological parameter combinations is a
// property of the model, not a fault here.
func (h *HindmarshRose) Derive(s dynamo.State, input, _ float64) dynamo.State {
	x, y, z := s[0], s[1], s[2]
	return dynamo.State{
		y + 3*(x*x) - (x * x * x) - h.vh*z + h.e - input,
		1 - 5*(x*x) - y,
		h.mu * (-h.vh*z + h.s*(x+1.6)),
	}
}

// DefaultState is the documented equilibrium-like point the model starts
// from. Integrating from here with zero input stays on the reference
// bursting trajectory.
func (h *HindmarshRose) DefaultState() dynamo.State {
	return dynamo.State{-0.9013747551021072, -3.15948829665501, 3.247826955037619}
}

// Params implements dynamo.Configurable.
func (h *HindmarshRose) Params() map[string]float64 {
	return map[string]float64{"e": h.e, "mu": h.mu, "s": h.s, "vh": h.vh}
}

// SetParam implements dynamo.Configurable. Unknown names are ignored.
func (h *HindmarshRose) SetParam(name string, value float64) {
	switch name {
	case "e":
		h.e = value
	case "mu":
		h.mu = value
	case "s":
		h.s = value
	case "vh":
		h.vh = value
	}
}
