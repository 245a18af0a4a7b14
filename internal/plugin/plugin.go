// Package plugin exposes the simulated neuron the way the host scheduler
// consumes it: create an instance, push configuration and the per-tick
// synaptic input, tick it with the authoritative host period, read the
// output ports by name.
package plugin

import (
	"encoding/json"

	"github.com/san-kum/neurosim/internal/dynamo"
	"github.com/san-kum/neurosim/internal/integrators"
	"github.com/san-kum/neurosim/internal/neuron"
	"github.com/san-kum/neurosim/internal/timing"
)

// Port names understood by SetInput and Output.
const (
	PortSynaptic    = "i_syn"
	PortX           = "x"
	PortY           = "y"
	PortZ           = "z"
	PortPotential   = "Membrane potential (V)"
	PortPotentialMV = "Membrane potential (mV)"
)

// Timing defaults before the first negotiation.
const (
	defaultDt     = 0.15
	defaultBurst  = 1.0
	defaultPeriod = 0.001
)

// Neuron is one simulated membrane instance. The host serializes all calls
// on an instance; the struct carries no locks.
type Neuron struct {
	id      uint64
	model   *neuron.HindmarshRose
	stepper *integrators.CashKarp
	neg     *timing.Negotiator

	state dynamo.State
	input float64

	dt       float64
	subSteps int
	period   float64 // last-seen host period; config value is advisory only
	burst    float64

	cfgState dynamo.State // last configuration-applied (x, y, z) triple
}

// New returns an instance at the default equilibrium-like state with the
// default bursting parameters. No negotiation has run yet; the first
// configuration push or host-period change triggers it.
func New(id uint64) *Neuron {
	model := neuron.New()
	s := model.DefaultState()
	return &Neuron{
		id:       id,
		model:    model,
		stepper:  integrators.NewCashKarp(),
		neg:      timing.NewNegotiator(timing.DefaultTable()),
		state:    s,
		dt:       defaultDt,
		subSteps: 1,
		period:   defaultPeriod,
		burst:    defaultBurst,
		cfgState: s,
	}
}

// Close releases the instance. Nothing beyond the struct itself is owned;
// the method exists to complete the lifecycle contract.
func (n *Neuron) Close() {}

func (n *Neuron) ID() uint64 { return n.id }

// SetConfig applies a generic key-to-number document. Missing keys retain
// their previous values and unknown keys are ignored. The (x, y, z) triple
// is applied atomically and only when it differs from the last-applied
// configuration triple, so redundant pushes do not perturb a running
// trajectory. Every call re-runs the step-size negotiation.
func (n *Neuron) SetConfig(cfg map[string]float64) {
	get := func(key string, current float64) float64 {
		if v, ok := cfg[key]; ok {
			return v
		}
		return current
	}

	triple := dynamo.State{
		get("x", n.state[0]),
		get("y", n.state[1]),
		get("z", n.state[2]),
	}
	if triple != n.cfgState {
		n.cfgState = triple
		n.state = triple
	}

	for _, name := range []string{"e", "mu", "s", "vh"} {
		if v, ok := cfg[name]; ok {
			n.model.SetParam(name, v)
		}
	}

	n.burst = get("burst_duration", n.burst)
	n.period = get("period_seconds", n.period)

	if v, ok := cfg["time_increment"]; ok {
		if v < 0 {
			v = 0
		}
		n.dt = v
	}

	n.refresh()
}

// ApplyConfigJSON decodes a generic JSON object and applies its numeric
// members through SetConfig. Non-numeric members are skipped.
func (n *Neuron) ApplyConfigJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	cfg := make(map[string]float64, len(doc))
	for k, v := range doc {
		if f, ok := v.(float64); ok {
			cfg[k] = f
		}
	}
	n.SetConfig(cfg)
	return nil
}

// SetInput overwrites the named input port. Only i_syn exists; other names
// are ignored. The value is held frozen across all sub-steps of the next
// tick.
func (n *Neuron) SetInput(name string, value float64) {
	if name == PortSynaptic {
		n.input = value
	}
}

// Process runs one host tick. periodSeconds is authoritative: if it differs
// from the last-seen period, the negotiation re-runs before any
// integration. The tick then applies the negotiated number of sub-steps at
// the current dt with the frozen input.
func (n *Neuron) Process(periodSeconds float64) {
	if n.period != periodSeconds {
		n.period = periodSeconds
		n.refresh()
	}

	steps := n.subSteps
	if steps < 1 {
		steps = 1
	} else if steps > timing.MaxSubSteps {
		steps = timing.MaxSubSteps
	}

	for i := 0; i < steps; i++ {
		n.state = n.stepper.Step(n.model, n.state, n.input, 0, n.dt)
	}
}

// Output reads a named output port. Unknown names read as zero.
func (n *Neuron) Output(name string) float64 {
	switch name {
	case PortX, PortPotential:
		return n.state[0]
	case PortY:
		return n.state[1]
	case PortZ:
		return n.state[2]
	case PortPotentialMV:
		return n.state[0] * 1000.0
	default:
		return 0
	}
}

// State returns the current (x, y, z) triple.
func (n *Neuron) State() dynamo.State { return n.state }

// Input returns the frozen synaptic current.
func (n *Neuron) Input() float64 { return n.input }

// Timing returns the negotiated step size and sub-step count.
func (n *Neuron) Timing() (dt float64, subSteps int) { return n.dt, n.subSteps }

// Params returns the current model parameters.
func (n *Neuron) Params() map[string]float64 { return n.model.Params() }

func (n *Neuron) refresh() {
	n.dt, n.subSteps = n.neg.Negotiate(n.dt, n.period, n.burst)
}
