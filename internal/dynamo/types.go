package dynamo

import "math"

// Dim is the number of state variables in the membrane model.
const Dim = 3

// State holds the three model variables (x, y, z): the membrane potential
// and the fast and slow recovery variables. Value semantics keep the
// integration hot path free of allocations.
type State [Dim]float64

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	var result State
	for i := range s {
		result[i] = s[i] + other[i]
	}
	return result
}

func (s State) Scale(factor float64) State {
	var result State
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	var result State
	for i := range s {
		result[i] = s[i] - other[i]
	}
	return result
}

// System is a vector field dX/dt = f(X, input, t). Derive must be pure so
// steppers can evaluate it at intermediate stage points, not just at the
// current state. input is the synaptic current, frozen for a whole tick.
type System interface {
	Derive(s State, input, t float64) State
	StateDim() int
}

// Stepper advances a state by exactly one step of size dt.
type Stepper interface {
	Step(sys System, s State, input, t, dt float64) State
}

// Observer is notified with the state after each completed host tick.
type Observer interface {
	OnTick(s State, input, t float64)
}

// Metric accumulates a scalar over an observed trajectory.
type Metric interface {
	Name() string
	Observe(s State, input, t float64)
	Value() float64
	Reset()
}

// Configurable exposes runtime-tunable model parameters.
type Configurable interface {
	Params() map[string]float64
	SetParam(name string, value float64)
}
