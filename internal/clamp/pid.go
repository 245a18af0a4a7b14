// Package clamp provides closed-loop synaptic current sources, emulating a
// dynamic-clamp protocol: the injected current is computed each tick from
// the membrane potential observed on the previous tick.
package clamp

import "github.com/san-kum/neurosim/internal/dynamo"

// PID holds the membrane potential at a target value by feedback on the
// injected current. Positive current hyperpolarizes the model (it enters
// the x equation with a negative sign), so the error is taken as x minus
// target.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		first:  true,
	}
}

// Next implements sim.InputSource.
func (p *PID) Next(s dynamo.State, t float64) float64 {
	err := s[0] - p.Target

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return p.Kp * err
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t

		return u
	}
	return p.Kp * err
}

// Reset clears integral and derivative state.
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
	p.first = true
}

// Params returns tunable gains for live adjustment.
func (p *PID) Params() map[string]float64 {
	return map[string]float64{
		"kp":     p.Kp,
		"ki":     p.Ki,
		"kd":     p.Kd,
		"target": p.Target,
	}
}

// SetParam adjusts a gain. Unknown names are ignored.
func (p *PID) SetParam(name string, value float64) {
	switch name {
	case "kp":
		p.Kp = value
	case "ki":
		p.Ki = value
	case "kd":
		p.Kd = value
	case "target":
		p.Target = value
	}
}
