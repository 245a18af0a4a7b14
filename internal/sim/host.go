// Package sim emulates the real-time scheduler for offline runs: it ticks a
// plugin instance at a fixed period, feeds it a synaptic input signal, and
// collects the trajectory for analysis and storage.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/neurosim/internal/dynamo"
	"github.com/san-kum/neurosim/internal/plugin"
)

// InputFunc produces the synaptic current for the tick starting at t.
type InputFunc func(t float64) float64

// InputSource produces the synaptic current from the state observed before
// the tick, enabling closed-loop protocols such as dynamic clamp.
type InputSource interface {
	Next(s dynamo.State, t float64) float64
}

type Config struct {
	Period   float64 // host tick period, seconds
	Duration float64 // total simulated wall time, seconds
	Input    InputFunc
	Source   InputSource // takes precedence over Input when set
}

type Result struct {
	States  []dynamo.State
	Inputs  []float64
	Times   []float64
	Metrics map[string]float64
	Ticks   int
	Errors  []error
}

type TickError struct {
	Tick    int
	Time    float64
	Message string
}

func (e TickError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %s", e.Tick, e.Time, e.Message)
}

// Host drives one neuron instance the way the scheduler would.
type Host struct {
	cell      *plugin.Neuron
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func NewHost(cell *plugin.Neuron) *Host {
	return &Host{
		cell:      cell,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (h *Host) AddMetric(m dynamo.Metric)     { h.metrics = append(h.metrics, m) }
func (h *Host) AddObserver(o dynamo.Observer) { h.observers = append(h.observers, o) }

func (h *Host) Cell() *plugin.Neuron { return h.cell }

// Run ticks the instance for the configured duration. The state recorded at
// each tick is the state after that tick's sub-steps, which is what a
// downstream consumer would read from the output ports.
func (h *Host) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	ticks := int(cfg.Duration / cfg.Period)
	result := &Result{
		States:  make([]dynamo.State, 0, ticks),
		Inputs:  make([]float64, 0, ticks),
		Times:   make([]float64, 0, ticks),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range h.metrics {
		m.Reset()
	}

	t := 0.0
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		input := 0.0
		if cfg.Source != nil {
			input = cfg.Source.Next(h.cell.State(), t)
		} else if cfg.Input != nil {
			input = cfg.Input(t)
		}
		h.cell.SetInput(plugin.PortSynaptic, input)
		h.cell.Process(cfg.Period)

		s := h.cell.State()
		if !s.IsValid() {
			result.Errors = append(result.Errors, TickError{Tick: i, Time: t, Message: "invalid state (NaN/Inf)"})
			break
		}

		t += cfg.Period
		result.Ticks++
		result.States = append(result.States, s)
		result.Inputs = append(result.Inputs, input)
		result.Times = append(result.Times, t)

		for _, m := range h.metrics {
			m.Observe(s, input, t)
		}
		for _, obs := range h.observers {
			obs.OnTick(s, input, t)
		}
	}

	for _, m := range h.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validate(cfg Config) error {
	if cfg.Period <= 0 {
		return fmt.Errorf("period must be positive, got %f", cfg.Period)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}
