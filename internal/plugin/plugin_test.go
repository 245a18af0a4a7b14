package plugin

import (
	"math"
	"testing"

	"github.com/san-kum/neurosim/internal/dynamo"
)

func almostEqual(a, b dynamo.State, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestNewDefaults(t *testing.T) {
	n := New(1)
	defer n.Close()

	want := dynamo.State{-0.9013747551021072, -3.15948829665501, 3.247826955037619}
	if n.State() != want {
		t.Errorf("unexpected default state: %v", n.State())
	}

	dt, steps := n.Timing()
	if dt != 0.15 || steps != 1 {
		t.Errorf("unexpected default timing: dt=%v steps=%d", dt, steps)
	}

	p := n.Params()
	if p["e"] != 3.25 || p["mu"] != 0.006 || p["s"] != 4.0 || p["vh"] != 1.0 {
		t.Errorf("unexpected default params: %v", p)
	}
}

func TestSetConfigNegotiates(t *testing.T) {
	n := New(1)

	// Even an empty document re-runs the negotiation with the default
	// burst duration and advisory period.
	n.SetConfig(map[string]float64{})

	dt, steps := n.Timing()
	if dt != 0.05 || steps != 6 {
		t.Errorf("expected (0.05, 6) after negotiation, got (%v, %d)", dt, steps)
	}
}

func TestTickAfterNegotiation(t *testing.T) {
	n := New(1)
	n.SetConfig(map[string]float64{})

	// Host period matches the advisory default, so the tick integrates
	// six 0.05 sub-steps without renegotiating.
	n.Process(0.001)

	want := dynamo.State{-0.8975418714975183, -3.1296634616435512, 3.2470253774847495}
	if !almostEqual(n.State(), want, 1e-9) {
		t.Errorf("tick state mismatch: got %v, want %v", n.State(), want)
	}
}

func TestTickWithoutPeriodChange(t *testing.T) {
	n := New(1)

	// Fresh instance, host period equal to the advisory default: no
	// negotiation has run, so one step at the initial dt.
	n.Process(0.001)

	want := dynamo.State{-0.8994822601790906, -3.144750257307799, 3.247422536492008}
	if !almostEqual(n.State(), want, 1e-9) {
		t.Errorf("tick state mismatch: got %v, want %v", n.State(), want)
	}
}

func TestHostPeriodIsAuthoritative(t *testing.T) {
	n := New(1)

	// A differing host period renegotiates before integrating.
	n.Process(0.01)

	dt, steps := n.Timing()
	if dt != 0.1 || steps != 28 {
		t.Errorf("expected (0.1, 28) after period change, got (%v, %d)", dt, steps)
	}

	want := dynamo.State{-0.8568066195628623, -2.8196619126477223, 3.241646727291473}
	if !almostEqual(n.State(), want, 1e-9) {
		t.Errorf("tick state mismatch: got %v, want %v", n.State(), want)
	}
}

func TestConfigIdempotence(t *testing.T) {
	cfg := map[string]float64{
		"x": -0.5, "y": -2.0, "z": 3.0,
		"e": 3.0, "mu": 0.005, "s": 4.0, "vh": 1.0,
		"burst_duration": 0.5, "period_seconds": 0.001,
	}

	once := New(1)
	once.SetConfig(cfg)

	twice := New(2)
	twice.SetConfig(cfg)
	twice.SetConfig(cfg)

	if once.State() != twice.State() {
		t.Errorf("state differs after repeated config: %v vs %v", once.State(), twice.State())
	}
	dt1, s1 := once.Timing()
	dt2, s2 := twice.Timing()
	if dt1 != dt2 || s1 != s2 {
		t.Errorf("timing differs after repeated config: (%v,%d) vs (%v,%d)", dt1, s1, dt2, s2)
	}
	p1, p2 := once.Params(), twice.Params()
	for k, v := range p1 {
		if p2[k] != v {
			t.Errorf("param %s differs: %v vs %v", k, v, p2[k])
		}
	}
}

func TestRedundantTripleDoesNotPerturbTrajectory(t *testing.T) {
	n := New(1)
	cfg := map[string]float64{"x": -0.5, "y": -2.0, "z": 3.0, "burst_duration": 0.0}
	n.SetConfig(cfg)

	// Advance away from the configured triple.
	for i := 0; i < 5; i++ {
		n.Process(0.001)
	}
	advanced := n.State()

	// Re-pushing the same document must not snap the state back.
	n.SetConfig(cfg)
	if n.State() != advanced {
		t.Errorf("redundant config perturbed trajectory: %v vs %v", n.State(), advanced)
	}

	// A genuinely different triple is applied atomically.
	n.SetConfig(map[string]float64{"x": 0.1, "y": 0.2, "z": 0.3})
	if n.State() != (dynamo.State{0.1, 0.2, 0.3}) {
		t.Errorf("new triple not applied: %v", n.State())
	}
}

func TestTimeIncrementOverride(t *testing.T) {
	n := New(1)
	n.SetConfig(map[string]float64{"time_increment": 0.0005, "burst_duration": 0})

	dt, steps := n.Timing()
	if dt != 0.0005 || steps != 2 {
		t.Errorf("expected (0.0005, 2), got (%v, %d)", dt, steps)
	}

	// Negative overrides clamp to zero; the negotiator degrades to one
	// sub-step rather than dividing by zero.
	n.SetConfig(map[string]float64{"time_increment": -3})
	dt, steps = n.Timing()
	if dt != 0 {
		t.Errorf("negative override not clamped: dt=%v", dt)
	}
	if steps != 1 {
		t.Errorf("expected one sub-step for zero dt, got %d", steps)
	}
}

func TestSetInput(t *testing.T) {
	n := New(1)

	n.SetInput("i_syn", 0.75)
	if n.Input() != 0.75 {
		t.Errorf("input not applied: %v", n.Input())
	}

	n.SetInput("unknown", 99)
	if n.Input() != 0.75 {
		t.Error("unknown input port must be ignored")
	}
}

func TestOutputPorts(t *testing.T) {
	n := New(1)
	s := n.State()

	cases := map[string]float64{
		"x":                       s[0],
		"y":                       s[1],
		"z":                       s[2],
		"Membrane potential (V)":  s[0],
		"Membrane potential (mV)": s[0] * 1000.0,
		"does-not-exist":          0,
	}
	for name, want := range cases {
		if got := n.Output(name); got != want {
			t.Errorf("output %q: got %v, want %v", name, got, want)
		}
	}
}

func TestApplyConfigJSON(t *testing.T) {
	n := New(1)

	err := n.ApplyConfigJSON([]byte(`{"e": 3.0, "mu": 0.004, "name": "ignored", "nested": {"x": 1}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := n.Params()
	if p["e"] != 3.0 || p["mu"] != 0.004 {
		t.Errorf("JSON config not applied: %v", p)
	}

	if err := n.ApplyConfigJSON([]byte(`{not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestMetadataDocuments(t *testing.T) {
	n := New(1)

	meta := n.Meta()
	if meta.Name == "" || len(meta.DefaultVars) == 0 {
		t.Errorf("incomplete metadata: %+v", meta)
	}

	if got := n.Inputs(); len(got) != 1 || got[0] != PortSynaptic {
		t.Errorf("unexpected inputs: %v", got)
	}
	if got := n.Outputs(); len(got) != 2 {
		t.Errorf("unexpected outputs: %v", got)
	}

	b := n.BehaviorDoc()
	if !b.SupportsStartStop || b.ExtendableInputs.Type != "none" {
		t.Errorf("unexpected behavior doc: %+v", b)
	}

	schema := n.Schema()
	if len(schema.Variables) != 3 {
		t.Errorf("unexpected schema variables: %v", schema.Variables)
	}
}

func TestInstancesAreIsolated(t *testing.T) {
	a := New(1)
	b := New(2)

	a.SetConfig(map[string]float64{"e": 1.0})
	a.SetInput("i_syn", 2.0)
	a.Process(0.001)

	if b.Params()["e"] != 3.25 || b.Input() != 0 {
		t.Error("instances share state")
	}
	if b.State() != (dynamo.State{-0.9013747551021072, -3.15948829665501, 3.247826955037619}) {
		t.Error("instance b moved without being ticked")
	}
}
