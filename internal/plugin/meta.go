package plugin

// Static descriptive documents for host UI construction. These carry no
// runtime behavior; the shapes match what the host expects to unmarshal.

type Metadata struct {
	Name        string   `json:"name"`
	DefaultVars [][2]any `json:"default_vars"`
}

type Behavior struct {
	SupportsStartStop bool             `json:"supports_start_stop"`
	SupportsRestart   bool             `json:"supports_restart"`
	ExtendableInputs  ExtendableInputs `json:"extendable_inputs"`
	LoadsStarted      bool             `json:"loads_started"`
}

type ExtendableInputs struct {
	Type string `json:"type"`
}

type UISchema struct {
	Outputs   []string `json:"outputs"`
	Inputs    []string `json:"inputs"`
	Variables []string `json:"variables"`
}

// Meta describes the plugin and its configurable defaults.
func (n *Neuron) Meta() Metadata {
	return Metadata{
		Name: "Hindmarsh Rose v2",
		DefaultVars: [][2]any{
			{"x", -0.9013},
			{"y", -3.1594},
			{"z", 3.24782},
			{"e", 3.0},
			{"mu", 0.006},
			{"s", 4.0},
			{"vh", 1.0},
			{"burst_duration", 1.0},
		},
	}
}

// Inputs lists the supported input port names.
func (n *Neuron) Inputs() []string {
	return []string{PortSynaptic}
}

// Outputs lists the output port names shown to the host UI.
func (n *Neuron) Outputs() []string {
	return []string{PortPotential, PortPotentialMV}
}

// BehaviorDoc describes lifecycle capabilities.
func (n *Neuron) BehaviorDoc() Behavior {
	return Behavior{
		SupportsStartStop: true,
		SupportsRestart:   true,
		ExtendableInputs:  ExtendableInputs{Type: "none"},
		LoadsStarted:      true,
	}
}

// Schema describes the ports and variables for UI construction.
func (n *Neuron) Schema() UISchema {
	return UISchema{
		Outputs:   []string{PortPotential, PortPotentialMV},
		Inputs:    []string{PortSynaptic},
		Variables: []string{PortX, PortY, PortZ},
	}
}
