package config

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	// Default self-sustained bursting regime.
	"bursting": preset(func(c *Config) {}),

	// Stronger drive and a faster slow subsystem push the model into
	// continuous spiking.
	"tonic": preset(func(c *Config) {
		c.Params.E = 5.0
		c.Params.Mu = 0.01
	}),

	// Weak drive keeps the membrane near rest.
	"quiescent": preset(func(c *Config) {
		c.Params.E = 1.0
	}),

	// No burst matching: the negotiator tiles the host period at a fixed
	// fine step.
	"fixed-step": preset(func(c *Config) {
		c.BurstDuration = 0
	}),
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
