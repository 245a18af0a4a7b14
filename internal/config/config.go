package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBurstDuration = 1.0
	DefaultPeriodSeconds = 0.001
	DefaultDuration      = 10.0
)

type Config struct {
	InitState     InitStateConfig `yaml:"init_state"`
	Params        ParamsConfig    `yaml:"params"`
	BurstDuration float64         `yaml:"burst_duration"`
	PeriodSeconds float64         `yaml:"period_seconds"`
	Duration      float64         `yaml:"duration"`
	Input         float64         `yaml:"input"`
}

type InitStateConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type ParamsConfig struct {
	E  float64 `yaml:"e"`
	Mu float64 `yaml:"mu"`
	S  float64 `yaml:"s"`
	Vh float64 `yaml:"vh"`
}

func DefaultConfig() *Config {
	return &Config{
		InitState: InitStateConfig{
			X: -0.9013747551021072,
			Y: -3.15948829665501,
			Z: 3.247826955037619,
		},
		Params: ParamsConfig{
			E:  3.25,
			Mu: 0.006,
			S:  4.0,
			Vh: 1.0,
		},
		BurstDuration: DefaultBurstDuration,
		PeriodSeconds: DefaultPeriodSeconds,
		Duration:      DefaultDuration,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ToMap flattens the config into the generic document the plugin ingests.
func (c *Config) ToMap() map[string]float64 {
	return map[string]float64{
		"x":              c.InitState.X,
		"y":              c.InitState.Y,
		"z":              c.InitState.Z,
		"e":              c.Params.E,
		"mu":             c.Params.Mu,
		"s":              c.Params.S,
		"vh":             c.Params.Vh,
		"burst_duration": c.BurstDuration,
		"period_seconds": c.PeriodSeconds,
	}
}
