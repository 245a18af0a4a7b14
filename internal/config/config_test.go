package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Params.E != 3.25 {
		t.Errorf("expected e 3.25, got %f", cfg.Params.E)
	}
	if cfg.BurstDuration != 1.0 {
		t.Errorf("expected burst duration 1.0, got %f", cfg.BurstDuration)
	}
	if cfg.PeriodSeconds <= 0 {
		t.Error("period should be positive")
	}
}

func TestToMap(t *testing.T) {
	m := DefaultConfig().ToMap()

	for _, key := range []string{"x", "y", "z", "e", "mu", "s", "vh", "burst_duration", "period_seconds"} {
		if _, ok := m[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if m["mu"] != 0.006 {
		t.Errorf("expected mu 0.006, got %f", m["mu"])
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Params.E = 2.5
	cfg.BurstDuration = 0.5

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Params.E != 2.5 || loaded.BurstDuration != 0.5 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("tonic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Params.E != 5.0 {
		t.Errorf("expected e 5.0, got %f", cfg.Params.E)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}
}
