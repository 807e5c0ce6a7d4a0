package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Swarm.Agents != 2 {
		t.Errorf("expected 2 agents, got %d", cfg.Swarm.Agents)
	}
	if cfg.Swarm.CloudSize != 333 {
		t.Errorf("expected cloud size 333, got %d", cfg.Swarm.CloudSize)
	}
	if cfg.Swarm.RingPoints != 9 {
		t.Errorf("expected 9 ring points, got %d", cfg.Swarm.RingPoints)
	}
	if cfg.Cloud.ActivationCap != 8 {
		t.Errorf("expected activation cap 8, got %d", cfg.Cloud.ActivationCap)
	}
	if cfg.Render.NoiseTime != 101 {
		t.Errorf("expected noise time 101, got %f", cfg.Render.NoiseTime)
	}
	if cfg.Derived.Background != (color.RGBA{A: 255}) {
		t.Errorf("expected opaque black background, got %v", cfg.Derived.Background)
	}
	if cfg.Derived.Foreground != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("expected opaque white foreground, got %v", cfg.Derived.Foreground)
	}
	if cfg.Derived.DT <= 0 {
		t.Errorf("expected positive DT, got %f", cfg.Derived.DT)
	}
}

func TestLoadOverridesOnlyPresentKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("swarm:\n  agents: 5\nrender:\n  foreground: \"#ff0000\"\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Swarm.Agents != 5 {
		t.Errorf("expected 5 agents, got %d", cfg.Swarm.Agents)
	}
	if cfg.Swarm.CloudSize != 333 {
		t.Errorf("expected default cloud size to survive, got %d", cfg.Swarm.CloudSize)
	}
	if cfg.Derived.Foreground != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("expected red foreground, got %v", cfg.Derived.Foreground)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "screen:\n  width: 0\n"},
		{"negative height", "screen:\n  height: -10\n"},
		{"negative agents", "swarm:\n  agents: -1\n"},
		{"no ring points", "swarm:\n  ring_points: 0\n"},
		{"zero ease", "pursuit:\n  ease_divisor: 0\n"},
		{"len step too big", "cloud:\n  len_step: 2\n"},
		{"bad color", "render:\n  background: \"nope\"\n"},
		{"zero terminal wander", "terminal:\n  wander_scale: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestZeroCountsAreValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("swarm:\n  agents: 0\n  cloud_size: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("expected empty swarm to be valid, got %v", err)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Swarm.CloudSize = 42

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if loaded.Swarm.CloudSize != 42 {
		t.Errorf("expected cloud size 42 after reload, got %d", loaded.Swarm.CloudSize)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	global = nil
	defer func() {
		if recover() == nil {
			t.Error("expected panic when Cfg() is called before Init()")
		}
	}()
	_ = Cfg()
}
