package game

import (
	"github.com/pthm-cable/spiders/config"
	"github.com/pthm-cable/spiders/renderer"
	"github.com/pthm-cable/spiders/systems"
)

// Mode selects the frame clock and pointer source.
type Mode string

const (
	ModeWindow   Mode = "window"
	ModeHeadless Mode = "headless"
	ModeTerminal Mode = "terminal"
)

// GameConfig holds configuration for game initialization.
type GameConfig struct {
	Mode      Mode
	Seed      int64
	MaxTicks  int64  // Stop after this many ticks; 0 runs until closed
	FramesDir string // Headless PNG output; empty disables
	OutputDir string // Telemetry CSV output; empty disables
	LogStats  bool
	Snapshot  string // Write a snapshot here on exit
	Restore   string // Start from this snapshot instead of spawning
}

// DefaultConfig returns the default game configuration.
func DefaultConfig() GameConfig {
	return GameConfig{Mode: ModeWindow, Seed: 1}
}

// NewSwarmConfig builds swarm parameters for a w x h viewport from the loaded config.
func NewSwarmConfig(cfg *config.Config, w, h float64) SwarmConfig {
	p := systems.DefaultAgentParams(w, h)
	p.CloudSize = cfg.Swarm.CloudSize
	p.RingPoints = cfg.Swarm.RingPoints

	p.EaseDivisor = cfg.Pursuit.EaseDivisor
	p.MaxStepDivisor = cfg.Pursuit.MaxStepDivisor
	p.WanderRadiusMin = cfg.Pursuit.WanderRadiusMin
	p.WanderRadiusSpread = cfg.Pursuit.WanderRadiusSpread
	p.WanderSpeedMin = cfg.Pursuit.WanderSpeedMin
	p.WanderSpeedSpread = cfg.Pursuit.WanderSpeedSpread
	p.SeedSpread = cfg.Pursuit.SeedSpread
	p.BodyDivisorMin = cfg.Pursuit.BodyDivisorMin
	p.BodyDivisorSpread = cfg.Pursuit.BodyDivisorSpread

	p.ActivationDivisor = cfg.Cloud.ActivationDivisor
	p.ActivationCap = cfg.Cloud.ActivationCap
	p.LenStep = cfg.Cloud.LenStep
	p.MaxRadius = cfg.Cloud.MaxRadius
	p.RadiusDivisor = cfg.Cloud.RadiusDivisor
	p.ActiveBoost = cfg.Cloud.ActiveBoost

	return SwarmConfig{AgentCount: cfg.Swarm.Agents, Agent: p}
}

// NewSpiderRenderer builds the renderer described by the render section.
func NewSpiderRenderer(cfg *config.Config) *renderer.SpiderRenderer {
	r := renderer.NewSpiderRenderer()
	r.Wobble = renderer.Wobble{
		Field:     systems.NoiseField{T: cfg.Render.NoiseTime},
		Steps:     cfg.Render.WobbleSteps,
		Amplitude: cfg.Render.WobbleAmplitude,
		Frequency: cfg.Render.WobbleFrequency,
	}
	r.Palette = renderer.Palette{
		Background: cfg.Derived.Background,
		Foreground: cfg.Derived.Foreground,
	}
	r.GlowScale = cfg.Render.GlowScale
	r.IdleGlow = cfg.Render.IdleGlow
	return r
}
