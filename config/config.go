// Package config provides configuration loading and access for the swarm effect.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Swarm     SwarmConfig     `yaml:"swarm"`
	Pursuit   PursuitConfig   `yaml:"pursuit"`
	Cloud     CloudConfig     `yaml:"cloud"`
	Render    RenderConfig    `yaml:"render"`
	Headless  HeadlessConfig  `yaml:"headless"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	Resizable bool   `yaml:"resizable"`
}

// SwarmConfig holds population sizes.
type SwarmConfig struct {
	Agents     int `yaml:"agents"`
	CloudSize  int `yaml:"cloud_size"`
	RingPoints int `yaml:"ring_points"`
}

// PursuitConfig holds agent motion parameters.
// Ranges are expressed as min + rnd(spread).
type PursuitConfig struct {
	EaseDivisor        float64 `yaml:"ease_divisor"`     // Fraction of remaining distance covered per tick is 1/this
	MaxStepDivisor     float64 `yaml:"max_step_divisor"` // Max step per tick = viewport width / this
	WanderRadiusMin    float64 `yaml:"wander_radius_min"`
	WanderRadiusSpread float64 `yaml:"wander_radius_spread"`
	WanderSpeedMin     float64 `yaml:"wander_speed_min"`
	WanderSpeedSpread  float64 `yaml:"wander_speed_spread"`
	SeedSpread         float64 `yaml:"seed_spread"`
	BodyDivisorMin     float64 `yaml:"body_divisor_min"` // Body radius = viewport width / (min + rnd(spread))
	BodyDivisorSpread  float64 `yaml:"body_divisor_spread"`
}

// CloudConfig holds activation parameters for the ambient point cloud.
type CloudConfig struct {
	ActivationDivisor float64 `yaml:"activation_divisor"` // Activation distance = viewport width / this
	ActivationCap     int     `yaml:"activation_cap"`     // Max activating points per agent per tick
	LenStep           float64 `yaml:"len_step"`
	MaxRadius         float64 `yaml:"max_radius"`
	RadiusDivisor     float64 `yaml:"radius_divisor"`
	ActiveBoost       float64 `yaml:"active_boost"` // Radius multiplier for activating points
}

// RenderConfig holds drawing parameters.
type RenderConfig struct {
	NoiseTime       float64 `yaml:"noise_time"`
	WobbleSteps     int     `yaml:"wobble_steps"`
	WobbleAmplitude float64 `yaml:"wobble_amplitude"`
	WobbleFrequency float64 `yaml:"wobble_frequency"` // Interpolated coordinates are divided by this before sampling
	GlowScale       float64 `yaml:"glow_scale"`
	LineWidth       float64 `yaml:"line_width"`
	IdleGlow        bool    `yaml:"idle_glow"` // Draw glow circles for inactive points too
	Background      string  `yaml:"background"`
	Foreground      string  `yaml:"foreground"`
}

// HeadlessConfig holds parameters for runs without a window.
type HeadlessConfig struct {
	PointerRadius float64 `yaml:"pointer_radius"` // Fraction of the smaller viewport side
	PointerSpeedX float64 `yaml:"pointer_speed_x"`
	PointerSpeedY float64 `yaml:"pointer_speed_y"`
	FrameInterval int     `yaml:"frame_interval"` // Write a PNG every N frames
}

// TerminalConfig holds parameters for the braille terminal driver.
type TerminalConfig struct {
	WanderScale float64 `yaml:"wander_scale"` // Multiplies wander radii, which are in window pixels
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT         float64    // 1 / Screen.TargetFPS
	Background color.RGBA // Render.Background parsed
	Foreground color.RGBA // Render.Foreground parsed
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration once, before any simulation starts.
func (c *Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size %dx%d must be positive", ErrInvalidConfig, c.Screen.Width, c.Screen.Height)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("%w: target_fps must be positive", ErrInvalidConfig)
	case c.Swarm.Agents < 0 || c.Swarm.CloudSize < 0:
		return fmt.Errorf("%w: agent and cloud counts must not be negative", ErrInvalidConfig)
	case c.Swarm.RingPoints < 1:
		return fmt.Errorf("%w: ring_points must be at least 1", ErrInvalidConfig)
	case c.Pursuit.EaseDivisor <= 0 || c.Pursuit.MaxStepDivisor <= 0:
		return fmt.Errorf("%w: pursuit divisors must be positive", ErrInvalidConfig)
	case c.Pursuit.BodyDivisorMin <= 0 || c.Pursuit.BodyDivisorSpread < 0:
		return fmt.Errorf("%w: body divisor range must be positive", ErrInvalidConfig)
	case c.Cloud.ActivationDivisor <= 0 || c.Cloud.RadiusDivisor <= 0:
		return fmt.Errorf("%w: cloud divisors must be positive", ErrInvalidConfig)
	case c.Cloud.ActivationCap < 0:
		return fmt.Errorf("%w: activation_cap must not be negative", ErrInvalidConfig)
	case c.Cloud.LenStep <= 0 || c.Cloud.LenStep > 1:
		return fmt.Errorf("%w: len_step must be in (0, 1]", ErrInvalidConfig)
	case c.Render.WobbleSteps < 1 || c.Render.WobbleFrequency <= 0:
		return fmt.Errorf("%w: wobble steps and frequency must be positive", ErrInvalidConfig)
	case c.Terminal.WanderScale <= 0:
		return fmt.Errorf("%w: terminal wander_scale must be positive", ErrInvalidConfig)
	case c.Telemetry.StatsWindow <= 0:
		return fmt.Errorf("%w: stats_window must be positive", ErrInvalidConfig)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.DT = 1.0 / float64(c.Screen.TargetFPS)

	bg, err := ParseColor(c.Render.Background)
	if err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalidConfig, err)
	}
	fg, err := ParseColor(c.Render.Foreground)
	if err != nil {
		return fmt.Errorf("%w: foreground: %v", ErrInvalidConfig, err)
	}
	c.Derived.Background = bg
	c.Derived.Foreground = fg
	return nil
}

// ParseColor converts a "#rrggbb" string into an opaque color.RGBA.
func ParseColor(hex string) (color.RGBA, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
