package systems

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/pthm-cable/spiders/components"
)

// ErrInvalidParams is wrapped by AgentParams validation failures.
var ErrInvalidParams = errors.New("invalid agent params")

// AgentParams holds everything an agent needs to spawn and tick.
// Viewport dimensions are passed in explicitly; nothing is read from globals.
type AgentParams struct {
	ViewportW, ViewportH float64

	CloudSize  int
	RingPoints int

	// Pursuit
	EaseDivisor        float64
	MaxStepDivisor     float64
	WanderRadiusMin    float64
	WanderRadiusSpread float64
	WanderSpeedMin     float64
	WanderSpeedSpread  float64
	SeedSpread         float64
	BodyDivisorMin     float64
	BodyDivisorSpread  float64

	// Cloud activation
	ActivationDivisor float64
	ActivationCap     int
	LenStep           float64
	MaxRadius         float64
	RadiusDivisor     float64
	ActiveBoost       float64
}

// DefaultAgentParams returns the stock tuning for a viewport.
func DefaultAgentParams(w, h float64) AgentParams {
	return AgentParams{
		ViewportW:          w,
		ViewportH:          h,
		CloudSize:          333,
		RingPoints:         9,
		EaseDivisor:        10,
		MaxStepDivisor:     100,
		WanderRadiusMin:    50,
		WanderRadiusSpread: 50,
		WanderSpeedMin:     0.5,
		WanderSpeedSpread:  0.5,
		SeedSpread:         100,
		BodyDivisorMin:     100,
		BodyDivisorSpread:  50,
		ActivationDivisor:  10,
		ActivationCap:      8,
		LenStep:            0.1,
		MaxRadius:          2,
		RadiusDivisor:      5,
		ActiveBoost:        1.5,
	}
}

// Validate rejects parameters that would divide by zero or spawn nothing sensible.
func (p AgentParams) Validate() error {
	switch {
	case !(p.ViewportW > 0) || !(p.ViewportH > 0):
		return fmt.Errorf("%w: viewport %gx%g must be positive", ErrInvalidParams, p.ViewportW, p.ViewportH)
	case p.CloudSize < 0:
		return fmt.Errorf("%w: cloud size %d is negative", ErrInvalidParams, p.CloudSize)
	case p.RingPoints < 1:
		return fmt.Errorf("%w: need at least one ring point", ErrInvalidParams)
	case p.EaseDivisor <= 0 || p.MaxStepDivisor <= 0:
		return fmt.Errorf("%w: pursuit divisors must be positive", ErrInvalidParams)
	case p.BodyDivisorMin <= 0:
		return fmt.Errorf("%w: body divisor must be positive", ErrInvalidParams)
	case p.ActivationDivisor <= 0 || p.RadiusDivisor <= 0:
		return fmt.Errorf("%w: cloud divisors must be positive", ErrInvalidParams)
	case p.ActivationCap < 0:
		return fmt.Errorf("%w: activation cap is negative", ErrInvalidParams)
	}
	return nil
}

// MaxGlow is the largest radius a cloud point can ever be assigned.
func (p AgentParams) MaxGlow() float64 {
	boost := p.ActiveBoost
	if boost < 1 {
		boost = 1
	}
	return p.MaxRadius * boost
}

// TickStats summarizes one agent tick.
type TickStats struct {
	Near      int     // Points inside the activation distance
	Activated int     // Points that moved toward activation (never above the cap)
	Lit       int     // Points with Len > 0 after the tick
	LenSum    float64 // Sum of Len over the cloud
}

// Agent is one pursuit particle with its owned point cloud.
type Agent struct {
	params AgentParams

	pos  components.Point
	goal components.Point

	seed         float64
	wanderRadius components.Point
	wanderSpeed  components.Point
	bodyRadius   float64

	cloud []components.CloudPoint
	ring  []components.Point
}

// NewAgent spawns an agent with random state drawn from rng.
// Cloud points are drawn first, then wander seed, goal, position,
// wander speed, wander radius and body radius.
func NewAgent(p AgentParams, rng *rand.Rand) *Agent {
	a := &Agent{
		params: p,
		cloud:  SpawnCloud(p.CloudSize, p.ViewportW, p.ViewportH, rng),
		ring:   RingOffsets(p.RingPoints),
	}

	a.seed = rng.Float64() * p.SeedSpread
	a.goal = components.Point{X: rng.Float64() * p.ViewportW, Y: rng.Float64() * p.ViewportH}
	a.pos = components.Point{X: rng.Float64() * p.ViewportW, Y: rng.Float64() * p.ViewportH}
	a.wanderSpeed = components.Point{
		X: ranged(rng.Float64(), p.WanderSpeedMin, p.WanderSpeedSpread),
		Y: ranged(rng.Float64(), p.WanderSpeedMin, p.WanderSpeedSpread),
	}
	a.wanderRadius = components.Point{
		X: ranged(rng.Float64(), p.WanderRadiusMin, p.WanderRadiusSpread),
		Y: ranged(rng.Float64(), p.WanderRadiusMin, p.WanderRadiusSpread),
	}
	a.bodyRadius = p.ViewportW / ranged(rng.Float64(), p.BodyDivisorMin, p.BodyDivisorSpread)

	return a
}

// RestoreAgent rebuilds an agent from a snapshot. The cloud is copied.
func RestoreAgent(p AgentParams, s components.AgentState) *Agent {
	cloud := make([]components.CloudPoint, len(s.Cloud))
	copy(cloud, s.Cloud)
	p.CloudSize = len(cloud)

	return &Agent{
		params:       p,
		pos:          s.Position,
		goal:         s.Goal,
		seed:         s.Seed,
		wanderRadius: s.WanderRadius,
		wanderSpeed:  s.WanderSpeed,
		bodyRadius:   s.BodyRadius,
		cloud:        cloud,
		ring:         RingOffsets(p.RingPoints),
	}
}

// SpawnCloud creates n inactive points uniformly over the viewport.
func SpawnCloud(n int, w, h float64, rng *rand.Rand) []components.CloudPoint {
	cloud := make([]components.CloudPoint, n)
	for i := range cloud {
		cloud[i] = components.CloudPoint{
			X: rng.Float64() * w,
			Y: rng.Float64() * h,
		}
	}
	return cloud
}

// RingOffsets returns n unit-circle points; point i sits at angle i/n * 2π.
func RingOffsets(n int) []components.Point {
	ring := make([]components.Point, n)
	for i := range ring {
		a := float64(i) / float64(n) * 2 * math.Pi
		ring[i] = components.Point{X: math.Cos(a), Y: math.Sin(a)}
	}
	return ring
}

// SetGoal overwrites the pursuit goal. It takes effect on the next tick.
func (a *Agent) SetGoal(x, y float64) {
	a.goal = components.Point{X: x, Y: y}
}

// SetPosition places the agent body directly.
func (a *Agent) SetPosition(x, y float64) {
	a.pos = components.Point{X: x, Y: y}
}

// SetViewport updates the viewport used by the step cap, activation
// distance and glow radius. Cloud positions and body radius keep their spawn values.
func (a *Agent) SetViewport(w, h float64) {
	a.params.ViewportW = w
	a.params.ViewportH = h
}

// Wander returns the idle offset at simTime, a Lissajous-like orbit
// that is independent of the goal.
func (a *Agent) Wander(simTime float64) components.Point {
	return components.Point{
		X: math.Cos(simTime*a.wanderSpeed.X+a.seed) * a.wanderRadius.X,
		Y: math.Sin(simTime*a.wanderSpeed.Y+a.seed) * a.wanderRadius.Y,
	}
}

// Tick advances the agent one frame at absolute simTime and updates its cloud.
func (a *Agent) Tick(simTime float64) TickStats {
	target := a.goal.Add(a.Wander(simTime))

	// Move 1/EaseDivisor of the way, capped by the viewport-scaled max step.
	// The cap only bounds the positive direction.
	maxStep := a.params.ViewportW / a.params.MaxStepDivisor
	a.pos.X += math.Min(maxStep, (target.X-a.pos.X)/a.params.EaseDivisor)
	a.pos.Y += math.Min(maxStep, (target.Y-a.pos.Y)/a.params.EaseDivisor)

	return a.updateCloud()
}

// Position returns the agent body center.
func (a *Agent) Position() components.Point { return a.pos }

// Goal returns the current pursuit goal.
func (a *Agent) Goal() components.Point { return a.goal }

// BodyRadius returns the radius of the ring the legs attach to.
func (a *Agent) BodyRadius() float64 { return a.bodyRadius }

// Params returns the agent's parameters.
func (a *Agent) Params() AgentParams { return a.params }

// Cloud returns the agent's points in spawn order. Callers must not modify it.
func (a *Agent) Cloud() []components.CloudPoint { return a.cloud }

// Ring returns the unit ring offsets. Callers must not modify it.
func (a *Agent) Ring() []components.Point { return a.ring }

// RingAnchor returns the world position of ring offset i around the body.
func (a *Agent) RingAnchor(i int) components.Point {
	return a.pos.Add(a.ring[i].Scale(a.bodyRadius))
}

// DistanceToGoal returns the Euclidean distance from body to goal.
func (a *Agent) DistanceToGoal() float64 {
	return math.Hypot(a.goal.X-a.pos.X, a.goal.Y-a.pos.Y)
}

// Snapshot captures the agent's full state.
func (a *Agent) Snapshot() components.AgentState {
	cloud := make([]components.CloudPoint, len(a.cloud))
	copy(cloud, a.cloud)
	return components.AgentState{
		Position:     a.pos,
		Goal:         a.goal,
		Seed:         a.seed,
		WanderRadius: a.wanderRadius,
		WanderSpeed:  a.wanderSpeed,
		BodyRadius:   a.bodyRadius,
		Cloud:        cloud,
	}
}
