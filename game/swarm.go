package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/spiders/renderer"
	"github.com/pthm-cable/spiders/systems"
	"github.com/pthm-cable/spiders/telemetry"
)

var (
	// ErrInvalidSwarm is wrapped by every Start/Restore validation failure.
	ErrInvalidSwarm = errors.New("invalid swarm config")
	// ErrNotRunning is returned by operations that need a running swarm.
	ErrNotRunning = errors.New("swarm not running")
	// ErrAlreadyStarted is returned when Start or Restore is called twice.
	ErrAlreadyStarted = errors.New("swarm already started")
)

// State is the swarm lifecycle state.
type State uint8

const (
	StateUninitialized State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// SwarmConfig is everything needed to create a swarm.
type SwarmConfig struct {
	AgentCount int
	Agent      systems.AgentParams
}

// FrameStats summarizes the most recent frame.
type FrameStats struct {
	Tick    int64
	SimTime float64

	Agents       int
	Near         int
	Activated    int
	Lit          int
	MeanLen      float64 // Mean Len over every cloud point of every agent
	MeanDistance float64 // Mean agent distance to goal

	Lines   int
	Circles int
}

func (f FrameStats) frame() telemetry.Frame {
	return telemetry.Frame{
		Tick:         f.Tick,
		SimTime:      f.SimTime,
		Agents:       f.Agents,
		Near:         f.Near,
		Activated:    f.Activated,
		Lit:          f.Lit,
		MeanLen:      f.MeanLen,
		MeanDistance: f.MeanDistance,
		Lines:        f.Lines,
		Circles:      f.Circles,
	}
}

// Swarm owns a fixed set of agents, feeds them the shared pointer goal
// and draws them once per frame. It is driven from a single goroutine.
type Swarm struct {
	cfg      SwarmConfig
	surface  renderer.Surface
	renderer *renderer.SpiderRenderer
	rng      *rand.Rand

	state   State
	agents  []*systems.Agent
	simTime float64
	tick    int64
	stats   FrameStats
}

// NewSwarm creates an uninitialized swarm. Nothing is spawned until Start.
// A nil renderer gets the stock renderer.
func NewSwarm(cfg SwarmConfig, surface renderer.Surface, r *renderer.SpiderRenderer, rng *rand.Rand) *Swarm {
	if r == nil {
		r = renderer.NewSpiderRenderer()
	}
	return &Swarm{
		cfg:      cfg,
		surface:  surface,
		renderer: r,
		rng:      rng,
	}
}

func (s *Swarm) validate() error {
	if s.surface == nil {
		return fmt.Errorf("%w: no surface", ErrInvalidSwarm)
	}
	if s.cfg.AgentCount < 0 {
		return fmt.Errorf("%w: agent count %d is negative", ErrInvalidSwarm, s.cfg.AgentCount)
	}
	if err := s.cfg.Agent.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSwarm, err)
	}
	return nil
}

// Start validates the config and spawns AgentCount agents with independent random state.
func (s *Swarm) Start() error {
	if s.state != StateUninitialized {
		return ErrAlreadyStarted
	}
	if err := s.validate(); err != nil {
		return err
	}
	if s.rng == nil {
		return fmt.Errorf("%w: no random source", ErrInvalidSwarm)
	}

	s.agents = make([]*systems.Agent, s.cfg.AgentCount)
	for i := range s.agents {
		s.agents[i] = systems.NewAgent(s.cfg.Agent, s.rng)
	}
	s.state = StateRunning
	return nil
}

// Restore starts the swarm from a snapshot instead of spawning.
func (s *Swarm) Restore(snap *telemetry.Snapshot) error {
	if s.state != StateUninitialized {
		return ErrAlreadyStarted
	}
	if snap.ViewportW > 0 && snap.ViewportH > 0 {
		s.cfg.Agent.ViewportW = snap.ViewportW
		s.cfg.Agent.ViewportH = snap.ViewportH
	}
	s.cfg.AgentCount = len(snap.Agents)
	if err := s.validate(); err != nil {
		return err
	}

	s.agents = make([]*systems.Agent, len(snap.Agents))
	for i, st := range snap.Agents {
		s.agents[i] = systems.RestoreAgent(s.cfg.Agent, st)
	}
	s.simTime = snap.SimTime
	s.tick = snap.Tick
	s.state = StateRunning
	return nil
}

// OnPointerMove broadcasts a new goal to every agent. Last write wins.
// Ignored unless running.
func (s *Swarm) OnPointerMove(x, y float64) {
	if s.state != StateRunning {
		return
	}
	for _, a := range s.agents {
		a.SetGoal(x, y)
	}
}

// Resize propagates new surface dimensions to every agent.
func (s *Swarm) Resize(w, h float64) {
	if !(w > 0) || !(h > 0) {
		return
	}
	s.cfg.Agent.ViewportW = w
	s.cfg.Agent.ViewportH = h
	for _, a := range s.agents {
		a.SetViewport(w, h)
	}
}

// Advance runs one frame: it moves simulation time forward by dt seconds,
// ticks every agent and draws. A non-positive dt redraws without ticking.
// It is a no-op unless running.
func (s *Swarm) Advance(dt float64) {
	if s.state != StateRunning {
		return
	}
	if dt > 0 {
		s.Update(s.simTime + dt)
	}
	s.Draw()
}

// Step runs one frame at an explicit absolute simTime.
func (s *Swarm) Step(simTime float64) {
	if s.state != StateRunning {
		return
	}
	s.Update(simTime)
	s.Draw()
}

// Update ticks every agent in order at absolute simTime without drawing.
func (s *Swarm) Update(simTime float64) {
	if s.state != StateRunning {
		return
	}
	s.simTime = simTime
	s.tick++

	stats := FrameStats{Tick: s.tick, SimTime: simTime, Agents: len(s.agents)}
	var lenSum, distSum float64
	points := 0
	for _, a := range s.agents {
		ts := a.Tick(simTime)
		stats.Near += ts.Near
		stats.Activated += ts.Activated
		stats.Lit += ts.Lit
		lenSum += ts.LenSum
		points += len(a.Cloud())
		distSum += a.DistanceToGoal()
	}
	if points > 0 {
		stats.MeanLen = lenSum / float64(points)
	}
	if len(s.agents) > 0 {
		stats.MeanDistance = distSum / float64(len(s.agents))
	}
	s.stats = stats
}

// Draw clears the surface and draws every agent.
func (s *Swarm) Draw() {
	if s.state != StateRunning {
		return
	}
	s.renderer.BeginFrame(s.surface)
	for _, a := range s.agents {
		s.renderer.DrawAgent(s.surface, a)
	}
	rs := s.renderer.Stats()
	s.stats.Lines = rs.Lines
	s.stats.Circles = rs.Circles
}

// Stop releases every agent. Later frames are no-ops.
func (s *Swarm) Stop() {
	s.state = StateStopped
	s.agents = nil
}

// Snapshot captures every agent's state.
func (s *Swarm) Snapshot() (*telemetry.Snapshot, error) {
	if s.state != StateRunning {
		return nil, ErrNotRunning
	}
	snap := &telemetry.Snapshot{
		Version:   telemetry.SnapshotVersion,
		Tick:      s.tick,
		SimTime:   s.simTime,
		ViewportW: s.cfg.Agent.ViewportW,
		ViewportH: s.cfg.Agent.ViewportH,
	}
	for _, a := range s.agents {
		snap.Agents = append(snap.Agents, a.Snapshot())
	}
	return snap, nil
}

// State returns the lifecycle state.
func (s *Swarm) State() State { return s.state }

// Agents returns the agents in spawn order. Callers must not modify the slice.
func (s *Swarm) Agents() []*systems.Agent { return s.agents }

// SimTime returns the simulation time of the last update.
func (s *Swarm) SimTime() float64 { return s.simTime }

// Tick returns the number of updates so far.
func (s *Swarm) Tick() int64 { return s.tick }

// Stats returns the most recent frame's stats.
func (s *Swarm) Stats() FrameStats { return s.stats }

// Renderer returns the renderer used by Draw.
func (s *Swarm) Renderer() *renderer.SpiderRenderer { return s.renderer }
