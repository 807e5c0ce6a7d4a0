package game

import (
	"errors"
	"image/color"
	"math"
	"math/rand"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pthm-cable/spiders/components"
	"github.com/pthm-cable/spiders/systems"
	"github.com/pthm-cable/spiders/telemetry"
)

// countingSurface counts draw calls per frame.
type countingSurface struct {
	w, h    float64
	clears  int
	lines   int
	circles int
}

func (s *countingSurface) Size() (float64, float64) { return s.w, s.h }
func (s *countingSurface) Clear(color.RGBA) {
	s.clears++
	s.lines, s.circles = 0, 0
}
func (s *countingSurface) FillCircle(_, _, _ float64, _ color.RGBA)      { s.circles++ }
func (s *countingSurface) StrokePolyline([]components.Point, color.RGBA) { s.lines++ }

func newTestSwarm(t *testing.T, agents, cloud int, seed int64) (*Swarm, *countingSurface) {
	t.Helper()
	p := systems.DefaultAgentParams(800, 600)
	p.CloudSize = cloud
	surf := &countingSurface{w: 800, h: 600}
	s := NewSwarm(SwarmConfig{AgentCount: agents, Agent: p}, surf, nil, rand.New(rand.NewSource(seed)))
	return s, surf
}

func TestSwarmPursuitEndToEnd(t *testing.T) {
	s, surf := newTestSwarm(t, 1, 10, 7)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	a := s.Agents()[0]
	a.SetPosition(0, 0)
	s.OnPointerMove(400, 300)

	const dt = 1.0 / 60
	maxStep := 800.0 / 100
	startDist := a.DistanceToGoal()
	prev := a.Position()

	for i := 0; i < 50; i++ {
		s.Advance(dt)

		pos := a.Position()
		if pos.X-prev.X > maxStep+1e-9 || pos.Y-prev.Y > maxStep+1e-9 {
			t.Fatalf("tick %d: step (%v, %v) exceeds cap %v", i, pos.X-prev.X, pos.Y-prev.Y, maxStep)
		}
		prev = pos

		stats := s.Stats()
		if stats.Lines != surf.lines || stats.Circles != surf.circles {
			t.Fatalf("tick %d: stats %+v disagree with surface (%d lines, %d circles)", i, stats, surf.lines, surf.circles)
		}
		if stats.Lines != stats.Lit*9 || stats.Circles != stats.Lit {
			t.Fatalf("tick %d: expected 9 legs and 1 circle per lit point, got %+v", i, stats)
		}
	}

	if surf.clears != 50 {
		t.Errorf("expected 50 frames drawn, got %d", surf.clears)
	}
	if got := a.DistanceToGoal(); got >= startDist/2 {
		t.Errorf("expected agent to close most of the %v distance, still %v away", startDist, got)
	}
	if math.Abs(s.SimTime()-50*dt) > 1e-9 {
		t.Errorf("expected sim time %v, got %v", 50*dt, s.SimTime())
	}
	if s.Tick() != 50 {
		t.Errorf("expected 50 ticks, got %d", s.Tick())
	}
}

func TestSwarmEmptyCloudDrawsNoLines(t *testing.T) {
	s, surf := newTestSwarm(t, 2, 0, 1)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.OnPointerMove(400, 300)
	for i := 0; i < 20; i++ {
		s.Advance(1.0 / 60)
		if surf.lines != 0 || surf.circles != 0 {
			t.Fatalf("expected background only, got %d lines %d circles", surf.lines, surf.circles)
		}
	}
	if surf.clears != 20 {
		t.Errorf("expected 20 cleared frames, got %d", surf.clears)
	}
}

func TestSwarmZeroAgents(t *testing.T) {
	s, surf := newTestSwarm(t, 0, 333, 1)
	if err := s.Start(); err != nil {
		t.Fatalf("expected zero agents to be valid, got %v", err)
	}
	s.OnPointerMove(1, 1)
	s.Advance(1.0 / 60)
	if surf.clears != 1 || surf.lines != 0 {
		t.Errorf("expected one empty frame, got %d clears %d lines", surf.clears, surf.lines)
	}
}

func TestSwarmAdvanceZeroIsIdempotent(t *testing.T) {
	s, surf := newTestSwarm(t, 2, 100, 3)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.OnPointerMove(300, 200)
	for i := 0; i < 30; i++ {
		s.Advance(1.0 / 60)
	}

	before, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	lines := surf.lines

	s.Advance(0)
	s.Advance(-1)

	after, err := s.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Error("expected Advance(0) to leave state unchanged")
	}
	if surf.clears != 32 {
		t.Errorf("expected Advance(0) to still redraw, got %d frames", surf.clears)
	}
	if surf.lines != lines {
		t.Errorf("expected identical redraw, got %d lines vs %d", surf.lines, lines)
	}
}

func TestSwarmStateMachine(t *testing.T) {
	s, surf := newTestSwarm(t, 2, 10, 1)

	if s.State() != StateUninitialized {
		t.Fatalf("expected uninitialized, got %v", s.State())
	}
	s.OnPointerMove(10, 10)
	s.Advance(1)
	if surf.clears != 0 {
		t.Error("expected no drawing before start")
	}
	if _, err := s.Snapshot(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning before start, got %v", err)
	}

	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateRunning || len(s.Agents()) != 2 {
		t.Fatalf("expected running with 2 agents, got %v with %d", s.State(), len(s.Agents()))
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}

	s.Stop()
	if s.State() != StateStopped || s.Agents() != nil {
		t.Fatalf("expected stopped with no agents, got %v with %d", s.State(), len(s.Agents()))
	}
	s.Advance(1)
	s.Step(5)
	s.OnPointerMove(1, 1)
	if surf.clears != 0 || s.Tick() != 0 {
		t.Errorf("expected frames after stop to be no-ops, got %d clears, tick %d", surf.clears, s.Tick())
	}
	if _, err := s.Snapshot(); !errors.Is(err, ErrNotRunning) {
		t.Errorf("expected ErrNotRunning after stop, got %v", err)
	}
	if err := s.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected restart after stop to fail, got %v", err)
	}
}

func TestSwarmStartValidation(t *testing.T) {
	valid := systems.DefaultAgentParams(800, 600)
	rng := rand.New(rand.NewSource(1))
	surf := &countingSurface{w: 800, h: 600}

	zeroViewport := valid
	zeroViewport.ViewportW = 0

	tests := []struct {
		name   string
		cfg    SwarmConfig
		surf   *countingSurface
		rng    *rand.Rand
		params bool // also wraps systems.ErrInvalidParams
	}{
		{"negative agents", SwarmConfig{AgentCount: -1, Agent: valid}, surf, rng, false},
		{"zero viewport", SwarmConfig{AgentCount: 2, Agent: zeroViewport}, surf, rng, true},
		{"nil surface", SwarmConfig{AgentCount: 2, Agent: valid}, nil, rng, false},
		{"nil rng", SwarmConfig{AgentCount: 2, Agent: valid}, surf, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s *Swarm
			if tt.surf == nil {
				s = NewSwarm(tt.cfg, nil, nil, tt.rng)
			} else {
				s = NewSwarm(tt.cfg, tt.surf, nil, tt.rng)
			}
			err := s.Start()
			if !errors.Is(err, ErrInvalidSwarm) {
				t.Fatalf("expected ErrInvalidSwarm, got %v", err)
			}
			if tt.params && !errors.Is(err, systems.ErrInvalidParams) {
				t.Errorf("expected wrapped ErrInvalidParams, got %v", err)
			}
			if s.State() != StateUninitialized {
				t.Errorf("expected failed start to stay uninitialized, got %v", s.State())
			}
		})
	}
}

func TestSwarmBroadcastsPointer(t *testing.T) {
	s, _ := newTestSwarm(t, 3, 5, 1)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.OnPointerMove(10, 20)
	s.OnPointerMove(640, 480) // last write wins
	for i, a := range s.Agents() {
		if g := a.Goal(); g != (components.Point{X: 640, Y: 480}) {
			t.Errorf("agent %d: expected goal (640, 480), got %v", i, g)
		}
	}
}

func TestSwarmSameSeedSameState(t *testing.T) {
	run := func() *telemetry.Snapshot {
		s, _ := newTestSwarm(t, 2, 50, 99)
		if err := s.Start(); err != nil {
			t.Fatal(err)
		}
		s.OnPointerMove(200, 100)
		for i := 0; i < 20; i++ {
			s.Advance(1.0 / 60)
		}
		snap, err := s.Snapshot()
		if err != nil {
			t.Fatal(err)
		}
		return snap
	}
	if !reflect.DeepEqual(run(), run()) {
		t.Error("expected identical state for identical seeds")
	}
}

func TestSwarmSnapshotRestore(t *testing.T) {
	a, _ := newTestSwarm(t, 2, 60, 5)
	if err := a.Start(); err != nil {
		t.Fatal(err)
	}
	a.OnPointerMove(500, 250)
	for i := 0; i < 30; i++ {
		a.Advance(1.0 / 60)
	}

	snap, err := a.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "swarm.yaml")
	if err := telemetry.SaveSnapshot(snap, path); err != nil {
		t.Fatal(err)
	}
	loaded, err := telemetry.LoadSnapshot(path)
	if err != nil {
		t.Fatal(err)
	}

	b, _ := newTestSwarm(t, 0, 0, 12345)
	if err := b.Restore(loaded); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if b.Tick() != a.Tick() || b.SimTime() != a.SimTime() {
		t.Fatalf("expected clock %d/%v, got %d/%v", a.Tick(), a.SimTime(), b.Tick(), b.SimTime())
	}

	for i := 0; i < 30; i++ {
		if i == 10 {
			a.OnPointerMove(100, 500)
			b.OnPointerMove(100, 500)
		}
		a.Advance(1.0 / 60)
		b.Advance(1.0 / 60)
	}

	sa, _ := a.Snapshot()
	sb, _ := b.Snapshot()
	if !reflect.DeepEqual(sa, sb) {
		t.Error("expected restored swarm to tick identically")
	}
	if err := b.Restore(loaded); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected second restore to fail, got %v", err)
	}
}

func TestSwarmResize(t *testing.T) {
	s, _ := newTestSwarm(t, 2, 10, 1)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}

	s.Resize(1600, 1200)
	for i, a := range s.Agents() {
		if p := a.Params(); p.ViewportW != 1600 || p.ViewportH != 1200 {
			t.Errorf("agent %d: expected 1600x1200 viewport, got %vx%v", i, p.ViewportW, p.ViewportH)
		}
	}

	s.Resize(0, 100)
	s.Resize(math.NaN(), 100)
	if p := s.Agents()[0].Params(); p.ViewportW != 1600 {
		t.Errorf("expected invalid sizes to be ignored, got width %v", p.ViewportW)
	}

	snap, _ := s.Snapshot()
	if snap.ViewportW != 1600 || snap.ViewportH != 1200 {
		t.Errorf("expected snapshot to carry the new viewport, got %vx%v", snap.ViewportW, snap.ViewportH)
	}
}

func TestSwarmStepUsesExplicitTime(t *testing.T) {
	s, surf := newTestSwarm(t, 1, 10, 1)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.Step(12.5)
	if s.SimTime() != 12.5 || s.Tick() != 1 || surf.clears != 1 {
		t.Errorf("expected one frame at t=12.5, got t=%v tick=%d frames=%d", s.SimTime(), s.Tick(), surf.clears)
	}
	s.Advance(0.5)
	if s.SimTime() != 13 {
		t.Errorf("expected Advance to continue from the explicit time, got %v", s.SimTime())
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateUninitialized: "uninitialized",
		StateRunning:       "running",
		StateStopped:       "stopped",
		State(9):           "state(9)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}
