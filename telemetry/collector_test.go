package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1, 0.25)
	if got := c.WindowDurationTicks(); got != 4 {
		t.Fatalf("expected 4 ticks per window, got %d", got)
	}

	for tick := int64(1); tick <= 3; tick++ {
		c.Record(Frame{Tick: tick, SimTime: float64(tick) * 0.25, Agents: 2, Activated: 1, Lit: int(tick), MeanLen: 0.5, MeanDistance: 10, Lines: 9})
		if c.ShouldFlush(tick) {
			t.Fatalf("unexpected flush at tick %d", tick)
		}
	}
	c.Record(Frame{Tick: 4, SimTime: 1, Agents: 2, Activated: 1, Lit: 4, MeanLen: 0.5, MeanDistance: 30, Lines: 9})
	if !c.ShouldFlush(4) {
		t.Fatal("expected flush at tick 4")
	}

	s := c.Flush(4)
	if s.WindowStartTick != 0 || s.WindowEndTick != 4 || s.SimTimeSec != 1 {
		t.Errorf("unexpected window bounds %+v", s)
	}
	if s.Frames != 4 || s.Agents != 2 || s.Activations != 4 {
		t.Errorf("unexpected counts %+v", s)
	}
	if s.LitMean != 2.5 || s.LenMean != 0.5 || s.LenStd != 0 {
		t.Errorf("unexpected cloud stats %+v", s)
	}
	if s.DistMean != 15 || s.LinesMean != 9 {
		t.Errorf("unexpected dist/lines %+v", s)
	}

	// Next window starts empty
	if c.ShouldFlush(5) {
		t.Error("expected no flush right after a flush")
	}
	s = c.Flush(8)
	if s.WindowStartTick != 4 || s.Frames != 0 || s.Activations != 0 || s.LitMean != 0 {
		t.Errorf("expected empty second window, got %+v", s)
	}
}

func TestCollectorReportsFrameSimTime(t *testing.T) {
	c := NewCollector(1, 0.25)
	if s := c.Flush(2); s.SimTimeSec != 0.5 {
		t.Errorf("expected nominal sim time 0.5 before any frame, got %v", s.SimTimeSec)
	}

	// Variable frame times drift from tick * dt.
	for tick, simTime := range []float64{0.1, 0.45, 0.9, 1.7} {
		c.Record(Frame{Tick: int64(tick + 1), SimTime: simTime})
	}
	if s := c.Flush(4); s.SimTimeSec != 1.7 {
		t.Errorf("expected last frame sim time 1.7, got %v", s.SimTimeSec)
	}
}

func TestCollectorNoNaN(t *testing.T) {
	c := NewCollector(5, 0)
	c.Record(Frame{Tick: 1})
	s := c.Flush(1)
	for name, v := range map[string]float64{
		"lit_mean": s.LitMean, "len_std": s.LenStd, "dist_p90": s.DistP90,
	} {
		if math.IsNaN(v) {
			t.Errorf("%s is NaN", name)
		}
	}
}
