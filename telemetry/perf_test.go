package telemetry

import (
	"strings"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseTick)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhaseTick] <= 0 {
		t.Error("expected tick phase to be tracked")
	}
	if stats.PhaseAvg[PhaseRender] < 200*time.Microsecond {
		t.Errorf("expected render phase of at least 200µs, got %v", stats.PhaseAvg[PhaseRender])
	}
	if stats.PhaseAvg[PhasePresent] != 0 {
		t.Errorf("expected untouched phase to be zero, got %v", stats.PhaseAvg[PhasePresent])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhaseTick)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("expected min <= avg <= max, got %v %v %v",
			stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgTickDuration != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestPerfStatsCSV(t *testing.T) {
	var s PerfStats
	s.AvgTickDuration = 2 * time.Millisecond
	s.PhasePct[PhaseRender] = 75
	s.PhasePct[PhasePresent] = 20

	row := s.ToCSV(120)
	if row.WindowEnd != 120 || row.AvgTickUS != 2000 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.RenderPct != 75 || row.PresentPct != 20 || row.TickPct != 0 {
		t.Errorf("unexpected phase percentages %+v", row)
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseTick:    "tick",
		PhaseRender:  "render",
		PhasePresent: "present",
		Phase(99):    "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestPerfStatsLogStats(t *testing.T) {
	buf := captureLogs(t)
	var s PerfStats
	s.AvgTickDuration = 2 * time.Millisecond
	s.TicksPerSecond = 500
	s.PhasePct[PhaseTick] = 75
	s.PhasePct[PhaseRender] = 0.05
	s.LogStats()

	out := buf.String()
	for _, want := range []string{`"msg":"perf"`, `"perf":{`, `"avg_tick_us":2000`, `"ticks_per_sec":500`, `"tick_pct":75`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in log line %s", want, out)
		}
	}
	if strings.Contains(out, "render_pct") || strings.Contains(out, "fps") {
		t.Errorf("expected negligible phases and zero fps to be left out: %s", out)
	}
}
