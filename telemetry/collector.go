package telemetry

// Collector accumulates frames within time windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int64
	dt                  float64

	windowStartTick int64
	simTime         float64
	hasSimTime      bool

	// Per-frame samples for the current window
	lit       []float64
	lens      []float64
	distances []float64

	near        int
	activations int
	lines       int
	circles     int
	agents      int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticks := int64(1)
	if dt > 0 {
		ticks = max(int64(windowDurationSec/dt), 1)
	}
	return &Collector{
		windowDurationTicks: ticks,
		dt:                  dt,
	}
}

// Record adds one frame to the current window.
func (c *Collector) Record(f Frame) {
	c.lit = append(c.lit, float64(f.Lit))
	c.lens = append(c.lens, f.MeanLen)
	c.distances = append(c.distances, f.MeanDistance)
	c.near += f.Near
	c.activations += f.Activated
	c.lines += f.Lines
	c.circles += f.Circles
	c.agents = f.Agents
	c.simTime = f.SimTime
	c.hasSimTime = true
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets the window.
func (c *Collector) Flush(currentTick int64) WindowStats {
	frames := len(c.lit)
	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      c.windowSimTime(currentTick),
		Frames:          frames,
		Agents:          c.agents,
		Activations:     c.activations,
	}

	if frames > 0 {
		n := float64(frames)
		stats.NearMean = float64(c.near) / n
		stats.LinesMean = float64(c.lines) / n
		stats.CirclesMean = float64(c.circles) / n
		stats.LitMean, _ = MeanStd(c.lit)
		stats.LenMean, stats.LenStd = MeanStd(c.lens)
		stats.DistMean, _ = MeanStd(c.distances)
		stats.LitP10, stats.LitP50, stats.LitP90 = Quantiles(c.lit)
		_, stats.DistP50, stats.DistP90 = Quantiles(c.distances)
	}

	c.windowStartTick = currentTick
	c.lit = c.lit[:0]
	c.lens = c.lens[:0]
	c.distances = c.distances[:0]
	c.near = 0
	c.activations = 0
	c.lines = 0
	c.circles = 0

	return stats
}

// windowSimTime is the sim time of the last recorded frame. Before any frame
// is seen it falls back to the nominal tick time.
func (c *Collector) windowSimTime(currentTick int64) float64 {
	if c.hasSimTime {
		return c.simTime
	}
	return float64(currentTick) * c.dt
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
