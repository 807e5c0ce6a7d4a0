package telemetry

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// Frame is one frame's summary as reported by the swarm.
type Frame struct {
	Tick         int64
	SimTime      float64
	Agents       int
	Near         int
	Activated    int
	Lit          int
	MeanLen      float64
	MeanDistance float64
	Lines        int
	Circles      int
}

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int64   `csv:"-"`
	WindowEndTick   int64   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Frames          int     `csv:"frames"`

	Agents int `csv:"agents"`

	// Cloud activity
	Activations int     `csv:"activations"` // Points that started extending, summed over the window
	NearMean    float64 `csv:"near_mean"`
	LitMean     float64 `csv:"lit_mean"`
	LitP10      float64 `csv:"lit_p10"`
	LitP50      float64 `csv:"lit_p50"`
	LitP90      float64 `csv:"lit_p90"`
	LenMean     float64 `csv:"len_mean"`
	LenStd      float64 `csv:"len_std"`

	// Pursuit
	DistMean float64 `csv:"dist_mean"`
	DistP50  float64 `csv:"dist_p50"`
	DistP90  float64 `csv:"dist_p90"`

	// Drawing
	LinesMean   float64 `csv:"lines_mean"`
	CirclesMean float64 `csv:"circles_mean"`
}

// Quantiles returns the 10th, 50th and 90th percentiles of values.
// values is sorted in place. Returns zeros if it is empty.
func Quantiles(values []float64) (p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	slices.Sort(values)
	p10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, values, nil)
	return p10, p50, p90
}

// MeanStd returns the mean and sample standard deviation of values.
// The deviation is zero for fewer than two values.
func MeanStd(values []float64) (mean, std float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	mean, std = stat.MeanStdDev(values, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return mean, std
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Int("agents", s.Agents),
		slog.Int("activations", s.Activations),
		slog.Float64("near_mean", s.NearMean),
		slog.Float64("lit_mean", s.LitMean),
		slog.Float64("lit_p10", s.LitP10),
		slog.Float64("lit_p50", s.LitP50),
		slog.Float64("lit_p90", s.LitP90),
		slog.Float64("len_mean", s.LenMean),
		slog.Float64("len_std", s.LenStd),
		slog.Float64("dist_mean", s.DistMean),
		slog.Float64("dist_p50", s.DistP50),
		slog.Float64("dist_p90", s.DistP90),
		slog.Float64("lines_mean", s.LinesMean),
		slog.Float64("circles_mean", s.CirclesMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", slog.Any("window", s))
}
