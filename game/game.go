package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/spiders/config"
	"github.com/pthm-cable/spiders/renderer"
	"github.com/pthm-cable/spiders/telemetry"
)

// Game hosts one swarm: it owns the frame clock bookkeeping, telemetry and
// snapshots. Drivers feed it pointer moves and frame times.
type Game struct {
	cfg   *config.Config
	opts  GameConfig
	rng   *rand.Rand
	swarm *Swarm

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)

	// Debug overlay (window mode)
	debugMode bool

	width, height float64
}

// NewGame creates the swarm on surface and starts it, either fresh or from opts.Restore.
func NewGame(cfg *config.Config, opts GameConfig, surface renderer.Surface) (*Game, error) {
	w, h := surface.Size()
	g := &Game{
		cfg:           cfg,
		opts:          opts,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow, cfg.Derived.DT),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		width:         w,
		height:        h,
	}
	g.swarm = NewSwarm(NewSwarmConfig(cfg, w, h), surface, NewSpiderRenderer(cfg), g.rng)

	if opts.Restore != "" {
		snap, err := telemetry.LoadSnapshot(opts.Restore)
		if err != nil {
			return nil, err
		}
		if err := g.swarm.Restore(snap); err != nil {
			return nil, fmt.Errorf("restoring %s: %w", opts.Restore, err)
		}
		// The window may not match the snapshot's viewport.
		g.swarm.Resize(w, h)
		slog.Info("swarm restored", "path", opts.Restore, "tick", snap.Tick, "agents", len(snap.Agents))
	} else {
		if err := g.swarm.Start(); err != nil {
			return nil, err
		}
		slog.Info("swarm started",
			"seed", opts.Seed,
			"agents", cfg.Swarm.Agents,
			"cloud_size", cfg.Swarm.CloudSize,
			"width", w,
			"height", h,
		)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}
	g.outputManager = om

	slog.Info("telemetry enabled",
		"stats_window_ticks", g.collector.WindowDurationTicks(),
		"output_dir", om.Dir(),
		"log_stats", opts.LogStats,
	)

	return g, nil
}

// SetStatsCallback registers a function called with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// PointerMove forwards a pointer position to the swarm.
func (g *Game) PointerMove(x, y float64) {
	g.swarm.OnPointerMove(x, y)
}

// Resize propagates new surface dimensions.
func (g *Game) Resize(w, h float64) {
	if w == g.width && h == g.height {
		return
	}
	g.width, g.height = w, h
	g.swarm.Resize(w, h)
	slog.Info("resized", "width", w, "height", h)
}

// Frame runs one frame of dt seconds: tick, draw, present and telemetry.
// present may be nil.
func (g *Game) Frame(dt float64, present func()) {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseTick)
	if dt > 0 {
		g.swarm.Update(g.swarm.SimTime() + dt)
	}

	g.perfCollector.StartPhase(telemetry.PhaseRender)
	g.swarm.Draw()

	if present != nil {
		g.perfCollector.StartPhase(telemetry.PhasePresent)
		present()
		g.perfCollector.RecordFrame()
	}

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	if dt > 0 {
		g.collector.Record(g.swarm.Stats().frame())
		g.flushTelemetry()
	}

	g.perfCollector.EndTick()
}

// Done reports whether the configured tick limit has been reached.
func (g *Game) Done() bool {
	return g.opts.MaxTicks > 0 && g.swarm.Tick() >= g.opts.MaxTicks
}

// Tick returns the number of simulation updates so far.
func (g *Game) Tick() int64 { return g.swarm.Tick() }

// Swarm returns the hosted swarm.
func (g *Game) Swarm() *Swarm { return g.swarm }

// Unload writes the exit snapshot, closes output and stops the swarm.
func (g *Game) Unload() {
	if g.opts.Snapshot != "" {
		g.saveSnapshot(g.opts.Snapshot)
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.swarm.Stop()
	slog.Info("swarm stopped", "tick", g.swarm.Tick(), "sim_time", g.swarm.SimTime())
}

func (g *Game) saveSnapshot(path string) {
	snap, err := g.swarm.Snapshot()
	if err != nil {
		slog.Error("failed to take snapshot", "error", err)
		return
	}
	snap.Seed = g.opts.Seed
	if err := telemetry.SaveSnapshot(snap, path); err != nil {
		slog.Error("failed to write snapshot", "error", err)
		return
	}
	slog.Info("snapshot written", "path", path, "tick", snap.Tick)
}
