package game

import "log/slog"

// flushTelemetry closes the stats window once it is full.
func (g *Game) flushTelemetry() {
	tick := g.swarm.Tick()
	if !g.collector.ShouldFlush(tick) {
		return
	}

	stats := g.collector.Flush(tick)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// snapshotToOutput writes the current state into the output directory.
func (g *Game) snapshotToOutput() {
	if g.outputManager == nil {
		slog.Warn("snapshot requested without an output directory")
		return
	}
	snap, err := g.swarm.Snapshot()
	if err != nil {
		slog.Error("failed to take snapshot", "error", err)
		return
	}
	snap.Seed = g.opts.Seed
	path, err := g.outputManager.WriteSnapshot(snap)
	if err != nil {
		slog.Error("failed to write snapshot", "error", err)
		return
	}
	slog.Info("snapshot written", "path", path, "tick", snap.Tick)
}
