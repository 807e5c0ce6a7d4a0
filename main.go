package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/spiders/config"
	"github.com/pthm-cable/spiders/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", string(game.ModeWindow), "Frame source: window, headless or terminal")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	logFile := flag.String("log-file", "", "Append logs to this file instead of stdout")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and snapshots")
	framesDir := flag.String("frames-dir", "", "Headless mode: directory for PNG frames")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	snapshot := flag.String("snapshot", "", "Write a snapshot to this path on exit")
	restore := flag.String("restore", "", "Start from this snapshot instead of spawning")

	flag.Parse()

	m := game.Mode(*mode)
	switch m {
	case game.ModeWindow, game.ModeHeadless, game.ModeTerminal:
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}

	closer, err := game.SetupLogging(m, *logFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.DefaultConfig()
	opts.Mode = m
	opts.Seed = rngSeed
	opts.MaxTicks = *maxTicks
	opts.FramesDir = *framesDir
	opts.OutputDir = *outputDir
	opts.LogStats = *logStats
	opts.Snapshot = *snapshot
	opts.Restore = *restore

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch m {
	case game.ModeHeadless:
		err = game.RunHeadless(ctx, cfg, opts)
	case game.ModeTerminal:
		err = game.RunTerminal(ctx, cfg, opts)
	default:
		err = game.RunWindow(cfg, opts)
	}
	if err != nil {
		slog.Error("run failed", "mode", m, "error", err)
		stop()
		closer.Close()
		os.Exit(1)
	}
}
