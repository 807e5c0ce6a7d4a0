package game

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/pthm-cable/spiders/config"
	"github.com/pthm-cable/spiders/renderer"
)

// ScriptedPointer moves the pointer along a Lissajous curve around the
// viewport center, standing in for a user in headless runs.
type ScriptedPointer struct {
	CenterX, CenterY float64
	RadiusX, RadiusY float64
	SpeedX, SpeedY   float64
}

// NewScriptedPointer fits the curve into a w x h viewport.
// radius is a fraction of the smaller side.
func NewScriptedPointer(w, h, radius, speedX, speedY float64) ScriptedPointer {
	r := math.Min(w, h) * radius
	return ScriptedPointer{
		CenterX: w / 2,
		CenterY: h / 2,
		RadiusX: r,
		RadiusY: r,
		SpeedX:  speedX,
		SpeedY:  speedY,
	}
}

// At returns the pointer position at simTime.
func (p ScriptedPointer) At(simTime float64) (x, y float64) {
	return p.CenterX + math.Sin(simTime*p.SpeedX)*p.RadiusX,
		p.CenterY + math.Sin(simTime*p.SpeedY)*p.RadiusY
}

// RunHeadless runs the swarm with a scripted pointer until ctx is cancelled
// or MaxTicks is reached. With opts.FramesDir set it rasterizes offscreen and
// writes a PNG every frame_interval frames; without it nothing is drawn and
// only telemetry is produced.
func RunHeadless(ctx context.Context, cfg *config.Config, opts GameConfig) error {
	var surface renderer.Surface = renderer.Discard{W: float64(cfg.Screen.Width), H: float64(cfg.Screen.Height)}
	var raster *renderer.RasterSurface
	if opts.FramesDir != "" {
		if err := os.MkdirAll(opts.FramesDir, 0755); err != nil {
			return fmt.Errorf("creating frames directory: %w", err)
		}
		raster = renderer.NewRasterSurface(cfg.Screen.Width, cfg.Screen.Height, cfg.Render.LineWidth)
		defer raster.Close()
		surface = raster
	}

	g, err := NewGame(cfg, opts, surface)
	if err != nil {
		return err
	}
	defer g.Unload()

	w, h := surface.Size()
	pointer := NewScriptedPointer(w, h, cfg.Headless.PointerRadius, cfg.Headless.PointerSpeedX, cfg.Headless.PointerSpeedY)
	dt := cfg.Derived.DT

	slog.Info("starting headless run", "seed", opts.Seed, "max_ticks", opts.MaxTicks, "frames_dir", opts.FramesDir)

	written := 0
	for !g.Done() {
		if err := ctx.Err(); err != nil {
			slog.Info("headless run interrupted", "tick", g.Tick())
			return nil
		}

		g.PointerMove(pointer.At(g.Swarm().SimTime()))
		g.Frame(dt, func() {
			if !g.shouldWriteFrame() {
				return
			}
			path := filepath.Join(opts.FramesDir, fmt.Sprintf("frame_%06d.png", g.Tick()))
			if err := raster.SavePNG(path); err != nil {
				slog.Error("failed to write frame", "path", path, "error", err)
				return
			}
			written++
		})

		if raster != nil {
			if err := raster.Err(); err != nil {
				return fmt.Errorf("rasterizing tick %d: %w", g.Tick(), err)
			}
		}
	}

	slog.Info("max ticks reached", "tick", g.Tick(), "frames_written", written)
	return nil
}

func (g *Game) shouldWriteFrame() bool {
	interval := g.cfg.Headless.FrameInterval
	return g.opts.FramesDir != "" && interval > 0 && g.Tick()%int64(interval) == 0
}
