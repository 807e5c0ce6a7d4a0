package renderer

import (
	"image/color"

	"github.com/pthm-cable/spiders/components"
	"github.com/pthm-cable/spiders/systems"
)

// Palette holds the two colors a frame uses.
type Palette struct {
	Background color.RGBA
	Foreground color.RGBA
}

// DefaultPalette is white on black.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{A: 255},
		Foreground: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// FrameStats counts what a frame put on the surface.
type FrameStats struct {
	Lines   int
	Circles int
}

// SpiderRenderer draws agents as legs reaching out to their active cloud points.
type SpiderRenderer struct {
	Wobble    Wobble
	Palette   Palette
	GlowScale float64 // Circle radius = point radius * GlowScale
	IdleGlow  bool    // Also draw circles for points with Len == 0

	// Reused for every leg; surfaces must not retain it.
	path  []components.Point
	stats FrameStats
}

// NewSpiderRenderer creates a renderer with stock settings.
func NewSpiderRenderer() *SpiderRenderer {
	return &SpiderRenderer{
		Wobble:    DefaultWobble(),
		Palette:   DefaultPalette(),
		GlowScale: 0.3,
	}
}

// BeginFrame clears the surface to the background color.
func (r *SpiderRenderer) BeginFrame(s Surface) {
	r.stats = FrameStats{}
	s.Clear(r.Palette.Background)
}

// DrawAgent draws one agent's legs and glow circles.
//
// For every lit point each ring anchor gets a wobbly line that starts between
// the anchor and the point (at Len² of the way, so legs grow with ease-in)
// and ends at the anchor.
func (r *SpiderRenderer) DrawAgent(s Surface, a *systems.Agent) {
	fg := r.Palette.Foreground
	ring := a.Ring()

	for _, pt := range a.Cloud() {
		if pt.Len > 0 {
			t := pt.Len * pt.Len
			for i := range ring {
				anchor := a.RingAnchor(i)
				r.path = r.Wobble.Path(r.path[:0], anchor.Lerp(pt.Pos(), t), anchor)
				s.StrokePolyline(r.path, fg)
				r.stats.Lines++
			}
		} else if !r.IdleGlow {
			continue
		}
		s.FillCircle(pt.X, pt.Y, pt.R*r.GlowScale, fg)
		r.stats.Circles++
	}
}

// Stats returns counts since the last BeginFrame.
func (r *SpiderRenderer) Stats() FrameStats {
	return r.stats
}
