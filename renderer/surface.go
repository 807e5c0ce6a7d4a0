// Package renderer draws swarm frames onto pluggable 2D surfaces.
package renderer

import (
	"image/color"

	"github.com/pthm-cable/spiders/components"
)

// Surface is the minimal drawing target a frame needs.
// Coordinates are in surface units with the origin at the top-left.
type Surface interface {
	// Size returns the current drawable width and height.
	Size() (w, h float64)
	// Clear fills the whole surface.
	Clear(c color.RGBA)
	// FillCircle draws a filled circle.
	FillCircle(cx, cy, r float64, c color.RGBA)
	// StrokePolyline strokes an open polyline through pts in order.
	StrokePolyline(pts []components.Point, c color.RGBA)
}

// Discard is a Surface that draws nothing. Headless runs without a frames
// directory use it.
type Discard struct {
	W, H float64
}

func (d Discard) Size() (float64, float64)                       { return d.W, d.H }
func (Discard) Clear(color.RGBA)                                 {}
func (Discard) FillCircle(float64, float64, float64, color.RGBA) {}
func (Discard) StrokePolyline([]components.Point, color.RGBA)    {}
