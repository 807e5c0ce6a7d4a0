package main

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/spiders/systems"
)

// FieldParams controls which part of the noise field is sampled.
type FieldParams struct {
	T         float64 // Noise time parameter
	Span      float64 // Field units covered by the preview edge
	OffsetX   float64
	OffsetY   float64
	Amplitude float64 // Wobble amplitude, for the leg preview
	Frequency float64 // Wobble frequency divisor, for the leg preview
	Steps     int
}

// DefaultFieldParams mirrors the stock render settings.
func DefaultFieldParams() FieldParams {
	return FieldParams{
		T:         systems.DefaultNoiseTime,
		Span:      40,
		Amplitude: 2,
		Frequency: 5,
		Steps:     100,
	}
}

// sampleField fills a size x size grid with noise values and returns their range.
func sampleField(grid []float64, size int, p FieldParams) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for y := 0; y < size; y++ {
		fy := p.OffsetY + (float64(y)+0.5)/float64(size)*p.Span
		for x := 0; x < size; x++ {
			fx := p.OffsetX + (float64(x)+0.5)/float64(size)*p.Span
			v := systems.Noise(fx, fy, p.T)
			grid[y*size+x] = v
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	return lo, hi
}

var (
	coldColor, _ = colorful.Hex("#1b1f3b")
	hotColor, _  = colorful.Hex("#f2e8cf")
)

// shade maps a noise value in [-2, 2] to a preview color.
func shade(v float64) color.RGBA {
	t := math.Max(0, math.Min(1, (v+2)/4))
	r, g, b := coldColor.BlendLab(hotColor, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
