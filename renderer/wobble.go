package renderer

import (
	"github.com/pthm-cable/spiders/components"
	"github.com/pthm-cable/spiders/systems"
)

// Wobble turns straight segments into noise-perturbed polylines.
type Wobble struct {
	Field     systems.NoiseField
	Steps     int     // Subdivisions per segment
	Amplitude float64 // Noise value is multiplied by this
	Frequency float64 // Interpolated coordinates are divided by this before sampling
}

// DefaultWobble returns the stock line wobble.
func DefaultWobble() Wobble {
	return Wobble{
		Field:     systems.NewNoiseField(),
		Steps:     100,
		Amplitude: 2,
		Frequency: 5,
	}
}

// Path appends the wobbly polyline from p0 to p1 to dst and returns it.
//
// The first point is p0 itself. Each of the Steps following points is the
// linear interpolation at (i+1)/Steps, shifted by the same noise offset on
// both axes, which gives the lines their diagonal melt. A zero-length
// segment yields Steps+1 points clustered around p0.
func (w Wobble) Path(dst []components.Point, p0, p1 components.Point) []components.Point {
	dst = append(dst, p0)
	for i := 0; i < w.Steps; i++ {
		p := p0.Lerp(p1, float64(i+1)/float64(w.Steps))
		k := w.Field.At(p.X/w.Frequency+p0.X, p.Y/w.Frequency+p0.Y) * w.Amplitude
		dst = append(dst, components.Point{X: p.X + k, Y: p.Y + k})
	}
	return dst
}
