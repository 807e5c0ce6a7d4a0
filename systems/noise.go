package systems

import "math"

// DefaultNoiseTime is the fixed time slice sampled for line wobble.
// Holding t constant keeps the wobble pattern static while the agents move.
const DefaultNoiseTime = 101.0

// Noise returns a smooth pseudo-periodic value for (x, y) at time t.
// It sums two nested sinusoids, one driven x-then-y and one y-then-x,
// so the result is continuous, deterministic and bounded by [-2, 2].
func Noise(x, y, t float64) float64 {
	w0 := math.Sin(0.3*x + 1.4*t + 2.0 + 2.5*math.Sin(0.4*y-1.3*t+1.0))
	w1 := math.Sin(0.2*y + 1.5*t + 2.8 + 2.3*math.Sin(0.5*x-1.2*t+0.5))
	return w0 + w1
}

// NoiseField samples Noise at a fixed time slice.
type NoiseField struct {
	T float64
}

// NewNoiseField creates a field pinned to the default time slice.
func NewNoiseField() NoiseField {
	return NoiseField{T: DefaultNoiseTime}
}

// At evaluates the field at (x, y).
func (f NoiseField) At(x, y float64) float64 {
	return Noise(x, y, f.T)
}
