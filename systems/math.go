package systems

// clamp01 clamps a value to the [0, 1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ranged maps a unit random value onto [lo, lo+width).
func ranged(unit, lo, width float64) float64 {
	return lo + unit*width
}
