package systems

import "math"

// updateCloud recomputes glow radius and activation for every cloud point.
//
// Points are visited in spawn order and only the first ActivationCap points
// inside the activation distance ease toward 1. Earlier points always win the
// slots when more are near.
func (a *Agent) updateCloud() TickStats {
	p := &a.params
	threshold := p.ViewportW / p.ActivationDivisor

	var stats TickStats
	for i := range a.cloud {
		pt := &a.cloud[i]

		d := math.Hypot(pt.X-a.pos.X, pt.Y-a.pos.Y)
		r := math.Min(p.MaxRadius, p.ViewportW/d/p.RadiusDivisor)

		increasing := false
		if d < threshold {
			increasing = stats.Near < p.ActivationCap
			stats.Near++
		}

		step := -p.LenStep
		if increasing {
			step = p.LenStep
			r *= p.ActiveBoost
			stats.Activated++
		}

		pt.R = r
		pt.Len = clamp01(pt.Len + step)

		if pt.Len > 0 {
			stats.Lit++
		}
		stats.LenSum += pt.Len
	}
	return stats
}
