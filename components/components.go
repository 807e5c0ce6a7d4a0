// Package components defines the plain data types shared by the simulation,
// renderers and snapshot files.
package components

// Point is a 2D position or offset in surface coordinates.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Scale returns p * k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Lerp interpolates from p toward q by t (t=0 is p, t=1 is q).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// CloudPoint is one ambient point owned by an agent.
// X, Y are fixed at spawn; Len and R change every tick.
type CloudPoint struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Len float64 `yaml:"len"` // Activation level, always in [0, 1]
	R   float64 `yaml:"r"`   // Current glow radius
}

// Pos returns the point's fixed position.
func (c CloudPoint) Pos() Point {
	return Point{X: c.X, Y: c.Y}
}

// AgentState is the complete serializable state of one agent.
// Restoring it into a fresh agent reproduces identical subsequent ticks.
type AgentState struct {
	Position     Point        `yaml:"position"`
	Goal         Point        `yaml:"goal"`
	Seed         float64      `yaml:"seed"`
	WanderRadius Point        `yaml:"wander_radius"`
	WanderSpeed  Point        `yaml:"wander_speed"`
	BodyRadius   float64      `yaml:"body_radius"`
	Cloud        []CloudPoint `yaml:"cloud"`
}
