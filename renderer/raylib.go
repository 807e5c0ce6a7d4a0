package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/spiders/components"
)

// RaylibSurface draws into the current raylib frame.
// Calls must happen between rl.BeginDrawing and rl.EndDrawing.
type RaylibSurface struct {
	LineWidth float32
}

// NewRaylibSurface creates a surface for the open window.
func NewRaylibSurface(lineWidth float64) *RaylibSurface {
	if lineWidth <= 0 {
		lineWidth = 1
	}
	return &RaylibSurface{LineWidth: float32(lineWidth)}
}

// Size returns the window's render size.
func (s *RaylibSurface) Size() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

// Clear fills the window.
func (s *RaylibSurface) Clear(c color.RGBA) {
	rl.ClearBackground(c)
}

// FillCircle draws a filled circle.
func (s *RaylibSurface) FillCircle(cx, cy, r float64, c color.RGBA) {
	rl.DrawCircleV(rl.Vector2{X: float32(cx), Y: float32(cy)}, float32(r), c)
}

// StrokePolyline draws consecutive segments.
func (s *RaylibSurface) StrokePolyline(pts []components.Point, c color.RGBA) {
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(
			rl.Vector2{X: float32(pts[i-1].X), Y: float32(pts[i-1].Y)},
			rl.Vector2{X: float32(pts[i].X), Y: float32(pts[i].Y)},
			s.LineWidth,
			c,
		)
	}
}
