package renderer

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/spiders/components"
)

// Braille dot positions (col, row) → bit offset:
//
//	(0,0)=0  (1,0)=3
//	(0,1)=1  (1,1)=4
//	(0,2)=2  (1,2)=5
//	(0,3)=6  (1,3)=7
var brailleBits = [2][4]uint8{
	{0, 1, 2, 6},
	{3, 4, 5, 7},
}

// Dots per terminal cell.
const (
	DotsPerCellX = 2
	DotsPerCellY = 4
)

// TerminalSurface rasterizes onto a grid of braille cells.
// Each cell is a 2x4 dot grid, so the surface is 2*cols by 4*rows dots.
type TerminalSurface struct {
	cols, rows int
	cells      []uint8
	colors     []color.RGBA
	background color.RGBA
}

// NewTerminalSurface creates a surface for a cols x rows terminal.
func NewTerminalSurface(cols, rows int) *TerminalSurface {
	s := &TerminalSurface{}
	s.Resize(cols, rows)
	return s
}

// Resize changes the cell grid and clears it.
func (s *TerminalSurface) Resize(cols, rows int) {
	s.cols = max(cols, 0)
	s.rows = max(rows, 0)
	s.cells = make([]uint8, s.cols*s.rows)
	s.colors = make([]color.RGBA, s.cols*s.rows)
}

// Size returns the surface size in dots.
func (s *TerminalSurface) Size() (float64, float64) {
	return float64(s.cols * DotsPerCellX), float64(s.rows * DotsPerCellY)
}

// Clear empties every cell and sets the background.
func (s *TerminalSurface) Clear(c color.RGBA) {
	clear(s.cells)
	s.background = c
}

// FillCircle sets every dot whose center lies inside the circle.
// Circles smaller than a dot still set the dot under their center.
func (s *TerminalSurface) FillCircle(cx, cy, r float64, c color.RGBA) {
	s.plot(cx, cy, c)
	w, h := s.Size()
	if !(r > 0.5) || r > w+h {
		return
	}
	if !(cx+r >= 0 && cx-r < w && cy+r >= 0 && cy-r < h) {
		return
	}
	for y := math.Floor(cy - r); y <= cy+r; y++ {
		for x := math.Floor(cx - r); x <= cx+r; x++ {
			dx, dy := x+0.5-cx, y+0.5-cy
			if dx*dx+dy*dy <= r*r {
				s.plot(x, y, c)
			}
		}
	}
}

// StrokePolyline plots each segment with a DDA walk.
func (s *TerminalSurface) StrokePolyline(pts []components.Point, c color.RGBA) {
	if len(pts) == 1 {
		s.plot(pts[0].X, pts[0].Y, c)
		return
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := math.Max(math.Abs(b.X-a.X), math.Abs(b.Y-a.Y))
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		// Segments far longer than the surface are walked coarsely.
		w, h := s.Size()
		steps := int(math.Min(math.Ceil(d), w+h))
		if steps < 1 {
			steps = 1
		}
		for k := 0; k <= steps; k++ {
			p := a.Lerp(b, float64(k)/float64(steps))
			s.plot(p.X, p.Y, c)
		}
	}
}

// plot sets the dot containing (x, y). Off-surface and NaN positions are ignored.
func (s *TerminalSurface) plot(x, y float64, c color.RGBA) {
	w, h := s.Size()
	if !(x >= 0 && x < w && y >= 0 && y < h) {
		return
	}
	dx, dy := int(x), int(y)
	col, row := dx/DotsPerCellX, dy/DotsPerCellY
	i := row*s.cols + col
	s.cells[i] |= 1 << brailleBits[dx%DotsPerCellX][dy%DotsPerCellY]
	s.colors[i] = c
}

// Cell returns the braille rune for a cell, or ' ' when it is empty.
func (s *TerminalSurface) Cell(col, row int) rune {
	bits := s.cells[row*s.cols+col]
	if bits == 0 {
		return ' '
	}
	return rune(0x2800 + int(bits))
}

// Present copies the cell grid onto screen. The caller calls screen.Show.
func (s *TerminalSurface) Present(screen tcell.Screen) {
	bg := tcellColor(s.background)
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			i := row*s.cols + col
			style := tcell.StyleDefault.Background(bg).Foreground(tcellColor(s.colors[i]))
			screen.SetContent(col, row, s.Cell(col, row), nil, style)
		}
	}
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
