package renderer

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/spiders/components"
)

// RasterSurface draws into an offscreen image with the gg software rasterizer.
// Used for headless frame export.
type RasterSurface struct {
	dc        *gg.Context
	lineWidth float64
	err       error
}

// NewRasterSurface creates a w x h offscreen surface.
func NewRasterSurface(w, h int, lineWidth float64) *RasterSurface {
	if lineWidth <= 0 {
		lineWidth = 1
	}
	return &RasterSurface{
		dc:        gg.NewContext(w, h),
		lineWidth: lineWidth,
	}
}

// Size returns the image dimensions.
func (s *RasterSurface) Size() (float64, float64) {
	return float64(s.dc.Width()), float64(s.dc.Height())
}

// Clear fills the image.
func (s *RasterSurface) Clear(c color.RGBA) {
	s.dc.ClearWithColor(gg.FromColor(c))
}

// FillCircle draws a filled circle.
func (s *RasterSurface) FillCircle(cx, cy, r float64, c color.RGBA) {
	if !(r > 0) {
		return
	}
	s.dc.SetColor(c)
	s.dc.DrawCircle(cx, cy, r)
	s.keep(s.dc.Fill())
}

// StrokePolyline strokes pts as one open path.
func (s *RasterSurface) StrokePolyline(pts []components.Point, c color.RGBA) {
	if len(pts) < 2 {
		return
	}
	s.dc.SetColor(c)
	s.dc.SetLineWidth(s.lineWidth)
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	s.keep(s.dc.Stroke())
}

// keep records the first draw error; drawing continues best-effort.
func (s *RasterSurface) keep(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// Err returns the first draw error since creation.
func (s *RasterSurface) Err() error {
	return s.err
}

// Resize changes the image dimensions.
func (s *RasterSurface) Resize(w, h int) error {
	if err := s.dc.Resize(w, h); err != nil {
		return fmt.Errorf("resizing raster surface: %w", err)
	}
	return nil
}

// Image returns the current frame.
func (s *RasterSurface) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the current frame to path.
func (s *RasterSurface) SavePNG(path string) error {
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("saving frame %s: %w", path, err)
	}
	return nil
}

// EncodePNG writes the current frame to w.
func (s *RasterSurface) EncodePNG(w io.Writer) error {
	return s.dc.EncodePNG(w)
}

// Close releases the drawing context.
func (s *RasterSurface) Close() error {
	return s.dc.Close()
}
