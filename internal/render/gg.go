package render

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"cartesian-plane/pkg/geometry"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// FontSize is the point size used for all surface text.
const FontSize = 13

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

// loadFont parses the embedded Go Regular font once per process.
func loadFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

// GGSurface is a Surface backed by a gg software rasterizer.
type GGSurface struct {
	dc  *gg.Context
	err error
}

var _ Surface = (*GGSurface)(nil)

// NewGGSurface creates a surface of the given size with the default font.
func NewGGSurface(width, height int) (*GGSurface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	src, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	dc := gg.NewContext(width, height)
	dc.SetFont(src.Face(FontSize))
	return &GGSurface{dc: dc}, nil
}

// Resize changes the surface dimensions. Contents are discarded.
func (s *GGSurface) Resize(width, height int) error {
	return s.dc.Resize(width, height)
}

// Size implements Surface.
func (s *GGSurface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// Image returns the rendered frame.
func (s *GGSurface) Image() image.Image {
	return s.dc.Image()
}

// Err returns the first rasterization error since the last call, and resets it.
func (s *GGSurface) Err() error {
	err := s.err
	s.err = nil
	return err
}

// Close releases the underlying context.
func (s *GGSurface) Close() error {
	return s.dc.Close()
}

func (s *GGSurface) keep(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// Clear implements Surface.
func (s *GGSurface) Clear(c color.Color) {
	s.dc.ClearWithColor(gg.FromColor(c))
}

// Rect implements Surface.
func (s *GGSurface) Rect(r geometry.Rect, c color.Color, filled bool) {
	s.dc.SetColor(c)
	s.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	if filled {
		s.keep(s.dc.Fill())
		return
	}
	s.dc.SetLineWidth(1)
	s.keep(s.dc.Stroke())
}

// Line implements Surface.
func (s *GGSurface) Line(a, b geometry.Point2D, c color.Color, width float64) {
	s.dc.SetColor(c)
	s.dc.SetLineWidth(width)
	s.dc.DrawLine(a.X, a.Y, b.X, b.Y)
	s.keep(s.dc.Stroke())
}

// Circle implements Surface.
func (s *GGSurface) Circle(center geometry.Point2D, radius float64, c color.Color, filled bool) {
	s.dc.SetColor(c)
	s.dc.DrawCircle(center.X, center.Y, radius)
	if filled {
		s.keep(s.dc.Fill())
		return
	}
	s.dc.SetLineWidth(1.5)
	s.keep(s.dc.Stroke())
}

// Text implements Surface.
func (s *GGSurface) Text(str string, p geometry.Point2D, c color.Color) {
	s.dc.SetColor(c)
	s.dc.DrawString(str, p.X, p.Y)
}
