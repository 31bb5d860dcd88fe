package figure

import (
	"cartesian-plane/internal/render"
	"cartesian-plane/pkg/colorutil"
	"cartesian-plane/pkg/geometry"
)

// Default rectangle figure size in pixels.
const (
	DefaultRectWidth  = 80
	DefaultRectHeight = 36
)

// Rect is a draggable rectangle anchored at its top-left corner.
type Rect struct {
	base
	Width, Height float64
	Label         string
}

// NewRect creates a rectangle figure with its top-left corner at anchor.
func NewRect(anchor geometry.Point2D, width, height float64) *Rect {
	return &Rect{base: newBase(anchor), Width: width, Height: height}
}

func (r *Rect) Kind() Kind { return KindRect }

// Bounds returns the rectangle in pixel space.
func (r *Rect) Bounds() geometry.Rect {
	return geometry.NewRect(r.anchor.X, r.anchor.Y, r.Width, r.Height)
}

// CheckHover tests bounding-box containment, edges included.
func (r *Rect) CheckHover(p geometry.Point2D) bool {
	return r.setHover(r.Bounds().Contains(p))
}

func (r *Rect) Move(m Move) { r.translate(m) }

func (r *Rect) Draw(s render.Surface) {
	col := colorutil.StateColor(r.hovered, r.selected)
	b := r.Bounds()
	s.Rect(b, colorutil.Dim(col, 0.35), true)
	s.Rect(b, col, false)
	if r.Label != "" {
		s.Text(r.Label, geometry.NewPoint2D(b.X+6, b.Y+b.Height/2+4), colorutil.Text)
	}
}
