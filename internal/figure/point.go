package figure

import (
	"cartesian-plane/internal/render"
	"cartesian-plane/pkg/colorutil"
	"cartesian-plane/pkg/geometry"
)

// DefaultPointRadius is the radius of newly placed points.
const DefaultPointRadius = 6

// Point is a circle centred on its anchor.
type Point struct {
	base
	Radius float64
}

// NewPoint creates a point figure.
func NewPoint(anchor geometry.Point2D, radius float64) *Point {
	return &Point{base: newBase(anchor), Radius: radius}
}

func (p *Point) Kind() Kind { return KindPoint }

// CheckHover tests against the 2r x 2r square around the centre, not the
// circle itself, so the corners of the square hover too.
func (p *Point) CheckHover(pos geometry.Point2D) bool {
	return p.setHover(geometry.SquareAround(p.anchor, p.Radius).Contains(pos))
}

func (p *Point) Move(m Move) { p.translate(m) }

func (p *Point) Draw(s render.Surface) {
	s.Circle(p.anchor, p.Radius, colorutil.StateColor(p.hovered, p.selected), true)
}
