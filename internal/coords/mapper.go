// Package coords converts between window pixels and Cartesian grid coordinates.
package coords

import (
	"fmt"
	"math"

	"cartesian-plane/pkg/geometry"

	"github.com/go-gl/mathgl/mgl64"
)

// Precision is the number of decimal places Cartesian coordinates are rounded to.
const Precision = 2

// Mapper maps pixel positions to Cartesian coordinates and back.
//
// The plane area is Width x Height pixels and sits below a header of
// HeaderHeight pixels, so the window is Height+HeaderHeight tall. The
// Cartesian origin is the centre of the whole window, header included,
// which puts it HeaderHeight/2 pixels above the centre of the plane area.
// One unit is CellSize pixels and y grows upwards.
type Mapper struct {
	width, height float64
	header        float64
	cell          float64

	toCart  mgl64.Mat3
	toPixel mgl64.Mat3
}

// New creates a mapper for a plane of the given size.
func New(width, height, headerHeight, cellSize float64) (Mapper, error) {
	if width <= 0 || height <= 0 {
		return Mapper{}, fmt.Errorf("invalid plane size %.0fx%.0f", width, height)
	}
	if cellSize <= 0 {
		return Mapper{}, fmt.Errorf("invalid cell size %.2f", cellSize)
	}
	if headerHeight < 0 {
		return Mapper{}, fmt.Errorf("invalid header height %.2f", headerHeight)
	}

	m := Mapper{width: width, height: height, header: headerHeight, cell: cellSize}
	origin := m.Origin()
	m.toCart = mgl64.Scale2D(1/cellSize, -1/cellSize).Mul3(mgl64.Translate2D(-origin.X, -origin.Y))
	m.toPixel = m.toCart.Inv()
	return m, nil
}

// Resize returns a mapper for a new plane size with the same header and cell size.
func (m Mapper) Resize(width, height float64) (Mapper, error) {
	return New(width, height, m.header, m.cell)
}

// Width returns the plane width in pixels.
func (m Mapper) Width() float64 { return m.width }

// Height returns the plane height in pixels, header excluded.
func (m Mapper) Height() float64 { return m.height }

// HeaderHeight returns the header height in pixels.
func (m Mapper) HeaderHeight() float64 { return m.header }

// CellSize returns the size of one grid unit in pixels.
func (m Mapper) CellSize() float64 { return m.cell }

// Origin returns the pixel position of the Cartesian origin.
func (m Mapper) Origin() geometry.Point2D {
	return geometry.Point2D{X: m.width / 2, Y: (m.height + m.header) / 2}
}

// HalfRange returns the Cartesian extent on each side of the origin. The
// y extent spans the full window height.
func (m Mapper) HalfRange() (x, y float64) {
	return m.width / (2 * m.cell), (m.height + m.header) / (2 * m.cell)
}

// PixelToCartesian converts a pixel position to grid coordinates rounded to
// two decimal places. Off-screen positions yield out-of-range values.
func (m Mapper) PixelToCartesian(p geometry.Point2D) geometry.Point2D {
	v := m.toCart.Mul3x1(mgl64.Vec3{p.X, p.Y, 1})
	return geometry.Point2D{X: v.X(), Y: v.Y()}.Round(Precision)
}

// CartesianToPixel converts grid coordinates to an unrounded pixel position.
func (m Mapper) CartesianToPixel(c geometry.Point2D) geometry.Point2D {
	v := m.toPixel.Mul3x1(mgl64.Vec3{c.X, c.Y, 1})
	return geometry.Point2D{X: v.X(), Y: v.Y()}
}

// InRange reports whether c lies inside the visible range.
func (m Mapper) InRange(c geometry.Point2D) bool {
	hx, hy := m.HalfRange()
	return math.Abs(c.X) <= hx && math.Abs(c.Y) <= hy
}

// Snap returns the grid intersection nearest to c.
func (m Mapper) Snap(c geometry.Point2D) geometry.Point2D {
	return geometry.Point2D{X: math.Round(c.X), Y: math.Round(c.Y)}
}
