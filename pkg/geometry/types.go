// Package geometry provides basic geometric types used throughout the application.
package geometry

import (
	"fmt"
	"math"
)

// Point2D represents a 2D point with floating-point coordinates.
// The same type carries pixel and Cartesian positions; which one is
// meant is decided by the caller.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewPoint2D creates a new Point2D.
func NewPoint2D(x, y float64) Point2D {
	return Point2D{X: x, Y: y}
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Add returns the sum of two points.
func (p Point2D) Add(other Point2D) Point2D {
	return Point2D{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point2D) Sub(other Point2D) Point2D {
	return Point2D{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point2D) Scale(factor float64) Point2D {
	return Point2D{X: p.X * factor, Y: p.Y * factor}
}

// Round returns the point with both coordinates rounded to the given
// number of decimal places.
func (p Point2D) Round(places int) Point2D {
	return Point2D{X: RoundTo(p.X, places), Y: RoundTo(p.Y, places)}
}

// IsZero reports whether both coordinates are zero.
func (p Point2D) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

func (p Point2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	r := math.Round(v*pow) / pow
	if r == 0 {
		return 0 // no negative zero
	}
	return r
}

// Rect represents a rectangle with floating-point coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRect creates a new Rect.
func NewRect(x, y, width, height float64) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// SquareAround returns the axis-aligned square of side 2*half centred on c.
func SquareAround(c Point2D, half float64) Rect {
	return Rect{X: c.X - half, Y: c.Y - half, Width: 2 * half, Height: 2 * half}
}

// Contains returns true if the point is inside the rectangle.
// Edges count as inside.
func (r Rect) Contains(p Point2D) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point2D {
	return Point2D{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point2D {
	return Point2D{X: r.X, Y: r.Y}
}

// BottomRight returns the bottom-right corner.
func (r Rect) BottomRight() Point2D {
	return Point2D{X: r.X + r.Width, Y: r.Y + r.Height}
}

// Corners returns the four corners clockwise from the top-left.
func (r Rect) Corners() [4]Point2D {
	return [4]Point2D{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
}

// Translate returns the rectangle moved by d.
func (r Rect) Translate(d Point2D) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, Width: r.Width, Height: r.Height}
}

// DistanceToLine returns the perpendicular distance from p to the infinite
// line y = slope*x + intercept. An infinite slope describes a vertical line
// through x = intercept.
func DistanceToLine(p Point2D, slope, intercept float64) float64 {
	if math.IsInf(slope, 0) {
		return math.Abs(p.X - intercept)
	}
	return math.Abs(-p.Y+slope*p.X+intercept) / math.Sqrt(1+slope*slope)
}

// SlopeThrough returns slope and intercept of the line through a and b.
// When a and b share an X coordinate the slope is +Inf and the intercept
// is that X coordinate.
func SlopeThrough(a, b Point2D) (slope, intercept float64) {
	if a.X == b.X {
		return math.Inf(1), a.X
	}
	slope = (b.Y - a.Y) / (b.X - a.X)
	return slope, a.Y - slope*a.X
}
