// Package render provides the drawing surface the plane paints onto.
package render

import (
	"image/color"

	"cartesian-plane/pkg/geometry"
)

// Surface is an immediate-mode 2D drawing target. Coordinates are pixels
// with the origin at the top-left corner.
type Surface interface {
	// Clear fills the whole surface with c.
	Clear(c color.Color)
	// Rect draws r, filled or as a one pixel outline.
	Rect(r geometry.Rect, c color.Color, filled bool)
	// Line draws a segment from a to b.
	Line(a, b geometry.Point2D, c color.Color, width float64)
	// Circle draws a circle, filled or outlined.
	Circle(center geometry.Point2D, radius float64, c color.Color, filled bool)
	// Text draws s with its baseline starting at p.
	Text(s string, p geometry.Point2D, c color.Color)
	// Size returns the surface dimensions in pixels.
	Size() (width, height int)
}
