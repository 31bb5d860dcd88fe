package render

import (
	"math"
	"strconv"

	"cartesian-plane/internal/coords"
	"cartesian-plane/pkg/colorutil"
	"cartesian-plane/pkg/geometry"
)

// labelStep returns how many grid units apart axis labels are, so that
// labels stay at least ~40 pixels apart.
func labelStep(cell float64) int {
	for _, step := range []int{1, 2, 5, 10, 20, 50} {
		if float64(step)*cell >= 40 {
			return step
		}
	}
	return 100
}

// DrawGrid paints the background, cell lines, axes and axis labels of the
// plane area described by m.
func DrawGrid(s Surface, m coords.Mapper) {
	s.Clear(colorutil.Background)

	origin := m.Origin()
	cell := m.CellSize()
	top := m.HeaderHeight()
	bottom := top + m.Height()
	hx, hy := m.HalfRange()
	nx, ny := int(math.Ceil(hx)), int(math.Ceil(hy))
	step := labelStep(cell)

	for k := -nx; k <= nx; k++ {
		x := origin.X + float64(k)*cell
		if x < 0 || x > m.Width() {
			continue
		}
		s.Line(geometry.NewPoint2D(x, top), geometry.NewPoint2D(x, bottom), colorutil.GridLine, 1)
	}
	for k := -ny; k <= ny; k++ {
		y := origin.Y + float64(k)*cell
		if y < top || y > bottom {
			continue
		}
		s.Line(geometry.NewPoint2D(0, y), geometry.NewPoint2D(m.Width(), y), colorutil.GridLine, 1)
	}

	s.Line(geometry.NewPoint2D(origin.X, top), geometry.NewPoint2D(origin.X, bottom), colorutil.Axis, 1.5)
	s.Line(geometry.NewPoint2D(0, origin.Y), geometry.NewPoint2D(m.Width(), origin.Y), colorutil.Axis, 1.5)

	for k := -nx; k <= nx; k++ {
		if k == 0 || k%step != 0 {
			continue
		}
		p := m.CartesianToPixel(geometry.NewPoint2D(float64(k), 0))
		if p.X < 0 || p.X > m.Width() {
			continue
		}
		s.Text(strconv.Itoa(k), geometry.NewPoint2D(p.X+3, p.Y+14), colorutil.AxisLabel)
	}
	for k := -ny; k <= ny; k++ {
		if k == 0 || k%step != 0 {
			continue
		}
		p := m.CartesianToPixel(geometry.NewPoint2D(0, float64(k)))
		if p.Y < top || p.Y > bottom {
			continue
		}
		s.Text(strconv.Itoa(k), geometry.NewPoint2D(p.X+4, p.Y-3), colorutil.AxisLabel)
	}
	s.Text("0", geometry.NewPoint2D(origin.X+4, origin.Y+14), colorutil.AxisLabel)
}
