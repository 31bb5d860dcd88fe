package figure

import (
	"math"

	"cartesian-plane/internal/render"
	"cartesian-plane/pkg/colorutil"
	"cartesian-plane/pkg/geometry"
)

const (
	// LineHoverThreshold is the maximum perpendicular distance in pixels at
	// which a line reports hover.
	LineHoverThreshold = 4.0
	// AnchorRadius is the grab radius of a line's anchor handle.
	AnchorRadius = 8.0
)

// LineMode is the drag behaviour of a selected line.
type LineMode int

const (
	// DefiningSlope makes drags rotate the line around its anchor.
	DefiningSlope LineMode = iota
	// Dragging makes drags translate the anchor.
	Dragging
)

func (m LineMode) String() string {
	if m == Dragging {
		return "dragging"
	}
	return "defining-slope"
}

// Line is the infinite line y = Slope*x + Intercept through its anchor,
// in pixel space. A vertical line has an infinite slope and its intercept
// holds the x coordinate.
type Line struct {
	base
	slope     float64
	intercept float64
	target    geometry.Point2D

	mode         LineMode
	selectedOnce bool
	nearAnchor   bool
}

// NewLine creates a horizontal line through anchor. The first drag after
// it is selected defines its slope.
func NewLine(anchor geometry.Point2D) *Line {
	l := &Line{base: newBase(anchor), mode: DefiningSlope}
	l.target = anchor.Add(geometry.NewPoint2D(1, 0))
	l.slope, l.intercept = geometry.SlopeThrough(anchor, l.target)
	return l
}

func (l *Line) Kind() Kind { return KindLine }

// Slope returns the slope; +Inf for a vertical line.
func (l *Line) Slope() float64 { return l.slope }

// Intercept returns the y intercept, or the x position of a vertical line.
func (l *Line) Intercept() float64 { return l.intercept }

// Vertical reports whether the line is vertical.
func (l *Line) Vertical() bool { return math.IsInf(l.slope, 0) }

// Mode returns the current drag behaviour.
func (l *Line) Mode() LineMode { return l.mode }

// SettingSlope reports whether drags redefine the slope.
func (l *Line) SettingSlope() bool { return l.mode == DefiningSlope }

// SetSlope sets slope and intercept directly, keeping the anchor on the
// line when possible.
func (l *Line) SetSlope(slope, intercept float64) {
	l.slope, l.intercept = slope, intercept
	if l.Vertical() {
		l.anchor.X = intercept
		l.target = l.anchor.Add(geometry.NewPoint2D(0, 1))
		return
	}
	l.anchor.Y = slope*l.anchor.X + intercept
	l.target = l.anchor.Add(geometry.NewPoint2D(1, slope))
}

// CheckHover reports hover when p is within LineHoverThreshold of the line.
// It also records whether p is within AnchorRadius of the anchor, which
// decides the drag mode on the next selection.
func (l *Line) CheckHover(p geometry.Point2D) bool {
	l.nearAnchor = l.anchor.Distance(p) <= AnchorRadius
	return l.setHover(geometry.DistanceToLine(p, l.slope, l.intercept) < LineHoverThreshold)
}

// SetState selects or deselects the line. Selecting picks the drag mode:
// grabbing the anchor of a line that has been selected before drags it,
// anything else redefines the slope.
func (l *Line) SetState(selected bool) {
	if selected {
		if l.nearAnchor && l.selectedOnce {
			l.mode = Dragging
		} else {
			l.mode = DefiningSlope
		}
		l.selectedOnce = true
	}
	l.selected = selected
}

// Move translates the anchor in Dragging mode. In DefiningSlope mode the
// move positions the point the line must pass through instead.
func (l *Line) Move(m Move) {
	if l.mode == Dragging {
		before := l.anchor
		l.translate(m)
		l.target = l.target.Add(l.anchor.Sub(before))
		l.refit()
		return
	}

	target := m.Apply(l.target)
	if target == l.anchor {
		return
	}
	l.target = target
	l.refit()
}

func (l *Line) refit() {
	l.slope, l.intercept = geometry.SlopeThrough(l.anchor, l.target)
}

// Endpoints clips the line to a surface of the given size.
func (l *Line) Endpoints(width, height float64) (geometry.Point2D, geometry.Point2D) {
	if l.Vertical() {
		return geometry.NewPoint2D(l.intercept, 0), geometry.NewPoint2D(l.intercept, height)
	}
	return geometry.NewPoint2D(0, l.intercept),
		geometry.NewPoint2D(width, l.slope*width+l.intercept)
}

func (l *Line) Draw(s render.Surface) {
	w, h := s.Size()
	a, b := l.Endpoints(float64(w), float64(h))
	col := colorutil.StateColor(l.hovered, l.selected)

	width := 1.5
	if l.selected {
		width = 2.5
	}
	s.Line(a, b, col, width)
	s.Circle(l.anchor, AnchorRadius/2, col, true)
	if l.selected && l.mode == DefiningSlope {
		s.Circle(l.anchor, AnchorRadius, col, false)
	}
}
