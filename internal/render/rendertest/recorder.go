// Package rendertest provides a Surface that records draw calls for tests.
package rendertest

import (
	"image/color"

	"cartesian-plane/internal/render"
	"cartesian-plane/pkg/geometry"
)

// Op names a recorded draw call.
type Op string

const (
	OpClear  Op = "clear"
	OpRect   Op = "rect"
	OpLine   Op = "line"
	OpCircle Op = "circle"
	OpText   Op = "text"
)

// Call is one recorded draw call.
type Call struct {
	Op     Op
	Points []geometry.Point2D
	Rect   geometry.Rect
	Radius float64
	Text   string
	Color  color.Color
	Filled bool
}

// Recorder is a render.Surface that keeps every call in order.
type Recorder struct {
	W, H  int
	Calls []Call
}

var _ render.Surface = (*Recorder)(nil)

// New returns a recorder reporting the given size.
func New(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Clear(c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpClear, Color: c})
}

func (r *Recorder) Rect(rect geometry.Rect, c color.Color, filled bool) {
	r.Calls = append(r.Calls, Call{Op: OpRect, Rect: rect, Color: c, Filled: filled})
}

func (r *Recorder) Line(a, b geometry.Point2D, c color.Color, width float64) {
	r.Calls = append(r.Calls, Call{Op: OpLine, Points: []geometry.Point2D{a, b}, Color: c, Radius: width})
}

func (r *Recorder) Circle(center geometry.Point2D, radius float64, c color.Color, filled bool) {
	r.Calls = append(r.Calls, Call{Op: OpCircle, Points: []geometry.Point2D{center}, Radius: radius, Color: c, Filled: filled})
}

func (r *Recorder) Text(s string, p geometry.Point2D, c color.Color) {
	r.Calls = append(r.Calls, Call{Op: OpText, Points: []geometry.Point2D{p}, Text: s, Color: c})
}

func (r *Recorder) Size() (int, int) {
	return r.W, r.H
}

// Filter returns the calls with the given op.
func (r *Recorder) Filter(op Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Texts returns every drawn string in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Filter(OpText) {
		out = append(out, c.Text)
	}
	return out
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}
