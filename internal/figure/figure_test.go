package figure

import (
	"math"
	"testing"

	"cartesian-plane/internal/render/rendertest"
	"cartesian-plane/pkg/colorutil"
	"cartesian-plane/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) geometry.Point2D { return geometry.NewPoint2D(x, y) }

func TestRectHover(t *testing.T) {
	r := NewRect(pt(10, 10), 40, 20)

	inside := []geometry.Point2D{pt(11, 11), pt(30, 20), pt(49.9, 29.9)}
	for _, p := range inside {
		assert.True(t, r.CheckHover(p), "inside %v", p)
		assert.True(t, r.Hovered())
	}
	for _, p := range r.Bounds().Corners() {
		assert.True(t, r.CheckHover(p), "boundary %v", p)
	}
	outside := []geometry.Point2D{pt(9, 15), pt(51, 15), pt(30, 9), pt(30, 31)}
	for _, p := range outside {
		assert.False(t, r.CheckHover(p), "outside %v", p)
		assert.False(t, r.Hovered())
	}
}

func TestPointHoverUsesSquare(t *testing.T) {
	p := NewPoint(pt(100, 100), 5)

	for _, c := range geometry.SquareAround(p.Anchor(), 5).Corners() {
		require.Greater(t, c.Distance(p.Anchor()), 5.0)
		assert.True(t, p.CheckHover(c), "corner %v", c)
	}
	assert.True(t, p.CheckHover(pt(100, 100)))
	assert.False(t, p.CheckHover(pt(105.1, 100)))
	assert.False(t, p.CheckHover(pt(100, 94.9)))
}

func TestMoveVariants(t *testing.T) {
	p := NewPoint(pt(100, 100), 5)
	p.Move(MoveBy(pt(5, -3)))
	assert.Equal(t, pt(105, 97), p.Anchor())

	p.Move(MoveTo(pt(1, 2)))
	assert.Equal(t, pt(1, 2), p.Anchor())

	r := NewRect(pt(0, 0), 10, 10)
	r.Move(MoveBy(pt(-2, 4)))
	assert.Equal(t, pt(-2, 4), r.Anchor())

	assert.True(t, MoveBy(pt(1, 1)).IsRelative())
	assert.False(t, MoveTo(pt(1, 1)).IsRelative())
}

func TestSetState(t *testing.T) {
	r := NewRect(pt(0, 0), 10, 10)
	assert.False(t, r.Selected())
	r.SetState(true)
	assert.True(t, r.Selected())
	r.SetState(false)
	assert.False(t, r.Selected())
}

func TestUniqueIDs(t *testing.T) {
	a := NewPoint(pt(0, 0), 1)
	b := NewPoint(pt(0, 0), 1)
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestLineHover(t *testing.T) {
	l := NewLine(pt(0, 0))
	l.SetSlope(1, 0)

	assert.True(t, l.CheckHover(pt(10, 11)), "distance ~0.707")
	assert.False(t, l.CheckHover(pt(10, 20)), "distance ~7.07")
}

func TestLineHoverIgnoresAnchorHandle(t *testing.T) {
	l := NewLine(pt(50, 50))
	l.SetSlope(math.Inf(1), 50)

	assert.True(t, l.CheckHover(pt(50, 500)))
	assert.True(t, l.CheckHover(pt(53, 50)), "3 px from the line")
	assert.False(t, l.CheckHover(pt(56, 50)), "6 px from the line, inside the handle")
	assert.False(t, l.CheckHover(pt(56, 80)))
}

func TestLineFirstSelectionDefinesSlope(t *testing.T) {
	l := NewLine(pt(100, 100))

	require.True(t, l.CheckHover(pt(100, 100)))
	l.SetState(true)
	assert.Equal(t, DefiningSlope, l.Mode())
	assert.True(t, l.SettingSlope())

	l.Move(MoveTo(pt(110, 120)))
	assert.Equal(t, pt(100, 100), l.Anchor(), "anchor stays put")
	assert.InDelta(t, 2, l.Slope(), 1e-9)
	assert.InDelta(t, -100, l.Intercept(), 1e-9)
}

func TestLineSecondSelectionAtAnchorDrags(t *testing.T) {
	l := NewLine(pt(100, 100))
	l.CheckHover(pt(100, 100))
	l.SetState(true)
	l.Move(MoveTo(pt(110, 110)))
	l.SetState(false)

	require.True(t, l.CheckHover(pt(102, 101)))
	l.SetState(true)
	assert.Equal(t, Dragging, l.Mode())

	l.Move(MoveBy(pt(10, -5)))
	assert.Equal(t, pt(110, 95), l.Anchor())
	assert.InDelta(t, 1, l.Slope(), 1e-9, "slope kept while dragging")
	assert.InDelta(t, -15, l.Intercept(), 1e-9)
}

func TestLineSelectionAwayFromAnchorDefinesSlope(t *testing.T) {
	l := NewLine(pt(100, 100))
	l.CheckHover(pt(100, 100))
	l.SetState(true)
	l.SetState(false)

	require.True(t, l.CheckHover(pt(300, 101)))
	l.SetState(true)
	assert.Equal(t, DefiningSlope, l.Mode())
}

func TestLineVerticalTarget(t *testing.T) {
	l := NewLine(pt(40, 40))
	l.CheckHover(pt(40, 40))
	l.SetState(true)
	l.Move(MoveTo(pt(40, 90)))

	assert.True(t, l.Vertical())
	assert.Equal(t, 40.0, l.Intercept())
	assert.True(t, l.CheckHover(pt(42, 300)))
}

func TestLineMoveToAnchorKeepsSlope(t *testing.T) {
	l := NewLine(pt(0, 0))
	l.CheckHover(pt(0, 0))
	l.SetState(true)
	l.Move(MoveTo(pt(0, 0)))
	assert.Equal(t, 0.0, l.Slope())
}

func TestDrawColorPriority(t *testing.T) {
	p := NewPoint(pt(10, 10), 4)
	s := rendertest.New(100, 100)

	p.Draw(s)
	p.SetState(true)
	p.Draw(s)
	p.CheckHover(pt(10, 10))
	p.Draw(s)

	circles := s.Filter(rendertest.OpCircle)
	require.Len(t, circles, 3)
	assert.Equal(t, colorutil.Passive, circles[0].Color)
	assert.Equal(t, colorutil.Selected, circles[1].Color)
	assert.Equal(t, colorutil.Hover, circles[2].Color)
}

func TestLineDrawSpansSurface(t *testing.T) {
	l := NewLine(pt(0, 10))
	s := rendertest.New(200, 100)
	l.Draw(s)

	lines := s.Filter(rendertest.OpLine)
	require.Len(t, lines, 1)
	assert.Equal(t, pt(0, 10), lines[0].Points[0])
	assert.Equal(t, pt(200, 10), lines[0].Points[1])
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "point", KindPoint.String())
	assert.Equal(t, "line", KindLine.String())
	assert.Equal(t, "figure", KindRect.String())
}

func TestSpecRoundTrip(t *testing.T) {
	r := NewRect(pt(10, 20), 80, 36)
	r.Label = "#1"
	p := NewPoint(pt(5, 5), 7)
	l := NewLine(pt(100, 100))
	l.SetState(true)
	l.Move(MoveTo(pt(100, 150)))
	require.True(t, l.Vertical())

	for _, f := range []Figure{r, p, l} {
		spec := Describe(f)
		got, err := FromSpec(spec)
		require.NoError(t, err)
		assert.Equal(t, f.Kind(), got.Kind())
		assert.Equal(t, f.ID(), got.ID())
		assert.Equal(t, f.Anchor(), got.Anchor())
		assert.False(t, got.Selected())
	}

	got, err := FromSpec(Describe(l))
	require.NoError(t, err)
	gl := got.(*Line)
	assert.True(t, gl.Vertical())
	assert.Equal(t, 100.0, gl.Intercept())

	got, err = FromSpec(Describe(r))
	require.NoError(t, err)
	assert.Equal(t, "#1", got.(*Rect).Label)
	assert.Equal(t, 80.0, got.(*Rect).Width)
}

func TestFromSpecRejectsBadInput(t *testing.T) {
	_, err := FromSpec(Spec{Kind: "circle"})
	assert.ErrorIs(t, err, ErrBadSpec)

	_, err = FromSpec(Spec{Kind: "figure", Width: 0, Height: 10})
	assert.ErrorIs(t, err, ErrBadSpec)

	f, err := FromSpec(Spec{Kind: "point", Anchor: pt(1, 2)})
	require.NoError(t, err)
	assert.Equal(t, float64(DefaultPointRadius), f.(*Point).Radius)
	assert.NotEmpty(t, f.ID())
}
