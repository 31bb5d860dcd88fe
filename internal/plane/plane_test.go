package plane

import (
	"errors"
	"testing"

	"cartesian-plane/internal/figure"
	"cartesian-plane/internal/input"
	"cartesian-plane/internal/render/rendertest"
	"cartesian-plane/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y float64) geometry.Point2D { return geometry.NewPoint2D(x, y) }

func press(pos geometry.Point2D) input.State {
	return input.State{Pos: pos, PressPos: pos, ButtonDown: true, JustPressed: true}
}

func drag(pos, rel geometry.Point2D) input.State {
	return input.State{Pos: pos, ButtonDown: true, Motion: true, Rel: rel}
}

func hold(pos geometry.Point2D) input.State {
	return input.State{Pos: pos, ButtonDown: true}
}

func release(pos geometry.Point2D) input.State {
	return input.State{Pos: pos, JustReleased: true}
}

func assertAtMostOneSelected(t *testing.T, p *Plane) {
	t.Helper()
	n := 0
	for _, f := range p.Figures() {
		if f.Selected() {
			n++
		}
	}
	assert.LessOrEqual(t, n, 1)
}

func TestNewFigureVariants(t *testing.T) {
	p := New(nil)

	tests := []struct {
		mode string
		kind figure.Kind
	}{
		{"point", figure.KindPoint},
		{"line", figure.KindLine},
		{"figure", figure.KindRect},
		{"rect", figure.KindRect},
		{" Line ", figure.KindLine},
	}
	for _, tt := range tests {
		f, err := p.NewFigure(tt.mode, pt(10, 20))
		require.NoError(t, err, tt.mode)
		assert.Equal(t, tt.kind, f.Kind())
		assert.Equal(t, pt(10, 20), f.Anchor())
	}
	assert.Equal(t, len(tests), p.Len())
}

func TestNewFigureUnknownMode(t *testing.T) {
	p := New(nil)
	for _, mode := range []string{"", "info", "circle", "\x00"} {
		f, err := p.NewFigure(mode, pt(0, 0))
		assert.Nil(t, f)
		assert.True(t, errors.Is(err, ErrUnknownMode), "mode %q", mode)
	}
	assert.Equal(t, 0, p.Len())
}

func TestMoveFigureWithoutSelection(t *testing.T) {
	p := New(nil)
	_, err := p.NewFigure("point", pt(0, 0))
	require.NoError(t, err)
	assert.ErrorIs(t, p.MoveFigure(figure.MoveBy(pt(1, 1))), ErrNoSelection)
}

func TestSelectThenClickOther(t *testing.T) {
	p := New(nil)
	a, _ := p.NewFigure("point", pt(50, 50))
	b, _ := p.NewFigure("point", pt(200, 200))

	p.Update(press(pt(50, 50)))
	assert.True(t, a.Selected())
	assert.Same(t, a, p.Selected())
	assertAtMostOneSelected(t, p)

	p.Update(release(pt(50, 50)))
	assert.Nil(t, p.Selected(), "release drops the drag target")
	assert.True(t, a.Selected(), "flag persists after release")

	p.Update(press(pt(200, 200)))
	assert.False(t, a.Selected())
	assert.True(t, b.Selected())
	assert.Same(t, b, p.Selected())
	assertAtMostOneSelected(t, p)

	// clicking B while A is still the drag target
	p.Update(press(pt(50, 50)))
	p.Update(press(pt(200, 200)))
	assert.False(t, a.Selected())
	assert.Same(t, b, p.Selected())
	assertAtMostOneSelected(t, p)
}

func TestDragPoint(t *testing.T) {
	p := New(nil)
	f, _ := p.NewFigure("point", pt(100, 100))

	p.Update(press(pt(100, 100)))
	require.Same(t, f, p.Selected())

	p.Update(drag(pt(105, 97), pt(5, -3)))
	assert.True(t, p.Moving())
	assert.Equal(t, pt(105, 97), f.Anchor())

	p.Update(hold(pt(105, 97)))
	assert.False(t, p.Moving(), "held without motion is a click")
	assert.Same(t, f, p.Selected())
	assert.Equal(t, pt(105, 97), f.Anchor())

	p.Update(release(pt(105, 97)))
	assert.Nil(t, p.Selected())
	assert.False(t, p.Moving())
}

func TestPressAndDragInOneFrame(t *testing.T) {
	p := New(nil)
	f, _ := p.NewFigure("point", pt(400, 300))

	p.Update(input.State{
		Pos:         pt(405, 297),
		PressPos:    pt(400, 300),
		ButtonDown:  true,
		JustPressed: true,
		Motion:      true,
		Rel:         pt(5, -3),
	})
	require.Same(t, f, p.Selected())
	assert.True(t, p.Moving())
	assert.Equal(t, pt(405, 297), f.Anchor())

	p.Update(drag(pt(410, 294), pt(5, -3)))
	assert.Equal(t, pt(410, 294), f.Anchor(), "figure stays under the pointer")
}

func TestPressSelectsAtPressPosition(t *testing.T) {
	p := New(nil)
	f, _ := p.NewFigure("point", pt(100, 100))

	// the pointer left the point before the frame ran
	p.Update(input.State{
		Pos:         pt(140, 100),
		PressPos:    pt(100, 100),
		ButtonDown:  true,
		JustPressed: true,
		Motion:      true,
		Rel:         pt(40, 0),
	})
	assert.Same(t, f, p.Selected())
	assert.Equal(t, pt(140, 100), f.Anchor())
}

func TestDragWithoutSelectionDoesNothing(t *testing.T) {
	p := New(nil)
	f, _ := p.NewFigure("point", pt(100, 100))

	p.Update(hold(pt(300, 300)))
	p.Update(drag(pt(305, 300), pt(5, 0)))
	assert.False(t, p.Moving())
	assert.Equal(t, pt(100, 100), f.Anchor())
}

func TestDragNewLineDefinesSlope(t *testing.T) {
	p := New(nil)
	f, _ := p.NewFigure("line", pt(100, 100))
	l := f.(*figure.Line)

	p.Update(press(pt(100, 100)))
	p.Update(drag(pt(150, 150), pt(50, 50)))

	assert.Equal(t, pt(100, 100), l.Anchor())
	assert.InDelta(t, 1, l.Slope(), 1e-9)
}

func TestDragSelectedLineAnchorTranslates(t *testing.T) {
	p := New(nil)
	f, _ := p.NewFigure("line", pt(100, 100))
	l := f.(*figure.Line)

	p.Update(press(pt(100, 100)))
	p.Update(drag(pt(150, 150), pt(50, 50)))
	p.Update(release(pt(150, 150)))

	p.Update(press(pt(101, 101)))
	require.Equal(t, figure.Dragging, l.Mode())
	p.Update(drag(pt(111, 101), pt(10, 0)))

	assert.Equal(t, pt(110, 100), l.Anchor())
	assert.InDelta(t, 1, l.Slope(), 1e-9)
}

func TestHoverLastWriteWins(t *testing.T) {
	p := New(nil)
	under, _ := p.NewFigure("figure", pt(0, 0))
	over, _ := p.NewFigure("point", pt(10, 10))

	p.Update(input.State{Pos: pt(10, 10)})
	assert.True(t, under.Hovered())
	assert.True(t, over.Hovered())
	assert.Same(t, over, p.Hovered())

	p.Update(press(pt(10, 10)))
	assert.Same(t, over, p.Selected())
	assert.False(t, under.Selected())
	assertAtMostOneSelected(t, p)

	p.Update(input.State{Pos: pt(500, 500)})
	assert.Nil(t, p.Hovered())
}

func TestClearHover(t *testing.T) {
	p := New(nil)
	f, _ := p.NewFigure("point", pt(10, 10))
	p.Update(input.State{Pos: pt(10, 10)})
	require.True(t, f.Hovered())

	p.ClearHover()
	assert.False(t, f.Hovered())
	assert.Nil(t, p.Hovered())
}

func TestDrawInZOrder(t *testing.T) {
	p := New(nil)
	_, _ = p.NewFigure("point", pt(1, 1))
	_, _ = p.NewFigure("point", pt(2, 2))

	s := rendertest.New(100, 100)
	p.Draw(s)

	circles := s.Filter(rendertest.OpCircle)
	require.Len(t, circles, 2)
	assert.Equal(t, pt(1, 1), circles[0].Points[0])
	assert.Equal(t, pt(2, 2), circles[1].Points[0])
}

func TestSpecsAndRestore(t *testing.T) {
	p := New(nil)
	_, err := p.NewFigure(ModePoint, pt(10, 10))
	require.NoError(t, err)
	_, err = p.NewFigure(ModeFigure, pt(50, 50))
	require.NoError(t, err)
	_, err = p.NewFigure(ModeLine, pt(200, 200))
	require.NoError(t, err)

	specs := p.Specs()
	require.Len(t, specs, 3)

	q := New(nil)
	require.NoError(t, q.Restore(specs))
	require.Equal(t, 3, q.Len())
	for i, f := range q.Figures() {
		assert.Equal(t, p.Figures()[i].ID(), f.ID())
		assert.Equal(t, p.Figures()[i].Kind(), f.Kind())
	}

	bad := append(specs, figure.Spec{Kind: "circle"})
	err = q.Restore(bad)
	assert.ErrorIs(t, err, figure.ErrBadSpec)
	assert.Equal(t, 3, q.Len(), "failed restore keeps the old figures")

	q.Clear()
	assert.Zero(t, q.Len())
	assert.Nil(t, q.Selected())
}
