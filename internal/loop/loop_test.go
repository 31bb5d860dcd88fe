package loop

import (
	"context"
	"testing"
	"time"

	"cartesian-plane/internal/app"
	"cartesian-plane/internal/coords"
	"cartesian-plane/internal/figure"
	"cartesian-plane/internal/header"
	"cartesian-plane/internal/input"
	"cartesian-plane/internal/plane"
	"cartesian-plane/internal/render/rendertest"
	"cartesian-plane/internal/stress"
	"cartesian-plane/pkg/colorutil"
	"cartesian-plane/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	loop   *Loop
	in     *input.Collector
	header *header.Header
	plane  *plane.Plane
	slot   *stress.Slot
	state  *app.State
	frames int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m, err := coords.New(800, 600, header.DefaultHeight, 25)
	require.NoError(t, err)

	f := &fixture{
		in:     input.NewCollector(),
		header: header.New(800, header.DefaultHeight, 600, nil),
		plane:  plane.New(nil),
		slot:   stress.NewSlot(),
		state:  app.NewState(),
	}
	f.loop, err = New(Config{
		Input:   f.in,
		Header:  f.header,
		Plane:   f.plane,
		Mapper:  m,
		Slot:    f.slot,
		Events:  f.state,
		Present: func() { f.frames++ },
	})
	require.NoError(t, err)
	return f
}

func pt(x, y float64) geometry.Point2D { return geometry.NewPoint2D(x, y) }

func (f *fixture) click(p geometry.Point2D) {
	f.in.Push(input.Motion(p))
	f.in.Push(input.ButtonDown(p))
	f.loop.Step()
	f.in.Push(input.ButtonUp(p))
	f.loop.Step()
}

func (f *fixture) clickButton(t *testing.T, name string) {
	t.Helper()
	b := f.header.Button(name)
	require.NotNil(t, b)
	f.click(b.Rect.Center())
}

func TestNewRequiresCoreParts(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestPlacePointAfterModeSelection(t *testing.T) {
	f := newFixture(t)
	var modes []string
	var added []figure.Figure
	f.state.On(app.EventModeChanged, func(d interface{}) { modes = append(modes, d.(string)) })
	f.state.On(app.EventFigureAdded, func(d interface{}) { added = append(added, d.(figure.Figure)) })

	f.clickButton(t, plane.ModePoint)
	assert.Equal(t, plane.ModePoint, f.header.SelectedMode())
	assert.Zero(t, f.plane.Len(), "clicking the toolbar places nothing")

	f.click(pt(400, 300))
	require.Equal(t, 1, f.plane.Len())
	p := f.plane.Figures()[0]
	assert.Equal(t, figure.KindPoint, p.Kind())
	assert.Equal(t, pt(400, 300), p.Anchor())
	assert.Empty(t, f.header.SelectedMode(), "placement clears the toolbar")

	assert.Equal(t, []string{plane.ModePoint, ""}, modes)
	assert.Len(t, added, 1)
	assert.True(t, f.state.IsModified())
	assert.Equal(t, 4, f.frames)
}

func TestLineModeReplacesPointMode(t *testing.T) {
	f := newFixture(t)
	f.clickButton(t, plane.ModePoint)
	f.clickButton(t, plane.ModeLine)

	assert.False(t, f.header.Button(plane.ModePoint).Selected())
	assert.True(t, f.header.Button(plane.ModeLine).Selected())
	assert.Equal(t, plane.ModeLine, f.header.SelectedMode())

	f.click(pt(300, 200))
	require.Equal(t, 1, f.plane.Len())
	l, ok := f.plane.Figures()[0].(*figure.Line)
	require.True(t, ok)
	assert.Equal(t, pt(300, 200), l.Anchor())
}

func TestPressOnFigureSelectsInsteadOfPlacing(t *testing.T) {
	f := newFixture(t)
	f.clickButton(t, plane.ModePoint)
	f.click(pt(400, 300))

	f.clickButton(t, plane.ModeFigure)
	f.in.Push(input.ButtonDown(pt(400, 300)))
	f.loop.Step()

	assert.Equal(t, 1, f.plane.Len())
	assert.True(t, f.plane.Figures()[0].Selected())
	assert.Equal(t, plane.ModeFigure, f.header.SelectedMode())
}

func TestDragMovesPoint(t *testing.T) {
	f := newFixture(t)
	f.clickButton(t, plane.ModePoint)
	f.click(pt(400, 300))
	f.state.SetModified(false)

	f.in.Push(input.ButtonDown(pt(400, 300)))
	f.loop.Step()
	f.in.Push(input.Motion(pt(405, 297)))
	f.loop.Step()
	assert.True(t, f.plane.Moving())
	f.in.Push(input.ButtonUp(pt(405, 297)))
	f.loop.Step()

	assert.Equal(t, pt(405, 297), f.plane.Figures()[0].Anchor())
	assert.Nil(t, f.plane.Selected())
	assert.True(t, f.state.IsModified())
}

func TestPointerOverHeaderClearsHover(t *testing.T) {
	f := newFixture(t)
	f.clickButton(t, plane.ModeFigure)
	f.click(pt(100, 100))
	rect := f.plane.Figures()[0]

	f.in.Push(input.Motion(pt(110, 110)))
	f.loop.Step()
	assert.True(t, rect.Hovered())
	assert.Equal(t, "x: -11.60  y: 8.60   figure in (-12.00, 9.00)", f.header.Status())

	f.in.Push(input.Motion(pt(110, 20)))
	f.loop.Step()
	assert.False(t, rect.Hovered())
	assert.Empty(t, f.header.Status())
}

func TestInfoPanelBlocksPlane(t *testing.T) {
	f := newFixture(t)
	f.clickButton(t, header.InfoButton)
	require.True(t, f.header.Panel().IsOpen())
	assert.Contains(t, f.header.Panel().Lines(), "Figures: 0")

	f.clickButton(t, plane.ModePoint)
	f.click(pt(400, 500))
	assert.Zero(t, f.plane.Len(), "plane ignores the pointer while the panel is open")

	f.in.Push(input.KeyDown(header.KeyEscape))
	f.loop.Step()
	assert.False(t, f.header.Panel().IsOpen())
}

func TestClosingPanelDoesNotReachPlane(t *testing.T) {
	f := newFixture(t)
	f.clickButton(t, plane.ModePoint)
	f.clickButton(t, header.InfoButton)
	require.True(t, f.header.Panel().IsOpen())

	f.click(f.header.Panel().CloseBox().Center())
	assert.False(t, f.header.Panel().IsOpen())
	assert.Zero(t, f.plane.Len(), "the close press is consumed by the panel")
	assert.Equal(t, plane.ModePoint, f.header.SelectedMode())

	f.click(pt(400, 500))
	assert.Equal(t, 1, f.plane.Len())
}

func TestToolbarPressDraggedOntoPlanePlacesNothing(t *testing.T) {
	f := newFixture(t)
	f.clickButton(t, plane.ModePoint)

	f.in.Push(input.ButtonDown(pt(700, 20)))
	f.in.Push(input.Motion(pt(700, 300)))
	f.loop.Step()
	f.in.Push(input.ButtonUp(pt(700, 300)))
	f.loop.Step()

	assert.Zero(t, f.plane.Len())
	assert.Equal(t, plane.ModePoint, f.header.SelectedMode())
}

func TestShowIntroOpensPanel(t *testing.T) {
	m, err := coords.New(800, 600, header.DefaultHeight, 25)
	require.NoError(t, err)
	h := header.New(800, header.DefaultHeight, 600, nil)
	p := plane.New(nil)

	_, err = New(Config{Input: input.NewCollector(), Header: h, Plane: p, Mapper: m, ShowIntro: true})
	require.NoError(t, err)
	require.True(t, h.Panel().IsOpen())
	assert.Contains(t, h.Panel().Lines(), "Figures: 0")
}

func TestStatusShowsHoveredFigure(t *testing.T) {
	f := newFixture(t)
	f.clickButton(t, plane.ModePoint)
	f.click(pt(400, 325))

	f.in.Push(input.Motion(pt(403, 322)))
	f.loop.Step()
	assert.Equal(t, "x: 0.12  y: 0.12   point in (0.00, 0.00)", f.header.Status())

	f.in.Push(input.Motion(pt(500, 500)))
	f.loop.Step()
	assert.Equal(t, "x: 4.00  y: -7.00", f.header.Status())
}

func TestPressAndMotionInOneFrameKeepsFigureUnderPointer(t *testing.T) {
	f := newFixture(t)
	f.clickButton(t, plane.ModePoint)
	f.click(pt(400, 300))

	f.in.Push(input.ButtonDown(pt(400, 300)))
	f.in.Push(input.Motion(pt(405, 297)))
	f.loop.Step()
	f.in.Push(input.Motion(pt(410, 294)))
	f.loop.Step()
	f.in.Push(input.ButtonUp(pt(410, 294)))
	f.loop.Step()

	require.Equal(t, 1, f.plane.Len())
	assert.Equal(t, pt(410, 294), f.plane.Figures()[0].Anchor())
}

func TestStressReadingIsPolled(t *testing.T) {
	f := newFixture(t)
	var got []stress.Reading
	f.state.On(app.EventStressReading, func(d interface{}) { got = append(got, d.(stress.Reading)) })

	_, ok := f.loop.Stress()
	assert.False(t, ok)

	f.slot.Publish(stress.Reading{Faces: 1, Score: 0.01, Level: stress.LevelCalm})
	f.loop.Step()
	f.loop.Step()

	r, ok := f.loop.Stress()
	require.True(t, ok)
	assert.Equal(t, stress.LevelCalm, r.Level)
	assert.Len(t, got, 1, "each reading is taken once")

	s := rendertest.New(800, 650)
	f.loop.Draw(s)
	assert.Contains(t, s.Texts(), r.Text())
}

func TestDrawMarksNearestGridPoint(t *testing.T) {
	f := newFixture(t)
	f.in.Push(input.Motion(pt(411, 363)))
	f.loop.Step()

	s := rendertest.New(800, 650)
	f.loop.Draw(s)

	var markers []rendertest.Call
	for _, c := range s.Filter(rendertest.OpCircle) {
		if c.Color == colorutil.Red {
			markers = append(markers, c)
		}
	}
	require.Len(t, markers, 1)
	// origin (400,325), pointer is (0.44, -1.52) which snaps to (0, -2)
	require.Len(t, markers[0].Points, 1)
	assert.InDelta(t, 400, markers[0].Points[0].X, 1e-9)
	assert.InDelta(t, 375, markers[0].Points[0].Y, 1e-9)
}

func TestResize(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.loop.Resize(1000, 850))
	m := f.loop.Mapper()
	assert.Equal(t, 1000.0, m.Width())
	assert.Equal(t, 800.0, m.Height())
	assert.Equal(t, pt(500, 425), m.Origin())

	assert.Error(t, f.loop.Resize(0, 0))
}

func TestSpecsRestoreAndClear(t *testing.T) {
	f := newFixture(t)
	f.clickButton(t, plane.ModePoint)
	f.click(pt(400, 300))

	specs := f.loop.Specs()
	require.Len(t, specs, 1)

	f.loop.ClearPlane()
	assert.Zero(t, f.plane.Len())

	require.NoError(t, f.loop.Restore(specs))
	assert.Equal(t, 1, f.plane.Len())
}

func TestRunStopsOnQuit(t *testing.T) {
	f := newFixture(t)
	f.in.Push(input.Quit())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, f.loop.Run(ctx))
	assert.Positive(t, f.loop.Frames())
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.loop.Run(ctx) }()

	require.Eventually(t, func() bool { return f.loop.Frames() > 2 }, time.Second, time.Millisecond)
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}
