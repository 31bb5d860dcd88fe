// Package loop runs the per-frame poll, update and draw cycle of the plane.
package loop

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"time"

	"cartesian-plane/internal/app"
	"cartesian-plane/internal/coords"
	"cartesian-plane/internal/figure"
	"cartesian-plane/internal/header"
	"cartesian-plane/internal/input"
	"cartesian-plane/internal/logging"
	"cartesian-plane/internal/plane"
	"cartesian-plane/internal/render"
	"cartesian-plane/internal/stress"
	"cartesian-plane/pkg/colorutil"
	"cartesian-plane/pkg/geometry"
)

// FrameRate is the number of steps per second in Run.
const FrameRate = 60

// markerRadius is the size of the nearest grid point marker.
const markerRadius = 3

// Config wires a Loop. Slot, Events and Present are optional.
type Config struct {
	Input  *input.Collector
	Header *header.Header
	Plane  *plane.Plane
	Mapper coords.Mapper
	Slot   *stress.Slot
	Events *app.State
	// Present asks the UI to redraw. It is called without the loop lock.
	Present func()
	// ShowIntro opens the info panel before the first frame.
	ShowIntro bool
	Log       logging.Logger
}

// Loop owns the frame state. Step and Draw may be called from different
// goroutines.
type Loop struct {
	mu sync.Mutex

	in      *input.Collector
	header  *header.Header
	plane   *plane.Plane
	mapper  coords.Mapper
	slot    *stress.Slot
	events  *app.State
	present func()
	log     logging.Logger

	pointer    geometry.Point2D
	overPlane  bool
	reading    stress.Reading
	hasReading bool
	frames     uint64

	// notifications queued during a step, emitted after unlocking
	pending []func()
}

// New creates a loop from cfg. Input, Header and Plane are required.
func New(cfg Config) (*Loop, error) {
	if cfg.Input == nil || cfg.Header == nil || cfg.Plane == nil {
		return nil, errors.New("loop: input, header and plane are required")
	}
	if cfg.Log == nil {
		cfg.Log = logging.NewNopLogger()
	}
	l := &Loop{
		in:      cfg.Input,
		header:  cfg.Header,
		plane:   cfg.Plane,
		mapper:  cfg.Mapper,
		slot:    cfg.Slot,
		events:  cfg.Events,
		present: cfg.Present,
		log:     cfg.Log,
	}
	if l.header.InfoLines == nil {
		l.header.InfoLines = l.InfoLines
	}
	if cfg.ShowIntro {
		l.header.OpenPanel()
	}
	return l, nil
}

// Step runs one frame and reports whether a quit was requested.
func (l *Loop) Step() bool {
	l.mu.Lock()
	quit := l.step()
	pending := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	if l.present != nil {
		l.present()
	}
	return quit
}

func (l *Loop) step() bool {
	in := l.in.Snapshot()
	l.frames++
	l.pointer = in.Pos

	prevMode := l.header.SelectedMode()
	// A press that closes the panel belongs to the header even though the
	// panel is gone once CheckButtons returns.
	blocked := l.header.IsMouseInsideHeader(in.Pos) ||
		(in.JustPressed && l.header.IsMouseInsideHeader(in.PressPos))
	l.header.CheckButtons(in)

	if blocked || l.header.IsMouseInsideHeader(in.Pos) {
		l.overPlane = false
		l.plane.ClearHover()
	} else {
		l.overPlane = true
		l.updatePlane(in)
	}

	if mode := l.header.SelectedMode(); mode != prevMode {
		l.notify(func(ev *app.State) { ev.SetMode(mode) })
	}

	l.pollStress()
	l.header.SetStatus(l.statusText())
	return in.Quit
}

// updatePlane either places a new figure or forwards the frame to the
// plane. A press places a figure when a mode is active and no figure is
// under the press position.
func (l *Loop) updatePlane(in input.State) {
	mode := l.header.SelectedMode()
	if mode != "" && in.JustPressed && !l.anyHovered(in.PressPos) {
		f, err := l.plane.NewFigure(mode, in.PressPos)
		if err != nil {
			if errors.Is(err, plane.ErrUnknownMode) {
				l.log.Warnf("cannot place figure: %v", err)
			} else {
				l.log.Errorf("cannot place figure: %v", err)
			}
		} else {
			l.notify(func(ev *app.State) { ev.FigureAdded(f) })
		}
		l.header.ClearSelection()
		return
	}

	wasMoving := l.plane.Moving()
	l.plane.Update(in)
	if wasMoving && !l.plane.Moving() {
		l.notify(func(ev *app.State) { ev.SetModified(true) })
	}
}

func (l *Loop) notify(fn func(*app.State)) {
	if l.events == nil {
		return
	}
	ev := l.events
	l.pending = append(l.pending, func() { fn(ev) })
}

func (l *Loop) anyHovered(p geometry.Point2D) bool {
	hit := false
	for _, f := range l.plane.Figures() {
		if f.CheckHover(p) {
			hit = true
		}
	}
	return hit
}

func (l *Loop) pollStress() {
	if l.slot == nil {
		return
	}
	if r, ok := l.slot.Latest(); ok {
		l.reading = r
		l.hasReading = true
		l.notify(func(ev *app.State) { ev.Emit(app.EventStressReading, r) })
	}
}

// statusText shows the pointer coordinates and the hovered figure with
// its anchor in grid coordinates.
func (l *Loop) statusText() string {
	if !l.overPlane {
		return ""
	}
	var parts []string
	c := l.mapper.PixelToCartesian(l.pointer)
	if l.mapper.InRange(c) {
		parts = append(parts, fmt.Sprintf("x: %.2f  y: %.2f", c.X, c.Y))
	} else {
		l.log.Debugf("pointer %s maps outside the plane: %s", l.pointer, c)
	}
	if f := l.plane.Hovered(); f != nil {
		a := l.mapper.PixelToCartesian(f.Anchor())
		parts = append(parts, fmt.Sprintf("%s in (%.2f, %.2f)", f.Kind(), a.X, a.Y))
	}
	return strings.Join(parts, "   ")
}

// Run steps at FrameRate until ctx is cancelled or a quit event arrives.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			if l.Step() {
				l.log.Infof("quit requested after %d frames", l.Frames())
				return nil
			}
		}
	}
}

// Draw paints the grid, the figures, the nearest grid point marker, the
// stress overlay and the header, in that order.
func (l *Loop) Draw(s render.Surface) {
	l.mu.Lock()
	defer l.mu.Unlock()

	render.DrawGrid(s, l.mapper)
	l.plane.Draw(s)

	if l.overPlane {
		c := l.mapper.PixelToCartesian(l.pointer)
		if l.mapper.InRange(c) {
			p := l.mapper.CartesianToPixel(l.mapper.Snap(c))
			s.Circle(p, markerRadius, colorutil.Red, true)
		}
	}

	if l.hasReading {
		y := l.mapper.HeaderHeight() + l.mapper.Height() - 10
		s.Text(l.reading.Text(), geometry.NewPoint2D(10, y), stressColor(l.reading.Level))
	}

	l.header.Draw(s)
}

func stressColor(level stress.Level) color.RGBA {
	switch level {
	case stress.LevelCalm:
		return colorutil.Selected
	case stress.LevelElevated:
		return colorutil.Hover
	case stress.LevelHigh:
		return colorutil.Red
	default:
		return colorutil.AxisLabel
	}
}

// Resize adapts the mapper and header to a new window size. height is the
// full window height, header included.
func (l *Loop) Resize(width, height float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	planeHeight := height - l.mapper.HeaderHeight()
	m, err := l.mapper.Resize(width, planeHeight)
	if err != nil {
		return err
	}
	l.mapper = m
	l.header.Resize(width, planeHeight)
	return nil
}

// Mapper returns the current coordinate mapper.
func (l *Loop) Mapper() coords.Mapper {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mapper
}

// Stress returns the last stress reading seen by the loop.
func (l *Loop) Stress() (stress.Reading, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reading, l.hasReading
}

// Frames returns the number of steps run so far.
func (l *Loop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

// Specs describes the figures on the plane.
func (l *Loop) Specs() []figure.Spec {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.plane.Specs()
}

// Restore replaces the figures on the plane.
func (l *Loop) Restore(specs []figure.Spec) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.plane.Restore(specs)
}

// ClearPlane removes every figure.
func (l *Loop) ClearPlane() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.plane.Clear()
}

// InfoLines returns the info panel text. The header calls it during Step
// with the loop lock held.
func (l *Loop) InfoLines() []string {
	lines := []string{
		"Pick point, line or figure, then click the plane.",
		"Drag a figure to move it.",
		"Drag a new line to set its slope; grab its",
		"anchor again to move it.",
		"Esc closes this panel.",
		"",
		fmt.Sprintf("Figures: %d", l.plane.Len()),
		fmt.Sprintf("Cell: %.0f px", l.mapper.CellSize()),
	}
	if l.hasReading {
		lines = append(lines, l.reading.Text())
	}
	return lines
}
