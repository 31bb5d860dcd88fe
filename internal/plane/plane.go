// Package plane owns the figures on the Cartesian plane and tracks which
// one is hovered, selected and being dragged.
package plane

import (
	"errors"
	"fmt"
	"strings"

	"cartesian-plane/internal/figure"
	"cartesian-plane/internal/input"
	"cartesian-plane/internal/logging"
	"cartesian-plane/internal/render"
	"cartesian-plane/pkg/geometry"
)

var (
	// ErrUnknownMode is returned by NewFigure for a mode with no figure variant.
	ErrUnknownMode = errors.New("unknown figure mode")
	// ErrNoSelection is returned by MoveFigure when nothing is being dragged.
	ErrNoSelection = errors.New("no figure selected")
)

// Mode names accepted by NewFigure.
const (
	ModePoint  = "point"
	ModeLine   = "line"
	ModeFigure = "figure"
	ModeRect   = "rect"
)

// Plane is an ordered collection of figures. Insertion order is z-order:
// figures are drawn and hit-tested first to last.
type Plane struct {
	figures  []figure.Figure
	selected figure.Figure // drag target, nil when the button is up
	hovered  figure.Figure
	moving   bool

	log logging.Logger
}

// New creates an empty plane.
func New(log logging.Logger) *Plane {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Plane{log: log}
}

// Figures returns the figures in z-order. The slice must not be modified.
func (p *Plane) Figures() []figure.Figure { return p.figures }

// Len returns the number of figures.
func (p *Plane) Len() int { return len(p.figures) }

// Selected returns the current drag target, or nil.
func (p *Plane) Selected() figure.Figure { return p.selected }

// Hovered returns the last figure in z-order that reported hover this frame.
func (p *Plane) Hovered() figure.Figure { return p.hovered }

// Moving reports whether the selected figure is being dragged.
func (p *Plane) Moving() bool { return p.moving }

// NewFigure appends a figure of the variant named by mode, anchored at pos.
// Unknown modes add nothing and return ErrUnknownMode.
func (p *Plane) NewFigure(mode string, pos geometry.Point2D) (figure.Figure, error) {
	var f figure.Figure
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModePoint:
		f = figure.NewPoint(pos, figure.DefaultPointRadius)
	case ModeLine:
		f = figure.NewLine(pos)
	case ModeFigure, ModeRect:
		r := figure.NewRect(pos, figure.DefaultRectWidth, figure.DefaultRectHeight)
		r.Label = fmt.Sprintf("#%d", len(p.figures)+1)
		f = r
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	p.figures = append(p.figures, f)
	p.log.Debugf("added %s %s at %s", f.Kind(), f.ID(), pos)
	return f, nil
}

// Specs describes every figure in z-order.
func (p *Plane) Specs() []figure.Spec {
	specs := make([]figure.Spec, 0, len(p.figures))
	for _, f := range p.figures {
		specs = append(specs, figure.Describe(f))
	}
	return specs
}

// Restore replaces all figures with the ones described by specs. On error
// the plane is left unchanged.
func (p *Plane) Restore(specs []figure.Spec) error {
	figs := make([]figure.Figure, 0, len(specs))
	for i, s := range specs {
		f, err := figure.FromSpec(s)
		if err != nil {
			return fmt.Errorf("figure %d: %w", i, err)
		}
		figs = append(figs, f)
	}
	p.figures = figs
	p.selected, p.hovered, p.moving = nil, nil, false
	return nil
}

// Clear removes every figure.
func (p *Plane) Clear() {
	p.figures = nil
	p.selected, p.hovered, p.moving = nil, nil, false
}

// MoveFigure moves the drag target.
func (p *Plane) MoveFigure(m figure.Move) error {
	if p.selected == nil {
		return ErrNoSelection
	}
	p.selected.Move(m)
	return nil
}

// Update advances the selection state machine by one frame:
//
//  1. a fresh press on a hovered figure makes it the only selected figure,
//     hit-testing at the press position
//  2. selected and button held with motion: drag the selection, including
//     motion that arrived after the press in the same frame
//  3. button held without motion: selection unchanged
//  4. button released: drop the drag target
//
// The hovered figure is the last one in z-order reporting hover at the
// current pointer position.
func (p *Plane) Update(in input.State) {
	if in.JustPressed {
		p.pressAt(in.PressPos)
	}

	switch {
	case p.selected != nil && in.ButtonDown && in.Motion:
		p.moving = true
		if err := p.MoveFigure(dragMove(p.selected, in)); err != nil {
			p.log.Warnf("drag: %v", err)
		}
	case in.ButtonDown:
		p.moving = false
	default:
		p.selected = nil
		p.moving = false
	}

	p.hovered = nil
	for _, f := range p.figures {
		if f.CheckHover(in.Pos) {
			p.hovered = f
		}
	}
}

// pressAt selects the last figure in z-order under pos, if any.
func (p *Plane) pressAt(pos geometry.Point2D) {
	var hit figure.Figure
	for _, f := range p.figures {
		if f.CheckHover(pos) {
			hit = f
		}
	}
	if hit != nil {
		p.selectOnly(hit)
	}
}

// ClearHover drops hover state from every figure, for frames where the
// pointer is over the header.
func (p *Plane) ClearHover() {
	for _, f := range p.figures {
		f.ClearHover()
	}
	p.hovered = nil
}

func (p *Plane) selectOnly(f figure.Figure) {
	for _, other := range p.figures {
		other.SetState(false)
	}
	f.SetState(true)
	p.selected = f
	p.log.Debugf("selected %s %s", f.Kind(), f.ID())
}

// dragMove picks the move for a drag frame. A line defining its slope
// follows the pointer; everything else follows the relative motion.
func dragMove(f figure.Figure, in input.State) figure.Move {
	if l, ok := f.(*figure.Line); ok && l.SettingSlope() {
		return figure.MoveTo(in.Pos)
	}
	return figure.MoveBy(in.Rel)
}

// Draw paints every figure in z-order.
func (p *Plane) Draw(s render.Surface) {
	for _, f := range p.figures {
		f.Draw(s)
	}
}
