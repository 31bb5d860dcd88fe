package header

import (
	"cartesian-plane/internal/render"
	"cartesian-plane/pkg/colorutil"
	"cartesian-plane/pkg/geometry"
)

const (
	panelWidth    = 420
	panelHeight   = 260
	closeBoxSize  = 18
	panelPadding  = 16
	panelLineStep = 20
)

// Panel is the informational overlay opened by the info button.
type Panel struct {
	Title string
	Rect  geometry.Rect

	lines []string
	open  bool
}

func newPanel(width, headerHeight, planeHeight float64) *Panel {
	p := &Panel{Title: "Cartesian Plane"}
	p.layout(width, headerHeight, planeHeight)
	return p
}

// layout centres the panel over the plane area.
func (p *Panel) layout(width, headerHeight, planeHeight float64) {
	x := (width - panelWidth) / 2
	y := headerHeight + (planeHeight-panelHeight)/2
	if y < headerHeight {
		y = headerHeight
	}
	p.Rect = geometry.NewRect(x, y, panelWidth, panelHeight)
}

// Open shows the panel with the given text, replacing any previous text.
func (p *Panel) Open(lines []string) {
	p.lines = append(p.lines[:0], lines...)
	p.open = true
}

// Close hides the panel.
func (p *Panel) Close() { p.open = false }

// IsOpen reports whether the panel is visible.
func (p *Panel) IsOpen() bool { return p.open }

// Lines returns the current panel text.
func (p *Panel) Lines() []string { return p.lines }

// CloseBox returns the close button in the panel's top-right corner.
func (p *Panel) CloseBox() geometry.Rect {
	return geometry.NewRect(p.Rect.X+p.Rect.Width-closeBoxSize-6, p.Rect.Y+6, closeBoxSize, closeBoxSize)
}

func (p *Panel) Draw(s render.Surface) {
	s.Rect(p.Rect, colorutil.PanelFill, true)
	s.Rect(p.Rect, colorutil.Axis, false)

	cb := p.CloseBox()
	s.Rect(cb, colorutil.Axis, false)
	s.Line(cb.TopLeft(), cb.BottomRight(), colorutil.Text, 1.5)
	s.Line(geometry.NewPoint2D(cb.X+cb.Width, cb.Y), geometry.NewPoint2D(cb.X, cb.Y+cb.Height), colorutil.Text, 1.5)

	x := p.Rect.X + panelPadding
	y := p.Rect.Y + panelPadding + 10
	s.Text(p.Title, geometry.NewPoint2D(x, y), colorutil.Hover)
	for _, line := range p.lines {
		y += panelLineStep
		if y > p.Rect.Y+p.Rect.Height-panelPadding {
			break
		}
		s.Text(line, geometry.NewPoint2D(x, y), colorutil.Text)
	}
}
