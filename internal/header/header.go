// Package header implements the toolbar row above the plane: mutually
// exclusive mode buttons and an informational panel.
package header

import (
	"cartesian-plane/internal/input"
	"cartesian-plane/internal/logging"
	"cartesian-plane/internal/render"
	"cartesian-plane/pkg/colorutil"
	"cartesian-plane/pkg/geometry"
)

// InfoButton is the reserved button name that opens the info panel
// instead of selecting a mode.
const InfoButton = "info"

// KeyEscape is the key name that closes the info panel.
const KeyEscape = "Escape"

// Toolbar layout in pixels.
const (
	DefaultHeight = 50
	buttonWidth   = 84
	buttonHeight  = 30
	buttonGap     = 10
	buttonMargin  = 10
)

// DefaultButtons lists the toolbar buttons in display order.
var DefaultButtons = []struct{ Name, Label string }{
	{"point", "Point"},
	{"line", "Line"},
	{"figure", "Figure"},
	{InfoButton, "Info"},
}

// Button is one toolbar button at a fixed position.
type Button struct {
	Name  string
	Label string
	Rect  geometry.Rect

	hovered  bool
	selected bool
}

// Hovered reports whether the pointer was over the button last frame.
func (b *Button) Hovered() bool { return b.hovered }

// Selected reports whether the button is the active mode.
func (b *Button) Selected() bool { return b.selected }

// Header is the toolbar row. At most one button is selected.
type Header struct {
	width  float64
	height float64

	buttons []*Button
	mode    string
	panel   *Panel
	status  string

	// InfoLines supplies the panel text each time the panel is opened.
	InfoLines func() []string

	log logging.Logger
}

// New creates a header of the given size with the default buttons.
// planeHeight is used to place the info panel.
func New(width, height, planeHeight float64, log logging.Logger) *Header {
	if log == nil {
		log = logging.NewNopLogger()
	}
	h := &Header{width: width, height: height, log: log}
	for i, def := range DefaultButtons {
		x := buttonMargin + float64(i)*(buttonWidth+buttonGap)
		y := (height - buttonHeight) / 2
		h.buttons = append(h.buttons, &Button{
			Name:  def.Name,
			Label: def.Label,
			Rect:  geometry.NewRect(x, y, buttonWidth, buttonHeight),
		})
	}
	h.panel = newPanel(width, height, planeHeight)
	return h
}

// Height returns the header height in pixels.
func (h *Header) Height() float64 { return h.height }

// Buttons returns the buttons in display order.
func (h *Header) Buttons() []*Button { return h.buttons }

// Button returns the named button, or nil.
func (h *Header) Button(name string) *Button {
	for _, b := range h.buttons {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// Panel returns the info panel.
func (h *Header) Panel() *Panel { return h.panel }

// SelectedMode returns the active mode, or "" when none is selected.
func (h *Header) SelectedMode() string { return h.mode }

// SetStatus sets the text shown at the right end of the toolbar.
func (h *Header) SetStatus(text string) { h.status = text }

// Status returns the toolbar status text.
func (h *Header) Status() string { return h.status }

// Resize lays the panel out for a new window size. Buttons keep their
// fixed positions.
func (h *Header) Resize(width, planeHeight float64) {
	h.width = width
	h.panel.layout(width, h.height, planeHeight)
}

// CheckButtons updates hover for every button and handles a press on a
// hovered one. A mode button becomes the only selected button; the info
// button opens or refreshes the panel and leaves the mode alone.
func (h *Header) CheckButtons(in input.State) {
	if h.panel.IsOpen() {
		if in.KeyPressed(KeyEscape) || (in.JustPressed && h.panel.CloseBox().Contains(in.PressPos)) {
			h.panel.Close()
			h.log.Debugf("info panel closed")
			return
		}
	}

	for _, b := range h.buttons {
		b.hovered = b.Rect.Contains(in.Pos)
		if !in.JustPressed || !b.Rect.Contains(in.PressPos) {
			continue
		}
		if b.Name == InfoButton {
			h.OpenPanel()
			continue
		}
		for _, other := range h.buttons {
			other.selected = false
		}
		b.selected = true
		h.mode = b.Name
		h.log.Debugf("mode %q", h.mode)
	}
}

// OpenPanel opens the info panel, or refreshes its text when open.
func (h *Header) OpenPanel() {
	var lines []string
	if h.InfoLines != nil {
		lines = h.InfoLines()
	}
	h.panel.Open(lines)
	h.log.Debugf("info panel opened (%d lines)", len(lines))
}

// ClearSelection deselects every button and clears the mode.
func (h *Header) ClearSelection() {
	for _, b := range h.buttons {
		b.selected = false
	}
	h.mode = ""
}

// IsMouseInsideHeader reports whether p is above the bottom of the header,
// or the info panel is open. Either way the plane must ignore the pointer.
func (h *Header) IsMouseInsideHeader(p geometry.Point2D) bool {
	return p.Y < h.height || h.panel.IsOpen()
}

// Draw paints the toolbar and, when open, the info panel.
func (h *Header) Draw(s render.Surface) {
	s.Rect(geometry.NewRect(0, 0, h.width, h.height), colorutil.HeaderBar, true)
	s.Line(geometry.NewPoint2D(0, h.height), geometry.NewPoint2D(h.width, h.height), colorutil.Axis, 1)

	for _, b := range h.buttons {
		col := colorutil.StateColor(b.hovered, b.selected)
		if b.selected || b.hovered {
			s.Rect(b.Rect, colorutil.Dim(col, 0.3), true)
		}
		s.Rect(b.Rect, col, false)
		s.Text(b.Label, geometry.NewPoint2D(b.Rect.X+12, b.Rect.Y+b.Rect.Height/2+5), colorutil.Text)
	}

	if h.status != "" {
		last := h.buttons[len(h.buttons)-1].Rect
		x := last.X + last.Width + 3*buttonGap
		s.Text(h.status, geometry.NewPoint2D(x, h.height/2+5), colorutil.Text)
	}

	if h.panel.IsOpen() {
		h.panel.Draw(s)
	}
}
