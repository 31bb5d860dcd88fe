// Package figure provides the interactive shapes placed on the plane.
//
// The set of variants is closed: Rect, Point and Line. Code that needs to
// treat them differently switches on the concrete type.
package figure

import (
	"cartesian-plane/internal/render"
	"cartesian-plane/pkg/geometry"

	"github.com/google/uuid"
)

// Kind identifies a figure variant.
type Kind int

const (
	KindRect Kind = iota
	KindPoint
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "figure"
	case KindPoint:
		return "point"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Figure is a drawable shape with hover and selection state.
type Figure interface {
	Kind() Kind
	ID() string
	// Anchor is the reference position used for hit tests and dragging.
	Anchor() geometry.Point2D
	// CheckHover updates and returns the hover flag for pointer position p.
	CheckHover(p geometry.Point2D) bool
	Hovered() bool
	// ClearHover drops the hover flag without a hit test.
	ClearHover()
	SetState(selected bool)
	Selected() bool
	Move(m Move)
	Draw(s render.Surface)

	figure()
}

// base holds the state shared by every variant.
type base struct {
	id       string
	anchor   geometry.Point2D
	hovered  bool
	selected bool
}

func newBase(anchor geometry.Point2D) base {
	return base{id: uuid.NewString(), anchor: anchor}
}

func (b *base) ID() string               { return b.id }
func (b *base) Anchor() geometry.Point2D { return b.anchor }
func (b *base) Hovered() bool            { return b.hovered }
func (b *base) Selected() bool           { return b.selected }
func (b *base) SetState(selected bool)   { b.selected = selected }
func (b *base) ClearHover()              { b.hovered = false }
func (b *base) figure()                  {}
func (b *base) setID(id string)          { b.id = id }
func (b *base) translate(m Move)         { b.anchor = m.Apply(b.anchor) }
func (b *base) setHover(h bool) bool {
	b.hovered = h
	return h
}
