package figure

import (
	"errors"
	"fmt"

	"cartesian-plane/pkg/geometry"
)

// ErrBadSpec is returned by FromSpec for a spec that cannot be restored.
var ErrBadSpec = errors.New("invalid figure spec")

// Spec is the serialisable description of a figure. Lines are stored as
// anchor and target so vertical lines round trip through JSON.
type Spec struct {
	Kind   string           `json:"kind"`
	ID     string           `json:"id"`
	Anchor geometry.Point2D `json:"anchor"`

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Label  string  `json:"label,omitempty"`

	Radius float64 `json:"radius,omitempty"`

	Target *geometry.Point2D `json:"target,omitempty"`
}

// Describe returns the spec of f. Hover and selection are not kept.
func Describe(f Figure) Spec {
	s := Spec{Kind: f.Kind().String(), ID: f.ID(), Anchor: f.Anchor()}
	switch v := f.(type) {
	case *Rect:
		s.Width, s.Height, s.Label = v.Width, v.Height, v.Label
	case *Point:
		s.Radius = v.Radius
	case *Line:
		t := v.target
		s.Target = &t
	}
	return s
}

// FromSpec rebuilds a figure from its spec.
func FromSpec(s Spec) (Figure, error) {
	var f Figure
	switch s.Kind {
	case KindRect.String():
		if s.Width <= 0 || s.Height <= 0 {
			return nil, fmt.Errorf("%w: rect %q has size %gx%g", ErrBadSpec, s.ID, s.Width, s.Height)
		}
		r := NewRect(s.Anchor, s.Width, s.Height)
		r.Label = s.Label
		f = r
	case KindPoint.String():
		radius := s.Radius
		if radius <= 0 {
			radius = DefaultPointRadius
		}
		f = NewPoint(s.Anchor, radius)
	case KindLine.String():
		l := NewLine(s.Anchor)
		if s.Target != nil && *s.Target != s.Anchor {
			l.target = *s.Target
			l.refit()
		}
		f = l
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrBadSpec, s.Kind)
	}
	if s.ID != "" {
		f.(interface{ setID(string) }).setID(s.ID)
	}
	return f, nil
}
