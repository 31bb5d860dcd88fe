package figure

import (
	"fmt"

	"cartesian-plane/pkg/geometry"
)

type moveKind int

const (
	moveTo moveKind = iota
	moveBy
)

// Move is the argument to Figure.Move: either an absolute position or a
// relative delta, never both.
type Move struct {
	kind moveKind
	vec  geometry.Point2D
}

// MoveTo moves a figure so its anchor lands on pos.
func MoveTo(pos geometry.Point2D) Move {
	return Move{kind: moveTo, vec: pos}
}

// MoveBy moves a figure by delta.
func MoveBy(delta geometry.Point2D) Move {
	return Move{kind: moveBy, vec: delta}
}

// IsRelative reports whether the move is a delta.
func (m Move) IsRelative() bool { return m.kind == moveBy }

// Vector returns the position or delta carried by the move.
func (m Move) Vector() geometry.Point2D { return m.vec }

// Apply returns p after the move.
func (m Move) Apply(p geometry.Point2D) geometry.Point2D {
	if m.kind == moveBy {
		return p.Add(m.vec)
	}
	return m.vec
}

func (m Move) String() string {
	if m.kind == moveBy {
		return fmt.Sprintf("by %s", m.vec)
	}
	return fmt.Sprintf("to %s", m.vec)
}
