// Package colorutil provides the shared palette of the plane.
package colorutil

import (
	"image/color"
)

// Common colors used throughout the application.
var (
	Black   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan    = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	Magenta = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	Blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	Green   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	Yellow  = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Red     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Plane colors.
var (
	Background = color.RGBA{R: 24, G: 26, B: 31, A: 255}
	GridLine   = color.RGBA{R: 48, G: 52, B: 60, A: 255}
	Axis       = color.RGBA{R: 150, G: 155, B: 165, A: 255}
	AxisLabel  = color.RGBA{R: 120, G: 125, B: 135, A: 255}
	HeaderBar  = color.RGBA{R: 36, G: 39, B: 46, A: 255}
	PanelFill  = color.RGBA{R: 44, G: 48, B: 56, A: 245}
	Text       = color.RGBA{R: 225, G: 228, B: 232, A: 255}
)

// Interaction colors, picked with priority hover > selected > passive.
var (
	Passive  = color.RGBA{R: 90, G: 160, B: 255, A: 255}
	Hover    = color.RGBA{R: 255, G: 213, B: 0, A: 255}
	Selected = color.RGBA{R: 46, G: 200, B: 90, A: 255}
)

// StateColor returns the interaction color for the given flags.
func StateColor(hovered, selected bool) color.RGBA {
	switch {
	case hovered:
		return Hover
	case selected:
		return Selected
	default:
		return Passive
	}
}

// Dim returns c with its opacity scaled by factor (0-1). All channels are
// scaled since color.RGBA is alpha-premultiplied.
func Dim(c color.RGBA, factor float64) color.RGBA {
	if factor < 0 {
		factor = 0
	} else if factor > 1 {
		factor = 1
	}
	scale := func(v uint8) uint8 { return uint8(float64(v) * factor) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}
