package app

import (
	"image/color"

	"cartesian-plane/pkg/colorutil"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PlaneTheme is the application theme. It follows the plane palette so
// the fyne chrome matches the rendered toolbar.
type PlaneTheme struct{}

var _ fyne.Theme = (*PlaneTheme)(nil)

func (t *PlaneTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return colorutil.Selected
	case theme.ColorNameHover:
		return colorutil.Dim(colorutil.Hover, 0.25)
	case theme.ColorNameSelection:
		return colorutil.Dim(colorutil.Passive, 0.4)
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *PlaneTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *PlaneTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *PlaneTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	default:
		return theme.DefaultTheme().Size(name)
	}
}
