// Package canvas provides the fyne widget that shows the plane and feeds
// pointer events to the frame loop.
package canvas

import (
	"image"
	"sync"

	"cartesian-plane/internal/input"
	"cartesian-plane/internal/logging"
	"cartesian-plane/internal/render"
	"cartesian-plane/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// Scene is what the canvas draws and resizes.
type Scene interface {
	Draw(s render.Surface)
	Resize(width, height float64) error
}

// PlaneCanvas renders a Scene through a gg surface inside a fyne raster
// and forwards mouse input to an input.Collector.
type PlaneCanvas struct {
	widget.BaseWidget

	scene Scene
	in    *input.Collector
	log   logging.Logger

	raster  *fynecanvas.Raster
	minSize fyne.Size

	mu       sync.Mutex
	surface  *render.GGSurface
	lastSize fyne.Size
}

var (
	_ desktop.Mouseable = (*PlaneCanvas)(nil)
	_ desktop.Hoverable = (*PlaneCanvas)(nil)
	_ fyne.Draggable    = (*PlaneCanvas)(nil)
)

// NewPlaneCanvas creates a canvas for scene with the given minimum size.
func NewPlaneCanvas(scene Scene, in *input.Collector, minSize fyne.Size, log logging.Logger) *PlaneCanvas {
	if log == nil {
		log = logging.NewNopLogger()
	}
	pc := &PlaneCanvas{
		scene:   scene,
		in:      in,
		log:     log,
		minSize: minSize,
	}

	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScaleSmooth
	pc.raster.SetMinSize(minSize)

	pc.ExtendBaseWidget(pc)
	return pc
}

// draw is the raster drawing function. The scene is rendered at the
// widget's logical size and fyne scales it to w x h device pixels.
func (pc *PlaneCanvas) draw(w, h int) image.Image {
	size := pc.Size()
	lw, lh := int(size.Width), int(size.Height)
	if lw <= 0 || lh <= 0 {
		lw, lh = w, h
	}
	if lw <= 0 || lh <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.surface == nil {
		s, err := render.NewGGSurface(lw, lh)
		if err != nil {
			pc.log.Errorf("failed to create render surface: %v", err)
			return image.NewRGBA(image.Rect(0, 0, w, h))
		}
		pc.surface = s
	} else if sw, sh := pc.surface.Size(); sw != lw || sh != lh {
		if err := pc.surface.Resize(lw, lh); err != nil {
			pc.log.Errorf("failed to resize render surface: %v", err)
		}
	}

	pc.scene.Draw(pc.surface)
	if err := pc.surface.Err(); err != nil {
		pc.log.Warnf("render: %v", err)
	}
	return pc.surface.Image()
}

// Close releases the render surface.
func (pc *PlaneCanvas) Close() error {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.surface == nil {
		return nil
	}
	err := pc.surface.Close()
	pc.surface = nil
	return err
}

// checkResize tells the scene about a new widget size.
func (pc *PlaneCanvas) checkResize(size fyne.Size) {
	if size == pc.lastSize || size.Width <= 0 || size.Height <= 0 {
		return
	}
	pc.lastSize = size
	if err := pc.scene.Resize(float64(size.Width), float64(size.Height)); err != nil {
		pc.log.Warnf("resize to %.0fx%.0f: %v", size.Width, size.Height, err)
	}
}

func toPoint(p fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(p.X), float64(p.Y))
}

// MouseDown implements desktop.Mouseable. Only the primary button drives
// the plane.
func (pc *PlaneCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.in.Push(input.ButtonDown(toPoint(ev.Position)))
}

// MouseUp implements desktop.Mouseable.
func (pc *PlaneCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	pc.in.Push(input.ButtonUp(toPoint(ev.Position)))
}

// MouseIn implements desktop.Hoverable.
func (pc *PlaneCanvas) MouseIn(ev *desktop.MouseEvent) {
	pc.in.Push(input.Motion(toPoint(ev.Position)))
}

// MouseMoved implements desktop.Hoverable.
func (pc *PlaneCanvas) MouseMoved(ev *desktop.MouseEvent) {
	pc.in.Push(input.Motion(toPoint(ev.Position)))
}

// MouseOut implements desktop.Hoverable.
func (pc *PlaneCanvas) MouseOut() {}

// Dragged implements fyne.Draggable. fyne reports drags instead of moves
// while a button is held.
func (pc *PlaneCanvas) Dragged(ev *fyne.DragEvent) {
	ev2 := input.Motion(toPoint(ev.Position))
	ev2.Delta = geometry.NewPoint2D(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
	pc.in.Push(ev2)
}

// DragEnd implements fyne.Draggable. The release arrives through MouseUp.
func (pc *PlaneCanvas) DragEnd() {}

// MinSize returns the configured minimum size.
func (pc *PlaneCanvas) MinSize() fyne.Size {
	return pc.minSize
}

// CreateRenderer implements fyne.Widget.
func (pc *PlaneCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &planeCanvasRenderer{canvas: pc}
}

type planeCanvasRenderer struct {
	canvas *PlaneCanvas
}

func (r *planeCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
	r.canvas.checkResize(size)
}

func (r *planeCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.minSize
}

func (r *planeCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *planeCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *planeCanvasRenderer) Destroy() {
	_ = r.canvas.Close()
}
