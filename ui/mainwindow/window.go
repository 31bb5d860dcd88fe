// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"cartesian-plane/internal/app"
	"cartesian-plane/internal/figure"
	"cartesian-plane/internal/input"
	"cartesian-plane/internal/logging"
	"cartesian-plane/internal/loop"
	"cartesian-plane/internal/stress"
	"cartesian-plane/internal/version"
	"cartesian-plane/ui/canvas"
	"cartesian-plane/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	appTitle   = "Cartesian Plane"
	sceneExt   = ".plane.json"
	sceneFile  = "scene" + sceneExt
	statusIdle = "Ready"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	prefs *prefs.Prefs
	loop  *loop.Loop
	in    *input.Collector
	log   logging.Logger

	canvas      *canvas.PlaneCanvas
	statusBar   *widget.Label
	stressLabel *widget.Label

	cameraItem *fyne.MenuItem

	// CameraToggle starts or stops the stress monitor. Nil hides the
	// camera menu item.
	CameraToggle func(enabled bool) error
}

// New creates the main window around a frame loop and its input collector.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs, lp *loop.Loop, in *input.Collector, log logging.Logger) *MainWindow {
	if log == nil {
		log = logging.NewNopLogger()
	}
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
		loop:   lp,
		in:     in,
		log:    log,
	}

	mw.setupUI()
	mw.setupEventHandlers()
	mw.setupKeyboard()
	mw.SetCloseIntercept(mw.onClose)

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	s := mw.prefs.Settings()
	minSize := fyne.NewSize(float32(s.PlaneWidth), float32(s.PlaneHeight+s.HeaderHeight))
	mw.canvas = canvas.NewPlaneCanvas(mw.loop, mw.in, minSize, mw.log)

	mw.statusBar = widget.NewLabel(statusIdle)
	mw.stressLabel = widget.NewLabel("")

	status := container.NewHBox(mw.statusBar, layout.NewSpacer(), mw.stressLabel)
	content := container.NewBorder(
		nil,    // top
		status, // bottom
		nil,    // left
		nil,    // right
		mw.canvas,
	)
	mw.SetContent(content)
	mw.Resize(minSize.AddWidthHeight(0, status.MinSize().Height))
}

// SetupMenus creates the application menus. Call it after CameraToggle
// has been set.
func (mw *MainWindow) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Scene", mw.onNewScene),
		fyne.NewMenuItem("Open Scene...", mw.onOpenScene),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Scene", mw.onSaveScene),
		fyne.NewMenuItem("Save Scene As...", mw.onSaveSceneAs),
	)

	var viewItems []*fyne.MenuItem
	if mw.CameraToggle != nil {
		mw.cameraItem = fyne.NewMenuItem("Stress Camera", mw.onToggleCamera)
		mw.cameraItem.Checked = mw.prefs.Settings().CameraEnabled
		viewItems = append(viewItems, mw.cameraItem)
	}
	viewItems = append(viewItems, fyne.NewMenuItem("Refresh", mw.canvas.Refresh))
	viewMenu := fyne.NewMenu("View", viewItems...)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventSceneLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle(appTitle + " - " + filepath.Base(path))
			mw.updateStatus("Scene loaded: " + path)
		}
	})

	mw.state.On(app.EventSceneSaved, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle(appTitle + " - " + filepath.Base(path))
			mw.updateStatus("Scene saved: " + path)
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.state.On(app.EventModeChanged, func(data interface{}) {
		if mode, ok := data.(string); ok {
			if mode == "" {
				mw.updateStatus(statusIdle)
				return
			}
			mw.updateStatus("Click the plane to place a " + mode)
		}
	})

	mw.state.On(app.EventFigureAdded, func(data interface{}) {
		if f, ok := data.(figure.Figure); ok {
			mw.updateStatus("Added " + f.Kind().String())
		}
	})

	mw.state.On(app.EventStressReading, func(data interface{}) {
		if r, ok := data.(stress.Reading); ok {
			mw.stressLabel.SetText(r.Text())
		}
	})
}

// setupKeyboard forwards key presses and releases to the input collector.
func (mw *MainWindow) setupKeyboard() {
	c := mw.Canvas()
	if dc, ok := c.(desktop.Canvas); ok {
		dc.SetOnKeyDown(func(ev *fyne.KeyEvent) { mw.in.Push(input.KeyDown(string(ev.Name))) })
		dc.SetOnKeyUp(func(ev *fyne.KeyEvent) { mw.in.Push(input.KeyUp(string(ev.Name))) })
		return
	}
	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		mw.in.Push(input.KeyDown(string(ev.Name)))
		mw.in.Push(input.KeyUp(string(ev.Name)))
	})
}

// Refresh redraws the plane.
func (mw *MainWindow) Refresh() {
	mw.canvas.Refresh()
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefs.KeyLastDir, filepath.Dir(filePath))
}

// SavePreferences records the current plane size and writes preferences
// to disk, logging failures.
func (mw *MainWindow) SavePreferences() {
	s := mw.prefs.Settings()
	m := mw.loop.Mapper()
	s.PlaneWidth, s.PlaneHeight, s.CellSize = m.Width(), m.Height(), m.CellSize()
	mw.prefs.SetSettings(s)
	if err := mw.prefs.Save(); err != nil {
		mw.log.Warnf("failed to save preferences: %v", err)
	}
}

// Menu action handlers

func (mw *MainWindow) onNewScene() {
	mw.confirmDiscard(func() {
		mw.loop.ClearPlane()
		mw.state.NewScene()
		mw.SetTitle(appTitle + " - New Scene")
		mw.canvas.Refresh()
	})
}

func (mw *MainWindow) onOpenScene() {
	mw.confirmDiscard(func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			reader.Close()
			path := reader.URI().Path()
			mw.saveLastDir(path)
			mw.openScene(path)
		}, mw.Window)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
		if loc := mw.getLastDir(); loc != nil {
			fd.SetLocation(loc)
		}
		fd.Show()
	})
}

// openScene loads a scene file into the plane, reporting errors in a dialog.
func (mw *MainWindow) openScene(path string) {
	scene, err := mw.state.LoadScene(path)
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	if err := mw.loop.Restore(scene.Figures); err != nil {
		dialog.ShowError(fmt.Errorf("failed to restore %s: %w", filepath.Base(path), err), mw.Window)
		return
	}
	mw.canvas.Refresh()
}

// OpenScene loads path at startup.
func (mw *MainWindow) OpenScene(path string) {
	mw.openScene(path)
}

func (mw *MainWindow) onSaveScene() {
	path := mw.state.Path()
	if path == "" {
		mw.onSaveSceneAs()
		return
	}
	mw.saveScene(path)
}

func (mw *MainWindow) onSaveSceneAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".json" {
			path += sceneExt
		}
		mw.saveLastDir(path)
		mw.saveScene(path)
	}, mw.Window)
	fd.SetFileName(sceneFile)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) saveScene(path string) {
	if err := mw.state.SaveScene(path, mw.loop.Mapper().CellSize(), mw.loop.Specs()); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

// confirmDiscard runs fn directly, or after confirmation when the scene
// has unsaved changes.
func (mw *MainWindow) confirmDiscard(fn func()) {
	if !mw.state.IsModified() {
		fn()
		return
	}
	dialog.ShowConfirm("Unsaved Changes", "Discard changes to the current scene?", func(ok bool) {
		if ok {
			fn()
		}
	}, mw.Window)
}

func (mw *MainWindow) onToggleCamera() {
	enable := !mw.cameraItem.Checked
	if err := mw.CameraToggle(enable); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.cameraItem.Checked = enable
	mw.prefs.SetBool(prefs.KeyCameraEnabled, enable)
	if !enable {
		mw.stressLabel.SetText("")
	}
	mw.MainMenu().Refresh()
}

func (mw *MainWindow) onClose() {
	mw.confirmDiscard(func() {
		mw.SavePreferences()
		mw.in.Push(input.Quit())
		mw.Close()
	})
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s v%s\n\n"+
			"Place points, lines and rectangles on a Cartesian grid\n"+
			"and drag them around.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			appTitle, version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
