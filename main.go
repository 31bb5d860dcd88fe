// Package main provides the entry point for the Cartesian Plane application.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"cartesian-plane/internal/app"
	"cartesian-plane/internal/coords"
	"cartesian-plane/internal/header"
	"cartesian-plane/internal/input"
	"cartesian-plane/internal/logging"
	"cartesian-plane/internal/loop"
	"cartesian-plane/internal/plane"
	"cartesian-plane/internal/stress"
	"cartesian-plane/internal/version"
	"cartesian-plane/ui/mainwindow"
	"cartesian-plane/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const appID = "io.github.cartesian-plane"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appPrefs := prefs.Load()
	settings, err := parseFlags(appPrefs.Settings(), os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New("plane", settings.Debug)
	logger.Infof("starting Cartesian Plane %s", version.String())

	mapper, err := coords.New(settings.PlaneWidth, settings.PlaneHeight, settings.HeaderHeight, settings.CellSize)
	if err != nil {
		log.Fatalf("invalid plane geometry: %v", err)
	}

	state := app.NewState()
	in := input.NewCollector()
	slot := stress.NewSlot()

	var win *mainwindow.MainWindow
	lp, err := loop.New(loop.Config{
		Input:  in,
		Header: header.New(settings.PlaneWidth, settings.HeaderHeight, settings.PlaneHeight, logger.With("header")),
		Plane:  plane.New(logger.With("plane")),
		Mapper: mapper,
		Slot:   slot,
		Events: state,
		Present: func() {
			if win != nil {
				win.Refresh()
			}
		},
		ShowIntro: true,
		Log:       logger.With("loop"),
	})
	if err != nil {
		log.Fatal(err)
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.PlaneTheme{})

	win = mainwindow.New(fyneApp, state, appPrefs, lp, in, logger.With("ui"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	camera := newCameraController(ctx, settings, slot, logger.With("stress"))
	win.CameraToggle = camera.Toggle
	win.SetupMenus()
	if settings.CameraEnabled {
		if err := camera.Toggle(true); err != nil {
			logger.Warnf("stress camera disabled: %v", err)
			dialog.ShowError(err, win.Window)
		}
	}

	if path := flag.Arg(0); path != "" {
		win.OpenScene(path)
	}

	setupHotReload(win, logger.With("reload"))

	go func() {
		if err := lp.Run(ctx); err != nil {
			logger.Errorf("frame loop: %v", err)
		}
		camera.Stop()
		fyneApp.Quit()
	}()

	win.ShowAndRun()
	cancel()
}

// parseFlags overrides the stored settings with command-line flags that
// were given explicitly.
func parseFlags(s prefs.Settings, args []string) (prefs.Settings, error) {
	fs := flag.CommandLine
	width := fs.Float64("width", s.PlaneWidth, "plane width in pixels")
	height := fs.Float64("height", s.PlaneHeight, "plane height in pixels, toolbar excluded")
	cell := fs.Float64("cell", s.CellSize, "grid cell size in pixels")
	debug := fs.Bool("debug", s.Debug, "enable debug logging")
	camera := fs.Bool("camera", s.CameraEnabled, "start the stress camera")
	device := fs.Int("device", s.CameraDevice, "camera device index")
	interval := fs.Duration("interval", s.CameraInterval, "time between camera samples")
	cascade := fs.String("cascade", s.CascadePath, "Haar cascade XML for face detection")
	out := fs.String("out", s.OutputDir, "directory for stress.csv and frame dumps")
	frames := fs.Bool("frames", s.SaveFrames, "save every annotated camera frame as TIFF")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return s, err
	}
	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	s.PlaneWidth, s.PlaneHeight, s.CellSize = *width, *height, *cell
	s.Debug, s.CameraEnabled, s.CameraDevice = *debug, *camera, *device
	s.CameraInterval, s.CascadePath = *interval, *cascade
	s.OutputDir, s.SaveFrames = *out, *frames
	return s, nil
}

// setupHotReload offers a restart when the binary is rebuilt during development.
func setupHotReload(win *mainwindow.MainWindow, logger logging.Logger) {
	reloader := app.NewHotReloader(2*time.Second, logger)
	if reloader == nil {
		logger.Warnf("hot reload: unable to determine executable path")
		return
	}
	logger.Debugf("hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.Baseline().Format("15:04:05"))

	reloader.OnNewBinary(func() {
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				win.SavePreferences()
				logger.Infof("hot reload: restarting")
				if err := reloader.Restart(); err != nil {
					logger.Errorf("hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})

	reloader.Start()
}
