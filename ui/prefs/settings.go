package prefs

import (
	"os"
	"path/filepath"
	"time"
)

// Preference keys.
const (
	KeyPlaneWidth     = "planeWidth"
	KeyPlaneHeight    = "planeHeight"
	KeyHeaderHeight   = "headerHeight"
	KeyCellSize       = "cellSize"
	KeyDebug          = "debug"
	KeyCameraEnabled  = "cameraEnabled"
	KeyCameraDevice   = "cameraDevice"
	KeyCameraInterval = "cameraIntervalMs"
	KeyCascadePath    = "cascadePath"
	KeyOutputDir      = "outputDir"
	KeySaveFrames     = "saveFrames"
	KeyLastDir        = "lastDirectory"
)

// Settings is the typed view of the preferences the application reads at
// startup.
type Settings struct {
	PlaneWidth   float64
	PlaneHeight  float64
	HeaderHeight float64
	CellSize     float64
	Debug        bool

	CameraEnabled  bool
	CameraDevice   int
	CameraInterval time.Duration
	CascadePath    string
	OutputDir      string
	SaveFrames     bool
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	out := "stress-output"
	if home, err := os.UserHomeDir(); err == nil {
		out = filepath.Join(home, "cartesian-plane", "stress")
	}
	return Settings{
		PlaneWidth:     800,
		PlaneHeight:    600,
		HeaderHeight:   50,
		CellSize:       25,
		CameraDevice:   0,
		CameraInterval: 200 * time.Millisecond,
		CascadePath:    "haarcascade_frontalface_default.xml",
		OutputDir:      out,
	}
}

// Settings reads the typed settings, falling back to the defaults for
// missing keys.
func (p *Prefs) Settings() Settings {
	d := DefaultSettings()
	return Settings{
		PlaneWidth:     p.FloatWithFallback(KeyPlaneWidth, d.PlaneWidth),
		PlaneHeight:    p.FloatWithFallback(KeyPlaneHeight, d.PlaneHeight),
		HeaderHeight:   p.FloatWithFallback(KeyHeaderHeight, d.HeaderHeight),
		CellSize:       p.FloatWithFallback(KeyCellSize, d.CellSize),
		Debug:          p.Bool(KeyDebug, d.Debug),
		CameraEnabled:  p.Bool(KeyCameraEnabled, d.CameraEnabled),
		CameraDevice:   int(p.FloatWithFallback(KeyCameraDevice, float64(d.CameraDevice))),
		CameraInterval: time.Duration(p.FloatWithFallback(KeyCameraInterval, float64(d.CameraInterval.Milliseconds()))) * time.Millisecond,
		CascadePath:    p.StringWithFallback(KeyCascadePath, d.CascadePath),
		OutputDir:      p.StringWithFallback(KeyOutputDir, d.OutputDir),
		SaveFrames:     p.Bool(KeySaveFrames, d.SaveFrames),
	}
}

// SetSettings stores every field of s.
func (p *Prefs) SetSettings(s Settings) {
	p.SetFloat(KeyPlaneWidth, s.PlaneWidth)
	p.SetFloat(KeyPlaneHeight, s.PlaneHeight)
	p.SetFloat(KeyHeaderHeight, s.HeaderHeight)
	p.SetFloat(KeyCellSize, s.CellSize)
	p.SetBool(KeyDebug, s.Debug)
	p.SetBool(KeyCameraEnabled, s.CameraEnabled)
	p.SetFloat(KeyCameraDevice, float64(s.CameraDevice))
	p.SetFloat(KeyCameraInterval, float64(s.CameraInterval.Milliseconds()))
	p.SetString(KeyCascadePath, s.CascadePath)
	p.SetString(KeyOutputDir, s.OutputDir)
	p.SetBool(KeySaveFrames, s.SaveFrames)
}
