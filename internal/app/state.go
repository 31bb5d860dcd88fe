// Package app provides application lifecycle management, scene files, and events.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"cartesian-plane/internal/figure"
)

// SceneVersion is written to every scene file.
const SceneVersion = 1

// State holds the session state shared between the window and the frame loop.
type State struct {
	mu sync.RWMutex

	// Scene
	ScenePath string
	Modified  bool

	// Active toolbar mode, "" when none
	Mode string

	// Event listeners
	listeners map[EventType][]EventListener
}

// SceneFile is the on-disk format of a saved plane.
type SceneFile struct {
	Version  int           `json:"version"`
	CellSize float64       `json:"cell_size,omitempty"`
	Figures  []figure.Spec `json:"figures"`
}

// EventType identifies different application events.
type EventType int

const (
	EventSceneLoaded EventType = iota
	EventSceneSaved
	EventModified
	EventFigureAdded
	EventModeChanged
	EventStressReading
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	return &State{
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the scene as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// NewScene forgets the scene path and clears the modified flag.
func (s *State) NewScene() {
	s.mu.Lock()
	s.ScenePath = ""
	s.mu.Unlock()
	s.SetModified(false)
}

// IsModified reports whether the scene has unsaved changes.
func (s *State) IsModified() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Modified
}

// SetMode records the active toolbar mode and emits EventModeChanged when
// it differs from the previous one.
func (s *State) SetMode(mode string) {
	s.mu.Lock()
	changed := s.Mode != mode
	s.Mode = mode
	s.mu.Unlock()
	if changed {
		s.Emit(EventModeChanged, mode)
	}
}

// FigureAdded marks the scene modified and emits EventFigureAdded.
func (s *State) FigureAdded(f figure.Figure) {
	s.SetModified(true)
	s.Emit(EventFigureAdded, f)
}

// LoadScene reads a scene file and returns its figures.
func (s *State) LoadScene(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var scene SceneFile
	if err := json.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	if scene.Version > SceneVersion {
		return nil, fmt.Errorf("scene version %d is newer than supported version %d", scene.Version, SceneVersion)
	}

	s.mu.Lock()
	s.ScenePath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSceneLoaded, path)
	return &scene, nil
}

// SaveScene writes figures to path.
func (s *State) SaveScene(path string, cellSize float64, figures []figure.Spec) error {
	scene := SceneFile{Version: SceneVersion, CellSize: cellSize, Figures: figures}
	if scene.Figures == nil {
		scene.Figures = []figure.Spec{}
	}

	data, err := json.MarshalIndent(scene, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}

	s.mu.Lock()
	s.ScenePath = path
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSceneSaved, path)
	return nil
}

// Path returns the current scene path, or "" for an unsaved scene.
func (s *State) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ScenePath
}
