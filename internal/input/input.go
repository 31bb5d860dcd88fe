// Package input turns queued pointer and keyboard events into one input
// snapshot per frame.
package input

import (
	"sync"

	"cartesian-plane/pkg/geometry"
)

// EventType identifies an input event.
type EventType int

const (
	EventQuit EventType = iota
	EventKeyDown
	EventKeyUp
	EventButtonDown
	EventButtonUp
	EventMotion
)

// Event is a single host input event.
type Event struct {
	Type EventType
	Pos  geometry.Point2D // pointer position, for pointer events
	// Delta is the relative motion of a motion event. When zero it is
	// derived from the previous pointer position.
	Delta geometry.Point2D
	Key   string // key name, for key events
}

// Quit returns a quit event.
func Quit() Event { return Event{Type: EventQuit} }

// ButtonDown returns a primary button press at pos.
func ButtonDown(pos geometry.Point2D) Event { return Event{Type: EventButtonDown, Pos: pos} }

// ButtonUp returns a primary button release at pos.
func ButtonUp(pos geometry.Point2D) Event { return Event{Type: EventButtonUp, Pos: pos} }

// Motion returns a pointer motion event to pos.
func Motion(pos geometry.Point2D) Event { return Event{Type: EventMotion, Pos: pos} }

// KeyDown returns a key press.
func KeyDown(key string) Event { return Event{Type: EventKeyDown, Key: key} }

// KeyUp returns a key release.
func KeyUp(key string) Event { return Event{Type: EventKeyUp, Key: key} }

// State is the input snapshot of one frame.
type State struct {
	Pos          geometry.Point2D
	ButtonDown   bool
	JustPressed  bool
	JustReleased bool
	Motion       bool
	Rel          geometry.Point2D
	// PressPos is where the button went down on a JustPressed frame.
	// Motion and Rel then only cover movement after the press.
	PressPos geometry.Point2D
	Keys     []string // keys pressed during the frame
	Quit     bool
}

// KeyPressed reports whether key was pressed during the frame.
func (s State) KeyPressed(key string) bool {
	for _, k := range s.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Collector queues events from the toolkit's event goroutine until the
// frame loop takes a snapshot.
type Collector struct {
	mu    sync.Mutex
	queue []Event
	pos   geometry.Point2D
	down  bool
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Push queues an event. Safe for concurrent use.
func (c *Collector) Push(ev Event) {
	c.mu.Lock()
	c.queue = append(c.queue, ev)
	c.mu.Unlock()
}

// Snapshot drains the queue and returns the frame's input state. Pointer
// position and button state carry over between frames.
func (c *Collector) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	var st State
	for _, ev := range c.queue {
		switch ev.Type {
		case EventQuit:
			st.Quit = true
		case EventKeyDown:
			st.Keys = append(st.Keys, ev.Key)
		case EventKeyUp:
			// releases carry no per-frame state
		case EventButtonDown:
			if !c.down {
				st.JustPressed = true
				st.PressPos = ev.Pos
				st.Rel = geometry.Point2D{}
				st.Motion = false
			}
			c.down = true
			c.pos = ev.Pos
		case EventButtonUp:
			if c.down {
				st.JustReleased = true
			}
			c.down = false
			c.pos = ev.Pos
		case EventMotion:
			delta := ev.Delta
			if delta.IsZero() {
				delta = ev.Pos.Sub(c.pos)
			}
			st.Rel = st.Rel.Add(delta)
			st.Motion = st.Motion || !delta.IsZero()
			c.pos = ev.Pos
		}
	}
	c.queue = c.queue[:0]

	st.Pos = c.pos
	st.ButtonDown = c.down
	return st
}
