// Package stress derives an advisory stress level from face detections on
// camera frames and hands the latest reading to the frame loop.
package stress

import (
	"fmt"
	"image"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Level is a coarse stress classification.
type Level int

const (
	LevelNoFace Level = iota
	LevelCalm
	LevelElevated
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelCalm:
		return "calm"
	case LevelElevated:
		return "elevated"
	case LevelHigh:
		return "high"
	default:
		return "no face"
	}
}

// Default thresholds on the jitter score.
const (
	DefaultWindow        = 15
	DefaultCalmBelow     = 0.02
	DefaultElevatedBelow = 0.06
)

// Sample is one camera frame with its face detections.
type Sample struct {
	Taken time.Time
	Frame image.Image // annotated frame, may be nil
	Faces []image.Rectangle
}

// Reading is the estimator output for one sample.
type Reading struct {
	Taken time.Time
	Faces int
	Score float64
	Level Level
}

// Text renders the reading for the overlay.
func (r Reading) Text() string {
	if r.Level == LevelNoFace {
		return "Stress: no face"
	}
	return fmt.Sprintf("Stress: %s (%.3f)", r.Level, r.Score)
}

// Estimator scores head-movement jitter over a sliding window. Each sample
// contributes the centre of the largest face divided by that face's width,
// so the score does not depend on the distance to the camera. The score is
// the combined standard deviation of those centres.
type Estimator struct {
	Window        int
	CalmBelow     float64
	ElevatedBelow float64

	xs, ys []float64
}

// NewEstimator creates an estimator with the default thresholds.
func NewEstimator(window int) *Estimator {
	if window < 2 {
		window = DefaultWindow
	}
	return &Estimator{
		Window:        window,
		CalmBelow:     DefaultCalmBelow,
		ElevatedBelow: DefaultElevatedBelow,
	}
}

// Reset drops the window.
func (e *Estimator) Reset() {
	e.xs = e.xs[:0]
	e.ys = e.ys[:0]
}

// Add feeds one sample and returns the reading. A sample without faces
// resets the window.
func (e *Estimator) Add(s Sample) Reading {
	r := Reading{Taken: s.Taken, Faces: len(s.Faces)}
	face, ok := largest(s.Faces)
	if !ok {
		e.Reset()
		r.Level = LevelNoFace
		return r
	}

	w := float64(face.Dx())
	cx := float64(face.Min.X+face.Max.X) / 2 / w
	cy := float64(face.Min.Y+face.Max.Y) / 2 / w
	e.xs = append(e.xs, cx)
	e.ys = append(e.ys, cy)
	if n := len(e.xs); n > e.Window {
		e.xs = append(e.xs[:0], e.xs[n-e.Window:]...)
		e.ys = append(e.ys[:0], e.ys[n-e.Window:]...)
	}

	if len(e.xs) >= 2 {
		sx := stat.StdDev(e.xs, nil)
		sy := stat.StdDev(e.ys, nil)
		r.Score = math.Hypot(sx, sy)
	}
	r.Level = e.classify(r.Score)
	return r
}

func (e *Estimator) classify(score float64) Level {
	switch {
	case score < e.CalmBelow:
		return LevelCalm
	case score < e.ElevatedBelow:
		return LevelElevated
	default:
		return LevelHigh
	}
}

func largest(faces []image.Rectangle) (image.Rectangle, bool) {
	var best image.Rectangle
	found := false
	for _, f := range faces {
		if f.Dx() <= 0 || f.Dy() <= 0 {
			continue
		}
		if !found || f.Dx()*f.Dy() > best.Dx()*best.Dy() {
			best = f
			found = true
		}
	}
	return best, found
}
