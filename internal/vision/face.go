// Package vision captures webcam frames and detects faces with OpenCV.
package vision

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"cartesian-plane/internal/stress"

	"gocv.io/x/gocv"
)

var (
	// ErrCamera is returned when the capture device cannot be opened or read.
	ErrCamera = errors.New("camera unavailable")
	// ErrCascade is returned when the Haar cascade file cannot be loaded.
	ErrCascade = errors.New("failed to load face cascade")
)

// DefaultCascade is the cascade file name shipped with OpenCV.
const DefaultCascade = "haarcascade_frontalface_default.xml"

var boxColor = color.RGBA{R: 0, G: 220, B: 90, A: 255}

// FaceSampler reads frames from a capture device and runs a Haar cascade
// over them. It implements stress.Sampler.
type FaceSampler struct {
	mu         sync.Mutex
	cam        *gocv.VideoCapture
	classifier gocv.CascadeClassifier
	frame      gocv.Mat
	gray       gocv.Mat
	annotate   bool
	closed     bool
}

// OpenFaceSampler opens device and loads the cascade at cascadePath.
// With annotate set, detections are drawn onto the returned frame.
func OpenFaceSampler(device int, cascadePath string, annotate bool) (*FaceSampler, error) {
	cam, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %v", ErrCamera, device, err)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		classifier.Close()
		cam.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascade, cascadePath)
	}

	return &FaceSampler{
		cam:        cam,
		classifier: classifier,
		frame:      gocv.NewMat(),
		gray:       gocv.NewMat(),
		annotate:   annotate,
	}, nil
}

// Sample grabs one frame and returns the detected faces.
func (s *FaceSampler) Sample() (stress.Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return stress.Sample{}, fmt.Errorf("%w: sampler closed", ErrCamera)
	}
	if ok := s.cam.Read(&s.frame); !ok || s.frame.Empty() {
		return stress.Sample{}, fmt.Errorf("%w: empty frame", ErrCamera)
	}
	return detect(&s.frame, &s.gray, &s.classifier, s.annotate, time.Now())
}

// detect runs the cascade over frame, using gray as scratch space.
func detect(frame, gray *gocv.Mat, classifier *gocv.CascadeClassifier, annotate bool, taken time.Time) (stress.Sample, error) {
	gocv.CvtColor(*frame, gray, gocv.ColorBGRToGray)
	gocv.EqualizeHist(*gray, gray)
	faces := classifier.DetectMultiScale(*gray)

	if annotate {
		for _, r := range faces {
			gocv.Rectangle(frame, r, boxColor, 2)
		}
	}

	img, err := frame.ToImage()
	if err != nil {
		return stress.Sample{}, fmt.Errorf("failed to convert frame: %w", err)
	}
	return stress.Sample{Taken: taken, Frame: img, Faces: faces}, nil
}

// Close releases the device and OpenCV buffers. It is safe to call twice.
func (s *FaceSampler) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.frame.Close()
	s.gray.Close()
	s.classifier.Close()
	return s.cam.Close()
}

// FrameSize reports the capture resolution.
func (s *FaceSampler) FrameSize() image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	w := s.cam.Get(gocv.VideoCaptureFrameWidth)
	h := s.cam.Get(gocv.VideoCaptureFrameHeight)
	return image.Pt(int(w), int(h))
}
