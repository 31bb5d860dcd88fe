package vision

import (
	"fmt"
	"time"

	"cartesian-plane/internal/stress"

	"gocv.io/x/gocv"
)

// ImageSampler runs face detection on a still image, returning the same
// detections on every call. It stands in for a camera when checking a
// cascade offline.
type ImageSampler struct {
	classifier gocv.CascadeClassifier
	frame      gocv.Mat
	gray       gocv.Mat
	annotate   bool
}

// OpenImageSampler loads the image at path and the cascade at cascadePath.
func OpenImageSampler(path, cascadePath string, annotate bool) (*ImageSampler, error) {
	frame := gocv.IMRead(path, gocv.IMReadColor)
	if frame.Empty() {
		frame.Close()
		return nil, fmt.Errorf("failed to read image %s", path)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		classifier.Close()
		frame.Close()
		return nil, fmt.Errorf("%w: %s", ErrCascade, cascadePath)
	}
	return &ImageSampler{classifier: classifier, frame: frame, gray: gocv.NewMat(), annotate: annotate}, nil
}

// Sample implements stress.Sampler. Annotation is drawn on a copy so the
// boxes do not accumulate.
func (s *ImageSampler) Sample() (stress.Sample, error) {
	frame := s.frame.Clone()
	defer frame.Close()
	return detect(&frame, &s.gray, &s.classifier, s.annotate, time.Now())
}

// Close releases the OpenCV buffers.
func (s *ImageSampler) Close() error {
	s.frame.Close()
	s.gray.Close()
	return s.classifier.Close()
}
