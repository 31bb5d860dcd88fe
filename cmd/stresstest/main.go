// Command stresstest runs the stress monitor headless and prints readings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"cartesian-plane/internal/logging"
	"cartesian-plane/internal/stress"
	"cartesian-plane/internal/vision"
)

func main() {
	device := flag.Int("device", 0, "Camera device index")
	imagePath := flag.String("image", "", "Use a still image instead of the camera")
	cascade := flag.String("cascade", vision.DefaultCascade, "Haar cascade XML for face detection")
	duration := flag.Duration("duration", 10*time.Second, "How long to sample")
	interval := flag.Duration("interval", stress.DefaultInterval, "Time between samples")
	out := flag.String("out", "", "Directory for stress.csv (empty = no log)")
	frames := flag.Bool("frames", false, "Also save annotated frames as TIFF")
	calm := flag.Float64("calm", stress.DefaultCalmBelow, "Scores below this are calm")
	elevated := flag.Float64("elevated", stress.DefaultElevatedBelow, "Scores below this are elevated, above are high")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := logging.New("stresstest", *debug)

	var sampler stress.Sampler
	var err error
	if *imagePath != "" {
		sampler, err = vision.OpenImageSampler(*imagePath, *cascade, *frames)
	} else {
		var cam *vision.FaceSampler
		cam, err = vision.OpenFaceSampler(*device, *cascade, *frames)
		if err == nil {
			size := cam.FrameSize()
			fmt.Printf("Camera %d: %dx%d\n", *device, size.X, size.Y)
			sampler = cam
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open sampler: %v\n", err)
		os.Exit(1)
	}

	var rec *stress.Recorder
	if *out != "" {
		rec, err = stress.NewRecorder(*out, *frames)
		if err != nil {
			sampler.Close()
			fmt.Fprintf(os.Stderr, "Failed to open stress log: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Logging to %s\n", rec.Dir())
	}

	slot := stress.NewSlot()
	mon := stress.NewMonitor(sampler, slot, rec, *interval, logger)
	est := mon.Estimator()
	est.CalmBelow, est.ElevatedBelow = *calm, *elevated

	counts := make(map[stress.Level]int)
	var n int
	mon.OnReading = func(r stress.Reading) {
		n++
		counts[r.Level]++
		fmt.Printf("%s  faces=%d  score=%.4f  %s\n", r.Taken.Format("15:04:05.000"), r.Faces, r.Score, r.Level)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, stop := context.WithTimeout(ctx, *duration)
	defer stop()

	fmt.Printf("Sampling every %v for %v...\n", *interval, *duration)
	if err := mon.Run(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(os.Stderr, "Monitor failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%d samples\n", n)
	for _, level := range []stress.Level{stress.LevelNoFace, stress.LevelCalm, stress.LevelElevated, stress.LevelHigh} {
		fmt.Printf("  %-10s %d\n", level, counts[level])
	}
}
