package main

import (
	"context"
	"fmt"
	"sync"

	"cartesian-plane/internal/logging"
	"cartesian-plane/internal/stress"
	"cartesian-plane/internal/vision"
	"cartesian-plane/ui/prefs"
)

// cameraController starts and stops the stress monitor on demand.
type cameraController struct {
	parent   context.Context
	settings prefs.Settings
	slot     *stress.Slot
	log      logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func newCameraController(ctx context.Context, s prefs.Settings, slot *stress.Slot, log logging.Logger) *cameraController {
	return &cameraController{parent: ctx, settings: s, slot: slot, log: log}
}

// Toggle starts the monitor when enabled is true and stops it otherwise.
func (c *cameraController) Toggle(enabled bool) error {
	if !enabled {
		c.Stop()
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return nil
	}

	sampler, err := vision.OpenFaceSampler(c.settings.CameraDevice, c.settings.CascadePath, c.settings.SaveFrames)
	if err != nil {
		return fmt.Errorf("failed to start stress camera: %w", err)
	}
	rec, err := stress.NewRecorder(c.settings.OutputDir, c.settings.SaveFrames)
	if err != nil {
		sampler.Close()
		return fmt.Errorf("failed to open stress log: %w", err)
	}

	mon := stress.NewMonitor(sampler, c.slot, rec, c.settings.CameraInterval, c.log)
	ctx, cancel := context.WithCancel(c.parent)
	done := make(chan struct{})
	c.cancel, c.done = cancel, done

	size := sampler.FrameSize()
	c.log.Infof("stress camera on device %d (%dx%d), logging to %s", c.settings.CameraDevice, size.X, size.Y, rec.Dir())
	go func() {
		defer close(done)
		if err := mon.Run(ctx); err != nil {
			c.log.Warnf("stress monitor: %v", err)
		}
	}()
	return nil
}

// Stop cancels the monitor and waits for it to release the camera.
func (c *cameraController) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
