package stress

import (
	"context"
	"errors"
	"time"

	"cartesian-plane/internal/logging"
)

// DefaultInterval is the time between camera samples.
const DefaultInterval = 200 * time.Millisecond

// Sampler captures one frame and detects faces on it.
type Sampler interface {
	Sample() (Sample, error)
	Close() error
}

// Monitor polls a Sampler on its own goroutine, scores each sample and
// publishes the reading to a Slot.
type Monitor struct {
	sampler  Sampler
	est      *Estimator
	slot     *Slot
	rec      *Recorder
	interval time.Duration
	log      logging.Logger

	// OnReading, when set, is called after each published reading.
	OnReading func(Reading)
}

// NewMonitor creates a monitor. rec may be nil to disable recording.
func NewMonitor(s Sampler, slot *Slot, rec *Recorder, interval time.Duration, log logging.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &Monitor{
		sampler:  s,
		est:      NewEstimator(DefaultWindow),
		slot:     slot,
		rec:      rec,
		interval: interval,
		log:      log,
	}
}

// Estimator exposes the estimator for threshold tuning.
func (m *Monitor) Estimator() *Estimator { return m.est }

// Step takes one sample, scores it, records it and publishes it.
func (m *Monitor) Step() (Reading, error) {
	s, err := m.sampler.Sample()
	if err != nil {
		return Reading{}, err
	}
	if s.Taken.IsZero() {
		s.Taken = time.Now()
	}
	r := m.est.Add(s)
	if m.rec != nil {
		if err := m.rec.Record(s, r); err != nil {
			m.log.Warnf("failed to record stress sample: %v", err)
		}
	}
	m.slot.Publish(r)
	if m.OnReading != nil {
		m.OnReading(r)
	}
	return r, nil
}

// Run samples until ctx is cancelled. Sampling errors are logged and the
// loop keeps going. The sampler and recorder are closed on return.
func (m *Monitor) Run(ctx context.Context) error {
	defer m.close()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.log.Infof("stress monitor started, interval %v", m.interval)
	for {
		select {
		case <-ctx.Done():
			m.log.Infof("stress monitor stopped")
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
			r, err := m.Step()
			if err != nil {
				m.log.Warnf("stress sample failed: %v", err)
				continue
			}
			m.log.Debugf("stress reading: faces=%d score=%.4f level=%s", r.Faces, r.Score, r.Level)
		}
	}
}

func (m *Monitor) close() {
	if err := m.sampler.Close(); err != nil {
		m.log.Warnf("failed to close sampler: %v", err)
	}
	if m.rec != nil {
		if err := m.rec.Close(); err != nil {
			m.log.Warnf("failed to close stress log: %v", err)
		}
	}
}
