package app

import (
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"cartesian-plane/internal/logging"
)

// HotReloader polls the running binary and reports when it has been
// rebuilt, so a development session can offer a restart.
type HotReloader struct {
	execPath string
	interval time.Duration
	log      logging.Logger

	mu          sync.Mutex
	baseline    time.Time
	stopCh      chan struct{}
	onTick      func()
	onNewBinary func()
}

// NewHotReloader watches the current executable. It returns nil when the
// executable cannot be located.
func NewHotReloader(interval time.Duration, log logging.Logger) *HotReloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	if real, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = real
	}
	return newHotReloader(execPath, interval, log)
}

func newHotReloader(path string, interval time.Duration, log logging.Logger) *HotReloader {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &HotReloader{
		execPath: path,
		interval: interval,
		log:      log,
		baseline: info.ModTime(),
	}
}

// OnTick sets a callback run on every poll, used to persist preferences.
func (h *HotReloader) OnTick(fn func()) {
	h.mu.Lock()
	h.onTick = fn
	h.mu.Unlock()
}

// OnNewBinary sets the callback for a detected rebuild. It runs on the
// watcher goroutine and fires once per Start.
func (h *HotReloader) OnNewBinary(fn func()) {
	h.mu.Lock()
	h.onNewBinary = fn
	h.mu.Unlock()
}

// Start begins polling in the background.
func (h *HotReloader) Start() {
	h.mu.Lock()
	h.stopCh = make(chan struct{})
	stop := h.stopCh
	h.mu.Unlock()
	go h.watch(stop)
}

// Stop ends polling. Calling it twice is harmless.
func (h *HotReloader) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopCh != nil {
		close(h.stopCh)
		h.stopCh = nil
	}
}

func (h *HotReloader) watch(stop <-chan struct{}) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.mu.Lock()
			tick, fire := h.onTick, h.onNewBinary
			h.mu.Unlock()

			if tick != nil {
				tick()
			}
			if h.Changed() {
				h.log.Infof("hot reload: newer binary at %s", h.execPath)
				if fire != nil {
					fire()
				}
				return
			}
		}
	}
}

// Changed reports whether the binary is newer than the baseline.
func (h *HotReloader) Changed() bool {
	info, err := os.Stat(h.execPath)
	if err != nil {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return info.ModTime().After(h.baseline)
}

// ExecPath returns the watched path.
func (h *HotReloader) ExecPath() string { return h.execPath }

// Baseline returns the modification time treated as current.
func (h *HotReloader) Baseline() time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.baseline
}

// ResetBaseline accepts the binary on disk as current, after the user
// declines a restart.
func (h *HotReloader) ResetBaseline() {
	if info, err := os.Stat(h.execPath); err == nil {
		h.mu.Lock()
		h.baseline = info.ModTime()
		h.mu.Unlock()
	}
}

// Restart replaces the process with the rebuilt binary, keeping arguments
// and environment. It does not return on success.
func (h *HotReloader) Restart() error {
	return syscall.Exec(h.execPath, os.Args, os.Environ())
}
