package app

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHotReloaderDetectsRebuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0o755))
	old := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, old, old))

	h := newHotReloader(path, 5*time.Millisecond, nil)
	require.NotNil(t, h)
	assert.False(t, h.Changed())

	var ticks, fired atomic.Int32
	h.OnTick(func() { ticks.Add(1) })
	h.OnNewBinary(func() { fired.Add(1) })
	h.Start()
	defer h.Stop()

	require.NoError(t, os.Chtimes(path, time.Now(), time.Now()))
	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
	assert.Positive(t, ticks.Load())

	assert.True(t, h.Changed())
	h.ResetBaseline()
	assert.False(t, h.Changed())
}

func TestNewHotReloaderMissingFile(t *testing.T) {
	assert.Nil(t, newHotReloader(filepath.Join(t.TempDir(), "nope"), time.Second, nil))
}
