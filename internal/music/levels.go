package music

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
)

// levelTap wraps a beep.Streamer and records the last N samples into a ring
// buffer so the player can show how loud the music is right now.
type levelTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

func newLevelTap(src beep.Streamer, ringSize int) *levelTap {
	return &levelTap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *levelTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		for i := 0; i < n; i++ {
			t.buffer[t.nextIndex] = samples[i]
			t.nextIndex++
			if t.nextIndex >= len(t.buffer) {
				t.nextIndex = 0
			}
		}
		t.mu.Unlock()
	}
	return n, ok
}

func (t *levelTap) Err() error { return t.Source.Err() }

// snapshot returns up to the last n samples, oldest first.
func (t *levelTap) snapshot(n int) [][2]float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n = min(n, len(t.buffer))
	out := make([][2]float64, n)
	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := range out {
		out[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
	return out
}

// bandLevels splits samples into n equal bands and returns the compressed
// RMS of each, blended into prev with the given smoothing.
func bandLevels(prev []float64, samples [][2]float64, smoothing float64) []float64 {
	n := len(prev)
	if n == 0 || len(samples) == 0 {
		return prev
	}
	size := max(1, len(samples)/n)
	for i := range prev {
		start := i * size
		if start >= len(samples) {
			break
		}
		end := min(start+size, len(samples))

		var sum float64
		for _, s := range samples[start:end] {
			mono := (s[0] + s[1]) * 0.5
			sum += mono * mono
		}
		rms := math.Sqrt(sum / float64(end-start))
		prev[i] = smoothing*prev[i] + (1-smoothing)*math.Pow(rms, 0.3)
	}
	return prev
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
