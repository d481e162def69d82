// Package profiler tracks frame rate and memory statistics for the viewer's
// frame loop.
package profiler

import (
	"runtime"
	"time"

	"github.com/duskglow/loupe/common"
)

// Profiler aggregates per-frame timing and reports frame rate plus heap
// statistics to the log at a fixed interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// NewProfiler creates a Profiler reporting once per interval.
//
// Parameters:
//   - interval: how often to log stats (1 second when <= 0)
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
	}
}

// Tick is called once per frame. When the reporting interval has elapsed it
// logs frame rate, live heap, allocation rate and GC count, then resets.
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	common.LogDebug("fps %.1f | heap %.1f MB | alloc %.2f MB/s | gc %d",
		fps, allocMB, allocRateMB, p.memStats.NumGC)

	p.frameCount = 0
	p.lastTime = now
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
