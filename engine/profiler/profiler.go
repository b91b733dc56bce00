package profiler

import (
	"log"
	"runtime"
	"time"
)

// Stats is one reporting interval of the profiler.
type Stats struct {
	// Redraws is the number of frames drawn per second.
	Redraws float64

	// Wakeups is the number of loop iterations per second, drawn or not. With on-demand rendering
	// an idle editor should show close to zero of both.
	Wakeups float64

	HeapMB      float64
	AllocRateMB float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
	SysMB       float64
}

// Profiler tracks redraw rate and memory statistics of the on-demand loop.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	wakeCount      int
	lastTime       time.Time
	updateInterval time.Duration
	clock          func() time.Time
	quiet          bool
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler. Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		clock:          time.Now,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.clock()
	return p
}

// Tick should be called once per loop iteration.
// When the update interval has elapsed it computes and logs the interval's statistics.
//
// Parameters:
//   - drew: whether this iteration drew a frame
//
// Returns:
//   - Stats: the interval's statistics, valid when ok is true
//   - bool: true if an interval ended on this tick
func (p *Profiler) Tick(drew bool) (Stats, bool) {
	p.wakeCount++
	if drew {
		p.frameCount++
	}
	currentTime := p.clock()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return Stats{}, false
	}

	seconds := elapsed.Seconds()
	stats := Stats{
		Redraws: float64(p.frameCount) / seconds,
		Wakeups: float64(p.wakeCount) / seconds,
	}

	runtime.ReadMemStats(&p.memStats)
	stats.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024
	stats.SysMB = float64(p.memStats.Sys) / 1024 / 1024
	stats.AllocRateMB = float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds

	gcCount := p.memStats.NumGC
	stats.GCCount = gcCount
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		stats.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			stats.MaxPauseUs = max(stats.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	if !p.quiet {
		log.Printf("[Profiler] Redraws: %.2f/s | Wakeups: %.2f/s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			stats.Redraws, stats.Wakeups, stats.HeapMB, stats.AllocRateMB, stats.GCCount, stats.LastPauseUs, stats.MaxPauseUs, stats.SysMB)
	}

	p.frameCount = 0
	p.wakeCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return stats, true
}
