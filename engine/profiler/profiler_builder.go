package profiler

import "time"

// ProfilerOption configures a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often statistics are reported. Non-positive values are ignored.
//
// Parameters:
//   - d: the reporting interval
//
// Returns:
//   - ProfilerOption: the option
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if d > 0 {
			p.updateInterval = d
		}
	}
}

// WithClock replaces the clock intervals are measured with.
//
// Parameters:
//   - clock: returns the current time
//
// Returns:
//   - ProfilerOption: the option
func WithClock(clock func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithQuiet stops the profiler from logging; statistics are still returned by Tick.
//
// Returns:
//   - ProfilerOption: the option
func WithQuiet() ProfilerOption {
	return func(p *Profiler) {
		p.quiet = true
	}
}
