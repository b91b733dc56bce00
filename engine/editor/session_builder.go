package editor

import (
	"time"

	"github.com/Carmen-Shannon/oxy-customizer/engine/persistence"
	"github.com/muesli/termenv"
)

// SessionOption configures a Session.
type SessionOption func(*sessionImpl)

// WithSaver replaces the background saver. A custom saver is responsible for reporting its own errors.
//
// Parameters:
//   - saver: the saver
//
// Returns:
//   - SessionOption: the option
func WithSaver(saver persistence.AsyncSaver) SessionOption {
	return func(s *sessionImpl) {
		s.saver = saver
	}
}

// WithAnimationDuration sets how long the camera takes to fly to a selected part.
//
// Parameters:
//   - d: the duration
//
// Returns:
//   - SessionOption: the option
func WithAnimationDuration(d time.Duration) SessionOption {
	return func(s *sessionImpl) {
		if d > 0 {
			s.duration = d
		}
	}
}

// WithClock sets the clock camera animations are timed with.
//
// Parameters:
//   - clock: returns the current time
//
// Returns:
//   - SessionOption: the option
func WithClock(clock func() time.Time) SessionOption {
	return func(s *sessionImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithColorProfile sets the terminal color profile of the selection panel.
//
// Parameters:
//   - profile: the color profile
//
// Returns:
//   - SessionOption: the option
func WithColorProfile(profile termenv.Profile) SessionOption {
	return func(s *sessionImpl) {
		s.profile = profile
	}
}

// WithLoadTimeout bounds loading saved materials when Open's context has no deadline.
//
// Parameters:
//   - d: the timeout
//
// Returns:
//   - SessionOption: the option
func WithLoadTimeout(d time.Duration) SessionOption {
	return func(s *sessionImpl) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

// WithSaveWorkers sets how many files the built-in saver writes concurrently. Ignored with WithSaver.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - SessionOption: the option
func WithSaveWorkers(n int) SessionOption {
	return func(s *sessionImpl) {
		s.saveWorkers = n
	}
}
