package persistence

import "time"

// AsyncSaverOption configures an AsyncSaver.
type AsyncSaverOption func(*asyncSaverImpl)

// WithWorkers sets how many files can be written concurrently. Values below 1 are ignored.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - AsyncSaverOption: the option
func WithWorkers(n int) AsyncSaverOption {
	return func(s *asyncSaverImpl) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithSaveTimeout bounds each write. Non-positive durations are ignored.
//
// Parameters:
//   - d: the timeout
//
// Returns:
//   - AsyncSaverOption: the option
func WithSaveTimeout(d time.Duration) AsyncSaverOption {
	return func(s *asyncSaverImpl) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithErrorHandler sets a function called with every failed write, after it is logged.
//
// Parameters:
//   - fn: the handler, called from a pool worker
//
// Returns:
//   - AsyncSaverOption: the option
func WithErrorHandler(fn func(fileID string, err error)) AsyncSaverOption {
	return func(s *asyncSaverImpl) {
		s.onError = fn
	}
}
