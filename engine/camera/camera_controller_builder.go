package camera

import "time"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithDuration sets how long the flight to a selected part takes. Non-positive values are ignored.
//
// Parameters:
//   - d: the animation duration
//
// Returns:
//   - CameraControllerOption: functional option to set the duration
func WithDuration(d time.Duration) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if d > 0 {
			cc.duration = d
		}
	}
}

// WithClock replaces the clock used to timestamp the start of an animation.
// Frame timestamps passed to Tick must come from the same clock.
//
// Parameters:
//   - clock: returns the current time
//
// Returns:
//   - CameraControllerOption: functional option to set the clock
func WithClock(clock func() time.Time) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if clock != nil {
			cc.clock = clock
		}
	}
}
