package camera

import (
	"github.com/Carmen-Shannon/oxy-customizer/common"
)

// OrbitControlsOption is a functional option for configuring OrbitControls.
type OrbitControlsOption func(*orbitControlsImpl)

// WithTarget sets the initial orbit pivot.
//
// Parameters:
//   - target: the pivot point
//
// Returns:
//   - OrbitControlsOption: functional option to set the target
func WithTarget(target common.Vec3) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.target = target
	}
}

// WithDistanceLimits sets the minimum and maximum distance from the target.
//
// Parameters:
//   - minDistance: closest allowed distance
//   - maxDistance: farthest allowed distance
//
// Returns:
//   - OrbitControlsOption: functional option to set the distance limits
func WithDistanceLimits(minDistance, maxDistance float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.minDistance = minDistance
		oc.maxDistance = maxDistance
	}
}

// WithPolarLimits sets the range of the polar angle, in radians from +Y.
//
// Parameters:
//   - minPolar: smallest allowed polar angle
//   - maxPolar: largest allowed polar angle
//
// Returns:
//   - OrbitControlsOption: functional option to set the polar limits
func WithPolarLimits(minPolar, maxPolar float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.minPolar = minPolar
		oc.maxPolar = maxPolar
	}
}

// WithRotateSpeed sets the pointer rotation speed multiplier.
//
// Parameters:
//   - speed: multiplier for rotation input
//
// Returns:
//   - OrbitControlsOption: functional option to set the rotate speed
func WithRotateSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the dolly speed multiplier.
//
// Parameters:
//   - speed: multiplier for zoom input
//
// Returns:
//   - OrbitControlsOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the pan speed multiplier.
//
// Parameters:
//   - speed: multiplier for pan input
//
// Returns:
//   - OrbitControlsOption: functional option to set the pan speed
func WithPanSpeed(speed float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.panSpeed = speed
	}
}

// WithKeyPanSpeed sets how many pixels one arrow key press pans.
//
// Parameters:
//   - pixels: pan distance per key press
//
// Returns:
//   - OrbitControlsOption: functional option to set the key pan speed
func WithKeyPanSpeed(pixels float32) OrbitControlsOption {
	return func(oc *orbitControlsImpl) {
		oc.keyPanSpeed = pixels
	}
}
