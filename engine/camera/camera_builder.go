package camera

import (
	"github.com/Carmen-Shannon/oxy-customizer/common"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's initial world-space position.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(p common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = p
	}
}

// WithLookAt orients the camera toward target. Apply it after WithPosition and WithUp.
//
// Parameters:
//   - target: world-space point to face
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's orientation
func WithLookAt(target common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.quaternion = common.LookAtQuaternion(c.position, target, c.up)
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - up: up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}
