package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-customizer/common"
	"github.com/chewxy/math32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position   common.Vec3
	quaternion common.Quaternion
	up         common.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	worldMatrix          [16]float32
	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera defines the interface for a perspective camera.
// The camera owns its world transform as a position plus an orientation quaternion; the view
// matrix is the inverse of that transform and is recomputed whenever either changes.
// An unrotated camera looks down -Z with +Y up.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// SetPosition moves the camera without changing its orientation.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p common.Vec3)

	// Quaternion returns the camera's orientation.
	//
	// Returns:
	//   - common.Quaternion: the orientation
	Quaternion() common.Quaternion

	// SetQuaternion sets the camera's orientation. q is normalized before use.
	//
	// Parameters:
	//   - q: the orientation
	SetQuaternion(q common.Quaternion)

	// LookAt turns the camera to face target, keeping its up vector.
	//
	// Parameters:
	//   - target: world-space point to face
	LookAt(target common.Vec3)

	// Up returns the camera's reference up vector used by LookAt.
	//
	// Returns:
	//   - common.Vec3: the up vector
	Up() common.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// SetFov sets the vertical field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// WorldMatrix returns the camera's world transform as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the world matrix
	WorldMatrix() [16]float32

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	//
	// Returns:
	//   - [16]float32: the combined view-projection matrix
	ViewProjectionMatrix() [16]float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera at the origin with identity orientation and default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		quaternion: common.IdentityQuaternion(),
		up:         common.WorldUp,
		fov:        75.0 * (math32.Pi / 180.0), // radians
		aspect:     1.0,
		near:       0.1,
		far:        100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(p common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *cameraImpl) Quaternion() common.Quaternion {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.quaternion
}

func (c *cameraImpl) SetQuaternion(q common.Quaternion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quaternion = q.Normalize()
	c.updateMatrices()
}

func (c *cameraImpl) LookAt(target common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quaternion = common.LookAtQuaternion(c.position, target, c.up)
	c.updateMatrices()
}

func (c *cameraImpl) Up() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) WorldMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.worldMatrix
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

// updateMatrices recalculates the world, view, projection and view-projection matrices from the
// camera's transform and perspective settings.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	common.Compose4(c.worldMatrix[:], c.position, c.quaternion)
	common.Invert4(c.viewMatrix[:], c.worldMatrix[:])

	common.Perspective(c.projectionMatrix[:],
		c.fov, c.aspect, c.near, c.far,
	)

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
