package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-customizer/common"
	"github.com/chewxy/math32"
)

// dragMode is the kind of pointer drag in progress.
type dragMode int

const (
	dragNone dragMode = iota
	dragRotate
	dragPan
	dragDolly
)

type orbitListener struct {
	id uint64
	fn func()
}

// orbitControlsImpl is the implementation of OrbitControls.
// Each operation re-reads the camera, so the camera may be moved by other code between calls.
type orbitControlsImpl struct {
	mu     *sync.Mutex
	camera Camera

	enabled bool
	target  common.Vec3

	// Spherical offset of the camera from target, refreshed from the camera by syncLocked.
	radius  float32
	azimuth float32
	polar   float32

	// Orbit constraints
	minDistance float32
	maxDistance float32
	minPolar    float32
	maxPolar    float32

	// Input speeds
	rotateSpeed float32
	zoomSpeed   float32
	panSpeed    float32
	keyPanSpeed float32

	viewportWidth  float32
	viewportHeight float32

	drag       dragMode
	lastX      float32
	lastY      float32
	listenerID uint64
	listeners  []orbitListener
}

// OrbitControls lets a user rotate, dolly and pan a Camera around a target point.
//
// Rotation and dolly move the camera over a sphere centred on the target; panning moves the camera
// and target together along the camera's right and up axes. Disabled controls ignore all input.
// Every change that moves the camera notifies the OnChange listeners, which run after the controls'
// lock has been released.
type OrbitControls interface {
	// Enabled reports whether the controls accept input.
	//
	// Returns:
	//   - bool: true if input is applied
	Enabled() bool

	// SetEnabled turns input handling on or off. Disabling cancels any drag in progress.
	//
	// Parameters:
	//   - enabled: whether input is applied
	SetEnabled(enabled bool)

	// Target returns the orbit pivot.
	//
	// Returns:
	//   - common.Vec3: the pivot point
	Target() common.Vec3

	// SetTarget moves the orbit pivot without moving the camera and re-derives the orbit state from
	// the camera's current position.
	//
	// Parameters:
	//   - target: the new pivot point
	SetTarget(target common.Vec3)

	// Sync re-derives radius, azimuth and polar angle from the camera's current position.
	// The camera is not moved.
	Sync()

	// Radius returns the camera's distance from the target.
	//
	// Returns:
	//   - float32: the distance
	Radius() float32

	// Azimuth returns the camera's angle around +Y relative to the target, measured from +Z.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Polar returns the camera's angle from +Y relative to the target.
	//
	// Returns:
	//   - float32: polar angle in radians
	Polar() float32

	// Rotate orbits the camera around the target. The polar angle is clamped to the configured range.
	//
	// Parameters:
	//   - dAzimuth: change of azimuth in radians
	//   - dPolar: change of polar angle in radians
	Rotate(dAzimuth, dPolar float32)

	// Dolly scales the camera's distance from the target, clamped to the configured range.
	// A scale below 1 moves the camera closer.
	//
	// Parameters:
	//   - scale: distance multiplier, must be > 0
	Dolly(scale float32)

	// Pan moves the camera and target together by a screen-space offset in pixels.
	// The world distance covered scales with the camera's distance from the target.
	//
	// Parameters:
	//   - dx: horizontal offset, positive moves the scene right
	//   - dy: vertical offset, positive moves the scene down
	Pan(dx, dy float32)

	// SetViewport sets the viewport size used to convert pointer movement to angles and distances.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	SetViewport(width, height int)

	// PointerDown starts a drag: the left button rotates, the right button pans and the middle
	// button dollies.
	//
	// Parameters:
	//   - button: one of common.MouseButtonLeft, MouseButtonRight or MouseButtonMiddle
	//   - x, y: pointer position in pixels
	PointerDown(button int, x, y float32)

	// PointerMove continues the current drag, if any.
	//
	// Parameters:
	//   - x, y: pointer position in pixels
	PointerMove(x, y float32)

	// PointerUp ends the current drag.
	PointerUp()

	// Wheel dollies the camera. Positive delta (scrolling up) moves closer.
	//
	// Parameters:
	//   - delta: wheel movement in notches
	Wheel(delta float32)

	// KeyDown pans with the arrow keys.
	//
	// Parameters:
	//   - keyCode: a key code from the common package
	//
	// Returns:
	//   - bool: true if the key was handled
	KeyDown(keyCode int) bool

	// OnChange registers a listener called after every change that moves the camera.
	//
	// Parameters:
	//   - fn: the listener
	//
	// Returns:
	//   - func(): removes the listener; safe to call more than once
	OnChange(fn func()) func()
}

var _ OrbitControls = &orbitControlsImpl{}

// NewOrbitControls creates orbit controls driving camera around the origin.
// The controls start enabled, with state derived from the camera's current position.
//
// Parameters:
//   - camera: the camera to move
//   - options: functional options to configure the controls
//
// Returns:
//   - OrbitControls: the newly created controls
func NewOrbitControls(camera Camera, options ...OrbitControlsOption) OrbitControls {
	if camera == nil {
		panic("orbit controls require a camera")
	}
	oc := &orbitControlsImpl{
		mu:      &sync.Mutex{},
		camera:  camera,
		enabled: true,

		minDistance: 0,
		maxDistance: math32.Inf(1),
		minPolar:    0,
		maxPolar:    math32.Pi,

		rotateSpeed: 1.0,
		zoomSpeed:   1.0,
		panSpeed:    1.0,
		keyPanSpeed: 7.0,

		viewportWidth:  1280,
		viewportHeight: 720,
	}
	for _, option := range options {
		option(oc)
	}

	oc.syncLocked()
	return oc
}

// --- internal helpers ---

// syncLocked re-reads the camera position into the spherical orbit state.
// Caller must hold the mutex.
func (oc *orbitControlsImpl) syncLocked() {
	s := common.SphericalFromCartesian(oc.camera.Position().Sub(oc.target))
	oc.radius = s.Radius
	oc.azimuth = s.Theta
	oc.polar = s.Phi
}

// applyLocked places the camera at the current spherical offset from target, facing target.
// Caller must hold the mutex.
func (oc *orbitControlsImpl) applyLocked() {
	s := common.Spherical{Radius: oc.radius, Phi: oc.polar, Theta: oc.azimuth}.MakeSafe()
	oc.polar = s.Phi
	oc.camera.SetPosition(oc.target.Add(s.ToCartesian()))
	oc.camera.LookAt(oc.target)
}

// listenersLocked snapshots the change listeners so they can run without the lock.
// Caller must hold the mutex.
func (oc *orbitControlsImpl) listenersLocked() []func() {
	out := make([]func(), 0, len(oc.listeners))
	for _, l := range oc.listeners {
		out = append(out, l.fn)
	}
	return out
}

func notifyAll(listeners []func()) {
	for _, fn := range listeners {
		fn()
	}
}

// panLocked shifts target and camera by a pixel offset along the camera's right and up axes.
// Caller must hold the mutex.
func (oc *orbitControlsImpl) panLocked(dx, dy float32) {
	oc.syncLocked()

	// Height of the view frustum at the target distance, in world units.
	targetDistance := oc.radius * math32.Tan(oc.camera.Fov()/2)
	scale := 2 * targetDistance / oc.viewportHeight * oc.panSpeed

	q := oc.camera.Quaternion()
	right := q.RotateVec3(common.Vec3{X: 1})
	up := q.RotateVec3(common.Vec3{Y: 1})
	offset := right.Scale(-dx * scale).Add(up.Scale(dy * scale))

	oc.target = oc.target.Add(offset)
	oc.camera.SetPosition(oc.camera.Position().Add(offset))
}

// rotateLocked applies an angle change and moves the camera.
// Caller must hold the mutex.
func (oc *orbitControlsImpl) rotateLocked(dAzimuth, dPolar float32) {
	oc.syncLocked()
	oc.azimuth += dAzimuth
	oc.polar = common.Clamp(oc.polar+dPolar, oc.minPolar, oc.maxPolar)
	oc.applyLocked()
}

// dollyLocked scales the radius and moves the camera.
// Caller must hold the mutex.
func (oc *orbitControlsImpl) dollyLocked(scale float32) {
	oc.syncLocked()
	oc.radius = common.Clamp(oc.radius*scale, oc.minDistance, oc.maxDistance)
	oc.applyLocked()
}

// zoomScale is the dolly factor for one wheel notch or one pixel step of a middle drag.
// Caller must hold the mutex.
func (oc *orbitControlsImpl) zoomScale() float32 {
	return math32.Pow(0.95, oc.zoomSpeed)
}

// --- OrbitControls implementation ---

func (oc *orbitControlsImpl) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControlsImpl) SetEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = enabled
	if !enabled {
		oc.drag = dragNone
	}
}

func (oc *orbitControlsImpl) Target() common.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControlsImpl) SetTarget(target common.Vec3) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = target
	oc.syncLocked()
}

func (oc *orbitControlsImpl) Sync() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.syncLocked()
}

func (oc *orbitControlsImpl) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitControlsImpl) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitControlsImpl) Polar() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.polar
}

func (oc *orbitControlsImpl) Rotate(dAzimuth, dPolar float32) {
	oc.mu.Lock()
	if !oc.enabled {
		oc.mu.Unlock()
		return
	}
	oc.rotateLocked(dAzimuth, dPolar)
	listeners := oc.listenersLocked()
	oc.mu.Unlock()

	notifyAll(listeners)
}

func (oc *orbitControlsImpl) Dolly(scale float32) {
	if !(scale > 0) {
		return
	}
	oc.mu.Lock()
	if !oc.enabled {
		oc.mu.Unlock()
		return
	}
	oc.dollyLocked(scale)
	listeners := oc.listenersLocked()
	oc.mu.Unlock()

	notifyAll(listeners)
}

func (oc *orbitControlsImpl) Pan(dx, dy float32) {
	oc.mu.Lock()
	if !oc.enabled {
		oc.mu.Unlock()
		return
	}
	oc.panLocked(dx, dy)
	listeners := oc.listenersLocked()
	oc.mu.Unlock()

	notifyAll(listeners)
}

func (oc *orbitControlsImpl) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.viewportWidth = float32(width)
	oc.viewportHeight = float32(height)
}

func (oc *orbitControlsImpl) PointerDown(button int, x, y float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	switch button {
	case common.MouseButtonLeft:
		oc.drag = dragRotate
	case common.MouseButtonRight:
		oc.drag = dragPan
	case common.MouseButtonMiddle:
		oc.drag = dragDolly
	default:
		return
	}
	oc.lastX, oc.lastY = x, y
}

func (oc *orbitControlsImpl) PointerMove(x, y float32) {
	oc.mu.Lock()
	if !oc.enabled || oc.drag == dragNone {
		oc.mu.Unlock()
		return
	}
	dx, dy := x-oc.lastX, y-oc.lastY
	oc.lastX, oc.lastY = x, y
	if dx == 0 && dy == 0 {
		oc.mu.Unlock()
		return
	}

	switch oc.drag {
	case dragRotate:
		// A drag across the full viewport height is one full turn.
		perPixel := 2 * math32.Pi / oc.viewportHeight * oc.rotateSpeed
		oc.rotateLocked(-dx*perPixel, -dy*perPixel)
	case dragPan:
		oc.panLocked(dx, dy)
	case dragDolly:
		switch {
		case dy > 0:
			oc.dollyLocked(1 / oc.zoomScale())
		case dy < 0:
			oc.dollyLocked(oc.zoomScale())
		default:
			oc.mu.Unlock()
			return
		}
	}
	listeners := oc.listenersLocked()
	oc.mu.Unlock()

	notifyAll(listeners)
}

func (oc *orbitControlsImpl) PointerUp() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.drag = dragNone
}

func (oc *orbitControlsImpl) Wheel(delta float32) {
	oc.mu.Lock()
	if !oc.enabled || delta == 0 {
		oc.mu.Unlock()
		return
	}
	if delta > 0 {
		oc.dollyLocked(oc.zoomScale())
	} else {
		oc.dollyLocked(1 / oc.zoomScale())
	}
	listeners := oc.listenersLocked()
	oc.mu.Unlock()

	notifyAll(listeners)
}

func (oc *orbitControlsImpl) KeyDown(keyCode int) bool {
	var dx, dy float32
	switch keyCode {
	case common.KeyUp:
		dy = 1
	case common.KeyDown:
		dy = -1
	case common.KeyLeft:
		dx = 1
	case common.KeyRight:
		dx = -1
	default:
		return false
	}

	oc.mu.Lock()
	if !oc.enabled {
		oc.mu.Unlock()
		return false
	}
	oc.panLocked(dx*oc.keyPanSpeed, dy*oc.keyPanSpeed)
	listeners := oc.listenersLocked()
	oc.mu.Unlock()

	notifyAll(listeners)
	return true
}

func (oc *orbitControlsImpl) OnChange(fn func()) func() {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.listenerID++
	id := oc.listenerID
	oc.listeners = append(oc.listeners, orbitListener{id: id, fn: fn})
	return func() {
		oc.mu.Lock()
		defer oc.mu.Unlock()
		for i, l := range oc.listeners {
			if l.id == id {
				oc.listeners = append(oc.listeners[:i:i], oc.listeners[i+1:]...)
				return
			}
		}
	}
}
