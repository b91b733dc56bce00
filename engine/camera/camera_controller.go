package camera

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-customizer/common"
	"github.com/Carmen-Shannon/oxy-customizer/engine/model"
)

// DefaultAnimationDuration is how long the camera takes to fly to a newly selected part.
const DefaultAnimationDuration = 500 * time.Millisecond

// AnimationState is the state of a CameraController.
type AnimationState int

const (
	// StateIdle leaves the camera to the orbit controls.
	StateIdle AnimationState = iota

	// StateAnimating moves the camera toward a part viewpoint; orbit input is disabled.
	StateAnimating
)

func (s AnimationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// SelectionSource notifies about selected-part changes. selection.Store satisfies it.
type SelectionSource interface {
	Subscribe(fn func(selected string)) func()
}

// FrameScheduler requests redraws and runs callbacks before each drawn frame. renderer.Renderer satisfies it.
type FrameScheduler interface {
	Invalidate()
	OnFrame(fn func(now time.Time)) func()
}

type cameraControllerImpl struct {
	mu *sync.Mutex

	camera    Camera
	orbit     OrbitControls
	scheduler FrameScheduler
	parts     map[string]model.Part

	duration time.Duration
	clock    func() time.Time

	state            AnimationState
	startPosition    common.Spherical
	endPosition      common.Spherical
	startOrientation common.Quaternion
	endOrientation   common.Quaternion
	startTime        time.Time

	unsubscribe   func()
	removeFrame   func()
	removeOrbitCb func()
}

// CameraController flies the camera to a part's viewpoint whenever that part is selected.
//
// While idle the orbit controls own the camera and each of their changes requests a redraw. When a
// known part is selected the controller captures the camera's current transform, disables the orbit
// controls and animates toward the part's viewpoint: every frame callback eases the progress,
// interpolates position and orientation, and requests the next frame. Once the duration has
// elapsed the camera is snapped to the viewpoint, the orbit target is reset to the origin and
// the orbit controls are re-enabled.
//
// Deselection and unknown part ids leave the camera where it is. A selection made mid-flight
// restarts the animation from wherever the camera is at that moment.
type CameraController interface {
	// State returns the controller's current state.
	//
	// Returns:
	//   - AnimationState: StateIdle or StateAnimating
	State() AnimationState

	// Duration returns the animation duration.
	//
	// Returns:
	//   - time.Duration: the duration
	Duration() time.Duration

	// Camera returns the controlled camera.
	//
	// Returns:
	//   - Camera: the camera
	Camera() Camera

	// Orbit returns the orbit controls the controller arbitrates.
	//
	// Returns:
	//   - OrbitControls: the orbit controls
	Orbit() OrbitControls

	// Target returns the viewpoint the current or last animation flies to.
	//
	// Returns:
	//   - common.Spherical: the end position
	Target() common.Spherical

	// Tick advances the animation to now. It is registered as a frame callback and is a no-op while idle.
	//
	// Parameters:
	//   - now: the frame timestamp
	Tick(now time.Time)

	// Close detaches the controller from the selection source, the scheduler and the orbit controls.
	// An animation in progress is abandoned and the orbit controls are re-enabled.
	Close()
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController wires a controller between a selection source, a frame scheduler and a camera
// with its orbit controls.
//
// Parameters:
//   - cam: the camera to animate
//   - orbit: the orbit controls moving cam while idle
//   - selection: source of selected-part changes
//   - scheduler: the on-demand renderer
//   - parts: the selectable parts and their viewpoints
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the controller, idle
func NewCameraController(cam Camera, orbit OrbitControls, selection SelectionSource, scheduler FrameScheduler, parts []model.Part, options ...CameraControllerOption) CameraController {
	if cam == nil || orbit == nil || selection == nil || scheduler == nil {
		panic("camera controller requires a camera, orbit controls, a selection source and a scheduler")
	}

	cc := &cameraControllerImpl{
		mu:        &sync.Mutex{},
		camera:    cam,
		orbit:     orbit,
		scheduler: scheduler,
		parts:     make(map[string]model.Part, len(parts)),
		duration:  DefaultAnimationDuration,
		clock:     time.Now,
		state:     StateIdle,
	}
	for _, p := range parts {
		cc.parts[p.ID] = p
	}
	for _, option := range options {
		option(cc)
	}

	cc.removeOrbitCb = orbit.OnChange(scheduler.Invalidate)
	cc.removeFrame = scheduler.OnFrame(cc.Tick)
	cc.unsubscribe = selection.Subscribe(cc.onSelect)
	return cc
}

// onSelect starts an animation toward the selected part's viewpoint.
func (cc *cameraControllerImpl) onSelect(selected string) {
	if selected == "" {
		return
	}
	part, ok := cc.parts[selected]
	if !ok {
		return
	}

	cc.mu.Lock()
	cc.orbit.SetEnabled(false)

	cc.startPosition = common.SphericalFromCartesian(cc.camera.Position())
	cc.startOrientation = cc.camera.Quaternion()
	cc.endPosition = part.Camera.Spherical()
	cc.endOrientation = common.SphericalToQuaternion(cc.endPosition)
	cc.startTime = cc.clock()
	cc.state = StateAnimating
	cc.mu.Unlock()

	cc.scheduler.Invalidate()
}

func (cc *cameraControllerImpl) State() AnimationState {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.state
}

func (cc *cameraControllerImpl) Duration() time.Duration {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.duration
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}

func (cc *cameraControllerImpl) Orbit() OrbitControls {
	return cc.orbit
}

func (cc *cameraControllerImpl) Target() common.Spherical {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.endPosition
}

func (cc *cameraControllerImpl) Tick(now time.Time) {
	cc.mu.Lock()
	if cc.state != StateAnimating {
		cc.mu.Unlock()
		return
	}

	elapsed := now.Sub(cc.startTime)
	if elapsed >= cc.duration {
		cc.camera.SetPosition(cc.endPosition.ToCartesian())
		cc.camera.SetQuaternion(cc.endOrientation)
		cc.state = StateIdle

		cc.orbit.SetTarget(common.Origin)
		cc.orbit.SetEnabled(true)
		cc.mu.Unlock()
		return
	}

	t := common.Ease(float32(elapsed) / float32(cc.duration))
	position := common.LerpSpherical(cc.startPosition, cc.endPosition, t)
	cc.camera.SetPosition(position.ToCartesian())
	cc.camera.SetQuaternion(cc.startOrientation.Slerp(cc.endOrientation, t))
	cc.mu.Unlock()

	// Rendering is on demand, so the animation only continues if it asks for the next frame.
	cc.scheduler.Invalidate()
}

func (cc *cameraControllerImpl) Close() {
	cc.mu.Lock()
	unsubscribe, removeFrame, removeOrbitCb := cc.unsubscribe, cc.removeFrame, cc.removeOrbitCb
	cc.unsubscribe, cc.removeFrame, cc.removeOrbitCb = nil, nil, nil
	wasAnimating := cc.state == StateAnimating
	cc.state = StateIdle
	cc.mu.Unlock()

	for _, fn := range []func(){unsubscribe, removeFrame, removeOrbitCb} {
		if fn != nil {
			fn()
		}
	}
	if wasAnimating {
		cc.orbit.SetTarget(common.Origin)
		cc.orbit.SetEnabled(true)
	}
}
