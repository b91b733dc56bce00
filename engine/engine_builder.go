package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-customizer/engine/camera"
	"github.com/Carmen-Shannon/oxy-customizer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-customizer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-customizer/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler sets a preconfigured profiler.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window the engine's loop runs in. Without one the engine can only be stepped manually.
//
// Parameters:
//   - w: a pre-configured Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the on-demand renderer frames are drawn with.
//
// Parameters:
//   - r: the renderer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithCamera sets the camera and orbit controls kept in sync with the framebuffer size.
//
// Parameters:
//   - cam: the camera whose aspect follows the framebuffer
//   - orbit: the orbit controls whose viewport follows the framebuffer, or nil
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(cam camera.Camera, orbit camera.OrbitControls) EngineBuilderOption {
	return func(e *engine) {
		e.camera = cam
		e.orbit = orbit
	}
}

// WithClock replaces the clock frame timestamps come from.
//
// Parameters:
//   - clock: returns the current time
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithClock(clock func() time.Time) EngineBuilderOption {
	return func(e *engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}
