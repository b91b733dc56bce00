package engine

import (
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-customizer/engine/camera"
	"github.com/Carmen-Shannon/oxy-customizer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-customizer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-customizer/engine/window"
)

// engine implements the Engine interface.
// Everything runs on the window thread; frames are drawn only when the renderer has been invalidated.
type engine struct {
	window   window.Window
	renderer renderer.Renderer
	camera   camera.Camera
	orbit    camera.OrbitControls

	profiler         *profiler.Profiler
	profilingEnabled bool

	clock         func() time.Time
	frameCallback func(drew bool)

	quitOnce sync.Once
}

// Engine is the main entry point for the engine.
// It owns the on-demand loop: the window sleeps until input or an invalidation arrives, then the
// renderer draws a frame if one was requested.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when running headless
	Window() window.Window

	// Renderer returns the on-demand renderer.
	//
	// Returns:
	//   - renderer.Renderer: the renderer
	Renderer() renderer.Renderer

	// EnableProfiler enables redraw-rate profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables profiling output.
	DisableProfiler()

	// SetFrameCallback registers the function called after each loop iteration.
	//
	// Parameters:
	//   - callback: receives whether a frame was drawn
	SetFrameCallback(callback func(drew bool))

	// Step runs one loop iteration: draws a frame if one is pending and runs the frame callback.
	//
	// Returns:
	//   - bool: true if a frame was drawn
	Step() bool

	// Resize reconfigures the renderer, the camera aspect and the orbit viewport for a new framebuffer size.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)

	// Run starts the main loop (blocks until the window closes).
	Run()

	// Quit asks the loop to stop. Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// A renderer without a backend is created when none is given.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		clock: time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.renderer == nil {
		e.renderer = renderer.NewRenderer()
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithClock(e.clock))
	}

	if e.window != nil {
		e.window.SetResizeCallback(e.Resize)
		e.window.SetPendingCheck(e.renderer.Pending)
		e.window.SetUpdateCallback(func() { e.Step() })
		e.renderer.SetWakeFunc(e.window.Wake)
		e.Resize(e.window.Width(), e.window.Height())
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Run() {
	if e.window == nil {
		log.Printf("[Engine] no window to run")
		return
	}
	e.window.ProcessMessages()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

func (e *engine) Step() bool {
	drew := e.renderer.Frame(e.clock())

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(drew)
	}
	if e.frameCallback != nil {
		e.frameCallback(drew)
	}
	return drew
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.renderer.Resize(width, height)
	if e.camera != nil {
		e.camera.SetAspect(float32(width) / float32(height))
	}
	if e.orbit != nil {
		e.orbit.SetViewport(width, height)
	}
}

// EnableProfiler enables redraw-rate profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetFrameCallback registers the function called after each loop iteration.
func (e *engine) SetFrameCallback(callback func(drew bool)) {
	e.frameCallback = callback
}
