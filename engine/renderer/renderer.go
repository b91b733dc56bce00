package renderer

import (
	"log"
	"sync"
	"time"
)

type frameCallback struct {
	id uint64
	fn func(now time.Time)
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend            RendererBackend
	pendingPresentMode *PresentMode

	pending    bool
	wake       func()
	clearColor ClearColor
	overlay    func() Overlay
	frameCount uint64

	nextCallbackID uint64
	callbacks      []frameCallback
}

// Renderer draws frames on demand. Nothing is drawn until something calls Invalidate; the host loop
// then calls Frame once per iteration, which is a no-op while no redraw is pending.
//
// Frame callbacks run before the frame is drawn and may call Invalidate to request the following
// frame. This is how animations keep running without a continuous render loop: a callback that
// stops requesting frames stops the animation.
type Renderer interface {
	// Invalidate requests a redraw. Repeated calls before the next Frame collapse into one.
	Invalidate()

	// Pending reports whether a redraw has been requested and not yet drawn.
	//
	// Returns:
	//   - bool: true if the next Frame call will draw
	Pending() bool

	// OnFrame registers a callback run at the start of every drawn frame.
	//
	// Parameters:
	//   - fn: receives the frame timestamp
	//
	// Returns:
	//   - func(): removes the callback; safe to call more than once
	OnFrame(fn func(now time.Time)) func()

	// Frame draws one frame if a redraw is pending: it clears the request, runs the frame callbacks,
	// then drives the backend. A frame the backend fails to begin is logged and dropped.
	//
	// Parameters:
	//   - now: the frame timestamp passed to callbacks
	//
	// Returns:
	//   - bool: true if a frame was drawn
	Frame(now time.Time) bool

	// SetWakeFunc replaces the function called when a redraw is requested while none was pending.
	//
	// Parameters:
	//   - wake: the function to call, or nil
	SetWakeFunc(wake func())

	// ClearColor retrieves the color frames are cleared to.
	//
	// Returns:
	//   - ClearColor: the clear color
	ClearColor() ClearColor

	// SetClearColor sets the color frames are cleared to and requests a redraw if it changed.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c ClearColor)

	// SetOverlay sets the source of the line overlay drawn over each frame and requests a redraw.
	// The source is read after the frame callbacks, so it sees the camera they moved.
	//
	// Parameters:
	//   - source: builds the overlay for the frame being drawn, or nil to draw none
	SetOverlay(source func() Overlay)

	// Resize reconfigures the backend for a new surface size and requests a redraw.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// FrameCount returns the number of frames drawn so far.
	//
	// Returns:
	//   - uint64: the frame count
	FrameCount() uint64

	// Backend retrieves the attached backend, or nil.
	//
	// Returns:
	//   - RendererBackend: the backend
	Backend() RendererBackend
}

var _ Renderer = &renderer{}

// NewRenderer creates an on-demand Renderer. A redraw is pending from the start so the first
// Frame call draws the initial image.
//
// Parameters:
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
func NewRenderer(options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:         &sync.Mutex{},
		pending:    true,
		clearColor: DefaultClearColor,
	}
	for _, opt := range options {
		opt(r)
	}

	if r.backend != nil && r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	return r
}

func (r *renderer) Invalidate() {
	r.mu.Lock()
	wasPending := r.pending
	r.pending = true
	wake := r.wake
	r.mu.Unlock()

	if !wasPending && wake != nil {
		wake()
	}
}

func (r *renderer) Pending() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

func (r *renderer) OnFrame(fn func(now time.Time)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextCallbackID++
	id := r.nextCallbackID
	r.callbacks = append(r.callbacks, frameCallback{id: id, fn: fn})
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, cb := range r.callbacks {
			if cb.id == id {
				r.callbacks = append(r.callbacks[:i:i], r.callbacks[i+1:]...)
				return
			}
		}
	}
}

func (r *renderer) Frame(now time.Time) bool {
	r.mu.Lock()
	if !r.pending {
		r.mu.Unlock()
		return false
	}
	r.pending = false
	callbacks := make([]func(time.Time), 0, len(r.callbacks))
	for _, cb := range r.callbacks {
		callbacks = append(callbacks, cb.fn)
	}
	r.mu.Unlock()

	// Callbacks move the camera, so they run before the clear color and backend are read.
	for _, fn := range callbacks {
		fn(now)
	}

	r.mu.Lock()
	backend := r.backend
	clear := r.clearColor
	overlay := r.overlay
	r.mu.Unlock()

	if backend != nil {
		if err := backend.BeginFrame(clear); err != nil {
			log.Printf("[Renderer] skipped frame: %v", err)
			return false
		}
		if overlay != nil {
			backend.DrawOverlay(overlay())
		}
		backend.EndFrame()
		backend.Present()
	}

	r.mu.Lock()
	r.frameCount++
	r.mu.Unlock()
	return true
}

func (r *renderer) SetWakeFunc(wake func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wake = wake
}

func (r *renderer) ClearColor() ClearColor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) SetClearColor(c ClearColor) {
	r.mu.Lock()
	changed := r.clearColor != c
	r.clearColor = c
	r.mu.Unlock()

	if changed {
		r.Invalidate()
	}
}

func (r *renderer) SetOverlay(source func() Overlay) {
	r.mu.Lock()
	r.overlay = source
	r.mu.Unlock()
	r.Invalidate()
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		// Minimized windows report a zero framebuffer.
		return
	}
	r.mu.Lock()
	backend := r.backend
	r.mu.Unlock()

	if backend != nil {
		backend.ConfigureSurface(width, height)
	}
	r.Invalidate()
}

func (r *renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

func (r *renderer) Backend() RendererBackend {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.backend
}
