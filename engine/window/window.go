package window

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides platform windowing and input event handling for an on-demand renderer.
//
// The message loop blocks while nothing needs drawing and only polls while a redraw is pending, so an
// idle editor costs no CPU. Other goroutines can nudge a blocked loop with Wake.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration, after events are handled.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetPendingCheck sets the function the loop asks whether a redraw is pending.
	// While it returns false the loop waits for events instead of polling.
	//
	// Parameters:
	//   - pending: reports whether work is waiting (or nil to always wait)
	SetPendingCheck(pending func() bool)

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving the vertical scroll offset (positive = away from the user)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode int))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode int))

	// SetMouseButtonCallback sets the callback for mouse button presses and releases.
	//
	// Parameters:
	//   - callback: function receiving the button (see common.MouseButton*), whether it was pressed and
	//     the cursor position in pixels
	SetMouseButtonCallback(callback func(button int, pressed bool, x, y float32))

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor position in pixels
	SetMouseMoveCallback(callback func(x, y float32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Wake unblocks a message loop waiting for events. Safe to call from any goroutine.
	Wake()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop until the window is closed.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow holds window configuration, platform state and event callbacks.
type engineWindow struct {
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height track the framebuffer, which differs from the window size on high-DPI displays.
	width  int
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate      func()
	pending       func() bool
	onResize      func(width, height int)
	onScroll      func(delta float32)
	onKeyDown     func(keyCode int)
	onKeyUp       func(keyCode int)
	onMouseButton func(button int, pressed bool, x, y float32)
	onMouseMove   func(x, y float32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window, already shown
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Oxy Customizer",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  600,
		minHeight: 400,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetPendingCheck(pending func() bool) {
	w.pending = pending
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode int)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode int)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(button int, pressed bool, x, y float32)) {
	w.onMouseButton = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Wake() {
	platformWake(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		wait := w.pending == nil || !w.pending()
		if succ := platformProcessMessages(w, wait); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
