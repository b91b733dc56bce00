package renderer

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithBackend attaches the GPU backend that draws each frame.
// Without a backend Frame only runs the frame callbacks.
//
// Parameters:
//   - backend: the RendererBackend to draw with
//
// Returns:
//   - RendererBuilderOption: a function that applies the backend option to a renderer
func WithBackend(backend RendererBackend) RendererBuilderOption {
	return func(r *renderer) {
		r.backend = backend
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithClearColor sets the initial clear color.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c ClearColor) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithWakeFunc sets the function called when a redraw is requested while none was pending.
// Hosts that block waiting for input use it to unblock their loop.
//
// Parameters:
//   - wake: the function to call, must be safe to call from any goroutine
//
// Returns:
//   - RendererBuilderOption: a function that applies the wake option to a renderer
func WithWakeFunc(wake func()) RendererBuilderOption {
	return func(r *renderer) {
		r.wake = wake
	}
}
