package renderer

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ClearColor is the linear RGBA color a frame starts from.
type ClearColor struct {
	R, G, B, A float64
}

// DefaultClearColor is the background used before any part is selected.
var DefaultClearColor = ClearColor{R: 0.1, G: 0.1, B: 0.1, A: 1.0}

// RendererBackend is the GPU API behind a Renderer. A frame is BeginFrame, EndFrame, Present.
type RendererBackend interface {
	// ConfigureSurface (re)creates the swapchain for a surface size in pixels.
	//
	// Parameters:
	//   - width: the surface width in pixels
	//   - height: the surface height in pixels
	ConfigureSurface(width, height int)

	// SetPresentMode sets the surface present mode. A call to ConfigureSurface is required
	// for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the swapchain texture and begins the main render pass, cleared to clear.
	//
	// Parameters:
	//   - clear: the color the frame is cleared to
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame(clear ClearColor) error

	// DrawOverlay draws line geometry into the current render pass. It is called between
	// BeginFrame and EndFrame, at most once per frame.
	//
	// Parameters:
	//   - overlay: the lines and the view-projection matrix that places them
	DrawOverlay(overlay Overlay)

	// EndFrame ends the current render pass and submits the command buffer.
	EndFrame()

	// Present presents the surface and releases the swapchain texture.
	Present()

	// Release frees the GPU objects held by the backend.
	Release()
}
