package wgpu_backend

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-customizer/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

type wgpuBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	configured    bool
	presentMode   wgpu.PresentMode // defaults to PresentModeFifo (VSync)

	forceFallbackAdapter bool

	// Overlay line pipeline, built once the surface format is known.
	overlayShader         *wgpu.ShaderModule
	overlayBindLayout     *wgpu.BindGroupLayout
	overlayPipelineLayout *wgpu.PipelineLayout
	overlayPipeline       *wgpu.RenderPipeline
	overlayUniform        *wgpu.Buffer
	overlayBindGroup      *wgpu.BindGroup
	overlayVertices       *wgpu.Buffer
	overlayCapacity       uint64

	// Frame state between BeginFrame and Present.
	frameEncoder *wgpu.CommandEncoder
	framePass    *wgpu.RenderPassEncoder
	frameSurface *wgpu.Texture
	frameView    *wgpu.TextureView
}

// BackendBuilderOption is a functional option applied to the WebGPU backend during construction.
type BackendBuilderOption func(*wgpuBackendImpl)

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - BackendBuilderOption: a function that applies the option to the backend
func WithForceSoftwareRenderer(force bool) BackendBuilderOption {
	return func(b *wgpuBackendImpl) {
		b.forceFallbackAdapter = force
	}
}

var _ renderer.RendererBackend = &wgpuBackendImpl{}

// NewBackend creates a WebGPU RendererBackend drawing into the surface described by surfaceDescriptor.
// The calling goroutine is locked to its OS thread, as the surface requires.
//
// Parameters:
//   - surfaceDescriptor: the platform-specific surface descriptor, typically from Window.SurfaceDescriptor
//   - options: variadic list of BackendBuilderOption functions
//
// Returns:
//   - renderer.RendererBackend: the backend, surface not yet configured
//   - error: an error if no adapter or device could be acquired
func NewBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, options ...BackendBuilderOption) (renderer.RendererBackend, error) {
	if surfaceDescriptor == nil {
		return nil, fmt.Errorf("wgpu backend: nil surface descriptor")
	}
	runtime.LockOSThread()

	b := &wgpuBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
	}
	for _, opt := range options {
		opt(b)
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: b.forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("wgpu backend: request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Customizer Device",
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("wgpu backend: request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	return b, nil
}

func (b *wgpuBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})
	b.configured = true

	if b.overlayPipeline == nil {
		if err := b.createOverlayPipelineLocked(); err != nil {
			log.Printf("[Renderer] overlay disabled: %v", err)
			b.releaseOverlayLocked()
		}
	}
}

func (b *wgpuBackendImpl) SetPresentMode(mode renderer.PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case renderer.PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	case renderer.PresentModeVSync:
		fallthrough
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuBackendImpl) BeginFrame(clear renderer.ClearColor) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured {
		return fmt.Errorf("surface not configured")
	}
	// A held surface texture means the previous frame was never presented.
	if b.frameSurface != nil {
		return fmt.Errorf("previous frame surface not yet presented")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: wgpu.StoreOpStore,
				ClearValue: wgpu.Color{
					R: clear.R, G: clear.G, B: clear.B, A: clear.A,
				},
			},
		},
	})

	b.frameEncoder = encoder
	b.framePass = pass
	b.frameSurface = surfaceTexture
	b.frameView = view

	return nil
}

func (b *wgpuBackendImpl) DrawOverlay(overlay renderer.Overlay) {
	b.mu.Lock()
	defer b.mu.Unlock()

	count := overlay.VertexCount()
	if b.framePass == nil || b.overlayPipeline == nil || count == 0 {
		return
	}

	vertices := overlay.VertexBytes()
	if err := b.ensureOverlayCapacityLocked(uint64(len(vertices))); err != nil {
		log.Printf("[Renderer] skipped overlay: %v", err)
		return
	}
	// Queue writes are ordered before the command buffer submitted in EndFrame.
	b.queue.WriteBuffer(b.overlayUniform, 0, overlay.UniformBytes())
	b.queue.WriteBuffer(b.overlayVertices, 0, vertices)

	b.framePass.SetPipeline(b.overlayPipeline)
	b.framePass.SetBindGroup(0, b.overlayBindGroup, nil)
	b.framePass.SetVertexBuffer(0, b.overlayVertices, 0, wgpu.WholeSize)
	b.framePass.Draw(uint32(count), 1, 0, 0)
}

func (b *wgpuBackendImpl) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.framePass == nil {
		return
	}
	b.framePass.End()
	b.framePass.Release()
	b.framePass = nil

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		b.releaseFrameLocked()
		return
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
}

func (b *wgpuBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()
	b.releaseFrameLocked()
}

func (b *wgpuBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releaseFrameLocked()
	b.releaseOverlayLocked()
	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.surface != nil {
		b.surface.Release()
		b.surface = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

// releaseFrameLocked drops the swapchain view and texture of the current frame.
// Callers must hold b.mu.
func (b *wgpuBackendImpl) releaseFrameLocked() {
	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	if b.frameSurface != nil {
		b.frameSurface.Release()
		b.frameSurface = nil
	}
}
