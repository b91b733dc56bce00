package wgpu_backend

import (
	"github.com/Carmen-Shannon/oxy-customizer/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

const overlayShaderSource = `
struct Scene {
	view_proj: mat4x4<f32>,
};

@group(0) @binding(0) var<uniform> scene: Scene;

struct VertexOut {
	@builtin(position) position: vec4<f32>,
	@location(0) color: vec4<f32>,
};

@vertex
fn vs_main(@location(0) position: vec3<f32>, @location(1) color: vec4<f32>) -> VertexOut {
	var out: VertexOut;
	out.position = scene.view_proj * vec4<f32>(position, 1.0);
	out.color = color;
	return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
	return in.color;
}
`

// initialOverlayCapacity holds a few hundred line vertices before the buffer has to grow.
const initialOverlayCapacity = 256 * renderer.LineVertexSize

// createOverlayPipelineLocked builds the line-list pipeline and its uniform bind group for the
// configured surface format.
// Callers must hold b.mu.
//
// Returns:
//   - error: an error if any GPU object could not be created
func (b *wgpuBackendImpl) createOverlayPipelineLocked() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Overlay Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: overlayShaderSource,
		},
	})
	if err != nil {
		return err
	}
	b.overlayShader = module

	bindLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Overlay Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: renderer.OverlayUniformSize,
				},
			},
		},
	})
	if err != nil {
		return err
	}
	b.overlayBindLayout = bindLayout

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Overlay Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bindLayout},
	})
	if err != nil {
		return err
	}
	b.overlayPipelineLayout = pipelineLayout

	pipeline, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Overlay Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: renderer.LineVertexSize,
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyLineList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return err
	}
	b.overlayPipeline = pipeline

	uniform, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Overlay Uniform Buffer",
		Size:  renderer.OverlayUniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	b.overlayUniform = uniform

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Overlay Bind Group",
		Layout: bindLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  uniform,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return err
	}
	b.overlayBindGroup = bindGroup

	return b.ensureOverlayCapacityLocked(initialOverlayCapacity)
}

// ensureOverlayCapacityLocked grows the overlay vertex buffer to hold at least size bytes.
// Callers must hold b.mu.
//
// Parameters:
//   - size: the number of vertex bytes the next draw writes
//
// Returns:
//   - error: an error if the buffer could not be created
func (b *wgpuBackendImpl) ensureOverlayCapacityLocked(size uint64) error {
	if b.overlayVertices != nil && size <= b.overlayCapacity {
		return nil
	}

	capacity := max(b.overlayCapacity, initialOverlayCapacity)
	for capacity < size {
		capacity *= 2
	}

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Overlay Vertex Buffer",
		Size:  capacity,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return err
	}
	if b.overlayVertices != nil {
		b.overlayVertices.Release()
	}
	b.overlayVertices = buf
	b.overlayCapacity = capacity
	return nil
}

// releaseOverlayLocked frees the overlay pipeline and its buffers.
// Callers must hold b.mu.
func (b *wgpuBackendImpl) releaseOverlayLocked() {
	if b.overlayBindGroup != nil {
		b.overlayBindGroup.Release()
		b.overlayBindGroup = nil
	}
	if b.overlayUniform != nil {
		b.overlayUniform.Release()
		b.overlayUniform = nil
	}
	if b.overlayVertices != nil {
		b.overlayVertices.Release()
		b.overlayVertices = nil
		b.overlayCapacity = 0
	}
	if b.overlayPipeline != nil {
		b.overlayPipeline.Release()
		b.overlayPipeline = nil
	}
	if b.overlayPipelineLayout != nil {
		b.overlayPipelineLayout.Release()
		b.overlayPipelineLayout = nil
	}
	if b.overlayBindLayout != nil {
		b.overlayBindLayout.Release()
		b.overlayBindLayout = nil
	}
	if b.overlayShader != nil {
		b.overlayShader.Release()
		b.overlayShader = nil
	}
}
