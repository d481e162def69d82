package renderer

import (
	_ "embed"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/duskglow/loupe/engine/camera"
	"github.com/duskglow/loupe/engine/gpu"
	"github.com/duskglow/loupe/engine/scene"
)

//go:embed assets/shader.wgsl
var shaderSource string

// Bind group indices the shader expects.
const (
	groupMaterial = 0
	groupCamera   = 1
	groupNode     = 2
)

// Vertex buffer slots and their strides. Each attribute stream lives in its
// own buffer, matching the importer's per-primitive upload layout.
const (
	slotPosition = 0
	slotNormal   = 1
	slotTexcoord = 2
)

type wgpuRendererImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue
	facade   gpu.Device

	surfaceFormat        *wgpu.TextureFormat
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor

	pipeline *wgpu.RenderPipeline

	materialLayout *wgpu.BindGroupLayout
	cameraLayout   *wgpu.BindGroupLayout
	nodeLayout     *wgpu.BindGroupLayout

	cameraUniform   gpu.Buffer
	cameraBindGroup gpu.BindGroup

	presentMode          wgpu.PresentMode
	clearColor           wgpu.Color
	forceFallbackAdapter bool
}

var _ Renderer = &wgpuRendererImpl{}

// NewWGPURenderer creates a renderer bound to the given surface and builds the
// fixed render pipeline for it. Initialization failures are unrecoverable and
// panic, mirroring startup semantics: there is nothing to render without a
// working device.
//
// Parameters:
//   - surfaceDescriptor: the platform surface to present to
//   - width: initial framebuffer width in pixels
//   - height: initial framebuffer height in pixels
//   - opts: optional renderer options
//
// Returns:
//   - Renderer: the configured renderer
func NewWGPURenderer(surfaceDescriptor *wgpu.SurfaceDescriptor, width, height int, opts ...RendererOption) Renderer {
	runtime.LockOSThread()

	r := &wgpuRendererImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		clearColor:  wgpu.Color{R: 0.05, G: 0.05, B: 0.08, A: 1.0},
	}
	for _, opt := range opts {
		opt(r)
	}

	r.surface = r.instance.CreateSurface(surfaceDescriptor)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: r.forceFallbackAdapter,
		CompatibleSurface:    r.surface,
	})
	if err != nil {
		panic(err)
	}
	r.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		panic(err)
	}
	r.device = device
	r.queue = device.GetQueue()
	r.facade = gpu.NewWGPUDevice(r.device, r.queue)

	r.createBindGroupLayouts()
	r.configureSurface(width, height)
	r.createPipeline()
	r.createCameraResources()

	return r
}

func (r *wgpuRendererImpl) createBindGroupLayouts() {
	materialLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Material Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	r.materialLayout = materialLayout

	cameraLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Camera Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	r.cameraLayout = cameraLayout

	nodeLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Node Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	r.nodeLayout = nodeLayout
}

// configureSurface (re)configures the swapchain and recreates the depth
// target and the cached render pass descriptor. Caller holds no frame state;
// the depth view is persistent between resizes.
func (r *wgpuRendererImpl) configureSurface(width, height int) {
	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surfaceFormat = &capabilities.Formats[0]

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: r.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	if r.depthTextureView != nil {
		r.depthTextureView.Release()
		r.depthTextureView = nil
	}

	depthTexture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Depth Texture",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	r.depthTextureView, err = depthTexture.CreateView(nil)
	if err != nil {
		panic(err)
	}

	// The color attachment View is filled in per-frame with the acquired
	// swapchain view; the depth view persists until the next resize.
	r.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		Label: "Scene Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (r *wgpuRendererImpl) createPipeline() {
	module, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Scene Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaderSource},
	})
	if err != nil {
		panic(err)
	}
	defer module.Release()

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Scene Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{r.materialLayout, r.cameraLayout, r.nodeLayout},
	})
	if err != nil {
		panic(err)
	}
	defer pipelineLayout.Release()

	vertexLayouts := []wgpu.VertexBufferLayout{
		{
			ArrayStride: 12,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: slotPosition},
			},
		},
		{
			ArrayStride: 12,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: slotNormal},
			},
		},
		{
			ArrayStride: 8,
			StepMode:    wgpu.VertexStepModeVertex,
			Attributes: []wgpu.VertexAttribute{
				{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: slotTexcoord},
			},
		},
	}

	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Scene Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    vertexLayouts,
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    *r.surfaceFormat,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeBack,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		panic(err)
	}
	r.pipeline = pipeline
}

func (r *wgpuRendererImpl) createCameraResources() {
	var uniform camera.GPUCameraUniform

	buffer, err := r.facade.CreateBuffer("Camera Uniform Buffer", uint64(uniform.Size()), gpu.BufferUsageUniform)
	if err != nil {
		panic(err)
	}
	r.cameraUniform = buffer

	bindGroup, err := r.facade.CreateBindGroup("Camera Bind Group", &gpu.WGPUBindGroupLayout{Layout: r.cameraLayout}, []gpu.BindingResource{
		{Binding: 0, Buffer: buffer},
	})
	if err != nil {
		panic(err)
	}
	r.cameraBindGroup = bindGroup
}

func (r *wgpuRendererImpl) Device() gpu.Device {
	return r.facade
}

func (r *wgpuRendererImpl) NodeLayout() gpu.BindGroupLayout {
	return &gpu.WGPUBindGroupLayout{Layout: r.nodeLayout}
}

func (r *wgpuRendererImpl) MaterialLayout() gpu.BindGroupLayout {
	return &gpu.WGPUBindGroupLayout{Layout: r.materialLayout}
}

func (r *wgpuRendererImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configureSurface(width, height)
}

func (r *wgpuRendererImpl) WriteCameraUniform(data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.facade.WriteBuffer(r.cameraUniform, 0, data)
}

func (r *wgpuRendererImpl) RenderFrame(s *scene.ImportedScene, visible []scene.NodeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return err
	}
	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return err
	}

	r.renderPassDescriptor.ColorAttachments[0].View = view
	pass := encoder.BeginRenderPass(r.renderPassDescriptor)

	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(groupCamera, r.cameraBindGroup.Native().(*wgpu.BindGroup), nil)

	for _, call := range BuildDrawList(s, visible) {
		pass.SetBindGroup(groupMaterial, call.Material.Bindings.Native().(*wgpu.BindGroup), nil)
		pass.SetBindGroup(groupNode, call.Node.Bindings.Native().(*wgpu.BindGroup), nil)

		pass.SetVertexBuffer(slotPosition, call.Primitive.Position.Native().(*wgpu.Buffer), 0, wgpu.WholeSize)
		pass.SetVertexBuffer(slotNormal, call.Primitive.Normal.Native().(*wgpu.Buffer), 0, wgpu.WholeSize)
		pass.SetVertexBuffer(slotTexcoord, call.Primitive.Texcoord.Native().(*wgpu.Buffer), 0, wgpu.WholeSize)
		pass.SetIndexBuffer(call.Primitive.Index.Native().(*wgpu.Buffer), wgpuIndexFormat(call.Primitive.IndexFormat), 0, wgpu.WholeSize)
		pass.DrawIndexed(call.Primitive.IndexCount, 1, 0, 0, 0)
	}

	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		encoder.Release()
		view.Release()
		surfaceTexture.Release()
		return err
	}

	r.queue.Submit(commandBuffer)
	commandBuffer.Release()
	encoder.Release()

	r.surface.Present()
	view.Release()
	surfaceTexture.Release()

	return nil
}

func (r *wgpuRendererImpl) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cameraBindGroup != nil {
		r.cameraBindGroup.Release()
	}
	if r.cameraUniform != nil {
		r.cameraUniform.Release()
	}
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.materialLayout != nil {
		r.materialLayout.Release()
	}
	if r.cameraLayout != nil {
		r.cameraLayout.Release()
	}
	if r.nodeLayout != nil {
		r.nodeLayout.Release()
	}
	if r.depthTextureView != nil {
		r.depthTextureView.Release()
	}
	if r.device != nil {
		r.device.Release()
	}
}

func wgpuIndexFormat(format scene.IndexFormat) wgpu.IndexFormat {
	if format == scene.IndexFormatUint32 {
		return wgpu.IndexFormatUint32
	}
	return wgpu.IndexFormatUint16
}
