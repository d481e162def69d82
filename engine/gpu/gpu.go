// package gpu provides a thin device abstraction over the WebGPU resource
// creation calls the importer and frame loop need. The renderer owns the
// real device and surface; this facade exists so scene resources (buffers,
// bind groups, the placeholder texture) can be created and written without
// the callers knowing about swapchains or pipelines, and so tests can run
// against an in-memory fake.
package gpu

// BufferUsage selects the GPU usage flags for a created buffer. All buffers
// are also writable from the queue (copy-destination) regardless of usage.
type BufferUsage uint32

const (
	// BufferUsageVertex marks a buffer bindable as a vertex attribute stream.
	BufferUsageVertex BufferUsage = 1 << iota
	// BufferUsageIndex marks a buffer bindable as an index stream.
	BufferUsageIndex
	// BufferUsageUniform marks a buffer bindable in a uniform binding slot.
	BufferUsageUniform
)

// Buffer is a GPU-resident buffer handle.
type Buffer interface {
	// Size returns the buffer's allocated size in bytes.
	Size() uint64
	// Native returns the backend-specific buffer handle (e.g. *wgpu.Buffer).
	Native() any
	// Release frees the underlying GPU resource.
	Release()
}

// TextureView is a sampled-texture view handle.
type TextureView interface {
	Native() any
	Release()
}

// Sampler is a texture sampler handle.
type Sampler interface {
	Native() any
	Release()
}

// BindGroupLayout is an opaque handle to a pipeline binding layout. Layouts
// are created by the renderer alongside its pipeline and handed to the
// importer so resource bind groups match the pipeline's expectations.
type BindGroupLayout interface {
	Native() any
	Release()
}

// BindGroup is a bundle of resources bound together for one pipeline slot.
type BindGroup interface {
	Native() any
	Release()
}

// BindingResource is one entry of a bind group: exactly one of Buffer,
// Texture or Sampler is set for the given binding index.
type BindingResource struct {
	Binding uint32
	Buffer  Buffer
	Texture TextureView
	Sampler Sampler
}

// Device creates and writes GPU resources. Implementations: the wgpu-backed
// device used at runtime, and gputest.Device for tests.
type Device interface {
	// CreateBuffer allocates an uninitialized buffer of the given size.
	CreateBuffer(label string, size uint64, usage BufferUsage) (Buffer, error)

	// CreateBufferInit allocates a buffer sized to data and uploads data
	// into it immediately.
	CreateBufferInit(label string, data []byte, usage BufferUsage) (Buffer, error)

	// WriteBuffer schedules a write of data into buf at the given byte
	// offset. Writes are not synchronized against in-flight GPU reads
	// beyond the queue's own ordering guarantees.
	WriteBuffer(buf Buffer, offset uint64, data []byte)

	// CreateBindGroup bundles the given resources against a layout the
	// renderer created.
	CreateBindGroup(label string, layout BindGroupLayout, entries []BindingResource) (BindGroup, error)

	// CreateTextureRGBA uploads an 8-bit RGBA image (4 bytes per pixel,
	// tightly packed rows) and returns a sampled view of it.
	CreateTextureRGBA(label string, pixels []byte, width, height uint32) (TextureView, error)

	// CreateSampler creates a linear-filtering repeat-addressing sampler.
	CreateSampler(label string) (Sampler, error)
}
