package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuDevice implements Device against a live wgpu device/queue pair owned
// by the renderer backend.
type wgpuDevice struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

var _ Device = &wgpuDevice{}

// NewWGPUDevice wraps an existing wgpu device and queue as a Device.
//
// Parameters:
//   - device: the wgpu device that owns created resources
//   - queue: the queue used for buffer and texture writes
//
// Returns:
//   - Device: the wgpu-backed device facade
func NewWGPUDevice(device *wgpu.Device, queue *wgpu.Queue) Device {
	return &wgpuDevice{device: device, queue: queue}
}

func wgpuUsage(usage BufferUsage) wgpu.BufferUsage {
	u := wgpu.BufferUsageCopyDst
	if usage&BufferUsageVertex != 0 {
		u |= wgpu.BufferUsageVertex
	}
	if usage&BufferUsageIndex != 0 {
		u |= wgpu.BufferUsageIndex
	}
	if usage&BufferUsageUniform != 0 {
		u |= wgpu.BufferUsageUniform
	}
	return u
}

type wgpuBuffer struct {
	buffer *wgpu.Buffer
	size   uint64
}

func (b *wgpuBuffer) Size() uint64 { return b.size }
func (b *wgpuBuffer) Native() any  { return b.buffer }
func (b *wgpuBuffer) Release()     { b.buffer.Release() }

func (d *wgpuDevice) CreateBuffer(label string, size uint64, usage BufferUsage) (Buffer, error) {
	buf, err := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            wgpuUsage(usage),
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBuffer{buffer: buf, size: size}, nil
}

func (d *wgpuDevice) CreateBufferInit(label string, data []byte, usage BufferUsage) (Buffer, error) {
	buf, err := d.CreateBuffer(label, uint64(len(data)), usage)
	if err != nil {
		return nil, err
	}
	d.queue.WriteBuffer(buf.Native().(*wgpu.Buffer), 0, data)
	return buf, nil
}

func (d *wgpuDevice) WriteBuffer(buf Buffer, offset uint64, data []byte) {
	d.queue.WriteBuffer(buf.Native().(*wgpu.Buffer), offset, data)
}

type wgpuBindGroup struct {
	bindGroup *wgpu.BindGroup
}

func (g *wgpuBindGroup) Native() any { return g.bindGroup }
func (g *wgpuBindGroup) Release()    { g.bindGroup.Release() }

// WGPUBindGroupLayout adapts a raw wgpu layout to the BindGroupLayout
// interface. The renderer creates layouts as part of pipeline construction
// and exposes them through this wrapper.
type WGPUBindGroupLayout struct {
	Layout *wgpu.BindGroupLayout
}

func (l *WGPUBindGroupLayout) Native() any { return l.Layout }
func (l *WGPUBindGroupLayout) Release()    { l.Layout.Release() }

func (d *wgpuDevice) CreateBindGroup(label string, layout BindGroupLayout, entries []BindingResource) (BindGroup, error) {
	wgpuEntries := make([]wgpu.BindGroupEntry, len(entries))
	for i, e := range entries {
		switch {
		case e.Buffer != nil:
			wgpuEntries[i] = wgpu.BindGroupEntry{
				Binding: e.Binding,
				Buffer:  e.Buffer.Native().(*wgpu.Buffer),
				Offset:  0,
				Size:    wgpu.WholeSize,
			}
		case e.Texture != nil:
			wgpuEntries[i] = wgpu.BindGroupEntry{
				Binding:     e.Binding,
				TextureView: e.Texture.Native().(*wgpu.TextureView),
			}
		case e.Sampler != nil:
			wgpuEntries[i] = wgpu.BindGroupEntry{
				Binding: e.Binding,
				Sampler: e.Sampler.Native().(*wgpu.Sampler),
			}
		}
	}

	bg, err := d.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   label,
		Layout:  layout.Native().(*wgpu.BindGroupLayout),
		Entries: wgpuEntries,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuBindGroup{bindGroup: bg}, nil
}

type wgpuTextureView struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

func (t *wgpuTextureView) Native() any { return t.view }

func (t *wgpuTextureView) Release() {
	t.view.Release()
	t.texture.Release()
}

func (d *wgpuDevice) CreateTextureRGBA(label string, pixels []byte, width, height uint32) (TextureView, error) {
	tex, err := d.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     label,
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, err
	}

	d.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  width * 4,
			RowsPerImage: height,
		},
		&wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, err
	}
	return &wgpuTextureView{texture: tex, view: view}, nil
}

type wgpuSampler struct {
	sampler *wgpu.Sampler
}

func (s *wgpuSampler) Native() any { return s.sampler }
func (s *wgpuSampler) Release()    { s.sampler.Release() }

func (d *wgpuDevice) CreateSampler(label string) (Sampler, error) {
	samp, err := d.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMinClamp:   0.0,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}
	return &wgpuSampler{sampler: samp}, nil
}
