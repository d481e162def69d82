// package gputest provides an in-memory gpu.Device for tests. Buffers keep
// their bytes CPU-side so tests can assert on uploaded and per-frame written
// contents without a live GPU.
package gputest

import (
	"fmt"
	"math"

	"github.com/duskglow/loupe/engine/gpu"
)

// Buffer is a CPU-side stand-in for a GPU buffer.
type Buffer struct {
	Label    string
	Usage    gpu.BufferUsage
	Data     []byte
	Writes   int
	Released bool
}

func (b *Buffer) Size() uint64 { return uint64(len(b.Data)) }
func (b *Buffer) Native() any  { return b }
func (b *Buffer) Release()     { b.Released = true }

// Floats reinterprets the buffer contents as little-endian float32 values.
func (b *Buffer) Floats() []float32 {
	out := make([]float32, len(b.Data)/4)
	for i := range out {
		bits := uint32(b.Data[i*4]) | uint32(b.Data[i*4+1])<<8 |
			uint32(b.Data[i*4+2])<<16 | uint32(b.Data[i*4+3])<<24
		out[i] = math.Float32frombits(bits)
	}
	return out
}

// TextureView records an uploaded RGBA image.
type TextureView struct {
	Label         string
	Pixels        []byte
	Width, Height uint32
	Released      bool
}

func (t *TextureView) Native() any { return t }
func (t *TextureView) Release()    { t.Released = true }

// Sampler is a no-op sampler handle.
type Sampler struct {
	Label    string
	Released bool
}

func (s *Sampler) Native() any { return s }
func (s *Sampler) Release()    { s.Released = true }

// Layout is an opaque fake bind group layout.
type Layout struct {
	Label    string
	Released bool
}

func (l *Layout) Native() any { return l }
func (l *Layout) Release()    { l.Released = true }

// BindGroup records the resources bound against a layout.
type BindGroup struct {
	Label    string
	Layout   gpu.BindGroupLayout
	Entries  []gpu.BindingResource
	Released bool
}

func (g *BindGroup) Native() any { return g }
func (g *BindGroup) Release()    { g.Released = true }

// Device implements gpu.Device entirely in memory.
type Device struct {
	Buffers    []*Buffer
	BindGroups []*BindGroup
	Textures   []*TextureView
	Samplers   []*Sampler
}

var _ gpu.Device = &Device{}

// NewDevice creates an empty fake device.
func NewDevice() *Device {
	return &Device{}
}

// NewLayout creates a fake layout for use with CreateBindGroup.
func NewLayout(label string) gpu.BindGroupLayout {
	return &Layout{Label: label}
}

func (d *Device) CreateBuffer(label string, size uint64, usage gpu.BufferUsage) (gpu.Buffer, error) {
	b := &Buffer{Label: label, Usage: usage, Data: make([]byte, size)}
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

func (d *Device) CreateBufferInit(label string, data []byte, usage gpu.BufferUsage) (gpu.Buffer, error) {
	b := &Buffer{Label: label, Usage: usage, Data: append([]byte(nil), data...)}
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

func (d *Device) WriteBuffer(buf gpu.Buffer, offset uint64, data []byte) {
	b := buf.(*Buffer)
	if int(offset)+len(data) > len(b.Data) {
		panic(fmt.Sprintf("gputest: write of %d bytes at offset %d overflows buffer %q (%d bytes)",
			len(data), offset, b.Label, len(b.Data)))
	}
	copy(b.Data[offset:], data)
	b.Writes++
}

func (d *Device) CreateBindGroup(label string, layout gpu.BindGroupLayout, entries []gpu.BindingResource) (gpu.BindGroup, error) {
	g := &BindGroup{Label: label, Layout: layout, Entries: append([]gpu.BindingResource(nil), entries...)}
	d.BindGroups = append(d.BindGroups, g)
	return g, nil
}

func (d *Device) CreateTextureRGBA(label string, pixels []byte, width, height uint32) (gpu.TextureView, error) {
	t := &TextureView{Label: label, Pixels: append([]byte(nil), pixels...), Width: width, Height: height}
	d.Textures = append(d.Textures, t)
	return t, nil
}

func (d *Device) CreateSampler(label string) (gpu.Sampler, error) {
	s := &Sampler{Label: label}
	d.Samplers = append(d.Samplers, s)
	return s, nil
}
