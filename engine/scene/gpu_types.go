package scene

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/duskglow/loupe/common"
)

// GPUNodeUniform is the GPU-aligned per-node uniform written every visible
// frame. Matches the WGSL NodeUniform struct layout exactly.
// Size: 128 bytes (two mat4x4<f32>, column-major).
type GPUNodeUniform struct {
	Model  [16]float32 // offset 0: world-space model matrix (64 bytes)
	Normal [16]float32 // offset 64: inverse-transpose of the model matrix's upper 3x3, stored as a mat4 for alignment (64 bytes)
}

// Size returns the size of the GPUNodeUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUNodeUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUNodeUniform struct into a byte buffer suitable for GPU upload.
// The node uniform is rewritten for every visible node on every frame, so
// this is a zero-copy view of the struct rather than an allocation. The
// caller must hand the slice to the queue before mutating the struct.
//
// Returns:
//   - []byte: 128-byte view of the struct, ready for GPU upload.
func (g *GPUNodeUniform) Marshal() []byte {
	return common.StructToBytes(g)
}

// GPUMaterialUniform is the GPU-aligned material factor uniform, uploaded
// once at import. Matches the WGSL MaterialUniform struct layout exactly.
// Size: 32 bytes (one vec4<f32> plus a padded vec3<f32>).
type GPUMaterialUniform struct {
	BaseColor [4]float32 // offset 0: RGBA base color factor (16 bytes)
	Emissive  [3]float32 // offset 16: RGB emissive factor (12 bytes)
	Pad       float32    // offset 28: alignment padding (4 bytes)
}

// Size returns the size of the GPUMaterialUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterialUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, f := range g.BaseColor {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	for i, f := range g.Emissive {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(f))
	}
	binary.LittleEndian.PutUint32(buf[28:], math.Float32bits(g.Pad))
	return buf
}
