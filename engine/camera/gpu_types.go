package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniform is the GPU-aligned camera uniform written once per frame.
// Matches the WGSL CameraUniform struct layout exactly.
// Size: 96 bytes (two vec4<f32> plus one mat4x4<f32>, column-major).
type GPUCameraUniform struct {
	ViewPosition [4]float32  // offset 0: homogeneous world-space camera position, w = 1 (16 bytes)
	ViewFront    [4]float32  // offset 16: view direction, w = 0 (16 bytes)
	ViewProj     [16]float32 // offset 32: combined view-projection matrix (64 bytes)
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i, f := range g.ViewPosition {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	for i, f := range g.ViewFront {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(f))
	}
	for i, f := range g.ViewProj {
		binary.LittleEndian.PutUint32(buf[32+i*4:], math.Float32bits(f))
	}
	return buf
}
