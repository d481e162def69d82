// Package renderer owns the GPU presentation path: surface configuration,
// the fixed render pipeline, depth target management and per-frame command
// recording. The pipeline is intentionally static — one shader, one vertex
// layout, one depth mode — so the renderer exposes no pipeline registry.
package renderer

import (
	"github.com/duskglow/loupe/engine/gpu"
	"github.com/duskglow/loupe/engine/scene"
)

// Renderer records and submits the per-frame GPU work for an imported scene.
//
// The renderer owns the camera uniform buffer and the bind group layouts the
// importer needs to allocate per-node and per-material binding sets. Layouts
// are created once at startup and live for the renderer's lifetime.
type Renderer interface {
	// Device returns the GPU device abstraction used for resource creation.
	Device() gpu.Device

	// NodeLayout returns the bind group layout for per-node uniforms
	// (group 2, binding 0).
	NodeLayout() gpu.BindGroupLayout

	// MaterialLayout returns the bind group layout for per-material data
	// (group 0: uniform, texture, sampler).
	MaterialLayout() gpu.BindGroupLayout

	// Resize reconfigures the surface and recreates the depth target for the
	// new framebuffer dimensions. Zero dimensions are ignored.
	Resize(width, height int)

	// WriteCameraUniform uploads the packed camera uniform payload. The data
	// must match the shader's camera layout bit-for-bit.
	WriteCameraUniform(data []byte)

	// RenderFrame records and submits one frame drawing the visible nodes of
	// the scene, then presents the surface.
	//
	// Parameters:
	//   - s: the resident imported scene
	//   - visible: node identities collected by the frame updater this frame
	//
	// Returns:
	//   - error: if the surface texture could not be acquired or command
	//     encoding failed
	RenderFrame(s *scene.ImportedScene, visible []scene.NodeID) error

	// Release destroys the renderer's GPU resources.
	Release()
}
