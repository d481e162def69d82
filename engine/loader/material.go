package loader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/duskglow/loupe/common"
	"github.com/duskglow/loupe/engine/gpu"
	"github.com/duskglow/loupe/engine/scene"
)

// Material bind group bindings, matching the renderer's material layout.
const (
	materialBindingUniform = 0
	materialBindingTexture = 1
	materialBindingSampler = 2
)

// importMaterial converts one glTF material's metallic-roughness factors into
// a GPU-resident uniform and bind group. Texture import is stubbed
// (TODO: decode texture/sampler definitions instead of the placeholder):
// every material binds the shared white 1x1 texture, so its factors are the
// only contribution to shading.
//
// Double-sided materials import fine but render wrong, since the fixed
// pipeline always culls back faces; they are logged rather than rejected.
func (l *importer) importMaterial(mat *gltf.Material, index int) (*scene.Material, error) {
	baseColor := mgl32.Vec4{1, 1, 1, 1}
	emissive := mgl32.Vec3{}

	if pbr := mat.PBRMetallicRoughness; pbr != nil && pbr.BaseColorFactor != nil {
		baseColor = mgl32.Vec4{
			float32(pbr.BaseColorFactor[0]),
			float32(pbr.BaseColorFactor[1]),
			float32(pbr.BaseColorFactor[2]),
			float32(pbr.BaseColorFactor[3]),
		}
	}
	emissive = mgl32.Vec3{
		float32(mat.EmissiveFactor[0]),
		float32(mat.EmissiveFactor[1]),
		float32(mat.EmissiveFactor[2]),
	}

	if mat.DoubleSided {
		common.LogWarn("material %d %q is double-sided; the pipeline culls back faces unconditionally", index, mat.Name)
	}

	uniform := scene.GPUMaterialUniform{
		BaseColor: [4]float32(baseColor),
		Emissive:  [3]float32(emissive),
	}
	label := common.Coalesce(mat.Name, fmt.Sprintf("Material %d", index))
	buf, err := l.deps.Device.CreateBufferInit(label+" Uniform Buffer", uniform.Marshal(), gpu.BufferUsageUniform)
	if err != nil {
		return nil, fmt.Errorf("create material %d uniform: %w", index, err)
	}

	bindings, err := l.deps.Device.CreateBindGroup(label+" Bind Group", l.deps.MaterialLayout, []gpu.BindingResource{
		{Binding: materialBindingUniform, Buffer: buf},
		{Binding: materialBindingTexture, Texture: l.white},
		{Binding: materialBindingSampler, Sampler: l.sampler},
	})
	if err != nil {
		return nil, fmt.Errorf("create material %d bind group: %w", index, err)
	}

	return &scene.Material{
		BaseColor: baseColor,
		Emissive:  emissive,
		Uniform:   buf,
		Bindings:  bindings,
		Source:    scene.SourceInfo{Index: index},
	}, nil
}
