package loader

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/duskglow/loupe/common"
	"github.com/duskglow/loupe/engine/gpu"
	"github.com/duskglow/loupe/engine/scene"
)

// Fixed element strides the vertex layout expects: vec3<f32> positions and
// normals, vec2<f32> texture coordinates.
const (
	positionStride = 12
	normalStride   = 12
	texcoordStride = 8
)

// stagedPrimitive holds one primitive's CPU-side byte ranges, decoded and
// validated but not yet uploaded. Staging is pure, so it can run on the
// worker pool; uploads happen afterwards on the importing goroutine.
type stagedPrimitive struct {
	positions []byte
	normals   []byte
	texcoords []byte
	indices   []byte

	indexFormat scene.IndexFormat
	indexCount  uint32

	// material is the source material index, or nil when the primitive
	// declares none.
	material *int
}

// stagePrimitive decodes one primitive's attribute and index streams.
//
// Returns (nil, nil) for a non-triangle-list primitive, which the importer
// skips. Position, normal and index accessors are required; texture
// coordinates are optional and synthesized as vertexCount*2 zero floats when
// absent, so the fixed three-buffer vertex layout is always satisfiable.
// Attribute accessors holding fewer elements than the position stream are
// rejected, since drawing the full index range would read past their buffers.
func stagePrimitive(doc *gltf.Document, prim *gltf.Primitive) (*stagedPrimitive, error) {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil, nil
	}

	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("primitive has no position accessor: %w", ErrMissingAttribute)
	}
	positions, err := accessorBytes(doc, int(posIdx), positionStride)
	if err != nil {
		return nil, fmt.Errorf("position: %w", err)
	}
	vertexCount := int(doc.Accessors[int(posIdx)].Count)

	normIdx, ok := prim.Attributes[gltf.NORMAL]
	if !ok {
		return nil, fmt.Errorf("primitive has no normal accessor: %w", ErrMissingAttribute)
	}
	normals, err := accessorBytes(doc, int(normIdx), normalStride)
	if err != nil {
		return nil, fmt.Errorf("normal: %w", err)
	}

	if n := int(doc.Accessors[int(normIdx)].Count); n < vertexCount {
		return nil, fmt.Errorf("normal accessor holds %d elements for %d vertices: %w", n, vertexCount, ErrMalformedDocument)
	}

	var texcoords []byte
	if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		texcoords, err = accessorBytes(doc, int(uvIdx), texcoordStride)
		if err != nil {
			return nil, fmt.Errorf("texcoord: %w", err)
		}
		if n := int(doc.Accessors[int(uvIdx)].Count); n < vertexCount {
			return nil, fmt.Errorf("texcoord accessor holds %d elements for %d vertices: %w", n, vertexCount, ErrMalformedDocument)
		}
	} else {
		texcoords = common.SliceToBytes(make([]float32, vertexCount*2))
	}

	if prim.Indices == nil {
		return nil, fmt.Errorf("primitive has no index accessor: %w", ErrMissingAttribute)
	}
	idxAccessor := int(*prim.Indices)
	if idxAccessor < 0 || idxAccessor >= len(doc.Accessors) {
		return nil, fmt.Errorf("index accessor %d out of range: %w", idxAccessor, ErrMalformedDocument)
	}
	acc := doc.Accessors[idxAccessor]

	var format scene.IndexFormat
	width := componentByteSize(acc.ComponentType)
	switch width {
	case 2:
		format = scene.IndexFormatUint16
	case 4:
		format = scene.IndexFormatUint32
	default:
		return nil, fmt.Errorf("index accessor %d has %d-byte components: %w", idxAccessor, width, ErrUnsupportedIndexWidth)
	}
	indices, err := accessorBytes(doc, idxAccessor, width)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}

	var material *int
	if prim.Material != nil {
		idx := int(*prim.Material)
		material = &idx
	}

	return &stagedPrimitive{
		positions:   positions,
		normals:     normals,
		texcoords:   texcoords,
		indices:     indices,
		indexFormat: format,
		indexCount:  uint32(acc.Count),
		material:    material,
	}, nil
}

// uploadPrimitive turns a staged primitive into GPU-resident buffers and
// resolves its source material index to a runtime identity.
func uploadPrimitive(device gpu.Device, label string, staged *stagedPrimitive, materialIDs []scene.MaterialID) (*scene.MeshPrimitive, error) {
	position, err := device.CreateBufferInit(label+" Position Buffer", staged.positions, gpu.BufferUsageVertex)
	if err != nil {
		return nil, fmt.Errorf("create position buffer: %w", err)
	}
	normal, err := device.CreateBufferInit(label+" Normal Buffer", staged.normals, gpu.BufferUsageVertex)
	if err != nil {
		return nil, fmt.Errorf("create normal buffer: %w", err)
	}
	texcoord, err := device.CreateBufferInit(label+" Texcoord Buffer", staged.texcoords, gpu.BufferUsageVertex)
	if err != nil {
		return nil, fmt.Errorf("create texcoord buffer: %w", err)
	}
	index, err := device.CreateBufferInit(label+" Index Buffer", staged.indices, gpu.BufferUsageIndex)
	if err != nil {
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	var material *scene.MaterialID
	if staged.material != nil {
		idx := *staged.material
		if idx < 0 || idx >= len(materialIDs) {
			return nil, fmt.Errorf("primitive references material %d out of range: %w", idx, ErrMalformedDocument)
		}
		id := materialIDs[idx]
		material = &id
	}

	return &scene.MeshPrimitive{
		Position:    position,
		Normal:      normal,
		Texcoord:    texcoord,
		Index:       index,
		IndexFormat: staged.indexFormat,
		IndexCount:  staged.indexCount,
		Material:    material,
	}, nil
}
