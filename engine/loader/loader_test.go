package loader

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskglow/loupe/engine/gpu/gputest"
	"github.com/duskglow/loupe/engine/scene"
)

// seqIDSource yields deterministic, strictly increasing identities so two
// imports of the same document produce identical identity assignments.
func seqIDSource() func() uuid.UUID {
	var n uint32
	return func() uuid.UUID {
		n++
		var id uuid.UUID
		binary.BigEndian.PutUint32(id[12:], n)
		return id
	}
}

func floatBytes(vals ...float32) []byte {
	out := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

func uint16Bytes(vals ...uint16) []byte {
	out := make([]byte, len(vals)*2)
	for i, v := range vals {
		binary.LittleEndian.PutUint16(out[i*2:], v)
	}
	return out
}

var identity16 = [16]float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// defaultNode mirrors the defaults gltf.Open applies to absent node fields.
func defaultNode() *gltf.Node {
	return &gltf.Node{
		Matrix:   identity16,
		Rotation: [4]float64{0, 0, 0, 1},
		Scale:    [3]float64{1, 1, 1},
	}
}

// triangleDocument builds a document with one scene holding one root node
// (identity transform) referencing one mesh with a single triangle-list
// primitive: 3 positions, 3 normals, 3 uint16 indices, no texcoords, and one
// material with default (white) factors.
func triangleDocument() *gltf.Document {
	var data []byte
	data = append(data, floatBytes(
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	)...)
	data = append(data, floatBytes(
		0, 0, 1,
		0, 0, 1,
		0, 0, 1,
	)...)
	data = append(data, uint16Bytes(0, 1, 2)...)

	node := defaultNode()
	node.Mesh = intPtr(0)

	return &gltf.Document{
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: 36},
			{Buffer: 0, ByteOffset: 36, ByteLength: 36},
			{Buffer: 0, ByteOffset: 72, ByteLength: 6},
		},
		Accessors: []*gltf.Accessor{
			{BufferView: intPtr(0), ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3, Count: 3},
			{BufferView: intPtr(1), ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec3, Count: 3},
			{BufferView: intPtr(2), ComponentType: gltf.ComponentUshort, Type: gltf.AccessorScalar, Count: 3},
		},
		Materials: []*gltf.Material{{Name: "white"}},
		Meshes: []*gltf.Mesh{{
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0, gltf.NORMAL: 1},
				Indices:    intPtr(2),
				Material:   intPtr(0),
				Mode:       gltf.PrimitiveTriangles,
			}},
		}},
		Nodes:  []*gltf.Node{node},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
		Scene:  intPtr(0),
	}
}

func newTestImporter(dev *gputest.Device) Importer {
	return NewImporter(ImportDeps{
		Device:         dev,
		NodeLayout:     gputest.NewLayout("Node Layout"),
		MaterialLayout: gputest.NewLayout("Material Layout"),
	}, WithIDSource(seqIDSource()), WithWorkerCount(2))
}

func TestImportSingleTriangle(t *testing.T) {
	dev := gputest.NewDevice()
	imported, err := newTestImporter(dev).ImportDocument(triangleDocument())
	require.NoError(t, err)

	sceneID, sc := imported.DefaultScene()
	require.NotNil(t, sc)
	assert.Equal(t, imported.DefaultSceneID, sceneID)
	require.Len(t, sc.Roots, 1)

	node := imported.Nodes[sc.Roots[0]]
	require.NotNil(t, node)
	require.NotNil(t, node.Mesh)
	assert.Equal(t, 0, node.Source.Index)

	mesh := imported.Meshes[*node.Mesh]
	require.NotNil(t, mesh)
	require.Len(t, mesh.Primitives, 1)
	prim := mesh.Primitives[0]
	require.NotNil(t, prim)

	assert.Equal(t, uint32(3), prim.IndexCount)
	assert.Equal(t, scene.IndexFormatUint16, prim.IndexFormat)
	assert.Equal(t, uint64(36), prim.Position.Size())
	assert.Equal(t, uint64(36), prim.Normal.Size())
	assert.Equal(t, uint64(6), prim.Index.Size())

	// No texcoord accessor: the slot must be synthesized as
	// vertex_count * 2 zero floats.
	texcoord := prim.Texcoord.(*gputest.Buffer)
	require.Len(t, texcoord.Data, 24)
	for _, f := range texcoord.Floats() {
		assert.Zero(t, f)
	}

	require.NotNil(t, prim.Material)
	mat := imported.Materials[*prim.Material]
	require.NotNil(t, mat)
	assert.Equal(t, float32(1), mat.BaseColor[0])
	assert.Equal(t, float32(1), mat.BaseColor[3])
	assert.Zero(t, mat.Emissive[0])

	// Material bind group bundles uniform + shared placeholder texture and
	// sampler; the placeholder is a single white pixel.
	bg := mat.Bindings.(*gputest.BindGroup)
	require.Len(t, bg.Entries, 3)
	require.Len(t, dev.Textures, 1)
	assert.Equal(t, []byte{255, 255, 255, 255}, dev.Textures[0].Pixels)

	// One frame update yields exactly one visible node.
	visible := scene.NewFrameUpdater(dev).Update(imported, sceneID)
	assert.Len(t, visible, 1)
}

func TestRealTexcoordsPreserved(t *testing.T) {
	doc := triangleDocument()
	uvData := floatBytes(0, 0, 1, 0, 0, 1)
	base := len(doc.Buffers[0].Data)
	doc.Buffers[0].Data = append(doc.Buffers[0].Data, uvData...)
	doc.Buffers[0].ByteLength = len(doc.Buffers[0].Data)
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{Buffer: 0, ByteOffset: base, ByteLength: 24})
	doc.Accessors = append(doc.Accessors, &gltf.Accessor{
		BufferView: intPtr(3), ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec2, Count: 3,
	})
	doc.Meshes[0].Primitives[0].Attributes[gltf.TEXCOORD_0] = 3

	dev := gputest.NewDevice()
	imported, err := newTestImporter(dev).ImportDocument(doc)
	require.NoError(t, err)

	_, sc := imported.DefaultScene()
	prim := imported.Meshes[*imported.Nodes[sc.Roots[0]].Mesh].Primitives[0]
	assert.Equal(t, uvData, prim.Texcoord.(*gputest.Buffer).Data)
}

func TestIndexWidthMapping(t *testing.T) {
	t.Run("uint32 indices", func(t *testing.T) {
		doc := triangleDocument()
		idxData := make([]byte, 12)
		binary.LittleEndian.PutUint32(idxData[4:], 1)
		binary.LittleEndian.PutUint32(idxData[8:], 2)
		base := len(doc.Buffers[0].Data)
		doc.Buffers[0].Data = append(doc.Buffers[0].Data, idxData...)
		doc.Buffers[0].ByteLength = len(doc.Buffers[0].Data)
		doc.BufferViews[2] = &gltf.BufferView{Buffer: 0, ByteOffset: base, ByteLength: 12}
		doc.Accessors[2].ComponentType = gltf.ComponentUint

		imported, err := newTestImporter(gputest.NewDevice()).ImportDocument(doc)
		require.NoError(t, err)

		_, sc := imported.DefaultScene()
		prim := imported.Meshes[*imported.Nodes[sc.Roots[0]].Mesh].Primitives[0]
		assert.Equal(t, scene.IndexFormatUint32, prim.IndexFormat)
	})

	t.Run("ubyte indices are fatal", func(t *testing.T) {
		doc := triangleDocument()
		doc.Accessors[2].ComponentType = gltf.ComponentUbyte

		_, err := newTestImporter(gputest.NewDevice()).ImportDocument(doc)
		assert.ErrorIs(t, err, ErrUnsupportedIndexWidth)
	})
}

func TestLinesPrimitiveSkippedSiblingSurvives(t *testing.T) {
	doc := triangleDocument()
	triangles := doc.Meshes[0].Primitives[0]
	lines := &gltf.Primitive{
		Attributes: map[string]int{gltf.POSITION: 0, gltf.NORMAL: 1},
		Indices:    intPtr(2),
		Mode:       gltf.PrimitiveLines,
	}
	doc.Meshes[0].Primitives = []*gltf.Primitive{lines, triangles}

	imported, err := newTestImporter(gputest.NewDevice()).ImportDocument(doc)
	require.NoError(t, err)

	_, sc := imported.DefaultScene()
	mesh := imported.Meshes[*imported.Nodes[sc.Roots[0]].Mesh]
	require.Len(t, mesh.Primitives, 2)
	assert.Nil(t, mesh.Primitives[0], "lines primitive must leave an empty slot")
	assert.NotNil(t, mesh.Primitives[1], "triangle sibling must still import")
}

func TestInterleavedStrideSkipsPrimitive(t *testing.T) {
	doc := triangleDocument()
	doc.BufferViews[0].ByteStride = 24

	imported, err := newTestImporter(gputest.NewDevice()).ImportDocument(doc)
	require.NoError(t, err)

	_, sc := imported.DefaultScene()
	mesh := imported.Meshes[*imported.Nodes[sc.Roots[0]].Mesh]
	require.Len(t, mesh.Primitives, 1)
	assert.Nil(t, mesh.Primitives[0])
}

func TestMissingRequiredAttributeIsFatal(t *testing.T) {
	doc := triangleDocument()
	delete(doc.Meshes[0].Primitives[0].Attributes, gltf.POSITION)

	_, err := newTestImporter(gputest.NewDevice()).ImportDocument(doc)
	assert.ErrorIs(t, err, ErrMissingAttribute)
}

func TestMissingIndicesIsFatal(t *testing.T) {
	doc := triangleDocument()
	doc.Meshes[0].Primitives[0].Indices = nil

	_, err := newTestImporter(gputest.NewDevice()).ImportDocument(doc)
	assert.ErrorIs(t, err, ErrMissingAttribute)
}

func TestAttributeCountMismatchIsFatal(t *testing.T) {
	t.Run("short texcoord accessor", func(t *testing.T) {
		// Two texcoord elements for three positions would upload an
		// undersized buffer behind a three-vertex index range.
		doc := triangleDocument()
		uvData := floatBytes(0, 0, 1, 0)
		base := len(doc.Buffers[0].Data)
		doc.Buffers[0].Data = append(doc.Buffers[0].Data, uvData...)
		doc.Buffers[0].ByteLength = len(doc.Buffers[0].Data)
		doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{Buffer: 0, ByteOffset: base, ByteLength: 16})
		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			BufferView: intPtr(3), ComponentType: gltf.ComponentFloat, Type: gltf.AccessorVec2, Count: 2,
		})
		doc.Meshes[0].Primitives[0].Attributes[gltf.TEXCOORD_0] = 3

		_, err := newTestImporter(gputest.NewDevice()).ImportDocument(doc)
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})

	t.Run("short normal accessor", func(t *testing.T) {
		doc := triangleDocument()
		doc.Accessors[1].Count = 2

		_, err := newTestImporter(gputest.NewDevice()).ImportDocument(doc)
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})
}

func TestDeterministicIdentitiesWithSeededSource(t *testing.T) {
	first, err := newTestImporter(gputest.NewDevice()).ImportDocument(triangleDocument())
	require.NoError(t, err)
	second, err := newTestImporter(gputest.NewDevice()).ImportDocument(triangleDocument())
	require.NoError(t, err)

	assert.Equal(t, first.DefaultSceneID, second.DefaultSceneID)
	for id := range first.Nodes {
		assert.Contains(t, second.Nodes, id)
	}
	for id := range first.Materials {
		assert.Contains(t, second.Materials, id)
	}

	// Without a seeded source every import mints fresh identities.
	third, err := NewImporter(ImportDeps{
		Device:         gputest.NewDevice(),
		NodeLayout:     gputest.NewLayout("Node Layout"),
		MaterialLayout: gputest.NewLayout("Material Layout"),
	}).ImportDocument(triangleDocument())
	require.NoError(t, err)
	for id := range third.Nodes {
		assert.NotContains(t, first.Nodes, id)
	}
}

func TestProvenanceMatchesSourceIndex(t *testing.T) {
	doc := triangleDocument()
	doc.Nodes = append(doc.Nodes, defaultNode())
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 1)

	imported, err := newTestImporter(gputest.NewDevice()).ImportDocument(doc)
	require.NoError(t, err)

	_, sc := imported.DefaultScene()
	require.Len(t, sc.Roots, 2)
	assert.Equal(t, 0, imported.Nodes[sc.Roots[0]].Source.Index)
	assert.Equal(t, 1, imported.Nodes[sc.Roots[1]].Source.Index)
}

func TestDefaultSceneFallsBackToFirst(t *testing.T) {
	doc := triangleDocument()
	doc.Scene = nil
	doc.Scenes = append(doc.Scenes, &gltf.Scene{})

	imported, err := newTestImporter(gputest.NewDevice()).ImportDocument(doc)
	require.NoError(t, err)

	_, sc := imported.DefaultScene()
	require.NotNil(t, sc)
	assert.Equal(t, 0, sc.Source.Index)
}

func TestNodeTransformForms(t *testing.T) {
	t.Run("decomposed TRS", func(t *testing.T) {
		n := defaultNode()
		n.Translation = [3]float64{1, 2, 3}
		n.Scale = [3]float64{2, 2, 2}

		tr := nodeTransform(n)
		assert.InDelta(t, 1, tr.Position.X(), 1e-6)
		assert.InDelta(t, 2, tr.Position.Y(), 1e-6)
		assert.InDelta(t, 3, tr.Position.Z(), 1e-6)
		assert.InDelta(t, 2, tr.Scale.X(), 1e-6)
	})

	t.Run("explicit matrix", func(t *testing.T) {
		n := defaultNode()
		n.Matrix = identity16
		n.Matrix[12], n.Matrix[13], n.Matrix[14] = 4, 5, 6

		tr := nodeTransform(n)
		assert.InDelta(t, 4, tr.Position.X(), 1e-6)
		assert.InDelta(t, 5, tr.Position.Y(), 1e-6)
		assert.InDelta(t, 6, tr.Position.Z(), 1e-6)
		assert.InDelta(t, 1, tr.Scale.X(), 1e-6)
	})

	t.Run("zero scale survives import and prunes at traversal", func(t *testing.T) {
		doc := triangleDocument()
		doc.Nodes[0].Scale = [3]float64{0, 1, 1}

		dev := gputest.NewDevice()
		imported, err := newTestImporter(dev).ImportDocument(doc)
		require.NoError(t, err)

		sceneID, _ := imported.DefaultScene()
		visible := scene.NewFrameUpdater(dev).Update(imported, sceneID)
		assert.Empty(t, visible)
	})
}
