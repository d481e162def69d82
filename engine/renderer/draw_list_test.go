package renderer

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskglow/loupe/engine/scene"
)

func newDrawListScene() (*scene.ImportedScene, *scene.Node, *scene.MeshPrimitive, *scene.Material) {
	s := scene.NewImportedScene()

	materialID := scene.MaterialID(uuid.New())
	material := &scene.Material{}
	s.Materials[materialID] = material

	primitive := &scene.MeshPrimitive{
		IndexFormat: scene.IndexFormatUint16,
		IndexCount:  3,
		Material:    &materialID,
	}
	meshID := scene.MeshID(uuid.New())
	s.Meshes[meshID] = &scene.Mesh{Primitives: []*scene.MeshPrimitive{primitive}}

	nodeID := scene.NodeID(uuid.New())
	node := &scene.Node{Mesh: &meshID}
	s.Nodes[nodeID] = node

	return s, node, primitive, material
}

func sceneNodeIDs(s *scene.ImportedScene) []scene.NodeID {
	ids := make([]scene.NodeID, 0, len(s.Nodes))
	for id := range s.Nodes {
		ids = append(ids, id)
	}
	return ids
}

func TestBuildDrawListSinglePrimitive(t *testing.T) {
	s, node, primitive, material := newDrawListScene()

	calls := BuildDrawList(s, sceneNodeIDs(s))
	require.Len(t, calls, 1)

	assert.Same(t, node, calls[0].Node)
	assert.Same(t, primitive, calls[0].Primitive)
	assert.Same(t, material, calls[0].Material)
	assert.Equal(t, uint32(3), calls[0].Primitive.IndexCount)
}

func TestBuildDrawListSkipsMeshlessNodes(t *testing.T) {
	s, _, _, _ := newDrawListScene()

	emptyID := scene.NodeID(uuid.New())
	s.Nodes[emptyID] = &scene.Node{}

	calls := BuildDrawList(s, sceneNodeIDs(s))
	assert.Len(t, calls, 1)
}

func TestBuildDrawListSkipsNilPrimitiveSlots(t *testing.T) {
	s, _, primitive, _ := newDrawListScene()

	// Skipped primitives leave nil slots so sibling indices stay stable.
	for _, mesh := range s.Meshes {
		mesh.Primitives = append([]*scene.MeshPrimitive{nil}, mesh.Primitives...)
	}

	calls := BuildDrawList(s, sceneNodeIDs(s))
	require.Len(t, calls, 1)
	assert.Same(t, primitive, calls[0].Primitive)
}

func TestBuildDrawListSkipsUnresolvableMaterial(t *testing.T) {
	s, _, primitive, _ := newDrawListScene()

	danglingID := scene.MaterialID(uuid.New())
	primitive.Material = &danglingID

	calls := BuildDrawList(s, sceneNodeIDs(s))
	assert.Empty(t, calls)
}

func TestBuildDrawListFollowsVisibleOrder(t *testing.T) {
	s, first, _, _ := newDrawListScene()

	materialID := scene.MaterialID(uuid.New())
	s.Materials[materialID] = &scene.Material{}
	meshID := scene.MeshID(uuid.New())
	s.Meshes[meshID] = &scene.Mesh{Primitives: []*scene.MeshPrimitive{
		{IndexFormat: scene.IndexFormatUint32, IndexCount: 6, Material: &materialID},
	}}
	secondID := scene.NodeID(uuid.New())
	second := &scene.Node{Mesh: &meshID}
	s.Nodes[secondID] = second

	var firstID scene.NodeID
	for id, n := range s.Nodes {
		if n == first {
			firstID = id
		}
	}

	calls := BuildDrawList(s, []scene.NodeID{secondID, firstID})
	require.Len(t, calls, 2)
	assert.Same(t, second, calls[0].Node)
	assert.Same(t, first, calls[1].Node)
}
