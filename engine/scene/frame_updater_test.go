package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskglow/loupe/engine/gpu/gputest"
)

func addTestNode(t *testing.T, dev *gputest.Device, s *ImportedScene, tr Transform, children ...NodeID) NodeID {
	t.Helper()
	var uniform GPUNodeUniform
	buf, err := dev.CreateBuffer("Node Uniform", uint64(uniform.Size()), 0)
	require.NoError(t, err)

	id := NodeID(uuid.New())
	s.Nodes[id] = &Node{
		Transform: tr,
		Children:  children,
		Uniform:   buf,
	}
	return id
}

func translated(x, y, z float32) Transform {
	tr := IdentityTransform()
	tr.Position = mgl32.Vec3{x, y, z}
	return tr
}

func nodeModelMatrix(t *testing.T, s *ImportedScene, id NodeID) mgl32.Mat4 {
	t.Helper()
	floats := s.Nodes[id].Uniform.(*gputest.Buffer).Floats()
	require.Len(t, floats, 32)
	var m mgl32.Mat4
	copy(m[:], floats[:16])
	return m
}

func TestUpdateComposesParentChildTranslation(t *testing.T) {
	dev := gputest.NewDevice()
	s := NewImportedScene()

	child := addTestNode(t, dev, s, translated(0, 1, 0))
	parent := addTestNode(t, dev, s, translated(1, 0, 0), child)

	sceneID := SceneID(uuid.New())
	s.Scenes[sceneID] = &Scene{Roots: []NodeID{parent}}

	visible := NewFrameUpdater(dev).Update(s, sceneID)
	require.Len(t, visible, 2)

	world := nodeModelMatrix(t, s, child)
	assert.InDelta(t, 1, world.At(0, 3), epsilon)
	assert.InDelta(t, 1, world.At(1, 3), epsilon)
	assert.InDelta(t, 0, world.At(2, 3), epsilon)
}

func TestUpdateWritesNormalMatrix(t *testing.T) {
	dev := gputest.NewDevice()
	s := NewImportedScene()

	tr := IdentityTransform()
	tr.Scale = mgl32.Vec3{2, 2, 2}
	node := addTestNode(t, dev, s, tr)

	sceneID := SceneID(uuid.New())
	s.Scenes[sceneID] = &Scene{Roots: []NodeID{node}}

	NewFrameUpdater(dev).Update(s, sceneID)

	floats := s.Nodes[node].Uniform.(*gputest.Buffer).Floats()
	require.Len(t, floats, 32)
	// Inverse-transpose of a uniform scale by 2 is a uniform scale by 0.5.
	normal := floats[16:]
	assert.InDelta(t, 0.5, normal[0], epsilon)
	assert.InDelta(t, 0.5, normal[5], epsilon)
	assert.InDelta(t, 0.5, normal[10], epsilon)
	assert.InDelta(t, 1.0, normal[15], epsilon)
}

func TestDegenerateScalePrunesSubtree(t *testing.T) {
	dev := gputest.NewDevice()
	s := NewImportedScene()

	grandchild := addTestNode(t, dev, s, IdentityTransform())
	degenerate := IdentityTransform()
	degenerate.Scale = mgl32.Vec3{0, 1, 1}
	pruned := addTestNode(t, dev, s, degenerate, grandchild)
	sibling := addTestNode(t, dev, s, IdentityTransform())

	sceneID := SceneID(uuid.New())
	s.Scenes[sceneID] = &Scene{Roots: []NodeID{pruned, sibling}}

	visible := NewFrameUpdater(dev).Update(s, sceneID)
	require.Len(t, visible, 1)
	assert.Equal(t, sibling, visible[0])

	// Pruned nodes must not have their uniforms touched.
	assert.Zero(t, s.Nodes[pruned].Uniform.(*gputest.Buffer).Writes)
	assert.Zero(t, s.Nodes[grandchild].Uniform.(*gputest.Buffer).Writes)
}

func TestPruningReevaluatedEveryFrame(t *testing.T) {
	dev := gputest.NewDevice()
	s := NewImportedScene()

	tr := IdentityTransform()
	tr.Scale = mgl32.Vec3{0, 1, 1}
	node := addTestNode(t, dev, s, tr)

	sceneID := SceneID(uuid.New())
	s.Scenes[sceneID] = &Scene{Roots: []NodeID{node}}

	updater := NewFrameUpdater(dev)
	assert.Empty(t, updater.Update(s, sceneID))

	// Editing the transform back to non-degenerate makes the node visible
	// again with no other intervention.
	s.Nodes[node].Transform.Scale = mgl32.Vec3{1, 1, 1}
	assert.Len(t, updater.Update(s, sceneID), 1)
}

func TestUniformWrittenUnconditionallyEachFrame(t *testing.T) {
	dev := gputest.NewDevice()
	s := NewImportedScene()

	node := addTestNode(t, dev, s, IdentityTransform())
	sceneID := SceneID(uuid.New())
	s.Scenes[sceneID] = &Scene{Roots: []NodeID{node}}

	updater := NewFrameUpdater(dev)
	updater.Update(s, sceneID)
	updater.Update(s, sceneID)
	updater.Update(s, sceneID)

	assert.Equal(t, 3, s.Nodes[node].Uniform.(*gputest.Buffer).Writes)
}

func TestUpdateUnknownScene(t *testing.T) {
	dev := gputest.NewDevice()
	s := NewImportedScene()
	assert.Empty(t, NewFrameUpdater(dev).Update(s, SceneID(uuid.New())))
}
