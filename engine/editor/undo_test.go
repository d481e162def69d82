package editor

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duskglow/loupe/engine/scene"
)

func newEditableScene(t *testing.T) (*scene.ImportedScene, scene.NodeID) {
	t.Helper()
	s := scene.NewImportedScene()
	id := scene.NodeID(uuid.New())
	s.Nodes[id] = &scene.Node{Transform: scene.IdentityTransform()}
	return s, id
}

func TestApplyReturnsInverse(t *testing.T) {
	s, id := newEditableScene(t)

	cmd := SetNodePosition{Node: id, Axis: AxisY, Value: 3}
	inverse, err := cmd.Apply(s)
	require.NoError(t, err)
	assert.Equal(t, float32(3), s.Nodes[id].Transform.Position.Y())

	_, err = inverse.Apply(s)
	require.NoError(t, err)
	assert.Equal(t, float32(0), s.Nodes[id].Transform.Position.Y())
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s, id := newEditableScene(t)
	m := NewUndoManager()

	require.NoError(t, m.Apply(s, SetNodeScale{Node: id, Axis: AxisX, Value: 2}))
	require.NoError(t, m.Apply(s, SetNodeScale{Node: id, Axis: AxisX, Value: 5}))
	assert.Equal(t, float32(5), s.Nodes[id].Transform.Scale.X())

	require.NoError(t, m.Undo(s))
	assert.Equal(t, float32(2), s.Nodes[id].Transform.Scale.X())

	require.NoError(t, m.Undo(s))
	assert.Equal(t, float32(1), s.Nodes[id].Transform.Scale.X())
	assert.False(t, m.CanUndo())

	require.NoError(t, m.Redo(s))
	require.NoError(t, m.Redo(s))
	assert.Equal(t, float32(5), s.Nodes[id].Transform.Scale.X())
	assert.False(t, m.CanRedo())
}

func TestFreshMutationClearsRedo(t *testing.T) {
	s, id := newEditableScene(t)
	m := NewUndoManager()

	require.NoError(t, m.Apply(s, SetNodePosition{Node: id, Axis: AxisX, Value: 1}))
	require.NoError(t, m.Undo(s))
	require.True(t, m.CanRedo())

	require.NoError(t, m.Apply(s, SetNodePosition{Node: id, Axis: AxisZ, Value: 7}))
	assert.False(t, m.CanRedo())
	assert.True(t, m.CanUndo())
}

func TestUnknownNodeLeavesHistoryUntouched(t *testing.T) {
	s, _ := newEditableScene(t)
	m := NewUndoManager()

	dangling := scene.NodeID(uuid.New())
	err := m.Apply(s, SetNodePosition{Node: dangling, Axis: AxisX, Value: 1})
	require.ErrorIs(t, err, ErrUnknownNode)
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
}

func TestEmptyStacksAreNoOps(t *testing.T) {
	s, _ := newEditableScene(t)
	m := NewUndoManager()

	assert.NoError(t, m.Undo(s))
	assert.NoError(t, m.Redo(s))
}
