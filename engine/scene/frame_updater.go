package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/duskglow/loupe/common"
	"github.com/duskglow/loupe/engine/gpu"
)

// FrameUpdater walks the resident scene graph once per frame, composes world
// transforms top-down, writes each reachable node's uniform buffer and
// produces the ordered visible-node list the renderer draws from.
//
// The walk is iterative (an explicit stack, not recursion) so deep
// hierarchies cannot overflow the call stack. The stack is LIFO, so siblings
// are visited in reverse document order; draw correctness does not depend on
// traversal order since opaque geometry under depth testing is
// order-independent.
type FrameUpdater struct {
	device gpu.Device

	// visible is reused across frames to avoid per-frame allocation.
	visible []NodeID

	stack []traversalEntry
}

type traversalEntry struct {
	id     NodeID
	parent mgl32.Mat4
}

// NewFrameUpdater creates a FrameUpdater that writes node uniforms through
// the given device.
//
// Parameters:
//   - device: the device used for per-frame uniform writes
//
// Returns:
//   - *FrameUpdater: the updater, ready for per-frame Update calls
func NewFrameUpdater(device gpu.Device) *FrameUpdater {
	return &FrameUpdater{device: device}
}

// Visible returns the node list produced by the most recent Update. The
// slice is owned by the updater and is overwritten by the next Update.
func (f *FrameUpdater) Visible() []NodeID {
	return f.visible
}

// Update walks the given scene of s and refreshes every reachable node's
// uniform buffer. A node whose local scale has a zero product is pruned
// together with its whole subtree: its transform is non-invertible, so the
// normal matrix cannot be computed. Pruning is re-evaluated from current
// transform values every frame, so a transform edited back to non-degenerate
// becomes visible again automatically.
//
// Parameters:
//   - s: the resident scene
//   - sceneID: identity of the scene whose roots seed the walk
//
// Returns:
//   - []NodeID: the nodes visited this frame, in traversal order; owned by
//     the updater and overwritten on the next call
func (f *FrameUpdater) Update(s *ImportedScene, sceneID SceneID) []NodeID {
	f.visible = f.visible[:0]
	f.stack = f.stack[:0]

	sc, ok := s.Scenes[sceneID]
	if !ok {
		common.LogWarn("frame update: unknown scene %s", sceneID)
		return f.visible
	}

	for _, root := range sc.Roots {
		f.stack = append(f.stack, traversalEntry{id: root, parent: mgl32.Ident4()})
	}

	for len(f.stack) > 0 {
		entry := f.stack[len(f.stack)-1]
		f.stack = f.stack[:len(f.stack)-1]

		node, ok := s.Nodes[entry.id]
		if !ok {
			common.LogWarn("frame update: dangling node reference %s", entry.id)
			continue
		}
		if node.Transform.Degenerate() {
			continue
		}

		world := entry.parent.Mul4(node.Transform.Matrix())
		normal := world.Mat3().Inv().Transpose()

		uniform := GPUNodeUniform{
			Model:  [16]float32(world),
			Normal: [16]float32(normal.Mat4()),
		}
		f.device.WriteBuffer(node.Uniform, 0, uniform.Marshal())
		f.visible = append(f.visible, entry.id)

		for _, child := range node.Children {
			f.stack = append(f.stack, traversalEntry{id: child, parent: world})
		}
	}

	return f.visible
}
