package renderer

import (
	"github.com/duskglow/loupe/common"
	"github.com/duskglow/loupe/engine/scene"
)

// DrawCall pairs one mesh primitive with the node and material state it is
// drawn with. One draw call maps to exactly one indexed draw command.
type DrawCall struct {
	Node      *scene.Node
	Primitive *scene.MeshPrimitive
	Material  *scene.Material
}

// BuildDrawList flattens the visible node set into an ordered list of draw
// calls. Nodes without a mesh contribute nothing; primitive slots left nil by
// the importer (skipped topologies or layouts) are passed over, as is any
// primitive whose material cannot be resolved.
//
// The list order follows the visible slice, which the frame updater produces
// in traversal order, so draw order is deterministic per frame.
func BuildDrawList(s *scene.ImportedScene, visible []scene.NodeID) []DrawCall {
	calls := make([]DrawCall, 0, len(visible))

	for _, id := range visible {
		node, ok := s.Nodes[id]
		if !ok || node.Mesh == nil {
			continue
		}

		mesh, ok := s.Meshes[*node.Mesh]
		if !ok {
			common.LogWarn("draw list: node %s references unknown mesh %s", id, *node.Mesh)
			continue
		}

		for _, prim := range mesh.Primitives {
			if prim == nil {
				continue
			}
			if prim.Material == nil {
				common.LogWarn("draw list: primitive in mesh %d has no material", mesh.Source.Index)
				continue
			}
			material, ok := s.Materials[*prim.Material]
			if !ok {
				common.LogWarn("draw list: primitive references unknown material %s", *prim.Material)
				continue
			}
			calls = append(calls, DrawCall{
				Node:      node,
				Primitive: prim,
				Material:  material,
			})
		}
	}

	return calls
}
