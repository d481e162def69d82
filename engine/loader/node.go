package loader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/duskglow/loupe/engine/gpu"
	"github.com/duskglow/loupe/engine/scene"
)

// Node bind group binding, matching the renderer's per-node layout.
const nodeBindingUniform = 0

var identityMatrix = [16]float64{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 1, 0,
	0, 0, 0, 1,
}

// nodeTransform decodes a node's local transform. A node carries either an
// explicit 4x4 matrix or a decomposed TRS triple; the matrix form is detected
// by comparing against the identity default and run through DecomposeMatrix
// so the runtime representation is always decomposed.
func nodeTransform(node *gltf.Node) scene.Transform {
	if node.Matrix != identityMatrix {
		var m mgl32.Mat4
		for i, v := range node.Matrix {
			m[i] = float32(v)
		}
		return scene.DecomposeMatrix(m)
	}

	return scene.Transform{
		Position: mgl32.Vec3{
			float32(node.Translation[0]),
			float32(node.Translation[1]),
			float32(node.Translation[2]),
		},
		Rotation: mgl32.Quat{
			W: float32(node.Rotation[3]),
			V: mgl32.Vec3{
				float32(node.Rotation[0]),
				float32(node.Rotation[1]),
				float32(node.Rotation[2]),
			},
		},
		Scale: mgl32.Vec3{
			float32(node.Scale[0]),
			float32(node.Scale[1]),
			float32(node.Scale[2]),
		},
	}
}

// importNode builds one resident node: decoded transform, resolved child and
// mesh identities, and a freshly allocated uniform buffer and bind group. The
// uniform is sized for two 4x4 matrices and left uninitialized until the
// first frame update writes it.
//
// nodeIDs must already cover every node in the document: children may
// reference higher source indices, so identities are allocated in a prior
// pass over all nodes.
func (l *importer) importNode(node *gltf.Node, index int, nodeIDs []scene.NodeID, meshIDs []scene.MeshID) (*scene.Node, error) {
	children := make([]scene.NodeID, 0, len(node.Children))
	for _, child := range node.Children {
		childIdx := int(child)
		if childIdx < 0 || childIdx >= len(nodeIDs) {
			return nil, fmt.Errorf("node %d references child %d out of range: %w", index, childIdx, ErrMalformedDocument)
		}
		children = append(children, nodeIDs[childIdx])
	}

	var mesh *scene.MeshID
	if node.Mesh != nil {
		meshIdx := int(*node.Mesh)
		if meshIdx < 0 || meshIdx >= len(meshIDs) {
			return nil, fmt.Errorf("node %d references mesh %d out of range: %w", index, meshIdx, ErrMalformedDocument)
		}
		id := meshIDs[meshIdx]
		mesh = &id
	}

	var uniform scene.GPUNodeUniform
	label := fmt.Sprintf("Node %d", index)
	buf, err := l.deps.Device.CreateBuffer(label+" Uniform Buffer", uint64(uniform.Size()), gpu.BufferUsageUniform)
	if err != nil {
		return nil, fmt.Errorf("create node %d uniform: %w", index, err)
	}
	bindings, err := l.deps.Device.CreateBindGroup(label+" Bind Group", l.deps.NodeLayout, []gpu.BindingResource{
		{Binding: nodeBindingUniform, Buffer: buf},
	})
	if err != nil {
		return nil, fmt.Errorf("create node %d bind group: %w", index, err)
	}

	return &scene.Node{
		Transform: nodeTransform(node),
		Children:  children,
		Mesh:      mesh,
		Uniform:   buf,
		Bindings:  bindings,
		Source:    scene.SourceInfo{Index: index},
	}, nil
}
