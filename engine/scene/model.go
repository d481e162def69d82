// package scene holds the resident runtime model produced by the importer and
// walked by the per-frame updater. The graph is a tree of nodes reached from
// scene roots; relationships are identity references resolved through the
// ImportedScene lookup tables, never embedded pointers.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/duskglow/loupe/engine/gpu"
)

// IndexFormat is the element width of a primitive's index buffer.
type IndexFormat uint8

const (
	// IndexFormatUint16 marks 2-byte index elements.
	IndexFormatUint16 IndexFormat = iota
	// IndexFormatUint32 marks 4-byte index elements.
	IndexFormatUint32
)

// Scene is a set of root nodes to display together.
type Scene struct {
	// Roots is the ordered sequence of root node identities.
	Roots []NodeID

	// Source records which source scene this came from.
	Source SourceInfo
}

// Node is one element of the scene graph. Its uniform buffer is created once
// at import, sized for a model matrix and a normal matrix, and written every
// frame its subtree is visible; it is never recreated.
type Node struct {
	// Transform is the node's local transform in decomposed form.
	Transform Transform

	// Children is the ordered sequence of child node identities.
	Children []NodeID

	// Mesh references the node's mesh, if it has one.
	Mesh *MeshID

	// Uniform is the node's exclusively-owned GPU uniform buffer.
	Uniform gpu.Buffer

	// Bindings is the bind group referencing Uniform.
	Bindings gpu.BindGroup

	// Source records which source node this came from.
	Source SourceInfo
}

// MeshPrimitive is one drawable part of a mesh with a single material. All
// buffers are exclusively owned by the primitive.
type MeshPrimitive struct {
	// Position holds tightly-packed vec3 positions.
	Position gpu.Buffer

	// Normal holds tightly-packed vec3 normals.
	Normal gpu.Buffer

	// Texcoord holds tightly-packed vec2 texture coordinates, real or
	// zero-filled when the source primitive had none.
	Texcoord gpu.Buffer

	// Index holds the index elements.
	Index gpu.Buffer

	// IndexFormat is the width of the index elements.
	IndexFormat IndexFormat

	// IndexCount is the number of indices to draw.
	IndexCount uint32

	// Material references the primitive's material, if it has one.
	// Primitives without a material are skipped at draw time.
	Material *MaterialID
}

// Mesh is an ordered sequence of optional primitives. A nil slot marks a
// source primitive that was unsupported and intentionally skipped.
type Mesh struct {
	Primitives []*MeshPrimitive

	// Source records which source mesh this came from.
	Source SourceInfo
}

// Material holds the factors of a glTF metallic-roughness material. Texture
// import is stubbed: every material binds the shared placeholder texture and
// sampler, modulated by its factors.
type Material struct {
	// BaseColor is the RGBA base color factor.
	BaseColor mgl32.Vec4

	// Emissive is the RGB emissive factor.
	Emissive mgl32.Vec3

	// Uniform is the material's exclusively-owned GPU uniform buffer.
	Uniform gpu.Buffer

	// Bindings is the bind group referencing Uniform plus the shared
	// placeholder texture and sampler.
	Bindings gpu.BindGroup

	// Source records which source material this came from.
	Source SourceInfo
}

// ImportedScene is the resident runtime model: every entity imported from one
// source document, keyed by runtime identity. Constructed once, atomically, at
// import; topology is immutable afterward (node transforms may be edited).
type ImportedScene struct {
	// DefaultSceneID is the scene displayed when none is explicitly
	// selected: the source's declared default, or an arbitrary scene when
	// the source declares none.
	DefaultSceneID SceneID

	Scenes    map[SceneID]*Scene
	Nodes     map[NodeID]*Node
	Meshes    map[MeshID]*Mesh
	Materials map[MaterialID]*Material
}

// NewImportedScene creates an empty resident scene with initialized tables.
func NewImportedScene() *ImportedScene {
	return &ImportedScene{
		Scenes:    make(map[SceneID]*Scene),
		Nodes:     make(map[NodeID]*Node),
		Meshes:    make(map[MeshID]*Mesh),
		Materials: make(map[MaterialID]*Material),
	}
}

// DefaultScene returns the scene to display and its identity. Falls back to
// an arbitrary scene when DefaultSceneID resolves to nothing; returns nil
// when the document has no scenes at all.
func (s *ImportedScene) DefaultScene() (SceneID, *Scene) {
	if sc, ok := s.Scenes[s.DefaultSceneID]; ok {
		return s.DefaultSceneID, sc
	}
	for id, sc := range s.Scenes {
		return id, sc
	}
	return SceneID{}, nil
}

// Release frees every GPU resource owned by the scene. Destruction is
// whole-graph; the scene must not be used afterwards.
func (s *ImportedScene) Release() {
	for _, n := range s.Nodes {
		if n.Bindings != nil {
			n.Bindings.Release()
		}
		if n.Uniform != nil {
			n.Uniform.Release()
		}
	}
	for _, m := range s.Meshes {
		for _, p := range m.Primitives {
			if p == nil {
				continue
			}
			p.Position.Release()
			p.Normal.Release()
			p.Texcoord.Release()
			p.Index.Release()
		}
	}
	for _, m := range s.Materials {
		if m.Bindings != nil {
			m.Bindings.Release()
		}
		if m.Uniform != nil {
			m.Uniform.Release()
		}
	}
}
