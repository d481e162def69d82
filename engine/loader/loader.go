// package loader imports a glTF 2.0 document into the resident scene model:
// GPU vertex/index buffers, material and node uniforms and bind groups, and
// the identity tables the frame updater walks. Import is one-shot and
// synchronous; it either fully succeeds or fails with no partial scene.
package loader

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/google/uuid"
	"github.com/qmuntal/gltf"

	"github.com/duskglow/loupe/common"
	"github.com/duskglow/loupe/engine/gpu"
	"github.com/duskglow/loupe/engine/scene"
)

// ImportDeps carries the renderer-owned resources the importer binds scene
// resources against. The bind group layouts must be the same ones the render
// pipeline was built from.
type ImportDeps struct {
	// Device creates and writes the imported GPU resources.
	Device gpu.Device

	// NodeLayout is the per-node bind group layout (one uniform buffer).
	NodeLayout gpu.BindGroupLayout

	// MaterialLayout is the material bind group layout (uniform buffer,
	// texture, sampler).
	MaterialLayout gpu.BindGroupLayout
}

// Importer imports glTF documents into resident scenes.
type Importer interface {
	// Import reads the glTF or GLB file at path, including its referenced
	// binary buffers, and imports it.
	//
	// Parameters:
	//   - path: filesystem path of the .gltf or .glb document
	//
	// Returns:
	//   - *scene.ImportedScene: the resident scene
	//   - error: any fatal document or resource creation error
	Import(path string) (*scene.ImportedScene, error)

	// ImportDocument imports an already-parsed document. The document and
	// its buffers are read-only inputs and are never mutated.
	ImportDocument(doc *gltf.Document) (*scene.ImportedScene, error)
}

type importer struct {
	deps  ImportDeps
	newID func() uuid.UUID

	workers   int
	stagePool worker.DynamicWorkerPool

	// white and sampler are the process-wide placeholder texture resources
	// shared by every imported material, created on first use.
	white   gpu.TextureView
	sampler gpu.Sampler
}

var _ Importer = &importer{}

// NewImporter creates an Importer with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - deps: device and bind group layouts the imported resources target
//   - options: functional options to configure the importer
//
// Returns:
//   - Importer: the configured importer
func NewImporter(deps ImportDeps, options ...ImporterOption) Importer {
	l := &importer{
		deps:    deps,
		newID:   uuid.New,
		workers: 4,
	}
	for _, opt := range options {
		opt(l)
	}
	l.stagePool = worker.NewDynamicWorkerPool(l.workers, 256, 1*time.Second)
	return l
}

func (l *importer) Import(path string) (*scene.ImportedScene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return l.ImportDocument(doc)
}

// ImportDocument imports in dependency order: materials first, then meshes
// (which resolve material identities), then nodes (which resolve mesh
// identities and need all node identities pre-allocated for forward child
// references), then scenes. Identity assignment happens on the importing
// goroutine in document order, so a deterministic ID source yields
// deterministic identities.
func (l *importer) ImportDocument(doc *gltf.Document) (*scene.ImportedScene, error) {
	if err := l.ensurePlaceholderTexture(); err != nil {
		return nil, err
	}

	out := scene.NewImportedScene()

	materialIDs := make([]scene.MaterialID, len(doc.Materials))
	for i, mat := range doc.Materials {
		id := scene.MaterialID(l.newID())
		imported, err := l.importMaterial(mat, i)
		if err != nil {
			return nil, err
		}
		materialIDs[i] = id
		out.Materials[id] = imported
	}

	meshIDs, err := l.importMeshes(doc, out, materialIDs)
	if err != nil {
		return nil, err
	}

	nodeIDs := make([]scene.NodeID, len(doc.Nodes))
	for i := range doc.Nodes {
		nodeIDs[i] = scene.NodeID(l.newID())
	}
	for i, node := range doc.Nodes {
		imported, err := l.importNode(node, i, nodeIDs, meshIDs)
		if err != nil {
			return nil, err
		}
		out.Nodes[nodeIDs[i]] = imported
	}

	sceneIDs := make([]scene.SceneID, len(doc.Scenes))
	for i, src := range doc.Scenes {
		roots := make([]scene.NodeID, 0, len(src.Nodes))
		for _, n := range src.Nodes {
			rootIdx := int(n)
			if rootIdx < 0 || rootIdx >= len(nodeIDs) {
				return nil, fmt.Errorf("scene %d references node %d out of range: %w", i, rootIdx, ErrMalformedDocument)
			}
			roots = append(roots, nodeIDs[rootIdx])
		}
		id := scene.SceneID(l.newID())
		sceneIDs[i] = id
		out.Scenes[id] = &scene.Scene{Roots: roots, Source: scene.SourceInfo{Index: i}}
	}

	if doc.Scene != nil && int(*doc.Scene) < len(sceneIDs) {
		out.DefaultSceneID = sceneIDs[int(*doc.Scene)]
	} else if len(sceneIDs) > 0 {
		out.DefaultSceneID = sceneIDs[0]
	}

	common.LogInfo("imported %d materials, %d meshes, %d nodes, %d scenes",
		len(out.Materials), len(out.Meshes), len(out.Nodes), len(out.Scenes))
	return out, nil
}

// importMeshes stages every primitive of every mesh on the worker pool, then
// uploads the survivors sequentially in document order so buffer creation is
// deterministic. Unsupported topology and incompatible strides leave nil
// primitive slots; everything else fatal-fails the import.
func (l *importer) importMeshes(doc *gltf.Document, out *scene.ImportedScene, materialIDs []scene.MaterialID) ([]scene.MeshID, error) {
	type stageResult struct {
		staged *stagedPrimitive
		err    error
	}
	results := make([][]stageResult, len(doc.Meshes))

	// Phase 1: parallel CPU staging. A WaitGroup provides the barrier since
	// the pool itself outlives this import.
	var wg sync.WaitGroup
	taskID := 0
	for mi, mesh := range doc.Meshes {
		results[mi] = make([]stageResult, len(mesh.Primitives))
		for pi, prim := range mesh.Primitives {
			wg.Add(1)
			miCap, piCap, primCap := mi, pi, prim
			l.stagePool.SubmitTask(worker.Task{
				ID: taskID,
				Do: func() (any, error) {
					defer wg.Done()
					staged, err := stagePrimitive(doc, primCap)
					results[miCap][piCap] = stageResult{staged: staged, err: err}
					return nil, nil
				},
			})
			taskID++
		}
	}
	wg.Wait()

	// Phase 2: sequential GPU upload in document order.
	meshIDs := make([]scene.MeshID, len(doc.Meshes))
	for mi, mesh := range doc.Meshes {
		primitives := make([]*scene.MeshPrimitive, len(mesh.Primitives))
		for pi := range mesh.Primitives {
			res := results[mi][pi]
			switch {
			case res.err != nil && isPrimitiveRecoverable(res.err):
				common.LogWarn("mesh %d primitive %d skipped: %v", mi, pi, res.err)
			case res.err != nil:
				return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, res.err)
			case res.staged == nil:
				common.LogWarn("mesh %d primitive %d skipped: unsupported topology %v", mi, pi, mesh.Primitives[pi].Mode)
			default:
				label := fmt.Sprintf("Mesh %d Primitive %d", mi, pi)
				prim, err := uploadPrimitive(l.deps.Device, label, res.staged, materialIDs)
				if err != nil {
					return nil, fmt.Errorf("mesh %d primitive %d: %w", mi, pi, err)
				}
				primitives[pi] = prim
			}
		}
		id := scene.MeshID(l.newID())
		meshIDs[mi] = id
		out.Meshes[id] = &scene.Mesh{Primitives: primitives, Source: scene.SourceInfo{Index: mi}}
	}
	return meshIDs, nil
}

// isPrimitiveRecoverable reports whether a staging error is contained at
// primitive level (skip with warning) rather than fatal for the import.
func isPrimitiveRecoverable(err error) bool {
	return errors.Is(err, ErrUnsupportedLayout)
}

// ensurePlaceholderTexture lazily creates the shared white 1x1 texture and
// sampler every material binds while texture import remains stubbed.
func (l *importer) ensurePlaceholderTexture() error {
	if l.white != nil {
		return nil
	}
	white, err := l.deps.Device.CreateTextureRGBA("Placeholder White Texture", []byte{255, 255, 255, 255}, 1, 1)
	if err != nil {
		return fmt.Errorf("create placeholder texture: %w", err)
	}
	sampler, err := l.deps.Device.CreateSampler("Placeholder Sampler")
	if err != nil {
		return fmt.Errorf("create placeholder sampler: %w", err)
	}
	l.white = white
	l.sampler = sampler
	return nil
}
