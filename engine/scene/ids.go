package scene

import "github.com/google/uuid"

// Runtime identities are opaque tokens assigned once at import time. They are
// deliberately not the source document's indices so that scenes composed from
// several sources can coexist in one lookup table; the original index is kept
// separately as provenance (SourceInfo) for diagnostics.

// NodeID identifies a node in the resident scene graph.
type NodeID uuid.UUID

func (id NodeID) String() string { return uuid.UUID(id).String() }

// MeshID identifies an imported mesh.
type MeshID uuid.UUID

func (id MeshID) String() string { return uuid.UUID(id).String() }

// MaterialID identifies an imported material.
type MaterialID uuid.UUID

func (id MaterialID) String() string { return uuid.UUID(id).String() }

// SceneID identifies a scene (a set of root nodes).
type SceneID uuid.UUID

func (id SceneID) String() string { return uuid.UUID(id).String() }

// SourceInfo is the provenance tag recording which source document element an
// imported entity came from. Diagnostic only; never used for lookups.
type SourceInfo struct {
	// Index is the element's index in its source document array.
	Index int
}
