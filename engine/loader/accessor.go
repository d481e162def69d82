package loader

import (
	"fmt"

	"github.com/qmuntal/gltf"
)

// componentByteSize returns the byte width of one accessor component, or 0
// for an unrecognized component type.
func componentByteSize(c gltf.ComponentType) int {
	switch c {
	case gltf.ComponentByte, gltf.ComponentUbyte:
		return 1
	case gltf.ComponentShort, gltf.ComponentUshort:
		return 2
	case gltf.ComponentUint, gltf.ComponentFloat:
		return 4
	default:
		return 0
	}
}

// componentsPerElement returns how many components one accessor element has,
// or 0 for an unrecognized accessor type.
func componentsPerElement(t gltf.AccessorType) int {
	switch t {
	case gltf.AccessorScalar:
		return 1
	case gltf.AccessorVec2:
		return 2
	case gltf.AccessorVec3:
		return 3
	case gltf.AccessorVec4:
		return 4
	case gltf.AccessorMat2:
		return 4
	case gltf.AccessorMat3:
		return 9
	case gltf.AccessorMat4:
		return 16
	default:
		return 0
	}
}

// accessorBytes resolves an accessor's owning buffer view and returns the raw
// byte range holding its tightly-packed elements. Pure slicing: the caller is
// responsible for uploading.
//
// When expectedStride is positive, the view's effective stride (its declared
// stride, or the accessor's natural element size when the view declares none)
// must match exactly, or ErrUnsupportedLayout is returned. This rejects
// interleaved and padded vertex streams, which the fixed three-buffer vertex
// layout cannot express.
//
// Parameters:
//   - doc: the source document
//   - accessorIdx: index of the accessor in doc.Accessors
//   - expectedStride: required element stride in bytes, or 0 to accept the
//     accessor's natural size
//
// Returns:
//   - []byte: the accessor's bytes, aliasing the document's buffer data
//   - error: ErrMalformedDocument or ErrUnsupportedLayout wrapped with context
func accessorBytes(doc *gltf.Document, accessorIdx int, expectedStride int) ([]byte, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range: %w", accessorIdx, ErrMalformedDocument)
	}
	acc := doc.Accessors[accessorIdx]
	if acc.BufferView == nil {
		return nil, fmt.Errorf("accessor %d has no buffer view: %w", accessorIdx, ErrMalformedDocument)
	}
	viewIdx := int(*acc.BufferView)
	if viewIdx < 0 || viewIdx >= len(doc.BufferViews) {
		return nil, fmt.Errorf("accessor %d references buffer view %d out of range: %w", accessorIdx, viewIdx, ErrMalformedDocument)
	}
	view := doc.BufferViews[viewIdx]

	elemSize := componentByteSize(acc.ComponentType) * componentsPerElement(acc.Type)
	if elemSize == 0 {
		return nil, fmt.Errorf("accessor %d has unrecognized type %v/%v: %w", accessorIdx, acc.Type, acc.ComponentType, ErrMalformedDocument)
	}

	stride := int(view.ByteStride)
	if stride == 0 {
		stride = elemSize
	}
	if expectedStride > 0 && stride != expectedStride {
		return nil, fmt.Errorf("accessor %d has stride %d, need %d: %w", accessorIdx, stride, expectedStride, ErrUnsupportedLayout)
	}

	bufIdx := int(view.Buffer)
	if bufIdx < 0 || bufIdx >= len(doc.Buffers) {
		return nil, fmt.Errorf("buffer view %d references buffer %d out of range: %w", viewIdx, bufIdx, ErrMalformedDocument)
	}
	data := doc.Buffers[bufIdx].Data
	if len(data) == 0 {
		return nil, fmt.Errorf("buffer %d has no data: %w", bufIdx, ErrMalformedDocument)
	}

	start := int(view.ByteOffset) + int(acc.ByteOffset)
	length := elemSize * int(acc.Count)
	if start < 0 || start+length > len(data) {
		return nil, fmt.Errorf("accessor %d byte range [%d, %d) exceeds buffer of %d bytes: %w",
			accessorIdx, start, start+length, len(data), ErrMalformedDocument)
	}
	return data[start : start+length], nil
}
