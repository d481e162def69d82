package loader

import (
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestAccessorBytesTightlyPacked(t *testing.T) {
	data := make([]byte, 48)
	for i := range data {
		data[i] = byte(i)
	}
	doc := &gltf.Document{
		Buffers:     []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteOffset: 12, ByteLength: 36}},
		Accessors: []*gltf.Accessor{{
			BufferView:    intPtr(0),
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         2,
		}},
	}

	got, err := accessorBytes(doc, 0, 12)
	require.NoError(t, err)
	assert.Equal(t, data[12:36], got)
}

func TestAccessorBytesHonorsAccessorOffset(t *testing.T) {
	data := make([]byte, 64)
	doc := &gltf.Document{
		Buffers:     []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteOffset: 8, ByteLength: 56}},
		Accessors: []*gltf.Accessor{{
			BufferView:    intPtr(0),
			ByteOffset:    16,
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec2,
			Count:         3,
		}},
	}

	got, err := accessorBytes(doc, 0, 8)
	require.NoError(t, err)
	assert.Len(t, got, 24)
	assert.Equal(t, data[24:48], got)
}

func TestAccessorBytesRejectsInterleavedStride(t *testing.T) {
	doc := &gltf.Document{
		Buffers:     []*gltf.Buffer{{ByteLength: 96, Data: make([]byte, 96)}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: 96, ByteStride: 24}},
		Accessors: []*gltf.Accessor{{
			BufferView:    intPtr(0),
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         4,
		}},
	}

	_, err := accessorBytes(doc, 0, 12)
	assert.ErrorIs(t, err, ErrUnsupportedLayout)
}

func TestAccessorBytesNoExpectedStrideAcceptsNatural(t *testing.T) {
	doc := &gltf.Document{
		Buffers:     []*gltf.Buffer{{ByteLength: 12, Data: make([]byte, 12)}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: 12}},
		Accessors: []*gltf.Accessor{{
			BufferView:    intPtr(0),
			ComponentType: gltf.ComponentUshort,
			Type:          gltf.AccessorScalar,
			Count:         6,
		}},
	}

	got, err := accessorBytes(doc, 0, 0)
	require.NoError(t, err)
	assert.Len(t, got, 12)
}

func TestAccessorBytesOutOfBounds(t *testing.T) {
	doc := &gltf.Document{
		Buffers:     []*gltf.Buffer{{ByteLength: 24, Data: make([]byte, 24)}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: 24}},
		Accessors: []*gltf.Accessor{{
			BufferView:    intPtr(0),
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         3, // 36 bytes, buffer has 24
		}},
	}

	_, err := accessorBytes(doc, 0, 12)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}

func TestAccessorBytesMissingBufferView(t *testing.T) {
	doc := &gltf.Document{
		Accessors: []*gltf.Accessor{{
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         1,
		}},
	}

	_, err := accessorBytes(doc, 0, 12)
	assert.ErrorIs(t, err, ErrMalformedDocument)

	_, err = accessorBytes(doc, 5, 12)
	assert.ErrorIs(t, err, ErrMalformedDocument)
}
