package loader

import "errors"

var (
	// ErrMalformedDocument marks a source document the importer cannot
	// trust: out-of-range references, missing buffer data, impossible
	// byte ranges. Always fatal for the whole import.
	ErrMalformedDocument = errors.New("malformed glTF document")

	// ErrMissingAttribute marks a primitive lacking a required vertex
	// attribute (position, normal) or index accessor. Fatal.
	ErrMissingAttribute = errors.New("missing required attribute")

	// ErrUnsupportedLayout marks an interleaved or padded vertex stream
	// the fixed pipeline layout cannot express. Contained at primitive
	// level: the primitive is skipped with a warning.
	ErrUnsupportedLayout = errors.New("unsupported buffer layout")

	// ErrUnsupportedIndexWidth marks an index accessor whose element width
	// is neither 2 nor 4 bytes. Fatal: the index format has no narrower or
	// wider representation.
	ErrUnsupportedIndexWidth = errors.New("unsupported index element width")
)
