package archive

// CupFileSignature identifies a cup archive. It is followed immediately by
// the header block, which is followed immediately by the content block.
var CupFileSignature = []byte("__C__U__P__")

const (
	// Fixed widths of the header prefix, in order of appearance.
	OffsetFieldLength     = 8
	TimestampFieldLength  = 4
	SizeFieldLength       = 4
	PathLengthFieldLength = 2

	// HeaderPrefixLength is the size of the fixed region before the path.
	HeaderPrefixLength = OffsetFieldLength + TimestampFieldLength + SizeFieldLength + PathLengthFieldLength

	// MaxPathLength is the largest path byte length the 2-byte length
	// field can describe.
	MaxPathLength = 1<<16 - 1

	// ChunkSize bounds the buffer used for content streaming. Any chunk
	// size produces a byte-identical archive.
	ChunkSize = 4096
)
