package tilemap

import "encoding/binary"

// The stream carries no version or endianness marker, so compatibility with
// the consuming editor rests on the assumptions pinned here.
const (
	// FormatVersion identifies the wire layout implemented by Read and
	// Write: fixed-width little-endian u32 count and size fields, 4-byte
	// tile cells, uncompressed row-major cell data.
	FormatVersion = 1

	// TileSize is the byte width of one tile cell.
	TileSize = 4
)

// byteOrder applies to every integer field and to both Tile views.
var byteOrder = binary.LittleEndian
