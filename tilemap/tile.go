package tilemap

import "fmt"

// Tile is a single cell of a layer's tile grid. The four raw bytes are the
// authoritative value; ID and Position are two interpretations of the same
// storage, so writing through either view replaces the whole cell.
//
// The zero Tile is the empty cell.
type Tile [TileSize]byte

// TileFromID returns the tile whose ID view reads id.
func TileFromID(id uint32) Tile {
	var t Tile
	t.SetID(id)
	return t
}

// TileFromPosition returns the tile whose Position view reads (x, y).
func TileFromPosition(x, y int16) Tile {
	var t Tile
	t.SetPosition(x, y)
	return t
}

// ID reads the cell as a flat tile identifier.
func (t Tile) ID() uint32 {
	return byteOrder.Uint32(t[:])
}

// SetID overwrites the cell with the identifier encoding of id.
func (t *Tile) SetID(id uint32) {
	byteOrder.PutUint32(t[:], id)
}

// Position reads the cell as a tileset coordinate pair.
func (t Tile) Position() (x, y int16) {
	return int16(byteOrder.Uint16(t[0:2])), int16(byteOrder.Uint16(t[2:4]))
}

// SetPosition overwrites the cell with the coordinate encoding of (x, y).
func (t *Tile) SetPosition(x, y int16) {
	byteOrder.PutUint16(t[0:2], uint16(x))
	byteOrder.PutUint16(t[2:4], uint16(y))
}

// IsEmpty reports whether the cell holds the zero value.
func (t Tile) IsEmpty() bool {
	return t == Tile{}
}

func (t Tile) String() string {
	return fmt.Sprintf("Tile(0x%08x)", t.ID())
}
