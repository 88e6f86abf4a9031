package tilemap

import "bytes"

// SubLayer is a per-cell side channel of a layer: one raw-cell grid named by
// a byte-string tag. A sublayer always has the dimensions of its layer; only
// Layer.Resize can change them.
type SubLayer struct {
	tag  []byte
	grid *Grid
}

// Tag returns a copy of the sublayer's tag. Tags are immutable once the
// sublayer exists, so the layer's uniqueness guarantee cannot be broken from
// outside.
func (s *SubLayer) Tag() []byte { return bytes.Clone(s.tag) }

func (s *SubLayer) Width() int    { return s.grid.width }
func (s *SubLayer) Height() int   { return s.grid.height }
func (s *SubLayer) CellSize() int { return s.grid.cellSize }

// Cell returns the bytes of the cell at (x, y), aliasing the sublayer.
func (s *SubLayer) Cell(x, y int) ([]byte, error) { return s.grid.Cell(x, y) }

// SetCell overwrites the cell at (x, y) with exactly CellSize bytes.
func (s *SubLayer) SetCell(x, y int, cell []byte) error { return s.grid.SetCell(x, y, cell) }

// Bytes exposes the raw row-major cell data, aliasing the sublayer.
func (s *SubLayer) Bytes() []byte { return s.grid.Bytes() }

// Equal reports whether the sublayers have the same tag, dimensions, cell
// size and cell bytes.
func (s *SubLayer) Equal(other *SubLayer) bool {
	return bytes.Equal(s.tag, other.tag) && s.grid.Equal(other.grid)
}

// Clone returns an independent copy of the sublayer.
func (s *SubLayer) Clone() *SubLayer {
	return &SubLayer{tag: bytes.Clone(s.tag), grid: s.grid.Clone()}
}
