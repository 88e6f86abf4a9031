package tilemap

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds = errors.New("tilemap: cell out of bounds")
	ErrCellSize    = errors.New("tilemap: cell value length mismatch")
)

// Grid is a dense row-major store of width x height cells of cellSize bytes
// each. One implementation serves both cell kinds: layers instantiate it
// with TileSize-wide cells, sublayers with their own cell width. The backing
// bytes are laid out exactly as the wire format carries them.
type Grid struct {
	width    int
	height   int
	cellSize int
	cells    []byte
}

// NewGrid returns a zero-filled grid. Like make, it panics if any argument
// is negative.
func NewGrid(width, height, cellSize int) *Grid {
	checkSize(width, height)
	if cellSize < 0 {
		panic("tilemap: negative cell size")
	}
	return &Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		cells:    make([]byte, width*height*cellSize),
	}
}

func checkSize(width, height int) {
	if width < 0 || height < 0 {
		panic("tilemap: negative grid dimensions")
	}
}

func (g *Grid) Width() int    { return g.width }
func (g *Grid) Height() int   { return g.height }
func (g *Grid) CellSize() int { return g.cellSize }

// Bytes exposes the backing store, height rows of width cells each. The
// slice aliases the grid, so writes through it update cells in place.
func (g *Grid) Bytes() []byte { return g.cells }

// Cell returns the bytes of the cell at (x, y). The slice aliases the grid
// and its capacity is clipped to the cell, so writing through it updates the
// cell in place and cannot spill into neighbours.
func (g *Grid) Cell(x, y int) ([]byte, error) {
	i, err := g.index(x, y)
	if err != nil {
		return nil, err
	}
	return g.cells[i : i+g.cellSize : i+g.cellSize], nil
}

// SetCell overwrites the cell at (x, y). The value must be exactly cellSize
// bytes long.
func (g *Grid) SetCell(x, y int, cell []byte) error {
	if len(cell) != g.cellSize {
		return fmt.Errorf("%w: got %d bytes, cells are %d", ErrCellSize, len(cell), g.cellSize)
	}
	i, err := g.index(x, y)
	if err != nil {
		return err
	}
	copy(g.cells[i:], cell)
	return nil
}

func (g *Grid) index(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return 0, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, x, y, g.width, g.height)
	}
	return (y*g.width + x) * g.cellSize, nil
}

// Resize reallocates the grid to width x height, anchored at the top-left
// corner: cells inside both the old and new bounds keep their values at the
// same coordinates, every other cell of the new grid is zero. Shrinking
// discards the cut-off cells for good, so growing back afterwards yields
// zero cells, not the old values.
func (g *Grid) Resize(width, height int) {
	checkSize(width, height)
	if width == g.width && height == g.height {
		return
	}
	cells := make([]byte, width*height*g.cellSize)
	rowLen := min(g.width, width) * g.cellSize
	for y := range min(g.height, height) {
		copy(cells[y*width*g.cellSize:][:rowLen], g.cells[y*g.width*g.cellSize:][:rowLen])
	}
	g.width, g.height, g.cells = width, height, cells
}

// Equal reports whether the grids have the same dimensions, cell size and
// cell bytes.
func (g *Grid) Equal(other *Grid) bool {
	return g.width == other.width && g.height == other.height &&
		g.cellSize == other.cellSize && bytes.Equal(g.cells, other.cells)
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := *g
	clone.cells = bytes.Clone(g.cells)
	return &clone
}
