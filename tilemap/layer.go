package tilemap

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"slices"
)

var ErrDuplicateTag = errors.New("tilemap: duplicate sublayer tag")

// Layer is one tile grid together with its sublayers. The layer keeps every
// sublayer grid at the tile grid's dimensions: Resize retargets them all at
// once, and sublayers expose no resizing of their own.
type Layer struct {
	tiles     *Grid
	sublayers []*SubLayer
}

// NewLayer returns a layer of empty tiles with no sublayers. It panics if
// width or height is negative.
func NewLayer(width, height int) *Layer {
	return &Layer{tiles: NewGrid(width, height, TileSize)}
}

func (l *Layer) Width() int  { return l.tiles.width }
func (l *Layer) Height() int { return l.tiles.height }

// TileAt returns the tile at (x, y).
func (l *Layer) TileAt(x, y int) (Tile, error) {
	cell, err := l.tiles.Cell(x, y)
	if err != nil {
		return Tile{}, err
	}
	var t Tile
	copy(t[:], cell)
	return t, nil
}

// SetTile overwrites the tile at (x, y).
func (l *Layer) SetTile(x, y int, t Tile) error {
	return l.tiles.SetCell(x, y, t[:])
}

// Tiles exposes the raw row-major tile data, TileSize bytes per cell. The
// slice aliases the layer.
func (l *Layer) Tiles() []byte { return l.tiles.Bytes() }

// Resize changes the layer to width x height, anchored at the top-left
// corner, and resizes every sublayer the same way. See Grid.Resize for the
// cell preservation rule.
func (l *Layer) Resize(width, height int) {
	l.tiles.Resize(width, height)
	for _, s := range l.sublayers {
		s.grid.Resize(width, height)
	}
}

// AddSublayer appends a zero-filled sublayer sized to the layer. The tag
// must not be in use; on ErrDuplicateTag the layer is left unchanged.
func (l *Layer) AddSublayer(tag []byte, cellSize int) (*SubLayer, error) {
	if _, ok := l.Sublayer(tag); ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	s := &SubLayer{
		tag:  bytes.Clone(tag),
		grid: NewGrid(l.tiles.width, l.tiles.height, cellSize),
	}
	l.sublayers = append(l.sublayers, s)
	return s, nil
}

// Sublayer looks up a sublayer by exact tag bytes.
func (l *Layer) Sublayer(tag []byte) (*SubLayer, bool) {
	for _, s := range l.sublayers {
		if bytes.Equal(s.tag, tag) {
			return s, true
		}
	}
	return nil, false
}

// Sublayers iterates over the sublayers in insertion order, which is also
// the order they are written in.
func (l *Layer) Sublayers() iter.Seq[*SubLayer] {
	return slices.Values(l.sublayers)
}

func (l *Layer) SublayerCount() int { return len(l.sublayers) }

// Equal reports whether the layers have equal tile grids and pairwise equal
// sublayers in the same order.
func (l *Layer) Equal(other *Layer) bool {
	return l.tiles.Equal(other.tiles) &&
		slices.EqualFunc(l.sublayers, other.sublayers, (*SubLayer).Equal)
}

// Clone returns an independent copy of the layer and its sublayers.
func (l *Layer) Clone() *Layer {
	clone := &Layer{tiles: l.tiles.Clone()}
	for _, s := range l.sublayers {
		clone.sublayers = append(clone.sublayers, s.Clone())
	}
	return clone
}
