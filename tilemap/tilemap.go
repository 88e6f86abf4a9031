/*
Package tilemap reads, mutates and writes tile map assets: ordered layers of
4-byte tile cells, where each layer may carry tagged sublayers of fixed-size
raw cells (collision masks, animation state, editor annotations).

The wire layout is little-endian and length-prefixed throughout:

	TileMap  = layerCount:u32 Layer*
	Layer    = width:u32 height:u32 tiles:u8[width*height*4]
	           sublayerCount:u32 Sublayer*
	Sublayer = tagLen:u32 tag:u8[tagLen] cellSize:u32
	           cells:u8[width*height*cellSize]

Decoding is a single forward pass that must consume the stream exactly.
Encoding recomputes every count and dimension from the live model, so a
decoded map that was resized, re-layered or re-tagged still writes out
consistently.
*/
package tilemap

import "slices"

// TileMap is an ordered collection of layers.
type TileMap struct {
	// Layers in file order. Layers have no identity beyond their position:
	// insert, remove and reorder entries freely. Write recomputes the layer
	// count from the slice.
	Layers []*Layer
}

// New returns an empty tile map.
func New() *TileMap {
	return &TileMap{}
}

// Equal reports whether the maps have pairwise equal layers in the same
// order.
func (m *TileMap) Equal(other *TileMap) bool {
	return slices.EqualFunc(m.Layers, other.Layers, (*Layer).Equal)
}

// Clone returns an independent copy of the map, its layers and their
// sublayers.
func (m *TileMap) Clone() *TileMap {
	clone := New()
	for _, layer := range m.Layers {
		clone.Layers = append(clone.Layers, layer.Clone())
	}
	return clone
}
