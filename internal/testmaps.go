// Package internal provides the test map corpus shared by the container
// package tests.
package internal

import (
	"testing"

	"github.com/eak1mov/go-tilemap/tilemap"
)

// SampleMaps returns a corpus of named tile maps covering the shapes the
// codec supports: empty maps, zero-dimension layers, layered maps with
// tagged sublayers.
func SampleMaps(t *testing.T) map[string]*tilemap.TileMap {
	t.Helper()

	town := tilemap.New()
	ground := tilemap.NewLayer(8, 6)
	for y := range 6 {
		for x := range 8 {
			setTile(t, ground, x, y, tilemap.TileFromID(uint32(1000+y*8+x)))
		}
	}
	collision := addSublayer(t, ground, []byte("collision"), 1)
	for x := range 8 {
		setCell(t, collision, x, 0, []byte{1})
		setCell(t, collision, x, 5, []byte{1})
	}
	damage := addSublayer(t, ground, []byte{0x00, 0xFF}, 2)
	setCell(t, damage, 3, 3, []byte{0xAB, 0xCD})
	objects := tilemap.NewLayer(8, 6)
	setTile(t, objects, 2, 2, tilemap.TileFromPosition(5, 3))
	setTile(t, objects, 7, 5, tilemap.TileFromPosition(-1, -2))
	town.Layers = append(town.Layers, ground, objects)

	dungeon := tilemap.New()
	floor := tilemap.NewLayer(16, 12)
	for y := range 12 {
		for x := range 16 {
			if (x+y)%3 == 0 {
				setTile(t, floor, x, y, tilemap.TileFromID(uint32(x*y)))
			}
		}
	}
	addSublayer(t, floor, nil, 4)
	dungeon.Layers = append(dungeon.Layers, floor)

	edges := tilemap.New()
	corner := tilemap.NewLayer(1, 1)
	addSublayer(t, corner, []byte("zero width cells"), 0)
	edges.Layers = append(edges.Layers, tilemap.NewLayer(0, 0), tilemap.NewLayer(0, 7), corner)

	return map[string]*tilemap.TileMap{
		"town":    town,
		"dungeon": dungeon,
		"edges":   edges,
		"blank":   tilemap.New(),
	}
}

// SampleMapData returns the SampleMaps corpus in encoded form.
func SampleMapData(t *testing.T) map[string][]byte {
	t.Helper()

	mapData := make(map[string][]byte)
	for name, m := range SampleMaps(t) {
		data, err := m.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary(%v) failed: %v", name, err)
		}
		mapData[name] = data
	}
	return mapData
}

func setTile(t *testing.T, layer *tilemap.Layer, x, y int, tile tilemap.Tile) {
	t.Helper()
	if err := layer.SetTile(x, y, tile); err != nil {
		t.Fatal(err)
	}
}

func addSublayer(t *testing.T, layer *tilemap.Layer, tag []byte, cellSize int) *tilemap.SubLayer {
	t.Helper()
	sub, err := layer.AddSublayer(tag, cellSize)
	if err != nil {
		t.Fatal(err)
	}
	return sub
}

func setCell(t *testing.T, sub *tilemap.SubLayer, x, y int, cell []byte) {
	t.Helper()
	if err := sub.SetCell(x, y, cell); err != nil {
		t.Fatal(err)
	}
}
