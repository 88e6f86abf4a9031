package tilemap

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
)

var (
	ErrTruncatedInput = errors.New("tilemap: truncated input")
	ErrTrailingData   = errors.New("tilemap: trailing data after tile map")
)

// readChunk bounds single allocations while decoding cell payloads. A
// corrupt header declaring a huge grid fails on the short stream after at
// most one chunk instead of allocating the declared amount up front.
const readChunk = 1 << 20

// Read decodes a tile map from r. The stream must contain exactly one tile
// map: a short stream fails with ErrTruncatedInput, leftover bytes after the
// last layer fail with ErrTrailingData, and errors reported by r itself are
// returned wrapped, unclassified.
func Read(r io.Reader) (*TileMap, error) {
	d := decoder{r: bufio.NewReader(r)}
	m, err := d.tileMap()
	if err != nil {
		return nil, err
	}
	if err := d.expectEOF(); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalBinary decodes a tile map from data, replacing the receiver. It
// implements encoding.BinaryUnmarshaler.
func (m *TileMap) UnmarshalBinary(data []byte) error {
	decoded, err := Read(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}

type decoder struct {
	r *bufio.Reader
}

func (d *decoder) tileMap() (*TileMap, error) {
	layerCount, err := d.u32("layer count")
	if err != nil {
		return nil, err
	}
	m := New()
	for range layerCount {
		layer, err := d.layer()
		if err != nil {
			return nil, err
		}
		m.Layers = append(m.Layers, layer)
	}
	return m, nil
}

func (d *decoder) layer() (*Layer, error) {
	width, err := d.u32("layer width")
	if err != nil {
		return nil, err
	}
	height, err := d.u32("layer height")
	if err != nil {
		return nil, err
	}
	tiles, err := d.grid(width, height, TileSize, "tile cells")
	if err != nil {
		return nil, err
	}
	layer := &Layer{tiles: tiles}

	sublayerCount, err := d.u32("sublayer count")
	if err != nil {
		return nil, err
	}
	for range sublayerCount {
		if err := d.sublayer(layer); err != nil {
			return nil, err
		}
	}
	return layer, nil
}

func (d *decoder) sublayer(layer *Layer) error {
	tagLen, err := d.u32("sublayer tag length")
	if err != nil {
		return err
	}
	tag, err := d.bytes(uint64(tagLen), "sublayer tag")
	if err != nil {
		return err
	}
	if _, ok := layer.Sublayer(tag); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	cellSize, err := d.u32("sublayer cell size")
	if err != nil {
		return err
	}
	grid, err := d.grid(uint32(layer.Width()), uint32(layer.Height()), cellSize, "sublayer cells")
	if err != nil {
		return err
	}
	layer.sublayers = append(layer.sublayers, &SubLayer{tag: tag, grid: grid})
	return nil
}

func (d *decoder) grid(width, height, cellSize uint32, what string) (*Grid, error) {
	size, ok := gridBytes(width, height, cellSize)
	if !ok {
		// No real stream can satisfy a size beyond the address space.
		return nil, fmt.Errorf("%w: %s", ErrTruncatedInput, what)
	}
	cells, err := d.bytes(size, what)
	if err != nil {
		return nil, err
	}
	return &Grid{
		width:    int(width),
		height:   int(height),
		cellSize: int(cellSize),
		cells:    cells,
	}, nil
}

// gridBytes returns width*height*cellSize, reporting whether the product
// fits in an allocatable size.
func gridBytes(width, height, cellSize uint32) (uint64, bool) {
	cells := uint64(width) * uint64(height)
	if cellSize == 0 {
		return 0, true
	}
	size := cells * uint64(cellSize)
	if size/uint64(cellSize) != cells || size > math.MaxInt {
		return 0, false
	}
	return size, true
}

func (d *decoder) u32(what string) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		return 0, d.classify(what, err)
	}
	return byteOrder.Uint32(b[:]), nil
}

// bytes reads exactly size bytes, growing the buffer chunk by chunk so that
// memory use tracks the data actually present in the stream.
func (d *decoder) bytes(size uint64, what string) ([]byte, error) {
	buf := make([]byte, 0, min(size, readChunk))
	for uint64(len(buf)) < size {
		step := int(min(size-uint64(len(buf)), readChunk))
		buf = slices.Grow(buf, step)[:len(buf)+step]
		if _, err := io.ReadFull(d.r, buf[len(buf)-step:]); err != nil {
			return nil, d.classify(what, err)
		}
	}
	return buf, nil
}

// classify maps a read failure onto the decode taxonomy: the stream ending
// inside a declared structure is truncation, anything else is the source's
// own failure and passes through wrapped.
func (d *decoder) classify(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s", ErrTruncatedInput, what)
	}
	return fmt.Errorf("tilemap: read %s: %w", what, err)
}

func (d *decoder) expectEOF() error {
	if _, err := d.r.ReadByte(); err == nil {
		return ErrTrailingData
	} else if !errors.Is(err, io.EOF) {
		return fmt.Errorf("tilemap: read stream end: %w", err)
	}
	return nil
}
