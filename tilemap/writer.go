package tilemap

import (
	"bufio"
	"bytes"
	"io"
)

// Write encodes the map to w. Every count and dimension is recomputed from
// the live model, so the output always matches what the model holds at call
// time. The first error reported by w aborts the encode and is returned
// as-is.
func (m *TileMap) Write(w io.Writer) error {
	e := encoder{w: bufio.NewWriter(w)}
	e.u32(uint32(len(m.Layers)))
	for _, layer := range m.Layers {
		e.layer(layer)
	}
	if e.err != nil {
		return e.err
	}
	return e.w.Flush()
}

// MarshalBinary encodes the map into a fresh byte slice. It implements
// encoding.BinaryMarshaler.
func (m *TileMap) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encoder latches the first write error; once set, further writes are
// no-ops and the error surfaces after the last field.
type encoder struct {
	w   *bufio.Writer
	err error
}

func (e *encoder) layer(l *Layer) {
	e.u32(uint32(l.tiles.width))
	e.u32(uint32(l.tiles.height))
	e.bytes(l.tiles.cells)
	e.u32(uint32(len(l.sublayers)))
	for _, s := range l.sublayers {
		e.u32(uint32(len(s.tag)))
		e.bytes(s.tag)
		e.u32(uint32(s.grid.cellSize))
		e.bytes(s.grid.cells)
	}
}

func (e *encoder) u32(v uint32) {
	if e.err != nil {
		return
	}
	var b [4]byte
	byteOrder.PutUint32(b[:], v)
	_, e.err = e.w.Write(b[:])
}

func (e *encoder) bytes(p []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(p)
}
