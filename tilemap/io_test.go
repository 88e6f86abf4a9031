package tilemap_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/eak1mov/go-tilemap/tilemap"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func appendU32(b []byte, vs ...uint32) []byte {
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	return b
}

// goldenStream is one layer of 2x2 tiles with a single 2-byte-cell sublayer
// tagged YES, spelled out byte by byte.
func goldenStream() []byte {
	b := appendU32(nil, 1) // layer count

	b = appendU32(b, 2, 2) // layer width, height
	b = append(b,
		0x01, 0x00, 0x00, 0x00, // (0, 0) id 1
		0x05, 0x00, 0x03, 0x00, // (1, 0) position (5, 3)
		0x00, 0x00, 0x00, 0x00, // (0, 1) empty
		0xEF, 0xBE, 0xAD, 0xDE, // (1, 1) id 0xDEADBEEF
	)

	b = appendU32(b, 1) // sublayer count
	b = appendU32(b, 3) // tag length
	b = append(b, "YES"...)
	b = appendU32(b, 2) // cell size
	b = append(b, 0x10, 0x11, 0x20, 0x21, 0x30, 0x31, 0x40, 0x41)
	return b
}

// goldenMap builds the model goldenStream encodes.
func goldenMap(t *testing.T) *tilemap.TileMap {
	t.Helper()

	layer := tilemap.NewLayer(2, 2)
	if err := layer.SetTile(0, 0, tilemap.TileFromID(1)); err != nil {
		t.Fatalf("SetTile failed: %v", err)
	}
	if err := layer.SetTile(1, 0, tilemap.TileFromPosition(5, 3)); err != nil {
		t.Fatalf("SetTile failed: %v", err)
	}
	if err := layer.SetTile(1, 1, tilemap.TileFromID(0xDEADBEEF)); err != nil {
		t.Fatalf("SetTile failed: %v", err)
	}

	sub, err := layer.AddSublayer([]byte("YES"), 2)
	if err != nil {
		t.Fatalf("AddSublayer failed: %v", err)
	}
	for i, cell := range [][]byte{{0x10, 0x11}, {0x20, 0x21}, {0x30, 0x31}, {0x40, 0x41}} {
		if err := sub.SetCell(i%2, i/2, cell); err != nil {
			t.Fatalf("SetCell failed: %v", err)
		}
	}

	m := tilemap.New()
	m.Layers = append(m.Layers, layer)
	return m
}

func TestReadGolden(t *testing.T) {
	m, err := tilemap.Read(bytes.NewReader(goldenStream()))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if diff := cmp.Diff(goldenMap(t), m); diff != "" {
		t.Fatalf("Read mismatch (-want+got):\n%v", diff)
	}

	layer := m.Layers[0]
	tile, err := layer.TileAt(1, 0)
	if err != nil {
		t.Fatalf("TileAt failed: %v", err)
	}
	if x, y := tile.Position(); x != 5 || y != 3 {
		t.Errorf("TileAt(1, 0).Position() = (%v, %v), want (5, 3)", x, y)
	}

	sub, ok := layer.Sublayer([]byte("YES"))
	if !ok {
		t.Fatal("Sublayer(YES) not found")
	}
	cell, err := sub.Cell(1, 1)
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if !cmp.Equal(cell, []byte{0x40, 0x41}) {
		t.Errorf("sublayer Cell(1, 1) = %v, want [64 65]", cell)
	}
}

func TestWriteGolden(t *testing.T) {
	var buf bytes.Buffer
	if err := goldenMap(t).Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if diff := cmp.Diff(goldenStream(), buf.Bytes()); diff != "" {
		t.Errorf("Write mismatch (-want+got):\n%v", diff)
	}
}

func TestEmptyTileMap(t *testing.T) {
	m, err := tilemap.Read(bytes.NewReader(appendU32(nil, 0)))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if len(m.Layers) != 0 {
		t.Fatalf("Read(empty map) has %v layers", len(m.Layers))
	}

	var buf bytes.Buffer
	if err := tilemap.New().Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if diff := cmp.Diff(appendU32(nil, 0), buf.Bytes()); diff != "" {
		t.Errorf("Write(empty map) mismatch (-want+got):\n%v", diff)
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	m := tilemap.New()

	first := tilemap.NewLayer(3, 2)
	for y := range 2 {
		for x := range 3 {
			if err := first.SetTile(x, y, tilemap.TileFromID(uint32(y*3+x))); err != nil {
				t.Fatalf("SetTile failed: %v", err)
			}
		}
	}
	if _, err := first.AddSublayer(nil, 7); err != nil {
		t.Fatalf("AddSublayer(empty tag) failed: %v", err)
	}
	wide, err := first.AddSublayer([]byte("wide"), 3)
	if err != nil {
		t.Fatalf("AddSublayer failed: %v", err)
	}
	if err := wide.SetCell(2, 1, []byte{1, 2, 3}); err != nil {
		t.Fatalf("SetCell failed: %v", err)
	}

	second := tilemap.NewLayer(0, 5)
	if _, err := second.AddSublayer([]byte("empty cells"), 9); err != nil {
		t.Fatalf("AddSublayer failed: %v", err)
	}

	third := tilemap.NewLayer(1, 1)
	if _, err := third.AddSublayer([]byte("zero width cells"), 0); err != nil {
		t.Fatalf("AddSublayer failed: %v", err)
	}

	m.Layers = append(m.Layers, first, second, third)

	var buf bytes.Buffer
	if err := m.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	decoded, err := tilemap.Read(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if diff := cmp.Diff(m, decoded); diff != "" {
		t.Fatalf("Read(Write(m)) mismatch (-want+got):\n%v", diff)
	}

	var again bytes.Buffer
	if err := decoded.Write(&again); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !cmp.Equal(buf.Bytes(), again.Bytes()) {
		t.Error("re-encoding a decoded map produced different bytes")
	}
}

func TestReadTruncated(t *testing.T) {
	golden := goldenStream()
	for n := range len(golden) {
		if _, err := tilemap.Read(bytes.NewReader(golden[:n])); !errors.Is(err, tilemap.ErrTruncatedInput) {
			t.Errorf("Read(%v-byte prefix) error = %v, want ErrTruncatedInput", n, err)
		}
	}
}

func TestReadTrailingData(t *testing.T) {
	_, err := tilemap.Read(bytes.NewReader(append(goldenStream(), 0)))
	require.Truef(t, errors.Is(err, tilemap.ErrTrailingData), "%v", err)

	_, err = tilemap.Read(bytes.NewReader(appendU32(nil, 0, 0)))
	require.Truef(t, errors.Is(err, tilemap.ErrTrailingData), "%v", err)
}

func TestReadDuplicateTag(t *testing.T) {
	b := appendU32(nil, 1) // layer count
	b = appendU32(b, 1, 1) // 1x1 layer
	b = append(b, 0, 0, 0, 0)
	b = appendU32(b, 2) // sublayer count

	// Two complete sublayers under the same tag.
	for range 2 {
		b = appendU32(b, 1)
		b = append(b, 'A')
		b = appendU32(b, 1)
		b = append(b, 0xEE)
	}

	_, err := tilemap.Read(bytes.NewReader(b))
	require.Truef(t, errors.Is(err, tilemap.ErrDuplicateTag), "%v", err)
}

func TestReadHugeDeclaredSizes(t *testing.T) {
	// Tile payload size overflows 64 bits.
	b := appendU32(nil, 1, 0xFFFFFFFF, 0xFFFFFFFF)
	_, err := tilemap.Read(bytes.NewReader(b))
	require.Truef(t, errors.Is(err, tilemap.ErrTruncatedInput), "%v", err)

	// Size is representable but no such data follows; the decoder must fail
	// on the short stream instead of allocating gigabytes up front.
	b = appendU32(nil, 1, 1<<16, 1<<16)
	_, err = tilemap.Read(bytes.NewReader(b))
	require.Truef(t, errors.Is(err, tilemap.ErrTruncatedInput), "%v", err)
}

func TestReadSourceError(t *testing.T) {
	errRead := errors.New("read failed")
	golden := goldenStream()

	r := io.MultiReader(bytes.NewReader(golden[:10]), iotest.ErrReader(errRead))
	_, err := tilemap.Read(r)
	require.Truef(t, errors.Is(err, errRead), "%v", err)
	require.Falsef(t, errors.Is(err, tilemap.ErrTruncatedInput), "%v", err)
}

type errWriter struct{ err error }

func (w errWriter) Write(p []byte) (int, error) { return 0, w.err }

func TestWriteSinkError(t *testing.T) {
	errWrite := errors.New("write failed")
	err := goldenMap(t).Write(errWriter{err: errWrite})
	require.Truef(t, errors.Is(err, errWrite), "%v", err)
}

func TestMarshalUnmarshal(t *testing.T) {
	want := goldenMap(t)
	data, err := want.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary failed: %v", err)
	}
	if !cmp.Equal(data, goldenStream()) {
		t.Error("MarshalBinary mismatch with hand-built stream")
	}

	var got tilemap.TileMap
	if err := got.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary failed: %v", err)
	}
	if !got.Equal(want) {
		t.Error("UnmarshalBinary(MarshalBinary(m)) != m")
	}

	err = got.UnmarshalBinary(append(data, 0))
	require.Truef(t, errors.Is(err, tilemap.ErrTrailingData), "%v", err)
}
