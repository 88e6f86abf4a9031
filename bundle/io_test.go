package bundle_test

import (
	"maps"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-tilemap/bundle"
	"github.com/eak1mov/go-tilemap/internal"
	"github.com/eak1mov/go-tilemap/mapstore"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func TestWriterReader(t *testing.T) {
	mapData := internal.SampleMapData(t)

	filePath := filepath.Join(t.TempDir(), "maps.mapbundle")
	metadata := map[string]string{"project": "demo", "editor": "1.4"}

	writer, err := bundle.NewWriter(filePath, bundle.WithMetadata(metadata))
	require.NoError(t, err)

	for name, data := range mapData {
		require.NoErrorf(t, writer.WriteMap(name, data), "WriteMap(%v)", name)
	}

	require.NoError(t, writer.Finalize())
	require.NoError(t, writer.Close())

	reader, err := bundle.NewReader(filePath)
	require.NoError(t, err)
	defer reader.Close()

	readerMetadata, err := reader.ReadMetadata()
	require.NoError(t, err)
	require.Equal(t, metadata, readerMetadata)

	require.Equal(t, mapData, maps.Collect(mapstore.IterMaps(reader)))

	for name, data := range mapData {
		got, err := reader.ReadMap(name)
		require.NoErrorf(t, err, "ReadMap(%v)", name)
		require.Equalf(t, data, got, "ReadMap(%v)", name)
	}

	missing, err := reader.ReadMap("no such map")
	require.NoError(t, err)
	require.Empty(t, missing)
}

func TestWriterDuplicateName(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "maps.mapbundle")

	writer, err := bundle.NewWriter(filePath)
	require.NoError(t, err)
	defer writer.Close()

	require.NoError(t, writer.WriteMap("town", []byte{1}))
	require.NoError(t, writer.WriteMap("town", []byte{2}))

	// The unique name index cannot be built over duplicate rows.
	require.Error(t, writer.Finalize())
}

func TestReaderMissingFile(t *testing.T) {
	reader, err := bundle.NewReader(filepath.Join(t.TempDir(), "nope.mapbundle"))
	if err == nil {
		defer reader.Close()
		_, err = reader.ReadMap("town")
	}
	require.Error(t, err)
}
