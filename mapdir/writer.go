package mapdir

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/eak1mov/go-tilemap/mapstore"
)

// Writer implements mapstore.Writer interface for maps stored as files.
type Writer struct {
	filePattern string
}

// NewWriter creates a new Writer for the given file pattern (e.g. "/home/user/maps/{name}.map").
func NewWriter(filePattern string) (*Writer, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	return &Writer{filePattern}, nil
}

func (w *Writer) WriteMap(name string, mapData []byte) error {
	if !mapstore.ValidName(name) {
		return fmt.Errorf("%w: %q", mapstore.ErrInvalidName, name)
	}
	filePath := formatPattern(w.filePattern, name)

	dirPath := filepath.Dir(filePath)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, mapData, 0644)
}

func (w *Writer) Finalize() error {
	return nil
}
