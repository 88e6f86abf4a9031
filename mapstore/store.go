// Package mapstore provides common interfaces and types for map containers:
// anything that holds encoded tile maps keyed by name.
package mapstore

import (
	"errors"
	"strings"
)

var ErrInvalidName = errors.New("tilemap: invalid map name")

// ValidName reports whether name is storable by every container
// implementation, including ones that turn names into file paths.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}

// Writer defines an interface for writing maps to a container.
type Writer interface {
	// WriteMap writes a single named map to the container.
	WriteMap(name string, mapData []byte) error

	// Finalize completes the writing process: flushes buffers, writes directories and indices.
	// It must be called before closing the Writer.
	Finalize() error
}

type Reader interface {
	// ReadMap reads a single map from the container.
	// It returns the encoded map data or an error if the map cannot be read.
	// If the map does not exist, it returns an empty slice with no error.
	ReadMap(name string) ([]byte, error)
}

type Visitor interface {
	// VisitMaps visits all maps in the container, calling the visitor for each.
	// It returns an error if visiting fails.
	// Order of maps, upfront cpu and memory consumption are implementation-defined.
	VisitMaps(visitor func(string, []byte) error) error
}

// Location represents the absolute location of map data inside a container file.
type Location struct {
	Offset uint64
	Length uint64
}

type LocationReader interface {
	ReadLocation(name string) (Location, error)
}

type LocationVisitor interface {
	VisitLocations(visitor func(string, Location) error) error
}
