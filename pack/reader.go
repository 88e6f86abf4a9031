package pack

import (
	"io"
	"iter"
	"os"

	"github.com/eak1mov/go-tilemap/mapstore"
	"github.com/eak1mov/go-tilemap/pack/spec"
)

type Reader interface {
	io.Closer

	MapCount() uint64
	ReadMetadata() ([]byte, error)

	ReadMap(name string) ([]byte, error)
	ReadLocation(name string) (mapstore.Location, error)

	Maps() iter.Seq2[string, []byte]
	VisitMaps(visitor func(string, []byte) error) error

	Locations() iter.Seq2[string, mapstore.Location]
	VisitLocations(visitor func(string, mapstore.Location) error) error
}

type FileAccessFunc = func(offset, length uint64) ([]byte, error)

type reader struct {
	fileAccess FileAccessFunc
	fileCloser func() error
	header     *spec.Header
	entries    []spec.Entry
}

func NewFileReader(filePath string) (Reader, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	fileAccess := func(offset uint64, length uint64) ([]byte, error) {
		buffer := make([]byte, length)
		if _, err := file.ReadAt(buffer, int64(offset)); err != nil {
			return nil, err
		}
		return buffer, nil
	}
	r, err := newReader(fileAccess, func() error { return file.Close() })
	if err != nil {
		file.Close()
		return nil, err
	}
	return r, nil
}

func NewReader(fileAccess FileAccessFunc) (Reader, error) {
	return newReader(fileAccess, func() error { return nil })
}

// The directory sits at the file tail and is read once up front.
func newReader(fileAccess FileAccessFunc, fileCloser func() error) (Reader, error) {
	headerData, err := fileAccess(0, spec.HeaderLength)
	if err != nil {
		return nil, err
	}
	header, err := spec.DeserializeHeader(headerData)
	if err != nil {
		return nil, err
	}
	dirData, err := fileAccess(header.DirectoryOffset, header.DirectoryLength)
	if err != nil {
		return nil, err
	}
	entries, err := spec.DeserializeDirectory(dirData)
	if err != nil {
		return nil, err
	}
	return &reader{
		fileAccess: fileAccess,
		fileCloser: fileCloser,
		header:     header,
		entries:    entries,
	}, nil
}

func (r *reader) Close() error {
	return r.fileCloser()
}

func (r *reader) MapCount() uint64 {
	return r.header.MapCount
}

func (r *reader) ReadMetadata() ([]byte, error) {
	return r.fileAccess(r.header.MetadataOffset, r.header.MetadataLength)
}

func (r *reader) ReadLocation(name string) (mapstore.Location, error) {
	entry, found := spec.FindEntry(r.entries, name)
	if !found {
		return mapstore.Location{}, nil
	}
	return mapstore.Location{
		Offset: r.header.DataOffset + entry.Offset,
		Length: uint64(entry.Length),
	}, nil
}

func (r *reader) ReadMap(name string) ([]byte, error) {
	location, err := r.ReadLocation(name)
	if err != nil {
		return nil, err
	}
	if location.Length == 0 {
		return make([]byte, 0), nil
	}
	return r.fileAccess(location.Offset, location.Length)
}

func (r *reader) VisitLocations(visitor func(string, mapstore.Location) error) error {
	for _, entry := range r.entries {
		location := mapstore.Location{
			Offset: r.header.DataOffset + entry.Offset,
			Length: uint64(entry.Length),
		}
		if err := visitor(entry.Name, location); err != nil {
			return err
		}
	}
	return nil
}

func (r *reader) VisitMaps(visitor func(string, []byte) error) error {
	return r.VisitLocations(func(name string, location mapstore.Location) error {
		mapData, err := r.fileAccess(location.Offset, location.Length)
		if err != nil {
			return err
		}
		return visitor(name, mapData)
	})
}

func (r *reader) Maps() iter.Seq2[string, []byte] {
	return mapstore.IterMaps(r)
}

func (r *reader) Locations() iter.Seq2[string, mapstore.Location] {
	return mapstore.IterLocations(r)
}
