package pack

import (
	"bufio"
	"cmp"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/eak1mov/go-tilemap/pack/spec"
)

type Writer interface {
	io.Closer

	WriteMap(name string, mapData []byte) error
	Finalize() error
}

var ErrDuplicateName = errors.New("tilemap: duplicate map name")

type writerConfig struct {
	Metadata []byte
	Logger   *slog.Logger
}

type WriterOption func(*writerConfig)

// WithMetadata attaches an opaque metadata blob to the file.
func WithMetadata(metadata []byte) WriterOption {
	return func(config *writerConfig) {
		config.Metadata = metadata
	}
}

func WithLogger(logger *slog.Logger) WriterOption {
	return func(config *writerConfig) {
		config.Logger = logger
	}
}

type writer struct {
	logger *slog.Logger
	file   *os.File
	header spec.Header

	dataWriter *bufio.Writer
	dataOffset uint64

	entries   []spec.Entry
	names     map[string]struct{}
	locations map[[16]byte]uint32 // hash -> entry index
}

func NewWriter(filePath string, options ...WriterOption) (w Writer, err error) {
	config := writerConfig{}
	for _, option := range options {
		option(&config)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			file.Close()
		}
	}()

	header := spec.Header{}
	offset := uint64(spec.HeaderLength)

	_, err = file.Seek(int64(offset), io.SeekStart)
	if err != nil {
		return nil, err
	}

	if config.Metadata != nil {
		_, err := file.Write(config.Metadata)
		if err != nil {
			return nil, err
		}
		header.MetadataOffset = offset
		header.MetadataLength = uint64(len(config.Metadata))
		offset += header.MetadataLength
	}

	header.HeaderMagic = spec.HeaderMagicV1
	header.DataOffset = offset

	return &writer{
		logger:     logger,
		file:       file,
		header:     header,
		dataWriter: bufio.NewWriter(file),
		dataOffset: 0,
		names:      make(map[string]struct{}),
		locations:  make(map[[16]byte]uint32),
	}, nil
}

func (w *writer) WriteMap(name string, mapData []byte) error {
	if _, exists := w.names[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	w.names[name] = struct{}{}

	if len(mapData) == 0 {
		return nil
	}

	digest := md5.Sum(mapData)
	entryIdx, exists := w.locations[digest]

	if exists {
		entry := spec.Entry{
			Name:   name,
			Offset: w.entries[entryIdx].Offset,
			Length: w.entries[entryIdx].Length,
		}
		w.entries = append(w.entries, entry)
		return nil
	}

	entry := spec.Entry{
		Name:   name,
		Offset: w.dataOffset,
		Length: uint32(len(mapData)),
	}

	_, err := w.dataWriter.Write(mapData)
	if err != nil {
		return err
	}

	w.dataOffset += uint64(len(mapData))

	w.locations[digest] = uint32(len(w.entries))
	w.entries = append(w.entries, entry)

	return nil
}

func (w *writer) Finalize() error {
	if w.dataWriter == nil {
		panic("tilemap: finalize called twice")
	}

	w.logger.Debug("tilemap: flush")
	err := w.dataWriter.Flush()
	if err != nil {
		return err
	}
	w.header.DataLength = w.dataOffset
	w.dataWriter = nil

	w.logger.Debug("tilemap: sort")
	slices.SortFunc(w.entries, func(a, b spec.Entry) int {
		return cmp.Compare(a.Name, b.Name)
	})

	w.logger.Debug("tilemap: serialize")
	dirData := spec.SerializeDirectory(w.entries)

	w.logger.Debug("tilemap: write directory")
	dirOffset, err := w.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	_, err = w.file.Write(dirData)
	if err != nil {
		return err
	}
	w.header.DirectoryOffset = uint64(dirOffset)
	w.header.DirectoryLength = uint64(len(dirData))
	w.header.MapCount = uint64(len(w.entries))

	w.logger.Debug("tilemap: write header")
	_, err = w.file.Seek(0, io.SeekStart)
	if err != nil {
		return err
	}
	headerData := spec.SerializeHeader(&w.header)
	_, err = w.file.Write(headerData)
	if err != nil {
		return err
	}

	err = w.file.Close()
	if err != nil {
		return err
	}
	w.file = nil

	w.logger.Debug("tilemap: done!")
	return nil
}

func (w *writer) Close() error {
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}
