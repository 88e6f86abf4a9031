package spec

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"
)

// Entry locates one map payload inside the data section.
// Offsets are relative to Header.DataOffset.
type Entry struct {
	Name   string
	Offset uint64
	Length uint32
}

func SerializeDirectory(entries []Entry) []byte {
	buffer := make([]byte, 0)

	buffer = binary.AppendUvarint(buffer, uint64(len(entries)))

	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, uint64(len(entry.Name)))
		buffer = append(buffer, entry.Name...)
	}

	for _, entry := range entries {
		buffer = binary.AppendUvarint(buffer, uint64(entry.Length))
	}

	nextOffset := uint64(0)
	for i, entry := range entries {
		if i > 0 && entry.Offset == nextOffset {
			buffer = binary.AppendUvarint(buffer, 0)
		} else {
			buffer = binary.AppendUvarint(buffer, uint64(entry.Offset)+1)
		}
		nextOffset = entry.Offset + uint64(entry.Length)
	}

	return buffer
}

func DeserializeDirectory(data []byte) ([]Entry, error) {
	byteReader := bytes.NewReader(data)

	var err error
	readUvarint := func() uint64 {
		if err != nil {
			return 0
		}
		var value uint64
		value, err = binary.ReadUvarint(byteReader)
		return value
	}
	readBytes := func(length uint64) []byte {
		if err != nil {
			return nil
		}
		if length > uint64(byteReader.Len()) {
			err = io.ErrUnexpectedEOF
			return nil
		}
		buffer := make([]byte, length)
		_, err = io.ReadFull(byteReader, buffer)
		return buffer
	}

	numEntries := readUvarint()
	if err == nil && numEntries > uint64(byteReader.Len()) {
		return nil, io.ErrUnexpectedEOF
	}
	entries := make([]Entry, numEntries)

	for i := range numEntries {
		nameLen := readUvarint()
		entries[i].Name = string(readBytes(nameLen))
	}

	for i := range numEntries {
		entries[i].Length = uint32(readUvarint())
	}

	for i := range numEntries {
		value := readUvarint()
		if value == 0 && i > 0 {
			entries[i].Offset = entries[i-1].Offset + uint64(entries[i-1].Length)
		} else {
			entries[i].Offset = value - 1
		}
	}

	return entries, err
}

// FindEntry looks up a map by name. Entries must be sorted by name.
func FindEntry(entries []Entry, name string) (Entry, bool) {
	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].Name >= name
	})

	if idx < len(entries) && entries[idx].Name == name {
		return entries[idx], true
	}

	return Entry{}, false
}
