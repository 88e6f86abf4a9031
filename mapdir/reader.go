package mapdir

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/eak1mov/go-tilemap/mapstore"
)

// Reader implements mapstore.Reader interface for maps stored as files.
type Reader struct {
	filePattern string
	rootDir     string
	pathRegexp  *regexp.Regexp
}

// NewReader creates a new Reader for the given file pattern (e.g. "/home/user/maps/{name}.map").
func NewReader(filePattern string) (*Reader, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}

	// TODO(eak1mov): make filePattern regexp-safe?
	// regexPattern := regexp.QuoteMeta(filePattern)
	regexPattern := filePattern
	regexPattern = strings.ReplaceAll(regexPattern, "{name}", "(?P<name>.+)")
	pathRegex, err := regexp.Compile("^" + regexPattern + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}

	path0 := formatPattern(filePattern, "0")
	path1 := formatPattern(filePattern, "1")
	for path0 != path1 {
		path0 = filepath.Dir(path0)
		path1 = filepath.Dir(path1)
	}
	rootDir := path0

	return &Reader{filePattern, rootDir, pathRegex}, nil
}

func (r *Reader) ReadMap(name string) ([]byte, error) {
	if !mapstore.ValidName(name) {
		return nil, fmt.Errorf("%w: %q", mapstore.ErrInvalidName, name)
	}
	filePath := formatPattern(r.filePattern, name)
	mapData, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return mapData, nil
}

func (r *Reader) VisitMaps(visitor func(string, []byte) error) error {
	return filepath.WalkDir(r.rootDir, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		matches := r.pathRegexp.FindStringSubmatch(filePath)
		if matches == nil {
			return nil // TODO(eak1mov): should we return error?
		}

		name := matches[r.pathRegexp.SubexpIndex("name")]
		if !mapstore.ValidName(name) {
			return nil
		}

		mapData, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}

		return visitor(name, mapData)
	})
}
