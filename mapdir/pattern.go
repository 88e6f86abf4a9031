// Package mapdir provides API for reading and writing maps stored as
// individual files, with paths like "/maps/{name}.map".
package mapdir

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidPattern = errors.New("tilemap: invalid file pattern")

func validatePattern(pattern string) error {
	if !strings.Contains(pattern, "{name}") {
		return fmt.Errorf("%w: placeholder {name} not found", ErrInvalidPattern)
	}
	return nil
}

func formatPattern(pattern string, name string) string {
	return strings.ReplaceAll(pattern, "{name}", name)
}
