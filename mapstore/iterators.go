package mapstore

import (
	"errors"
	"iter"
)

var errVisitCancelled = errors.New("visit cancelled")

// IterMaps returns an iterator over all maps in the container.
// It yields map names and their encoded data. Iteration may panic on unrecoverable errors.
// TODO(eak1mov): more robust iterator interface?
func IterMaps(r Visitor) iter.Seq2[string, []byte] {
	return func(yield func(string, []byte) bool) {
		err := r.VisitMaps(func(name string, mapData []byte) error {
			if !yield(name, mapData) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}

func IterLocations(r LocationVisitor) iter.Seq2[string, Location] {
	return func(yield func(string, Location) bool) {
		err := r.VisitLocations(func(name string, location Location) error {
			if !yield(name, location) {
				return errVisitCancelled
			}
			return nil
		})
		if err != nil && err != errVisitCancelled {
			panic(err)
		}
	}
}
