package gfdfile

import (
	"fmt"

	"github.com/gfdtools/gfdfile/errors"
)

// Triangle is a face made of three vertex indices. Triangles compare equal
// with == when their indices are equal.
type Triangle struct {
	A, B, C uint32
}

// NewTriangle returns a Triangle from a list of exactly three indices. Any
// other length returns an error wrapping errors.ErrInvalidArgument.
func NewTriangle(indices []uint32) (Triangle, error) {
	if len(indices) != 3 {
		return Triangle{}, fmt.Errorf("%w: triangle needs 3 indices, got %d", errors.ErrInvalidArgument, len(indices))
	}
	return Triangle{A: indices[0], B: indices[1], C: indices[2]}, nil
}

// Indices returns the indices of the triangle as a slice.
func (t Triangle) Indices() []uint32 {
	return []uint32{t.A, t.B, t.C}
}

// Hash returns a hash of the indices. Equal triangles have equal hashes.
func (t Triangle) Hash() uint32 {
	h := uint32(11)
	h = h*33 + t.A
	h = h*33 + t.B
	h = h*33 + t.C
	return h
}
