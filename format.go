package gfdfile

import "io"

// Format is the capability a file format exposes to tools that pick a codec
// for an arbitrary input. The gfd package provides an implementation for
// the binary format.
type Format interface {
	// Name returns the name of the format.
	Name() string

	// Extensions returns the file extensions associated with the format,
	// without the leading dot.
	Extensions() []string

	// CanDecode reports whether the format recognizes the content of r or,
	// when r is nil, the name of the file. The position of r is restored
	// before returning.
	CanDecode(r io.ReadSeeker, filename string) bool

	// Decode decodes a Root from r.
	Decode(r io.Reader) (*Root, error)

	// Encode encodes root to w.
	Encode(w io.Writer, root *Root) error
}
