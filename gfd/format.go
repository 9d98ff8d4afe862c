// Package gfd implements a decoder and encoder for the binary GFD format.
//
// A file begins with a header holding the signature "GFS0", the version, and
// the file type. The header is followed by a sequence of chunks, each with a
// header holding the version, kind and size of the chunk. The layout of a
// chunk body depends on its kind and version. All integers are big-endian.
//
// Each kind of resource has a Codec registered with Register. Decoder
// resolves the codec of each chunk by its kind, and Encoder resolves the codec
// of each resource by its Kind method.
package gfd

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gfdtools/gfdfile"
)

// Format implements gfdfile.Format for the binary format, using the zero
// Decoder and Encoder.
type Format struct{}

var _ gfdfile.Format = Format{}

func (Format) Name() string {
	return "gfd"
}

func (Format) Extensions() []string {
	return []string{"gmd", "gfs", "gap", "gmt", "gtd"}
}

// CanDecode reports whether r begins with the signature of the format. If r
// is nil, the extension of filename is checked instead.
func (f Format) CanDecode(r io.ReadSeeker, filename string) bool {
	if r == nil {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
		for _, e := range f.Extensions() {
			if e == ext {
				return true
			}
		}
		return false
	}
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return false
	}
	defer r.Seek(pos, io.SeekStart)
	var sig [len(magic)]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return false
	}
	return string(sig[:]) == magic
}

// Decode decodes r, discarding warnings.
func (Format) Decode(r io.Reader) (*gfdfile.Root, error) {
	root, _, err := Decoder{}.Decode(r)
	return root, err
}

func (Format) Encode(w io.Writer, root *gfdfile.Root) error {
	return Encoder{}.Encode(w, root)
}
