package gfd

import (
	"encoding/binary"
	"hash/crc32"
	"io"
	"math"

	"github.com/anaminus/parse"
	"github.com/charmbracelet/log"
	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
)

// Reader reads the big-endian primitives of the format. Errors are sticky:
// once a read fails, every following read fails, and each method reports
// failure by returning true, in the manner of parse.BinaryReader.
//
// A Reader carries the version of the resource being decoded, which decides
// whether strings are followed by a hash.
type Reader struct {
	fr      *parse.BinaryReader
	version gfdfile.Version

	// Number of bytes available to the reader, or -1 if unknown.
	limit int64

	depth    int
	maxDepth int
	strict   bool
	warns    *errors.Errors
	logger   *log.Logger

	buf [8]byte
}

// NewReader returns a Reader that reads resources of the given version from r.
// The number of available bytes is unknown.
func NewReader(r io.Reader, version gfdfile.Version) *Reader {
	return &Reader{
		fr:       parse.NewBinaryReader(r),
		version:  version,
		limit:    -1,
		maxDepth: DefaultMaxDepth,
		warns:    new(errors.Errors),
	}
}

// Version returns the version of the resource being read.
func (r *Reader) Version() gfdfile.Version {
	return r.version
}

// N returns the number of bytes read.
func (r *Reader) N() int64 {
	return r.fr.N()
}

// Err returns the first error that occurred while reading.
func (r *Reader) Err() error {
	return r.fr.Err()
}

// Fail sets the error of the reader if no error has occurred yet. Returns
// true if err is not nil.
func (r *Reader) Fail(err error) bool {
	return r.fr.Add(0, err)
}

// Warn records a problem that does not prevent decoding. In strict mode, the
// problem is a failure instead.
func (r *Reader) Warn(err error) bool {
	if r.strict {
		return r.Fail(err)
	}
	*r.warns = r.warns.Append(err)
	return false
}

// remaining returns the number of unread bytes, or -1 if unknown.
func (r *Reader) remaining() int64 {
	if r.limit < 0 {
		return -1
	}
	return r.limit - r.fr.N()
}

// Count reads an int32 element count, failing if the count is negative or if
// count elements of at least minSize bytes cannot fit in the remaining data.
func (r *Reader) Count(n *int, minSize int64) (failed bool) {
	var c int32
	if r.I32(&c) {
		return true
	}
	if c < 0 {
		return r.Fail(errCount{Count: int64(c), Remaining: r.remaining()})
	}
	if rem := r.remaining(); rem >= 0 && int64(c)*minSize > rem {
		return r.Fail(errCount{Count: int64(c), Remaining: rem})
	}
	*n = int(c)
	return false
}

// Size of the pieces in which Data reads unbounded content.
const dataPiece = 1 << 20

// Data reads n bytes into a new buffer. The buffer grows as content is read,
// so a corrupt length fails with a truncation error before a large allocation
// is made.
func (r *Reader) Data(n int64) (b []byte, failed bool) {
	if rem := r.remaining(); rem >= 0 && n > rem {
		return nil, r.Fail(errCount{Count: n, Remaining: rem})
	}
	if n <= dataPiece {
		b = make([]byte, n)
		return b, r.Bytes(b)
	}
	b = make([]byte, 0, dataPiece)
	for int64(len(b)) < n {
		piece := min(n-int64(len(b)), dataPiece)
		b = append(b, make([]byte, piece)...)
		if r.Bytes(b[int64(len(b))-piece:]) {
			return nil, true
		}
	}
	return b, false
}

// Bytes reads len(p) bytes into p.
func (r *Reader) Bytes(p []byte) (failed bool) {
	return r.fr.Bytes(p)
}

func (r *Reader) U8(v *uint8) (failed bool) {
	if r.fr.Bytes(r.buf[:1]) {
		return true
	}
	*v = r.buf[0]
	return false
}

func (r *Reader) U16(v *uint16) (failed bool) {
	if r.fr.Bytes(r.buf[:2]) {
		return true
	}
	*v = binary.BigEndian.Uint16(r.buf[:2])
	return false
}

func (r *Reader) I16(v *int16) (failed bool) {
	var u uint16
	if r.U16(&u) {
		return true
	}
	*v = int16(u)
	return false
}

func (r *Reader) U32(v *uint32) (failed bool) {
	if r.fr.Bytes(r.buf[:4]) {
		return true
	}
	*v = binary.BigEndian.Uint32(r.buf[:4])
	return false
}

func (r *Reader) I32(v *int32) (failed bool) {
	var u uint32
	if r.U32(&u) {
		return true
	}
	*v = int32(u)
	return false
}

func (r *Reader) U64(v *uint64) (failed bool) {
	if r.fr.Bytes(r.buf[:8]) {
		return true
	}
	*v = binary.BigEndian.Uint64(r.buf[:8])
	return false
}

func (r *Reader) F32(v *float32) (failed bool) {
	var u uint32
	if r.U32(&u) {
		return true
	}
	*v = math.Float32frombits(u)
	return false
}

// Floats reads len(v) consecutive floats.
func (r *Reader) Floats(v []float32) (failed bool) {
	for i := range v {
		if r.F32(&v[i]) {
			return true
		}
	}
	return false
}

func (r *Reader) Vec3(v *gfdfile.Vec3) (failed bool) {
	return r.Floats(v[:])
}

func (r *Reader) Vec4(v *gfdfile.Vec4) (failed bool) {
	return r.Floats(v[:])
}

func (r *Reader) Mat4(v *gfdfile.Mat4) (failed bool) {
	return r.Floats(v[:])
}

// Triangle reads three uint32 vertex indices.
func (r *Reader) Triangle(t *gfdfile.Triangle) (failed bool) {
	return r.U32(&t.A) || r.U32(&t.B) || r.U32(&t.C)
}

// String reads a string prefixed by its uint16 length. For versions that
// require it, the string is followed by a uint32 hash of its content. A hash
// that does not match is reported as a warning.
func (r *Reader) String(s *string) (failed bool) {
	var length uint16
	if r.U16(&length) {
		return true
	}
	b := make([]byte, length)
	if r.Bytes(b) {
		return true
	}
	*s = string(b)
	if !hasStringHash(r.version) {
		return false
	}
	offset := r.N()
	var stored uint32
	if r.U32(&stored) {
		return true
	}
	if actual := stringHash(b); stored != actual {
		return r.Warn(HashError{Offset: offset, String: *s, Stored: stored, Actual: actual})
	}
	return false
}

// value reads into the location pointed to by ptr, which must be one of the
// field types used by resource layouts.
func (r *Reader) value(ptr any) (failed bool) {
	switch p := ptr.(type) {
	case *uint8:
		return r.U8(p)
	case *int16:
		return r.I16(p)
	case *uint16:
		return r.U16(p)
	case *int32:
		return r.I32(p)
	case *uint32:
		return r.U32(p)
	case *float32:
		return r.F32(p)
	case *gfdfile.Vec3:
		return r.Vec3(p)
	case *gfdfile.Vec4:
		return r.Vec4(p)
	case *gfdfile.Mat4:
		return r.Mat4(p)
	case []float32:
		return r.Floats(p)
	case *string:
		return r.String(p)
	case *gfdfile.Triangle:
		return r.Triangle(p)
	case byteField:
		var b uint8
		if r.U8(&b) {
			return true
		}
		*p.v = int16(b)
		return false
	case shortField:
		var n int16
		if r.I16(&n) {
			return true
		}
		*p.v = int32(n)
		return false
	}
	panic("gfd: unsupported field type")
}

// fields reads each field whose gate is open for the version of the reader.
func (r *Reader) fields(fs []field) (failed bool) {
	for _, f := range fs {
		if !f.gate.open(r.version) {
			continue
		}
		if r.value(f.ptr) {
			return true
		}
	}
	return false
}

// enter increments the nesting depth, failing if it exceeds the limit.
func (r *Reader) enter() (failed bool) {
	r.depth++
	if r.maxDepth > 0 && r.depth > r.maxDepth {
		return r.Fail(errors.ErrDepthExceeded)
	}
	return false
}

func (r *Reader) leave() {
	r.depth--
}

func hasStringHash(v gfdfile.Version) bool {
	return v > versionStringHash
}

func stringHash(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}
