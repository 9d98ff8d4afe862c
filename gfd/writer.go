package gfd

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/anaminus/parse"
	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
)

// Writer writes the big-endian primitives of the format, with the same sticky
// error behavior as Reader.
type Writer struct {
	fw      *parse.BinaryWriter
	version gfdfile.Version

	buf [8]byte
}

// NewWriter returns a Writer that writes resources of the given version to w.
func NewWriter(w io.Writer, version gfdfile.Version) *Writer {
	return &Writer{fw: parse.NewBinaryWriter(w), version: version}
}

// Version returns the version of the resource being written.
func (w *Writer) Version() gfdfile.Version {
	return w.version
}

// N returns the number of bytes written.
func (w *Writer) N() int64 {
	return w.fw.N()
}

// Err returns the first error that occurred while writing.
func (w *Writer) Err() error {
	return w.fw.Err()
}

// Fail sets the error of the writer if no error has occurred yet. Returns
// true if err is not nil.
func (w *Writer) Fail(err error) bool {
	return w.fw.Add(0, err)
}

func (w *Writer) Bytes(p []byte) (failed bool) {
	return w.fw.Bytes(p)
}

func (w *Writer) U8(v uint8) (failed bool) {
	w.buf[0] = v
	return w.fw.Bytes(w.buf[:1])
}

func (w *Writer) U16(v uint16) (failed bool) {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	return w.fw.Bytes(w.buf[:2])
}

func (w *Writer) I16(v int16) (failed bool) {
	return w.U16(uint16(v))
}

func (w *Writer) U32(v uint32) (failed bool) {
	binary.BigEndian.PutUint32(w.buf[:4], v)
	return w.fw.Bytes(w.buf[:4])
}

func (w *Writer) I32(v int32) (failed bool) {
	return w.U32(uint32(v))
}

func (w *Writer) U64(v uint64) (failed bool) {
	binary.BigEndian.PutUint64(w.buf[:8], v)
	return w.fw.Bytes(w.buf[:8])
}

func (w *Writer) F32(v float32) (failed bool) {
	return w.U32(math.Float32bits(v))
}

func (w *Writer) Floats(v []float32) (failed bool) {
	for _, f := range v {
		if w.F32(f) {
			return true
		}
	}
	return false
}

func (w *Writer) Vec3(v gfdfile.Vec3) (failed bool) {
	return w.Floats(v[:])
}

func (w *Writer) Vec4(v gfdfile.Vec4) (failed bool) {
	return w.Floats(v[:])
}

func (w *Writer) Mat4(v gfdfile.Mat4) (failed bool) {
	return w.Floats(v[:])
}

func (w *Writer) Triangle(t gfdfile.Triangle) (failed bool) {
	return w.U32(t.A) || w.U32(t.B) || w.U32(t.C)
}

// Count writes n as an int32 element count.
func (w *Writer) Count(n int) (failed bool) {
	if n > math.MaxInt32 {
		return w.Fail(fmt.Errorf("%w: count %d too large", errors.ErrInvalidArgument, n))
	}
	return w.I32(int32(n))
}

// String writes s prefixed by its uint16 length, followed by its hash for
// versions that require it.
func (w *Writer) String(s string) (failed bool) {
	if len(s) > math.MaxUint16 {
		return w.Fail(fmt.Errorf("%w: string length %d too large", errors.ErrInvalidArgument, len(s)))
	}
	if w.U16(uint16(len(s))) {
		return true
	}
	if w.Bytes([]byte(s)) {
		return true
	}
	if hasStringHash(w.version) {
		return w.U32(stringHash([]byte(s)))
	}
	return false
}

func (w *Writer) value(ptr any) (failed bool) {
	switch p := ptr.(type) {
	case *uint8:
		return w.U8(*p)
	case *int16:
		return w.I16(*p)
	case *uint16:
		return w.U16(*p)
	case *int32:
		return w.I32(*p)
	case *uint32:
		return w.U32(*p)
	case *float32:
		return w.F32(*p)
	case *gfdfile.Vec3:
		return w.Vec3(*p)
	case *gfdfile.Vec4:
		return w.Vec4(*p)
	case *gfdfile.Mat4:
		return w.Mat4(*p)
	case []float32:
		return w.Floats(p)
	case *string:
		return w.String(*p)
	case *gfdfile.Triangle:
		return w.Triangle(*p)
	case byteField:
		if *p.v < 0 || *p.v > math.MaxUint8 {
			return w.Fail(fmt.Errorf("%w: %d does not fit in a byte at version %s", errors.ErrInvalidArgument, *p.v, w.version))
		}
		return w.U8(uint8(*p.v))
	case shortField:
		if *p.v < math.MinInt16 || *p.v > math.MaxInt16 {
			return w.Fail(fmt.Errorf("%w: %d does not fit in 16 bits at version %s", errors.ErrInvalidArgument, *p.v, w.version))
		}
		return w.I16(int16(*p.v))
	}
	panic("gfd: unsupported field type")
}

// fields writes each field whose gate is open for the version of the writer.
func (w *Writer) fields(fs []field) (failed bool) {
	for _, f := range fs {
		if !f.gate.open(w.version) {
			continue
		}
		if w.value(f.ptr) {
			return true
		}
	}
	return false
}
