package gfd

import (
	"bytes"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
)

// Encoder encodes a gfdfile.Root into a stream of bytes.
//
// Presence flags of materials are recomputed from the attached maps and
// attributes. Every descendant of a resource must have the version of that
// resource.
type Encoder struct {
	// Logger receives a trace of encoded chunks at the debug level. If nil,
	// nothing is logged.
	Logger *log.Logger
}

// Encode writes root to w.
func (e Encoder) Encode(w io.Writer, root *gfdfile.Root) error {
	if w == nil {
		return errors.New("nil writer")
	}
	if root == nil {
		return errors.New("nil root")
	}

	fw := NewWriter(w, root.Version)
	if fw.Bytes([]byte(magic)) ||
		fw.U32(uint32(root.Version)) ||
		fw.U32(uint32(root.Type)) ||
		fw.U32(0) {
		return DataError{Offset: fw.N(), Cause: fw.Err()}
	}

	var body bytes.Buffer
	for i, res := range root.Resources {
		body.Reset()
		if err := e.encodeChunk(&body, res); err != nil {
			return ChunkError{Index: i, Kind: res.Kind(), Cause: err}
		}
		if int64(body.Len()) > math.MaxUint32-chunkHeaderSize {
			return ChunkError{Index: i, Kind: res.Kind(), Cause: errors.New("chunk too large")}
		}
		h := chunkHeader{
			Version: res.Version(),
			Kind:    res.Kind(),
			Size:    uint32(chunkHeaderSize + body.Len()),
		}
		if e.Logger != nil {
			e.Logger.Debug("chunk", "index", i, "kind", h.Kind, "version", h.Version, "size", h.Size)
		}
		if h.WriteTo(fw) || fw.Bytes(body.Bytes()) {
			return DataError{Offset: fw.N(), Cause: fw.Err()}
		}
	}
	return nil
}

// encodeChunk writes the body of a top-level resource to w.
func (e Encoder) encodeChunk(w io.Writer, res gfdfile.Resource) error {
	if c, ok := res.(*gfdfile.UnknownChunk); ok {
		_, err := w.Write(c.Data)
		return err
	}
	codec, ok := LookupResource(res)
	if !ok || !codec.Chunk {
		return KindError{Kind: res.Kind()}
	}
	fw := NewWriter(w, res.Version())
	if err := encodeResource(fw, res); err != nil {
		return DataError{Offset: fw.N(), Cause: err}
	}
	return nil
}

// EncodeResource writes the body of a single resource to w. Unlike Encode,
// inline kinds such as gfdfile.KindMaterial are accepted.
func (e Encoder) EncodeResource(w io.Writer, res gfdfile.Resource) error {
	if w == nil {
		return errors.New("nil writer")
	}
	if res == nil {
		return errors.New("nil resource")
	}
	fw := NewWriter(w, res.Version())
	if err := encodeResource(fw, res); err != nil {
		return DataError{Offset: fw.N(), Cause: err}
	}
	return nil
}
