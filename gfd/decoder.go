package gfd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
)

// Signature at the start of every file.
const magic = "GFS0"

// Size of a chunk header, which is included in the size stored by the header.
const chunkHeaderSize = 16

// DefaultMaxDepth is the nesting limit used when Decoder.MaxDepth is zero.
const DefaultMaxDepth = 16

// Decoder decodes a stream of bytes into a gfdfile.Root.
type Decoder struct {
	// If Strict is true, problems that are otherwise reported as warnings,
	// such as a mismatched string hash or trailing bytes in a chunk, are
	// errors.
	Strict bool

	// If SkipUnknown is true, a chunk of an unknown kind, or of a kind that
	// cannot be decoded, is kept as a gfdfile.UnknownChunk and reported as a
	// warning. Otherwise, such a chunk is an error.
	SkipUnknown bool

	// MaxDepth limits the nesting of resources. If zero, DefaultMaxDepth is
	// used. If negative, nesting is not limited.
	MaxDepth int

	// Logger receives a trace of decoded resources at the debug level. If
	// nil, nothing is logged.
	Logger *log.Logger
}

func (d Decoder) maxDepth() int {
	switch {
	case d.MaxDepth == 0:
		return DefaultMaxDepth
	case d.MaxDepth < 0:
		return 0
	}
	return d.MaxDepth
}

// newLimitedReader returns a Reader over b, with options inherited from d.
func (d Decoder) newLimitedReader(b []byte, version gfdfile.Version, warns *errors.Errors) *Reader {
	r := NewReader(bytes.NewReader(b), version)
	r.limit = int64(len(b))
	r.maxDepth = d.maxDepth()
	r.strict = d.Strict
	r.warns = warns
	r.logger = d.Logger
	return r
}

func decodeError(r *Reader, err error) error {
	r.Fail(err)
	if err = r.Err(); err != nil {
		return DataError{Offset: r.N(), Cause: err}
	}
	return nil
}

// chunkHeader precedes the body of each top-level chunk.
type chunkHeader struct {
	Version  gfdfile.Version
	Kind     gfdfile.Kind
	Size     uint32
	Reserved uint32
}

func (h *chunkHeader) ReadFrom(r *Reader) (failed bool) {
	return r.U32((*uint32)(&h.Version)) ||
		r.U32((*uint32)(&h.Kind)) ||
		r.U32(&h.Size) ||
		r.U32(&h.Reserved)
}

func (h *chunkHeader) WriteTo(w *Writer) (failed bool) {
	return w.U32(uint32(h.Version)) ||
		w.U32(uint32(h.Kind)) ||
		w.U32(h.Size) ||
		w.U32(h.Reserved)
}

// Decode reads data from r and decodes it into a Root. Problems that did not
// prevent decoding are returned as warn.
func (d Decoder) Decode(r io.Reader) (root *gfdfile.Root, warn, err error) {
	if r == nil {
		return nil, nil, errors.New("nil reader")
	}

	br := bufio.NewReader(r)
	fr := NewReader(br, 0)
	var warns errors.Errors

	var sig [len(magic)]byte
	if fr.Bytes(sig[:]) {
		return nil, nil, decodeError(fr, nil)
	}
	if string(sig[:]) != magic {
		return nil, nil, decodeError(fr, errInvalidMagic)
	}

	root = &gfdfile.Root{}
	var reserved uint32
	if fr.U32((*uint32)(&root.Version)) ||
		fr.U32((*uint32)(&root.Type)) ||
		fr.U32(&reserved) {
		return nil, nil, decodeError(fr, nil)
	}
	if reserved != 0 {
		warns = append(warns, errReserve{Offset: fr.N() - 4, Bytes: be32(reserved)})
	}
	if d.Logger != nil {
		d.Logger.Debug("header", "version", root.Version, "type", root.Type)
	}

	for i := 0; ; i++ {
		if _, err := br.Peek(1); err == io.EOF {
			break
		}

		var h chunkHeader
		if h.ReadFrom(fr) {
			return nil, warns.Return(), decodeError(fr, nil)
		}
		if h.Size < chunkHeaderSize {
			return nil, warns.Return(), ChunkError{Index: i, Kind: h.Kind, Cause: decodeError(fr, fmt.Errorf("chunk size %d is smaller than its header", h.Size))}
		}
		if h.Reserved != 0 {
			warns = append(warns, ChunkError{Index: i, Kind: h.Kind, Cause: errReserve{Offset: fr.N() - 4, Bytes: be32(h.Reserved)}})
		}
		body, failed := fr.Data(int64(h.Size) - chunkHeaderSize)
		if failed {
			return nil, warns.Return(), ChunkError{Index: i, Kind: h.Kind, Cause: decodeError(fr, nil)}
		}
		if d.Logger != nil {
			d.Logger.Debug("chunk", "index", i, "kind", h.Kind, "version", h.Version, "size", h.Size)
		}

		res, err := d.decodeChunk(i, h, body, &warns)
		if err != nil {
			return nil, warns.Return(), err
		}
		root.Resources = append(root.Resources, res)
	}

	return root, warns.Return(), nil
}

// decodeChunk decodes the body of a top-level chunk.
func (d Decoder) decodeChunk(i int, h chunkHeader, body []byte, warns *errors.Errors) (gfdfile.Resource, error) {
	codec, ok := Lookup(h.Kind)
	var cause error
	switch {
	case !ok || !codec.Chunk:
		cause = KindError{Kind: h.Kind}
	case codec.Decode == nil:
		cause = UnsupportedError{Kind: h.Kind, Op: "decode"}
	}
	if cause != nil {
		if !d.SkipUnknown {
			return nil, ChunkError{Index: i, Kind: h.Kind, Cause: cause}
		}
		*warns = warns.Append(ChunkError{Index: i, Kind: h.Kind, Cause: cause})
		return gfdfile.NewUnknownChunk(h.Kind, h.Version, body), nil
	}

	r := d.newLimitedReader(body, h.Version, warns)
	res, err := decodeResource(r, h.Kind)
	if err != nil {
		return nil, ChunkError{Index: i, Kind: h.Kind, Cause: decodeError(r, err)}
	}
	if n := r.remaining(); n > 0 {
		err := ChunkError{Index: i, Kind: h.Kind, Cause: errTrailing{Length: n}}
		if d.Strict {
			return nil, err
		}
		*warns = warns.Append(err)
	}
	return res, nil
}

// DecodeResource decodes from r the body of a single resource of the given
// kind and version. Unlike Decode, inline kinds such as gfdfile.KindMaterial
// are accepted.
func (d Decoder) DecodeResource(r io.Reader, kind gfdfile.Kind, version gfdfile.Version) (res gfdfile.Resource, warn, err error) {
	if r == nil {
		return nil, nil, errors.New("nil reader")
	}
	var warns errors.Errors
	fr := NewReader(r, version)
	fr.maxDepth = d.maxDepth()
	fr.strict = d.Strict
	fr.warns = &warns
	fr.logger = d.Logger
	res, err = decodeResource(fr, kind)
	if err != nil {
		return nil, warns.Return(), decodeError(fr, err)
	}
	return res, warns.Return(), nil
}

func be32(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
