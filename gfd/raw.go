package gfd

import (
	"github.com/gfdtools/gfdfile"
)

func init() {
	// No layout is known for the content of a raw chunk, so it is write-only.
	// Decoder.SkipUnknown keeps the bytes of such chunks as an UnknownChunk.
	Register(gfdfile.KindRawChunk, Codec{
		Name:   "RawChunk",
		Chunk:  true,
		Encode: encodeRawChunk,
	})
}

func encodeRawChunk(w *Writer, res gfdfile.Resource) error {
	if w.Bytes(res.(*gfdfile.RawChunk).Data) {
		return w.Err()
	}
	return nil
}
