// Package gfdpack implements a bundle of encoded GFD files.
//
// A pack maps names to file content. Content is addressed by a digest, so
// identical files are stored once. Stored content may be compressed with LZ4.
//
// The layout of a pack, with integers in little-endian:
//
//	"GFDPACK\x00"
//	uint32 entry count
//	uint32 blob count
//	entries: uint16 name length, name, [16]byte digest
//	blobs: [16]byte digest, uint32 compressed length, uint32 decompressed
//	       length, uint32 reserved, payload
//
// A compressed length of zero indicates that the payload is not compressed.
package gfdpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/anaminus/parse"
	lz4 "github.com/bkaradzic/go-lz4"
	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
	"github.com/gfdtools/gfdfile/gfd"
	"golang.org/x/crypto/blake2b"
)

const signature = "GFDPACK\x00"

// Digest identifies content within a pack.
type Digest [16]byte

func (d Digest) String() string {
	return fmt.Sprintf("%x", d[:])
}

// Sum returns the digest of b.
func Sum(b []byte) Digest {
	sum := blake2b.Sum256(b)
	var d Digest
	copy(d[:], sum[:])
	return d
}

type entry struct {
	name   string
	digest Digest
}

// Pack is a named collection of encoded files.
type Pack struct {
	// If Compress is true, content is compressed when the pack is written.
	Compress bool

	entries []entry
	index   map[string]int
	blobs   map[Digest][]byte
}

// New returns an empty pack.
func New() *Pack {
	return &Pack{
		index: map[string]int{},
		blobs: map[Digest][]byte{},
	}
}

// Add encodes root and adds it under name.
func (p *Pack) Add(name string, root *gfdfile.Root) (Digest, error) {
	var buf bytes.Buffer
	if err := (gfd.Encoder{}).Encode(&buf, root); err != nil {
		return Digest{}, fmt.Errorf("encode %s: %w", name, err)
	}
	return p.AddBytes(name, buf.Bytes()), nil
}

// AddBytes adds content under name, replacing any content previously added
// under the same name.
func (p *Pack) AddBytes(name string, content []byte) Digest {
	d := Sum(content)
	if _, ok := p.blobs[d]; !ok {
		p.blobs[d] = append([]byte(nil), content...)
	}
	if i, ok := p.index[name]; ok {
		p.entries[i].digest = d
		return d
	}
	p.index[name] = len(p.entries)
	p.entries = append(p.entries, entry{name: name, digest: d})
	return d
}

// Bytes returns the content stored under name.
func (p *Pack) Bytes(name string) (content []byte, ok bool) {
	i, ok := p.index[name]
	if !ok {
		return nil, false
	}
	return p.blobs[p.entries[i].digest], true
}

// Root decodes the content stored under name with dec.
func (p *Pack) Root(name string, dec gfd.Decoder) (root *gfdfile.Root, warn, err error) {
	content, ok := p.Bytes(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: no entry %q", errors.ErrInvalidArgument, name)
	}
	return dec.Decode(bytes.NewReader(content))
}

// Check decodes with dec each entry that has the GFD signature. Warnings of
// all entries are combined into warn. The first entry that fails to decode
// stops the check.
func (p *Pack) Check(dec gfd.Decoder) (warn, err error) {
	for _, name := range p.Names() {
		content, _ := p.Bytes(name)
		if !(gfd.Format{}).CanDecode(bytes.NewReader(content), name) {
			continue
		}
		_, w, err := dec.Decode(bytes.NewReader(content))
		if w != nil {
			warn = errors.Union(warn, fmt.Errorf("%s: %w", name, w))
		}
		if err != nil {
			return warn, fmt.Errorf("%s: %w", name, err)
		}
	}
	return warn, nil
}

// Digest returns the digest of the content stored under name.
func (p *Pack) Digest(name string) (d Digest, ok bool) {
	i, ok := p.index[name]
	if !ok {
		return Digest{}, false
	}
	return p.entries[i].digest, true
}

// Names returns the names of the entries, in the order they were added.
func (p *Pack) Names() []string {
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.name
	}
	return names
}

// BlobCount returns the number of distinct contents referred to by entries.
func (p *Pack) BlobCount() int {
	return len(p.referenced())
}

// referenced returns each digest referred to by an entry, in order of first
// reference.
func (p *Pack) referenced() []Digest {
	seen := map[Digest]bool{}
	var list []Digest
	for _, e := range p.entries {
		if !seen[e.digest] {
			seen[e.digest] = true
			list = append(list, e.digest)
		}
	}
	return list
}

// WriteTo writes the pack to w.
func (p *Pack) WriteTo(w io.Writer) (n int64, err error) {
	fw := parse.NewBinaryWriter(w)

	if fw.Bytes([]byte(signature)) {
		return fw.End()
	}
	blobs := p.referenced()
	if fw.Number(uint32(len(p.entries))) {
		return fw.End()
	}
	if fw.Number(uint32(len(blobs))) {
		return fw.End()
	}

	for _, e := range p.entries {
		if len(e.name) > math.MaxUint16 {
			fw.Add(0, fmt.Errorf("%w: name too long", errors.ErrInvalidArgument))
			return fw.End()
		}
		if fw.Number(uint16(len(e.name))) {
			return fw.End()
		}
		if fw.Bytes([]byte(e.name)) {
			return fw.End()
		}
		if fw.Bytes(e.digest[:]) {
			return fw.End()
		}
	}

	for _, d := range blobs {
		b := blob{digest: d, payload: p.blobs[d], compressed: p.Compress}
		if b.WriteTo(fw) {
			return fw.End()
		}
	}
	return fw.End()
}

// ReadFrom replaces the content of the pack with the pack read from r.
func (p *Pack) ReadFrom(r io.Reader) (n int64, err error) {
	fr := parse.NewBinaryReader(r)

	sig := make([]byte, len(signature))
	if fr.Bytes(sig) {
		return fr.End()
	}
	if string(sig) != signature {
		fr.Add(0, errors.ErrInvalidSignature)
		return fr.End()
	}

	var entryCount, blobCount uint32
	if fr.Number(&entryCount) {
		return fr.End()
	}
	if fr.Number(&blobCount) {
		return fr.End()
	}

	q := New()
	q.Compress = p.Compress
	for i := uint32(0); i < entryCount; i++ {
		var length uint16
		if fr.Number(&length) {
			return fr.End()
		}
		name := make([]byte, length)
		if fr.Bytes(name) {
			return fr.End()
		}
		var d Digest
		if fr.Bytes(d[:]) {
			return fr.End()
		}
		q.index[string(name)] = len(q.entries)
		q.entries = append(q.entries, entry{name: string(name), digest: d})
	}

	for i := uint32(0); i < blobCount; i++ {
		var b blob
		if b.ReadFrom(fr) {
			return fr.End()
		}
		if sum := Sum(b.payload); sum != b.digest {
			fr.Add(0, DigestError{Want: b.digest, Actual: sum})
			return fr.End()
		}
		if b.compressed {
			q.Compress = true
		}
		q.blobs[b.digest] = b.payload
	}

	for _, e := range q.entries {
		if _, ok := q.blobs[e.digest]; !ok {
			fr.Add(0, fmt.Errorf("entry %q refers to missing content %s", e.name, e.digest))
			return fr.End()
		}
	}

	*p = *q
	return fr.End()
}

// DigestError indicates content that does not match its digest.
type DigestError struct {
	Want   Digest
	Actual Digest
}

func (err DigestError) Error() string {
	return fmt.Sprintf("content digest is %s, expected %s", err.Actual, err.Want)
}

// blob is the stored form of one content.
type blob struct {
	digest     Digest
	compressed bool
	payload    []byte
}

// Maximum size of content; larger lengths are treated as corrupt.
const maxBlobSize = 1 << 30

func (b *blob) ReadFrom(fr *parse.BinaryReader) (failed bool) {
	if fr.Bytes(b.digest[:]) {
		return true
	}

	var compressedLength, decompressedLength, reserved uint32
	if fr.Number(&compressedLength) {
		return true
	}
	if fr.Number(&decompressedLength) {
		return true
	}
	if fr.Number(&reserved) {
		return true
	}
	if compressedLength > maxBlobSize || decompressedLength > maxBlobSize {
		return fr.Add(0, fmt.Errorf("content of %d bytes is too large", max(compressedLength, decompressedLength)))
	}

	b.payload = make([]byte, decompressedLength)
	if compressedLength == 0 {
		b.compressed = false
		return fr.Bytes(b.payload)
	}
	b.compressed = true

	// lz4 expects the decompressed length before the compressed data.
	data := make([]byte, compressedLength+4)
	binary.LittleEndian.PutUint32(data, decompressedLength)
	if fr.Bytes(data[4:]) {
		return true
	}
	payload, err := lz4.Decode(b.payload, data)
	if err != nil {
		return fr.Add(0, fmt.Errorf("lz4: %w", err))
	}
	if len(payload) != int(decompressedLength) {
		return fr.Add(0, fmt.Errorf("lz4: decompressed %d bytes, expected %d", len(payload), decompressedLength))
	}
	b.payload = payload
	return false
}

func (b *blob) WriteTo(fw *parse.BinaryWriter) (failed bool) {
	if fw.Bytes(b.digest[:]) {
		return true
	}

	if b.compressed && len(b.payload) > 0 {
		data, err := lz4.Encode(nil, b.payload)
		if fw.Add(0, err) {
			return true
		}
		// lz4 prepends the decompressed length, which is stored separately.
		compressed := data[4:]
		if len(compressed) < len(b.payload) {
			return fw.Number(uint32(len(compressed))) ||
				fw.Number(uint32(len(b.payload))) ||
				fw.Number(uint32(0)) ||
				fw.Bytes(compressed)
		}
	}

	// Stored uncompressed when compression does not reduce the size.
	return fw.Number(uint32(0)) ||
		fw.Number(uint32(len(b.payload))) ||
		fw.Number(uint32(0)) ||
		fw.Bytes(b.payload)
}
