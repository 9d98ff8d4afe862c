package gfd

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(v gfdfile.Version, typ gfdfile.FileType) []byte {
	return app(magic, uint32(v), uint32(typ), uint32(0))
}

func chunk(v gfdfile.Version, kind gfdfile.Kind, body []byte) []byte {
	return app(uint32(v), uint32(kind), uint32(chunkHeaderSize+len(body)), uint32(0), body)
}

func testRoot(t *testing.T) *gfdfile.Root {
	const v = 0x2110217
	md := gfdfile.NewMaterialDictionary(v)
	md.Materials = append(md.Materials,
		testMaterial(t, v, 2, gfdfile.SlotDiffuse, gfdfile.SlotSpecular),
		testMaterial(t, v, 15),
	)
	td := gfdfile.NewTextureDictionary(v)
	td.Textures = append(td.Textures,
		gfdfile.NewTexture(v, "diffuse.dds", gfdfile.TextureDDS, []byte("DDS \x7c\x00\x00\x00")),
		gfdfile.NewTexture(v, "empty.tga", gfdfile.TextureTGA, []byte{}),
	)

	const old = 0x1104000
	oldMD := gfdfile.NewMaterialDictionary(old)
	oldMD.Materials = append(oldMD.Materials, testMaterial(t, old, 1, gfdfile.SlotNight))

	return &gfdfile.Root{
		Version:   v,
		Type:      gfdfile.FileModelPack,
		Resources: []gfdfile.Resource{md, td, oldMD},
	}
}

func TestRootRoundTrip(t *testing.T) {
	root := testRoot(t)

	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, root))
	encoded := append([]byte(nil), buf.Bytes()...)

	decoded, warn, err := Decoder{Strict: true}.Decode(&buf)
	require.NoError(t, err)
	require.NoError(t, warn)
	assert.Equal(t, root, decoded)
	assert.Len(t, decoded.MaterialDictionaries(), 2)
	assert.Len(t, decoded.TextureDictionaries(), 1)

	buf.Reset()
	require.NoError(t, Encoder{}.Encode(&buf, decoded))
	assert.Equal(t, encoded, buf.Bytes())
}

func TestDecodeEmpty(t *testing.T) {
	root, warn, err := Decoder{}.Decode(bytes.NewReader(header(0x2110217, gfdfile.FileTexturePack)))
	require.NoError(t, err)
	require.NoError(t, warn)
	assert.Equal(t, gfdfile.Version(0x2110217), root.Version)
	assert.Equal(t, gfdfile.FileTexturePack, root.Type)
	assert.Empty(t, root.Resources)
}

func TestDecodeSignature(t *testing.T) {
	_, _, err := Decoder{}.Decode(strings.NewReader("GFS1\x00\x00\x00\x00"))
	assert.True(t, errors.Is(err, errors.ErrInvalidSignature))

	_, _, err = Decoder{}.Decode(strings.NewReader("GF"))
	assert.Error(t, err)
}

func TestDecodeReserved(t *testing.T) {
	b := header(0x2110217, gfdfile.FileModelPack)
	b[len(b)-1] = 1
	b = append(b, chunk(0x2110217, gfdfile.KindTextureDictionary, app(int32(0)))...)
	b[len(b)-5] = 1

	root, warn, err := Decoder{}.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	require.Len(t, root.Resources, 1)
	var errs errors.Errors
	require.True(t, errors.As(warn, &errs))
	assert.Len(t, errs, 2)
	var reserve errReserve
	assert.True(t, errors.As(errs[0], &reserve))
	var chunkErr ChunkError
	require.True(t, errors.As(errs[1], &chunkErr))
	assert.Equal(t, 0, chunkErr.Index)
}

func TestDecodeUnknownKind(t *testing.T) {
	const v = 0x2110217
	body := []byte("opaque body")
	b := app(header(v, gfdfile.FileModelPack), chunk(v, 0x00010001, body))

	_, _, err := Decoder{}.Decode(bytes.NewReader(b))
	assert.True(t, errors.Is(err, errors.ErrUnknownKind))
	var kindErr KindError
	require.True(t, errors.As(err, &kindErr))
	assert.Equal(t, gfdfile.Kind(0x00010001), kindErr.Kind)

	root, warn, err := Decoder{SkipUnknown: true}.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.True(t, errors.Is(warn, errors.ErrUnknownKind))
	require.Len(t, root.Resources, 1)
	unknown, ok := root.Resources[0].(*gfdfile.UnknownChunk)
	require.True(t, ok)
	assert.Equal(t, gfdfile.Kind(0x00010001), unknown.Kind())
	assert.Equal(t, body, unknown.Data)

	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, root))
	assert.Equal(t, b, buf.Bytes())
}

func TestDecodeInlineKindAsChunk(t *testing.T) {
	const v = 0x2110217
	b := app(header(v, gfdfile.FileModelPack), chunk(v, gfdfile.KindMaterial, nil))
	_, _, err := Decoder{}.Decode(bytes.NewReader(b))
	assert.True(t, errors.Is(err, errors.ErrUnknownKind))
}

func TestDecodeUnknownResourceKind(t *testing.T) {
	_, _, err := Decoder{}.DecodeResource(bytes.NewReader(nil), 0xDEADBEEF, 0x2110217)
	assert.True(t, errors.Is(err, errors.ErrUnknownKind))
	assert.False(t, errors.Is(err, errors.ErrInvalidParameterFormat))
}

func TestRawChunk(t *testing.T) {
	const v = 0x2110217
	data := []byte{0, 1, 2, 3, 0xFF}
	root := &gfdfile.Root{
		Version:   v,
		Type:      gfdfile.FileModelPack,
		Resources: []gfdfile.Resource{gfdfile.NewRawChunk(v, data)},
	}

	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, root))
	want := app(header(v, gfdfile.FileModelPack), chunk(v, gfdfile.KindRawChunk, data))
	assert.Equal(t, want, buf.Bytes())

	_, _, err := Decoder{}.Decode(bytes.NewReader(want))
	assert.True(t, errors.Is(err, errors.ErrNotSupported))
	var unsupported UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, gfdfile.KindRawChunk, unsupported.Kind)

	_, _, err = Decoder{}.DecodeResource(bytes.NewReader(data), gfdfile.KindRawChunk, v)
	assert.True(t, errors.Is(err, errors.ErrNotSupported))

	decoded, warn, err := Decoder{SkipUnknown: true}.Decode(bytes.NewReader(want))
	require.NoError(t, err)
	assert.True(t, errors.Is(warn, errors.ErrNotSupported))
	require.Len(t, decoded.Resources, 1)
	assert.Equal(t, data, decoded.Resources[0].(*gfdfile.UnknownChunk).Data)
}

func TestDecodeTruncatedChunk(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, testRoot(t)))
	b := buf.Bytes()

	for _, n := range []int{len(magic) + 6, 16 + 10, len(b) / 2, len(b) - 1} {
		_, _, err := Decoder{}.Decode(bytes.NewReader(b[:n]))
		require.Error(t, err, "length %d", n)
		assert.True(t, errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF), "length %d: %v", n, err)
	}
}

func TestDecodeTrailingBytes(t *testing.T) {
	const v = 0x2110217
	b := app(header(v, gfdfile.FileModelPack), chunk(v, gfdfile.KindTextureDictionary, app(int32(0), uint8(7))))

	root, warn, err := Decoder{}.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Len(t, root.Resources, 1)
	var trailing errTrailing
	require.True(t, errors.As(warn, &trailing))
	assert.Equal(t, int64(1), trailing.Length)

	_, _, err = Decoder{Strict: true}.Decode(bytes.NewReader(b))
	assert.True(t, errors.As(err, &trailing))
}

func TestDecodeCountBound(t *testing.T) {
	const v = 0x2110217
	for _, kind := range []gfdfile.Kind{gfdfile.KindMaterialDictionary, gfdfile.KindTextureDictionary} {
		b := app(header(v, gfdfile.FileModelPack), chunk(v, kind, app(int32(1000000))))
		_, _, err := Decoder{}.Decode(bytes.NewReader(b))
		var countErr errCount
		assert.True(t, errors.As(err, &countErr), "%s: %v", kind, err)

		b = app(header(v, gfdfile.FileModelPack), chunk(v, kind, app(int32(-1))))
		_, _, err = Decoder{}.Decode(bytes.NewReader(b))
		assert.True(t, errors.As(err, &countErr), "%s: %v", kind, err)
	}
}

func TestDecodeTextureSizeBound(t *testing.T) {
	const v = 0x2110217
	body := app(int32(1), str("t", v), uint32(gfdfile.TextureDDS), uint32(0x7FFFFFFF))
	b := app(header(v, gfdfile.FileTexturePack), chunk(v, gfdfile.KindTextureDictionary, body))
	_, _, err := Decoder{}.Decode(bytes.NewReader(b))
	var countErr errCount
	assert.True(t, errors.As(err, &countErr), "%v", err)
}

func TestDecodeDepth(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, testRoot(t)))

	_, _, err := Decoder{MaxDepth: 2}.Decode(bytes.NewReader(buf.Bytes()))
	assert.True(t, errors.Is(err, errors.ErrDepthExceeded))

	_, _, err = Decoder{MaxDepth: 3}.Decode(bytes.NewReader(buf.Bytes()))
	assert.NoError(t, err)
}

func TestEncodeInlineKindAsChunk(t *testing.T) {
	const v = 0x2110217
	root := &gfdfile.Root{
		Version:   v,
		Resources: []gfdfile.Resource{testMaterial(t, v, 1)},
	}
	err := Encoder{}.Encode(io.Discard, root)
	assert.True(t, errors.Is(err, errors.ErrUnknownKind))
	var chunkErr ChunkError
	require.True(t, errors.As(err, &chunkErr))
	assert.Equal(t, gfdfile.KindMaterial, chunkErr.Kind)
}

func TestEncodeDerivesFlags(t *testing.T) {
	const v = 0x2110217
	m := testMaterial(t, v, 1)
	m.Flags |= gfdfile.FlagHasGlowMap
	md := gfdfile.NewMaterialDictionary(v)
	md.Materials = []*gfdfile.Material{m}
	root := &gfdfile.Root{Version: v, Resources: []gfdfile.Resource{md}}

	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, root))
	assert.True(t, m.Flags.Has(gfdfile.FlagHasGlowMap), "encode must not modify the material")

	decoded, _, err := Decoder{}.Decode(&buf)
	require.NoError(t, err)
	flags := decoded.MaterialDictionaries()[0].Materials[0].Flags
	assert.False(t, flags.Has(gfdfile.FlagHasGlowMap))
	assert.True(t, flags.Has(gfdfile.FlagHasAttributes))
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encoder{}.Encode(&buf, testRoot(t)))
	raw := chunk(0x2110217, gfdfile.KindRawChunk, []byte("raw bytes here"))
	buf.Write(raw)

	var out strings.Builder
	warn, err := Decoder{}.Dump(&out, &buf)
	require.NoError(t, err)
	assert.True(t, errors.Is(warn, errors.ErrNotSupported))
	s := out.String()
	assert.Contains(t, s, "MaterialDictionary")
	assert.Contains(t, s, `"material"`)
	assert.Contains(t, s, "DiffuseMap: TextureMap")
	assert.Contains(t, s, `"diffuse.dds"`)
	assert.Contains(t, s, "<unknown chunk>")
	assert.Contains(t, s, "|raw bytes here|")
}

func TestDumpBytes(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	dumpBytes(w, 0, []byte("0123456789abcdefXY"))
	w.Flush()
	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "(len:18)", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "|0123456789abcdef|"))
	assert.True(t, strings.HasSuffix(lines[2], "|XY|"))
}

func TestFormat(t *testing.T) {
	var f gfdfile.Format = Format{}
	assert.Equal(t, "gfd", f.Name())

	var buf bytes.Buffer
	require.NoError(t, f.Encode(&buf, testRoot(t)))

	r := bytes.NewReader(buf.Bytes())
	assert.True(t, f.CanDecode(r, ""))
	pos, _ := r.Seek(0, io.SeekCurrent)
	assert.Equal(t, int64(0), pos)

	root, err := f.Decode(r)
	require.NoError(t, err)
	assert.Len(t, root.Resources, 3)

	assert.False(t, f.CanDecode(strings.NewReader("RIFF...."), "model.gmd"))
	assert.True(t, f.CanDecode(nil, "chr/c0001.GMD"))
	assert.True(t, f.CanDecode(nil, "field.gfs"))
	assert.False(t, f.CanDecode(nil, "readme.txt"))
}

func TestRegistry(t *testing.T) {
	for _, kind := range []gfdfile.Kind{
		gfdfile.KindMaterialDictionary,
		gfdfile.KindTextureDictionary,
		gfdfile.KindRawChunk,
	} {
		codec, ok := Lookup(kind)
		require.True(t, ok, kind.String())
		assert.True(t, codec.Chunk, kind.String())
	}
	for _, kind := range []gfdfile.Kind{
		gfdfile.KindMaterial,
		gfdfile.KindTextureMap,
		gfdfile.KindTexture,
		gfdfile.KindMaterialAttribute,
	} {
		codec, ok := Lookup(kind)
		require.True(t, ok, kind.String())
		assert.False(t, codec.Chunk, kind.String())
		assert.NotNil(t, codec.Decode, kind.String())
	}
	assert.Len(t, Kinds(), 7)

	codec, ok := LookupResource(gfdfile.NewTexture(0, "", 0, nil))
	require.True(t, ok)
	assert.Equal(t, "Texture", codec.Name)

	_, ok = Lookup(0x12345678)
	assert.False(t, ok)

	assert.Panics(t, func() {
		Register(gfdfile.KindMaterial, Codec{Encode: encodeMaterial})
	})
	assert.Panics(t, func() {
		Register(0x12345678, Codec{})
	})
}
