package gfdpack

import (
	"bytes"
	"testing"

	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
	"github.com/gfdtools/gfdfile/gfd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoot(name string) *gfdfile.Root {
	const v = 0x2110217
	m := gfdfile.NewMaterial(v, name)
	m.Parameters, _ = gfdfile.NewParameterSet(m.ParameterFormat)
	m.SetMap(gfdfile.SlotDiffuse, gfdfile.NewTextureMap(v, name+".dds"))
	md := gfdfile.NewMaterialDictionary(v)
	md.Materials = []*gfdfile.Material{m}
	td := gfdfile.NewTextureDictionary(v)
	td.Textures = []*gfdfile.Texture{
		gfdfile.NewTexture(v, name+".dds", gfdfile.TextureDDS, bytes.Repeat([]byte("DDS texel data "), 64)),
	}
	return &gfdfile.Root{
		Version:   v,
		Type:      gfdfile.FileModelPack,
		Resources: []gfdfile.Resource{md, td},
	}
}

func TestPackRoundTrip(t *testing.T) {
	for _, compress := range []bool{false, true} {
		p := New()
		p.Compress = compress
		_, err := p.Add("body.gmd", testRoot("body"))
		require.NoError(t, err)
		_, err = p.Add("face.gmd", testRoot("face"))
		require.NoError(t, err)
		p.AddBytes("empty.bin", nil)

		var buf bytes.Buffer
		n, err := p.WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, int64(buf.Len()), n)

		q := New()
		_, err = q.ReadFrom(&buf)
		require.NoError(t, err)
		assert.Equal(t, []string{"body.gmd", "face.gmd", "empty.bin"}, q.Names())
		assert.Equal(t, compress, q.Compress)

		for _, name := range p.Names() {
			want, _ := p.Bytes(name)
			got, ok := q.Bytes(name)
			require.True(t, ok, name)
			assert.Equal(t, len(want), len(got), name)
			assert.True(t, bytes.Equal(want, got), name)
		}

		root, warn, err := q.Root("face.gmd", gfd.Decoder{Strict: true})
		require.NoError(t, err)
		require.NoError(t, warn)
		assert.Equal(t, testRoot("face"), root)
	}
}

func TestPackCompresses(t *testing.T) {
	content := bytes.Repeat([]byte("repeated content "), 1024)

	p := New()
	p.AddBytes("a", content)
	var plain bytes.Buffer
	_, err := p.WriteTo(&plain)
	require.NoError(t, err)

	p.Compress = true
	var compressed bytes.Buffer
	_, err = p.WriteTo(&compressed)
	require.NoError(t, err)
	assert.Less(t, compressed.Len(), plain.Len())
}

func TestPackDeduplicates(t *testing.T) {
	p := New()
	a := p.AddBytes("a", []byte("same"))
	b := p.AddBytes("b", []byte("same"))
	c := p.AddBytes("c", []byte("other"))
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2, p.BlobCount())

	p.AddBytes("c", []byte("same"))
	assert.Equal(t, 1, p.BlobCount())
	assert.Equal(t, []string{"a", "b", "c"}, p.Names())
	d, ok := p.Digest("c")
	require.True(t, ok)
	assert.Equal(t, a, d)
}

func TestPackDigestMismatch(t *testing.T) {
	p := New()
	p.AddBytes("a", []byte("content"))
	var buf bytes.Buffer
	_, err := p.WriteTo(&buf)
	require.NoError(t, err)

	b := buf.Bytes()
	b[len(b)-1] ^= 0xFF
	_, err = New().ReadFrom(bytes.NewReader(b))
	var digestErr DigestError
	assert.True(t, errors.As(err, &digestErr))
}

func TestPackSignature(t *testing.T) {
	_, err := New().ReadFrom(bytes.NewReader([]byte("GFS0\x00\x00\x00\x00\x00\x00\x00\x00")))
	assert.True(t, errors.Is(err, errors.ErrInvalidSignature))
}

func TestPackMissing(t *testing.T) {
	p := New()
	_, ok := p.Bytes("missing")
	assert.False(t, ok)
	_, _, err := p.Root("missing", gfd.Decoder{})
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestPackCheck(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gfd.Encoder{}.Encode(&buf, testRoot("body")))
	content := buf.Bytes()
	// Nonzero reserved header bytes only produce a warning.
	reserved := bytes.Clone(content)
	reserved[15] = 1

	p := New()
	p.AddBytes("a.gmd", reserved)
	p.AddBytes("b.gmd", reserved)
	p.AddBytes("c.gmd", content)
	p.AddBytes("readme.txt", []byte("not a model"))
	warn, err := p.Check(gfd.Decoder{})
	require.NoError(t, err)
	var errs errors.Errors
	require.True(t, errors.As(warn, &errs))
	assert.Len(t, errs, 2)
	assert.ErrorContains(t, errs[0], "a.gmd")
	assert.ErrorContains(t, errs[1], "b.gmd")

	p = New()
	p.AddBytes("c.gmd", content)
	p.AddBytes("truncated.gmd", content[:len(content)-3])
	warn, err = p.Check(gfd.Decoder{})
	assert.NoError(t, warn)
	assert.ErrorContains(t, err, "truncated.gmd")
}
