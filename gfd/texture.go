package gfd

import (
	"github.com/gfdtools/gfdfile"
)

func init() {
	Register(gfdfile.KindTextureMap, Codec{
		Name:   "TextureMap",
		Decode: decodeTextureMap,
		Encode: encodeTextureMap,
	})
	Register(gfdfile.KindTexture, Codec{
		Name:   "Texture",
		Decode: decodeTexture,
		Encode: encodeTexture,
	})
	Register(gfdfile.KindTextureDictionary, Codec{
		Name:   "TextureDictionary",
		Chunk:  true,
		Decode: decodeTextureDictionary,
		Encode: encodeTextureDictionary,
	})
}

// Lower bound on the encoded size of a texture.
const minTextureSize = 2 + 4 + 4 + 4

func textureMapFields(tm *gfdfile.TextureMap) []field {
	return []field{
		f(&tm.Name),
		f(&tm.Field44),
		f(&tm.Field48),
		f(&tm.Field49),
		f(&tm.Field4A),
		f(&tm.Field4B),
		f(&tm.Transform),
	}
}

func decodeTextureMap(r *Reader) (gfdfile.Resource, error) {
	tm := gfdfile.NewTextureMap(r.version, "")
	if r.fields(textureMapFields(tm)) {
		return nil, r.Err()
	}
	return tm, nil
}

func encodeTextureMap(w *Writer, res gfdfile.Resource) error {
	if w.fields(textureMapFields(res.(*gfdfile.TextureMap))) {
		return w.Err()
	}
	return nil
}

func decodeTexture(r *Reader) (gfdfile.Resource, error) {
	t := gfdfile.NewTexture(r.version, "", 0, nil)
	if r.String(&t.Name) {
		return nil, r.Err()
	}
	if r.U32((*uint32)(&t.Format)) {
		return nil, r.Err()
	}
	var size uint32
	if r.U32(&size) {
		return nil, r.Err()
	}
	var failed bool
	if t.Data, failed = r.Data(int64(size)); failed {
		return nil, r.Err()
	}
	if r.fields([]field{
		f(&t.Field1C),
		f(&t.Field1D),
		f(&t.Field1E),
		f(&t.Field1F),
	}) {
		return nil, r.Err()
	}
	return t, nil
}

func encodeTexture(w *Writer, res gfdfile.Resource) error {
	t := res.(*gfdfile.Texture)
	if w.String(t.Name) {
		return w.Err()
	}
	if w.U32(uint32(t.Format)) {
		return w.Err()
	}
	if w.U32(uint32(len(t.Data))) {
		return w.Err()
	}
	if w.Bytes(t.Data) {
		return w.Err()
	}
	if w.fields([]field{
		f(&t.Field1C),
		f(&t.Field1D),
		f(&t.Field1E),
		f(&t.Field1F),
	}) {
		return w.Err()
	}
	return nil
}

func decodeTextureDictionary(r *Reader) (gfdfile.Resource, error) {
	var n int
	if r.Count(&n, minTextureSize) {
		return nil, r.Err()
	}
	d := gfdfile.NewTextureDictionary(r.version)
	d.Textures = make([]*gfdfile.Texture, 0, n)
	for i := 0; i < n; i++ {
		res, err := decodeResource(r, gfdfile.KindTexture)
		if err != nil {
			return nil, err
		}
		d.Textures = append(d.Textures, res.(*gfdfile.Texture))
	}
	return d, nil
}

func encodeTextureDictionary(w *Writer, res gfdfile.Resource) error {
	d := res.(*gfdfile.TextureDictionary)
	if w.Count(len(d.Textures)) {
		return w.Err()
	}
	for _, t := range d.Textures {
		if err := encodeResource(w, t); err != nil {
			return err
		}
	}
	return nil
}
