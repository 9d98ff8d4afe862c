package gfdfile

import "github.com/go-gl/mathgl/mgl32"

// TextureMap binds a texture to a material slot. It is owned by the Material
// it is attached to.
type TextureMap struct {
	resource

	// Name is the name of the referenced texture.
	Name string

	Field44 int32
	Field48 uint8
	Field49 uint8
	Field4A uint8
	Field4B uint8

	// Transform is applied to texture coordinates.
	Transform Mat4
}

// NewTextureMap returns a TextureMap referencing the named texture, with an
// identity transform.
func NewTextureMap(version Version, name string) *TextureMap {
	return &TextureMap{
		resource:  resource{version},
		Name:      name,
		Field44:   4,
		Field48:   1,
		Field49:   1,
		Transform: mgl32.Ident4(),
	}
}

func (*TextureMap) Kind() Kind { return KindTextureMap }

// TextureFormat identifies the encoding of texture data.
type TextureFormat uint32

const (
	TextureInvalid TextureFormat = 0
	TextureDDS     TextureFormat = 1
	TextureTGA     TextureFormat = 2
	TextureGXT     TextureFormat = 6
	TextureGNF     TextureFormat = 12
)

// Texture holds encoded image data. The data is opaque to the codec.
type Texture struct {
	resource

	Name   string
	Format TextureFormat
	Data   []byte

	Field1C uint8
	Field1D uint8
	Field1E uint8
	Field1F uint8
}

// NewTexture returns a Texture holding data in the given format.
func NewTexture(version Version, name string, format TextureFormat, data []byte) *Texture {
	return &Texture{
		resource: resource{version},
		Name:     name,
		Format:   format,
		Data:     data,
		Field1C:  1,
		Field1D:  1,
	}
}

func (*Texture) Kind() Kind { return KindTexture }

// TextureDictionary is a chunk holding the textures of a model.
type TextureDictionary struct {
	resource
	Textures []*Texture
}

// NewTextureDictionary returns an empty TextureDictionary.
func NewTextureDictionary(version Version) *TextureDictionary {
	return &TextureDictionary{resource: resource{version}}
}

func (*TextureDictionary) Kind() Kind { return KindTextureDictionary }

// Find returns the first texture with the given name, or nil.
func (d *TextureDictionary) Find(name string) *Texture {
	for _, t := range d.Textures {
		if t.Name == name {
			return t
		}
	}
	return nil
}
