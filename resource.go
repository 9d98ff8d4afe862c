// The gfdfile package models the resource graph stored in GFD files, the
// hierarchical binary resource format used by the engine to hold models,
// materials, textures and auxiliary chunks.
//
// A file is decoded into a Root, which contains a list of top-level resources
// (chunks). Resources own their children exclusively: a MaterialDictionary
// owns its Materials, and a Material owns its TextureMaps and attributes. There
// is no sharing between graphs and no cycles.
//
// Every resource carries the Version of the engine build that produced it.
// The version is fixed when the resource is constructed, and decides the
// layout used for the resource and all of its descendants. The binary codec
// lives in the "gfd" sub-package.
package gfdfile

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Version identifies an engine build. Versions are ordered; layouts change at
// specific thresholds.
type Version uint32

func (v Version) String() string {
	return fmt.Sprintf("0x%08X", uint32(v))
}

// Kind is the discriminant identifying the type of a resource.
type Kind uint32

// Kinds that appear as length-prefixed chunks at the top level of a file.
const (
	KindRawChunk           Kind = 0x000100F8
	KindMaterialDictionary Kind = 0x000100FB
	KindTextureDictionary  Kind = 0x000100FC
)

// Kinds that only occur nested within the body of another resource. They have
// no on-disk identifier.
const (
	KindMaterial Kind = 0xF0000001 + iota
	KindTextureMap
	KindTexture
	KindMaterialAttribute
)

func (k Kind) String() string {
	switch k {
	case KindRawChunk:
		return "RawChunk"
	case KindMaterialDictionary:
		return "MaterialDictionary"
	case KindTextureDictionary:
		return "TextureDictionary"
	case KindMaterial:
		return "Material"
	case KindTextureMap:
		return "TextureMap"
	case KindTexture:
		return "Texture"
	case KindMaterialAttribute:
		return "MaterialAttribute"
	default:
		return fmt.Sprintf("Kind(0x%08X)", uint32(k))
	}
}

// Resource is implemented by every decodable entity.
type Resource interface {
	// Kind returns the discriminant of the resource.
	Kind() Kind
	// Version returns the format version the resource is laid out in.
	Version() Version
}

// resource holds the version shared by all resource implementations. It is
// only set by constructors.
type resource struct {
	version Version
}

func (r resource) Version() Version {
	return r.version
}

// FileType indicates the content of a file, as stored in the file header.
type FileType uint32

const (
	FileModelPack   FileType = 1
	FileShaderCache FileType = 2
	FileTexturePack FileType = 3
)

// Root is the top of a decoded file.
type Root struct {
	// Version is the version stored in the file header.
	Version Version

	// Type indicates what the file contains.
	Type FileType

	// Resources is the ordered list of top-level chunks.
	Resources []Resource
}

// MaterialDictionaries returns each MaterialDictionary in the root, in order.
func (root *Root) MaterialDictionaries() []*MaterialDictionary {
	var list []*MaterialDictionary
	for _, res := range root.Resources {
		if d, ok := res.(*MaterialDictionary); ok {
			list = append(list, d)
		}
	}
	return list
}

// TextureDictionaries returns each TextureDictionary in the root, in order.
func (root *Root) TextureDictionaries() []*TextureDictionary {
	var list []*TextureDictionary
	for _, res := range root.Resources {
		if d, ok := res.(*TextureDictionary); ok {
			list = append(list, d)
		}
	}
	return list
}

////////////////////////////////////////////////////////////////

// RawChunk is a chunk whose payload is kept as an unparsed byte buffer. It can
// be written, reproducing Data verbatim, but no layout is known for reading
// it; decoding this kind reports errors.ErrNotSupported.
type RawChunk struct {
	resource
	Data []byte
}

// NewRawChunk returns a RawChunk of the given version containing data.
func NewRawChunk(version Version, data []byte) *RawChunk {
	return &RawChunk{resource: resource{version}, Data: data}
}

func (*RawChunk) Kind() Kind { return KindRawChunk }

// UnknownChunk holds the bytes of a chunk that was skipped while decoding,
// because its kind was unknown or could not be decoded. It is written back
// verbatim.
type UnknownChunk struct {
	resource
	kind Kind
	Data []byte
}

// NewUnknownChunk returns an UnknownChunk with the given kind, version and body.
func NewUnknownChunk(kind Kind, version Version, data []byte) *UnknownChunk {
	return &UnknownChunk{resource: resource{version}, kind: kind, Data: data}
}

// Kind returns the kind stored in the chunk header.
func (c *UnknownChunk) Kind() Kind { return c.kind }

////////////////////////////////////////////////////////////////

// Vector types used by resource fields.
type (
	Vec3 = mgl32.Vec3
	Vec4 = mgl32.Vec4
	Mat4 = mgl32.Mat4
)
