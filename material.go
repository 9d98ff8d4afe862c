package gfdfile

// MaterialFlags is the primary flag set of a Material. Bits 16 and 20 to 28
// advertise which optional members are present; the rest describe behavior.
type MaterialFlags uint32

const (
	FlagHasAmbientColor     MaterialFlags = 1 << 0
	FlagHasDiffuseColor     MaterialFlags = 1 << 1
	FlagHasSpecularColor    MaterialFlags = 1 << 2
	FlagTransparency        MaterialFlags = 1 << 3
	FlagHasVertexColors     MaterialFlags = 1 << 4
	FlagApplyFog            MaterialFlags = 1 << 5
	FlagDiffusivity         MaterialFlags = 1 << 6
	FlagHasUVAnimation      MaterialFlags = 1 << 7
	FlagHasEmissiveColor    MaterialFlags = 1 << 8
	FlagHasReflection       MaterialFlags = 1 << 9
	FlagEnableShadow        MaterialFlags = 1 << 10
	FlagEnableLight         MaterialFlags = 1 << 11
	FlagRenderWireframe     MaterialFlags = 1 << 12
	FlagAlphaTest           MaterialFlags = 1 << 13
	FlagReceiveShadow       MaterialFlags = 1 << 14
	FlagCastShadow          MaterialFlags = 1 << 15
	FlagHasAttributes       MaterialFlags = 1 << 16
	FlagHasOutline          MaterialFlags = 1 << 17
	FlagSpecularInNormalMap MaterialFlags = 1 << 18
	FlagReflectionCaster    MaterialFlags = 1 << 19
	FlagHasDiffuseMap       MaterialFlags = 1 << 20
	FlagHasNormalMap        MaterialFlags = 1 << 21
	FlagHasSpecularMap      MaterialFlags = 1 << 22
	FlagHasReflectionMap    MaterialFlags = 1 << 23
	FlagHasHighlightMap     MaterialFlags = 1 << 24
	FlagHasGlowMap          MaterialFlags = 1 << 25
	FlagHasNightMap         MaterialFlags = 1 << 26
	FlagHasDetailMap        MaterialFlags = 1 << 27
	FlagHasShadowMap        MaterialFlags = 1 << 28
	FlagBit29               MaterialFlags = 1 << 29
	FlagExtraDistortion     MaterialFlags = 1 << 30
	FlagBit31               MaterialFlags = 1 << 31
)

// PresenceFlags is the set of bits owned by DeriveFlags.
const PresenceFlags = FlagHasAttributes |
	FlagHasDiffuseMap | FlagHasNormalMap | FlagHasSpecularMap |
	FlagHasReflectionMap | FlagHasHighlightMap | FlagHasGlowMap |
	FlagHasNightMap | FlagHasDetailMap | FlagHasShadowMap

// Has reports whether all bits of flag are set.
func (f MaterialFlags) Has(flag MaterialFlags) bool {
	return f&flag == flag
}

// MaterialFlags2 is the secondary behavior flag set of a Material.
type MaterialFlags2 uint16

const (
	Flag2Bloom             MaterialFlags2 = 1 << 0
	Flag2ShadowMapAdd      MaterialFlags2 = 1 << 1
	Flag2ShadowMapMultiply MaterialFlags2 = 1 << 2
	Flag2DisableHDR        MaterialFlags2 = 1 << 3
	Flag2DisableDeferred   MaterialFlags2 = 1 << 4
	Flag2DisableOutline    MaterialFlags2 = 1 << 5
	Flag2OpaqueAlpha1      MaterialFlags2 = 1 << 6
	Flag2LerpVertexColor   MaterialFlags2 = 1 << 7
	Flag2ReflectionMapAdd  MaterialFlags2 = 1 << 8
	Flag2Grayscale         MaterialFlags2 = 1 << 9
	Flag2DisableFog        MaterialFlags2 = 1 << 10
)

// DrawMethod selects how a material is blended.
type DrawMethod int16

const (
	DrawOpaque DrawMethod = iota
	DrawTransparent
	DrawAdd
	DrawSubtract
	DrawModulate
	DrawModulateTransparent
	DrawModulate2Transparent
	DrawAdvanced
)

// AlphaClipMode is the comparison used for alpha testing.
type AlphaClipMode int16

const (
	AlphaClipNever AlphaClipMode = iota
	AlphaClipLess
	AlphaClipEqual
	AlphaClipLEqual
	AlphaClipGreater
	AlphaClipNotEqual
	AlphaClipGEqual
	AlphaClipAlways
)

// HighlightMapMode selects how the highlight map is combined.
type HighlightMapMode int16

const (
	HighlightLerp     HighlightMapMode = 1
	HighlightAdd      HighlightMapMode = 2
	HighlightSubtract HighlightMapMode = 3
	HighlightModulate HighlightMapMode = 4
)

// TextureMapSlot identifies one of the optional texture maps of a Material.
// Slots are listed in the order they are stored.
type TextureMapSlot int

const (
	SlotDiffuse TextureMapSlot = iota
	SlotNormal
	SlotSpecular
	SlotReflection
	SlotHighlight
	SlotGlow
	SlotNight
	SlotDetail
	SlotShadow

	NumTextureMapSlots = 9
)

var slotFlags = [NumTextureMapSlots]MaterialFlags{
	SlotDiffuse:    FlagHasDiffuseMap,
	SlotNormal:     FlagHasNormalMap,
	SlotSpecular:   FlagHasSpecularMap,
	SlotReflection: FlagHasReflectionMap,
	SlotHighlight:  FlagHasHighlightMap,
	SlotGlow:       FlagHasGlowMap,
	SlotNight:      FlagHasNightMap,
	SlotDetail:     FlagHasDetailMap,
	SlotShadow:     FlagHasShadowMap,
}

var slotNames = [NumTextureMapSlots]string{
	"Diffuse", "Normal", "Specular", "Reflection", "Highlight",
	"Glow", "Night", "Detail", "Shadow",
}

// Flag returns the presence flag of the slot.
func (s TextureMapSlot) Flag() MaterialFlags {
	return slotFlags[s]
}

func (s TextureMapSlot) String() string {
	if s < 0 || s >= NumTextureMapSlots {
		return "Invalid"
	}
	return slotNames[s]
}

////////////////////////////////////////////////////////////////

// Material describes the surface of a mesh.
//
// Field names of the form FieldXX refer to engine fields whose meaning is
// not known; XX is the offset of the field in the engine's structure.
type Material struct {
	resource

	Name string

	// Flags holds the primary flags. The presence bits are kept in sync with
	// the attached maps and attributes by SetMap and SetAttributes. Flags read
	// from a file are kept as they were until the material is modified.
	Flags MaterialFlags

	// ParameterFormat selects the layout of Parameters. Versions before the
	// parameter set era always use format 1 with the legacy color fields
	// below, and Parameters is nil.
	ParameterFormat uint16

	// Parameters holds the shading parameters for versions that store a
	// parameter set.
	Parameters ParameterSet

	AmbientColor  Vec4
	DiffuseColor  Vec4
	SpecularColor Vec4
	EmissiveColor Vec4
	Field40       float32
	Field44       float32

	// DrawMethod through Field4C and HighlightMapMode are stored as unsigned
	// bytes from version 0x1103041, and Field96 as 16 bits from version
	// 0x1104801. Values that do not fit cannot be encoded at those versions.
	DrawMethod             DrawMethod
	Field49                int16
	Field4A                int16
	Field4B                int16
	Field4C                int16
	HighlightMapMode       HighlightMapMode
	Field90                int16
	AlphaClip              AlphaClipMode
	Flags2                 MaterialFlags2
	Field96                int32
	Field5C                int16
	Field6C                uint32
	Field70                uint32
	DisableBackfaceCulling int16
	Field98                uint32
	Field6C2               float32

	maps       [NumTextureMapSlots]*TextureMap
	attributes []*MaterialAttribute
}

const (
	// Versions from which Flags2 is stored. Earlier materials imply Flag2Bloom.
	flags2Version Version = 0x1104801
	// Versions from which a material stores a parameter set instead of the
	// legacy color fields.
	parameterSetVersion Version = 0x2000000
)

// NewMaterial returns a Material with the engine's default values. The
// material has an empty diffuse map, which every stored material carries, and
// at versions that store parameter sets, a default set of format 1.
func NewMaterial(version Version, name string) *Material {
	m := &Material{
		resource:         resource{version},
		Name:             name,
		Flags:            FlagHasAmbientColor | FlagHasDiffuseColor,
		ParameterFormat:  1,
		Field40:          1,
		Field49:          1,
		Field4B:          1,
		HighlightMapMode: HighlightLerp,
		AlphaClip:        AlphaClipGreater,
		Field6C:          0xFFFFFFFF,
		Field70:          0xFFFFFFFF,
		Field98:          0xFFFFFFFF,
	}
	if version < flags2Version {
		m.Flags2 = Flag2Bloom
	}
	if version >= parameterSetVersion {
		m.Parameters, _ = NewParameterSet(m.ParameterFormat)
	}
	m.SetMap(SlotDiffuse, NewTextureMap(version, ""))
	return m
}

func (*Material) Kind() Kind { return KindMaterial }

func (m *Material) String() string {
	return m.Name
}

// Map returns the texture map in the given slot, or nil.
func (m *Material) Map(slot TextureMapSlot) *TextureMap {
	return m.maps[slot]
}

// SetMap attaches tm to the given slot, replacing any previous map. A nil tm
// detaches the slot. The presence flags are recomputed. The diffuse slot is
// always stored, so a material without a diffuse map cannot be encoded.
func (m *Material) SetMap(slot TextureMapSlot, tm *TextureMap) {
	m.maps[slot] = tm
	m.Flags = DeriveFlags(m)
}

// Maps returns the present texture maps in slot order.
func (m *Material) Maps() []*TextureMap {
	var list []*TextureMap
	for _, tm := range m.maps {
		if tm != nil {
			list = append(list, tm)
		}
	}
	return list
}

// Attributes returns the attribute list of the material.
func (m *Material) Attributes() []*MaterialAttribute {
	return m.attributes
}

// SetAttributes replaces the attribute list and recomputes the presence flags.
func (m *Material) SetAttributes(attrs []*MaterialAttribute) {
	m.attributes = attrs
	m.Flags = DeriveFlags(m)
}

// AddAttribute appends an attribute and recomputes the presence flags.
func (m *Material) AddAttribute(attr *MaterialAttribute) {
	m.SetAttributes(append(m.attributes, attr))
}

// DeriveFlags returns the flags of m with every presence bit recomputed from
// the attached maps and attributes. Bits outside PresenceFlags are kept.
func DeriveFlags(m *Material) MaterialFlags {
	flags := m.Flags &^ PresenceFlags
	for slot, tm := range m.maps {
		if tm != nil {
			flags |= slotFlags[slot]
		}
	}
	if len(m.attributes) > 0 {
		flags |= FlagHasAttributes
	}
	return flags
}

////////////////////////////////////////////////////////////////

// MaterialDictionary is a chunk holding the materials of a model.
type MaterialDictionary struct {
	resource
	Materials []*Material
}

// NewMaterialDictionary returns an empty MaterialDictionary.
func NewMaterialDictionary(version Version) *MaterialDictionary {
	return &MaterialDictionary{resource: resource{version}}
}

func (*MaterialDictionary) Kind() Kind { return KindMaterialDictionary }

// Find returns the first material with the given name, or nil.
func (d *MaterialDictionary) Find(name string) *Material {
	for _, m := range d.Materials {
		if m.Name == name {
			return m
		}
	}
	return nil
}
