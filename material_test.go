package gfdfile_test

import (
	"testing"

	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveFlagsIdempotent(t *testing.T) {
	m := gfdfile.NewMaterial(0x2110217, "m")
	m.Flags = 0xFFFFFFFF
	m.SetMap(gfdfile.SlotNormal, gfdfile.NewTextureMap(0x2110217, "n"))

	once := gfdfile.DeriveFlags(m)
	m.Flags = once
	assert.Equal(t, once, gfdfile.DeriveFlags(m))

	assert.True(t, once.Has(gfdfile.FlagHasNormalMap))
	assert.True(t, once.Has(gfdfile.FlagHasDiffuseMap))
	assert.False(t, once.Has(gfdfile.FlagHasAttributes))
	assert.Equal(t, gfdfile.MaterialFlags(0xFFFFFFFF)&^gfdfile.PresenceFlags, once&^gfdfile.PresenceFlags)
}

func TestNewMaterialDefaults(t *testing.T) {
	legacy := gfdfile.NewMaterial(0x1104000, "m")
	assert.Nil(t, legacy.Parameters)
	assert.Equal(t, gfdfile.Flag2Bloom, legacy.Flags2)
	require.NotNil(t, legacy.Map(gfdfile.SlotDiffuse))
	assert.Equal(t, gfdfile.Version(0x1104000), legacy.Map(gfdfile.SlotDiffuse).Version())
	assert.True(t, legacy.Flags.Has(gfdfile.FlagHasDiffuseMap))

	m := gfdfile.NewMaterial(0x2110217, "m")
	assert.Equal(t, uint16(1), m.ParameterFormat)
	assert.Zero(t, m.Flags2)
	assert.IsType(t, &gfdfile.ParameterSet1{}, m.Parameters)
	require.NotNil(t, m.Map(gfdfile.SlotDiffuse))
	assert.Len(t, m.Maps(), 1)
	assert.Equal(t, m.Flags, gfdfile.DeriveFlags(m))
}

func TestDeriveFlagsPure(t *testing.T) {
	m := gfdfile.NewMaterial(0x2110217, "m")
	m.Flags |= gfdfile.FlagHasGlowMap
	before := m.Flags
	derived := gfdfile.DeriveFlags(m)
	assert.Equal(t, before, m.Flags)
	assert.False(t, derived.Has(gfdfile.FlagHasGlowMap))
}

func TestMaterialMaps(t *testing.T) {
	const v = 0x2110217
	m := gfdfile.NewMaterial(v, "m")
	for slot := gfdfile.TextureMapSlot(0); slot < gfdfile.NumTextureMapSlots; slot++ {
		tm := gfdfile.NewTextureMap(v, slot.String())
		m.SetMap(slot, tm)
		assert.True(t, m.Flags.Has(slot.Flag()), slot.String())
		assert.Same(t, tm, m.Map(slot))
	}
	maps := m.Maps()
	require.Len(t, maps, int(gfdfile.NumTextureMapSlots))
	assert.Equal(t, "Diffuse", maps[0].Name)
	assert.Equal(t, "Shadow", maps[8].Name)

	m.SetMap(gfdfile.SlotHighlight, nil)
	assert.False(t, m.Flags.Has(gfdfile.FlagHasHighlightMap))
	assert.Nil(t, m.Map(gfdfile.SlotHighlight))
	assert.Len(t, m.Maps(), int(gfdfile.NumTextureMapSlots)-1)
}

func TestMaterialAttributes(t *testing.T) {
	const v = 0x2110217
	m := gfdfile.NewMaterial(v, "m")
	assert.False(t, m.Flags.Has(gfdfile.FlagHasAttributes))

	m.AddAttribute(gfdfile.NewMaterialAttribute(v, &gfdfile.AttributeToonLightParams{}))
	assert.True(t, m.Flags.Has(gfdfile.FlagHasAttributes))
	assert.Len(t, m.Attributes(), 1)
	assert.Equal(t, gfdfile.AttributeToonLight, m.Attributes()[0].Type())

	m.SetAttributes(nil)
	assert.False(t, m.Flags.Has(gfdfile.FlagHasAttributes))
	assert.Empty(t, m.Attributes())
}

func TestSlotFlags(t *testing.T) {
	seen := gfdfile.MaterialFlags(0)
	for slot := gfdfile.TextureMapSlot(0); slot < gfdfile.NumTextureMapSlots; slot++ {
		flag := slot.Flag()
		assert.Zero(t, seen&flag, slot.String())
		seen |= flag
	}
	assert.Equal(t, gfdfile.PresenceFlags, seen|gfdfile.FlagHasAttributes)
	assert.Equal(t, "Invalid", gfdfile.TextureMapSlot(9).String())
}

func TestNewParameterSet(t *testing.T) {
	for format := uint16(0); format < gfdfile.NumParameterFormats; format++ {
		set, err := gfdfile.NewParameterSet(format)
		require.NoError(t, err, "format %d", format)
		require.NotNil(t, set, "format %d", format)
	}
	a, _ := gfdfile.NewParameterSet(2)
	b, _ := gfdfile.NewParameterSet(13)
	assert.IsType(t, a, b)

	set, err := gfdfile.NewParameterSet(16)
	assert.Nil(t, set)
	assert.True(t, errors.Is(err, errors.ErrInvalidParameterFormat))
}

func TestDictionaryFind(t *testing.T) {
	const v = 0x2110217
	md := gfdfile.NewMaterialDictionary(v)
	m := gfdfile.NewMaterial(v, "body")
	md.Materials = append(md.Materials, gfdfile.NewMaterial(v, "face"), m)
	assert.Same(t, m, md.Find("body"))
	assert.Nil(t, md.Find("hair"))

	td := gfdfile.NewTextureDictionary(v)
	tex := gfdfile.NewTexture(v, "body.dds", gfdfile.TextureDDS, nil)
	td.Textures = append(td.Textures, tex)
	assert.Same(t, tex, td.Find("body.dds"))
	assert.Nil(t, td.Find("face.dds"))
}
