package gfdfile

import (
	"fmt"

	"github.com/gfdtools/gfdfile/errors"
)

// NumParameterFormats is the number of material parameter formats. Valid
// formats are 0 to NumParameterFormats-1.
const NumParameterFormats = 16

// ParameterSet is the shading parameter block of a Material, for versions
// that store one. Each material parameter format has a corresponding
// ParameterSet type; formats 2, 3 and 13 share ParameterSetPBR.
type ParameterSet interface {
	parameterSet()
}

// NewParameterSet returns a ParameterSet for the given format, holding the
// values the engine uses for fields absent from older versions. An unknown
// format returns an error wrapping errors.ErrInvalidParameterFormat.
func NewParameterSet(format uint16) (ParameterSet, error) {
	switch format {
	case 0:
		return &ParameterSet0{DiffuseAlpha: 1, Reflectivity: 1, Diffusivity: 1}, nil
	case 1:
		return &ParameterSet1{}, nil
	case 2, 3, 13:
		return &ParameterSetPBR{
			FieldEC:  0.5,
			FieldDC:  0.5,
			FieldF8:  3,
			Field118: 1,
			Field11C: -1,
			Field108: 0.1,
		}, nil
	case 4:
		return &ParameterSet4{SpecularPower: 0.5, EmissiveX: 1, EmissiveY: 1}, nil
	case 5:
		return &ParameterSet5{}, nil
	case 6:
		return &ParameterSet6{}, nil
	case 7:
		return &ParameterSet7{}, nil
	case 8:
		return &ParameterSet8{}, nil
	case 9:
		return &ParameterSet9{}, nil
	case 10:
		return &ParameterSet10{}, nil
	case 11:
		return &ParameterSet11{}, nil
	case 12:
		return &ParameterSet12{}, nil
	case 14:
		return &ParameterSet14{}, nil
	case 15:
		return &ParameterSet15{}, nil
	}
	return nil, fmt.Errorf("%w %d", errors.ErrInvalidParameterFormat, format)
}

// ParameterSet0 is a diffuse-only parameter set.
type ParameterSet0 struct {
	DiffuseColor Vec3
	DiffuseAlpha float32
	Reflectivity float32
	Diffusivity  float32
	Field2110140 float32 // only stored by version 0x2110140
	Field0C      Vec4
}

// ParameterSet1 matches the legacy color layout.
type ParameterSet1 struct {
	AmbientColor  Vec4
	DiffuseColor  Vec4
	SpecularColor Vec4
	EmissiveColor Vec4
	Reflectivity  float32
	LerpBlendRate float32
}

// ParameterSetPBR is used by formats 2, 3 and 13.
type ParameterSetPBR struct {
	Colors   [4]Vec4
	Field40  Vec3
	Field4C  [6]float32
	Field64  uint32
	Field68  float32
	Field6C  Vec3
	FieldEC  float32
	FieldDC  float32
	FieldF8  float32
	Field118 float32
	Field11C float32
	Field120 float32
	Field108 float32
	FieldE8  float32
	Field128 float32
	Field12C float32
}

// ParameterSet4 is a toon shading parameter set.
type ParameterSet4 struct {
	AmbientColor  Vec4
	DiffuseColor  Vec4
	SpecularColor Vec3
	Field2C       uint32
	SpecularPower float32
	EmissiveX     float32
	EmissiveY     float32
}

// ParameterSet5 is a parameter set of format 5.
type ParameterSet5 struct {
	Values  [11]float32
	Field2C [2]float32
	Field34 float32
	Field38 uint32
}

// ParameterLayer6 is one layer of ParameterSet6.
type ParameterLayer6 struct {
	Color  Vec4
	Values [4]float32
}

// ParameterSet6 is a two-layer parameter set.
type ParameterSet6 struct {
	Layers  [2]ParameterLayer6
	Field40 float32
	Field44 float32
	Field48 float32
	Field4C float32
	Field50 uint32
}

// ParameterSet7 is a four-layer parameter set.
type ParameterSet7 struct {
	Layers  [4][6]float32
	FieldF0 float32
	FieldF4 uint32
}

// ParameterSet8 is a parameter set of format 8.
type ParameterSet8 struct {
	Field00 [4]float32
	Color   Vec4
	Field20 [4]float32
}

// ParameterSet9 is a parameter set of format 9.
type ParameterSet9 struct {
	Field00 [4]float32
	Colors  [4]Vec4
	Field50 Vec3
	Field5C [8]float32
	Field7C uint32
}

// ParameterSet10 is a parameter set of format 10.
type ParameterSet10 struct {
	Color   Vec4
	Field10 float32
	Field14 float32
	Field18 uint32
}

// ParameterSet11 is a parameter set of format 11.
type ParameterSet11 struct {
	Color   Vec4
	Field10 float32
}

// ParameterSet12 is a parameter set of format 12.
type ParameterSet12 struct {
	Colors  [3]Vec4
	Field30 [3]float32
	Field3C uint32
	Field40 float32
	Field44 Vec3
	Field50 [2]float32
	Field58 [3]float32
	Field64 float32
	Field68 Vec3
	Field74 [4]float32
	Field84 Vec4
	Field94 [2]float32
}

// ParameterSet14 is a parameter set of format 14.
type ParameterSet14 struct {
	Color   Vec4
	Field10 uint32
}

// ParameterLayer15 is one terrain layer of ParameterSet15.
type ParameterLayer15 struct {
	TileSize   [2]float32
	TileOffset [2]float32
	Roughness  float32
	Metallic   float32
	Color      Vec3
}

// ParameterSet15 is a layered terrain parameter set.
type ParameterSet15 struct {
	Layers         [16]ParameterLayer15
	LayerCount     uint32
	TriPlanarScale float32
	AlphaTestRef   uint32
}

func (*ParameterSet0) parameterSet()   {}
func (*ParameterSet1) parameterSet()   {}
func (*ParameterSetPBR) parameterSet() {}
func (*ParameterSet4) parameterSet()   {}
func (*ParameterSet5) parameterSet()   {}
func (*ParameterSet6) parameterSet()   {}
func (*ParameterSet7) parameterSet()   {}
func (*ParameterSet8) parameterSet()   {}
func (*ParameterSet9) parameterSet()   {}
func (*ParameterSet10) parameterSet()  {}
func (*ParameterSet11) parameterSet()  {}
func (*ParameterSet12) parameterSet()  {}
func (*ParameterSet14) parameterSet()  {}
func (*ParameterSet15) parameterSet()  {}
