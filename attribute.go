package gfdfile

import "fmt"

// AttributeType identifies the layout of a MaterialAttribute.
type AttributeType uint16

const (
	AttributeToonLight AttributeType = 0
	AttributeOutline   AttributeType = 1
	AttributeType2     AttributeType = 2
	AttributeType3     AttributeType = 3
)

func (t AttributeType) String() string {
	switch t {
	case AttributeToonLight:
		return "ToonLight"
	case AttributeOutline:
		return "Outline"
	default:
		return fmt.Sprintf("Type%d", uint16(t))
	}
}

// AttributeParams holds the type-specific body of a MaterialAttribute. It is
// implemented by the *Attribute...Params types.
type AttributeParams interface {
	AttributeType() AttributeType
}

// MaterialAttribute is an extension record of a Material. The stored header
// packs the type into the low 16 bits and Flags into the high 16 bits.
type MaterialAttribute struct {
	resource
	Flags  uint16
	Params AttributeParams
}

// NewMaterialAttribute returns an attribute holding params.
func NewMaterialAttribute(version Version, params AttributeParams) *MaterialAttribute {
	return &MaterialAttribute{resource: resource{version}, Params: params}
}

func (*MaterialAttribute) Kind() Kind { return KindMaterialAttribute }

// Type returns the type of the attribute's body.
func (a *MaterialAttribute) Type() AttributeType {
	return a.Params.AttributeType()
}

// AttributeToonLightParams configures toon lighting.
type AttributeToonLightParams struct {
	Color   Vec4
	Field1C float32
	Field20 float32
	Field24 float32
	Field28 float32
	Field2C float32
	Flags   uint32
}

func (*AttributeToonLightParams) AttributeType() AttributeType { return AttributeToonLight }

// AttributeOutlineParams configures the outline pass.
type AttributeOutlineParams struct {
	Color   Vec4
	Field1C float32
	Field20 float32
	Field24 Vec4
	Field34 float32
	Field38 float32
	Flags   uint32
}

func (*AttributeOutlineParams) AttributeType() AttributeType { return AttributeOutline }

// AttributeType2Params is an attribute of type 2.
type AttributeType2Params struct {
	Field0C int32
	Field10 int32
}

func (*AttributeType2Params) AttributeType() AttributeType { return AttributeType2 }

// AttributeType3Params is an attribute of type 3.
type AttributeType3Params struct {
	Fields [13]float32
	Flags  uint32
}

func (*AttributeType3Params) AttributeType() AttributeType { return AttributeType3 }
