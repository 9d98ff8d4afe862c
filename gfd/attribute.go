package gfd

import (
	"fmt"

	"github.com/gfdtools/gfdfile"
)

func init() {
	Register(gfdfile.KindMaterialAttribute, Codec{
		Name:   "MaterialAttribute",
		Decode: decodeAttribute,
		Encode: encodeAttribute,
	})
}

// Lower bound on the encoded size of an attribute.
const minAttributeSize = 4 + 8

func attributeFields(params gfdfile.AttributeParams) []field {
	switch p := params.(type) {
	case *gfdfile.AttributeToonLightParams:
		return []field{
			f(&p.Color),
			f(&p.Field1C),
			f(&p.Field20),
			f(&p.Field24),
			f(&p.Field28),
			f(&p.Field2C),
			fg(since(versionAttributeFlags), &p.Flags),
		}
	case *gfdfile.AttributeOutlineParams:
		return []field{
			f(&p.Color),
			f(&p.Field1C),
			f(&p.Field20),
			f(&p.Field24),
			f(&p.Field34),
			f(&p.Field38),
			fg(since(versionAttributeFlags), &p.Flags),
		}
	case *gfdfile.AttributeType2Params:
		return []field{
			f(&p.Field0C),
			f(&p.Field10),
		}
	case *gfdfile.AttributeType3Params:
		return []field{
			f(p.Fields[:]),
			f(&p.Flags),
		}
	}
	return nil
}

func newAttributeParams(t gfdfile.AttributeType) gfdfile.AttributeParams {
	switch t {
	case gfdfile.AttributeToonLight:
		return &gfdfile.AttributeToonLightParams{}
	case gfdfile.AttributeOutline:
		return &gfdfile.AttributeOutlineParams{}
	case gfdfile.AttributeType2:
		return &gfdfile.AttributeType2Params{}
	case gfdfile.AttributeType3:
		return &gfdfile.AttributeType3Params{}
	}
	return nil
}

// Attributes have no length prefix, so an attribute of an unknown type cannot
// be skipped.
func decodeAttribute(r *Reader) (gfdfile.Resource, error) {
	var header uint32
	if r.U32(&header) {
		return nil, r.Err()
	}
	t := gfdfile.AttributeType(header & 0xFFFF)
	params := newAttributeParams(t)
	if params == nil {
		r.Fail(UnsupportedError{Kind: gfdfile.KindMaterialAttribute, Op: fmt.Sprintf("decode type %d", t)})
		return nil, r.Err()
	}
	if r.fields(attributeFields(params)) {
		return nil, r.Err()
	}
	attr := gfdfile.NewMaterialAttribute(r.version, params)
	attr.Flags = uint16(header >> 16)
	return attr, nil
}

func encodeAttribute(w *Writer, res gfdfile.Resource) error {
	attr := res.(*gfdfile.MaterialAttribute)
	fs := attributeFields(attr.Params)
	if fs == nil {
		w.Fail(UnsupportedError{Kind: gfdfile.KindMaterialAttribute, Op: fmt.Sprintf("encode %T", attr.Params)})
		return w.Err()
	}
	header := uint32(attr.Flags)<<16 | uint32(attr.Type())
	if w.U32(header) {
		return w.Err()
	}
	if w.fields(fs) {
		return w.Err()
	}
	return nil
}
