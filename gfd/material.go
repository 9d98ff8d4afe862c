package gfd

import (
	"fmt"

	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
)

func init() {
	Register(gfdfile.KindMaterial, Codec{
		Name:   "Material",
		Decode: decodeMaterial,
		Encode: encodeMaterial,
	})
	Register(gfdfile.KindMaterialDictionary, Codec{
		Name:   "MaterialDictionary",
		Chunk:  true,
		Decode: decodeMaterialDictionary,
		Encode: encodeMaterialDictionary,
	})
}

// Lower bound on the encoded size of a material, used to bound counts.
const minMaterialSize = 16

// legacyColorFields is the body of a material before parameter sets.
func legacyColorFields(m *gfdfile.Material) []field {
	return []field{
		f(&m.AmbientColor),
		f(&m.DiffuseColor),
		f(&m.SpecularColor),
		f(&m.EmissiveColor),
		f(&m.Field40),
		f(&m.Field44),
	}
}

// drawFields returns the draw method group of a material for version v.
func drawFields(m *gfdfile.Material, v gfdfile.Version) []field {
	switch drawLayouts.at(v) {
	case drawWide:
		return []field{
			f((*int16)(&m.DrawMethod)),
			f(&m.Field49),
			f(&m.Field4A),
			f(&m.Field4B),
			f(&m.Field4C),
			fg(since(versionLegacyHighlight+1), (*int16)(&m.HighlightMapMode)),
		}
	default:
		return []field{
			f(byteField{(*int16)(&m.DrawMethod)}),
			f(byteField{&m.Field49}),
			f(byteField{&m.Field4A}),
			f(byteField{&m.Field4B}),
			f(byteField{&m.Field4C}),
			f(byteField{(*int16)(&m.HighlightMapMode)}),
		}
	}
}

// flags2Fields returns the secondary flag group of a material for version v.
func flags2Fields(m *gfdfile.Material, v gfdfile.Version) []field {
	switch flags2Layouts.at(v) {
	case flags2Packed:
		return []field{f(&m.Field96)}
	default:
		return []field{
			f((*uint16)(&m.Flags2)),
			f(shortField{&m.Field96}),
		}
	}
}

// trailerFields returns the fields that follow the secondary flags.
func trailerFields(m *gfdfile.Material) []field {
	return []field{
		f(&m.Field5C),
		f(&m.Field6C),
		f(&m.Field70),
		f(&m.DisableBackfaceCulling),
		fg(gateField98, &m.Field98),
		fg(since(versionField6C2), &m.Field6C2),
	}
}

// maskFlags returns flags as stored for version v.
func maskFlags(flags gfdfile.MaterialFlags, v gfdfile.Version) gfdfile.MaterialFlags {
	if v < versionFlagMask {
		flags &^= gfdfile.FlagBit31
	}
	return flags
}

func decodeMaterial(r *Reader) (gfdfile.Resource, error) {
	v := r.version

	selector := uint16(1)
	if v >= versionParameterSets {
		if r.U16(&selector) {
			return nil, r.Err()
		}
	}

	var name string
	if r.String(&name) {
		return nil, r.Err()
	}
	m := gfdfile.NewMaterial(v, name)
	m.ParameterFormat = selector

	var raw uint32
	if r.U32(&raw) {
		return nil, r.Err()
	}
	flags := maskFlags(gfdfile.MaterialFlags(raw), v)

	if v < versionParameterSets {
		if r.fields(legacyColorFields(m)) {
			return nil, r.Err()
		}
	} else {
		set, err := gfdfile.NewParameterSet(selector)
		if err != nil {
			r.Fail(FormatSelectorError{Selector: selector})
			return nil, r.Err()
		}
		fs, err := parameterFields(selector, set)
		if r.Fail(err) {
			return nil, r.Err()
		}
		if r.fields(fs) {
			return nil, r.Err()
		}
		m.Parameters = set
	}

	if r.fields(drawFields(m, v)) {
		return nil, r.Err()
	}
	if r.I16(&m.Field90) {
		return nil, r.Err()
	}
	if r.I16((*int16)(&m.AlphaClip)) {
		return nil, r.Err()
	}
	if r.fields(flags2Fields(m, v)) {
		return nil, r.Err()
	}
	if flags2Layouts.at(v) == flags2Packed {
		m.Flags2 = 1
	}
	if r.fields(trailerFields(m)) {
		return nil, r.Err()
	}

	// The diffuse map is stored whether or not its presence bit is set.
	for slot := gfdfile.TextureMapSlot(0); slot < gfdfile.NumTextureMapSlots; slot++ {
		if slot != gfdfile.SlotDiffuse && !flags.Has(slot.Flag()) {
			continue
		}
		res, err := decodeResource(r, gfdfile.KindTextureMap)
		if err != nil {
			return nil, err
		}
		m.SetMap(slot, res.(*gfdfile.TextureMap))
	}

	if flags.Has(gfdfile.FlagHasAttributes) {
		var n int
		if r.Count(&n, minAttributeSize) {
			return nil, r.Err()
		}
		attrs := make([]*gfdfile.MaterialAttribute, 0, n)
		for i := 0; i < n; i++ {
			res, err := decodeResource(r, gfdfile.KindMaterialAttribute)
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, res.(*gfdfile.MaterialAttribute))
		}
		m.SetAttributes(attrs)
	}

	// Keep the flags as read; they are only recomputed on modification.
	m.Flags = flags
	return m, nil
}

func encodeMaterial(w *Writer, res gfdfile.Resource) error {
	m := res.(*gfdfile.Material)
	v := w.version
	if m.Map(gfdfile.SlotDiffuse) == nil {
		w.Fail(fmt.Errorf("%w: material %q has no diffuse map", errors.ErrInvalidArgument, m.Name))
		return w.Err()
	}

	if v >= versionParameterSets {
		if w.U16(m.ParameterFormat) {
			return w.Err()
		}
	}
	if w.String(m.Name) {
		return w.Err()
	}
	flags := maskFlags(gfdfile.DeriveFlags(m), v)
	if w.U32(uint32(flags)) {
		return w.Err()
	}

	if v < versionParameterSets {
		if w.fields(legacyColorFields(m)) {
			return w.Err()
		}
	} else {
		fs, err := parameterFields(m.ParameterFormat, m.Parameters)
		if w.Fail(err) {
			return w.Err()
		}
		if w.fields(fs) {
			return w.Err()
		}
	}

	if w.fields(drawFields(m, v)) {
		return w.Err()
	}
	if w.I16(m.Field90) {
		return w.Err()
	}
	if w.I16(int16(m.AlphaClip)) {
		return w.Err()
	}
	if w.fields(flags2Fields(m, v)) {
		return w.Err()
	}
	if w.fields(trailerFields(m)) {
		return w.Err()
	}

	for _, tm := range m.Maps() {
		if err := encodeResource(w, tm); err != nil {
			return err
		}
	}

	if attrs := m.Attributes(); len(attrs) > 0 {
		if w.Count(len(attrs)) {
			return w.Err()
		}
		for _, attr := range attrs {
			if err := encodeResource(w, attr); err != nil {
				return err
			}
		}
	}
	return nil
}

// Materials are stored back to back with no length prefix, so a material
// whose body is misread corrupts every material that follows it.
func decodeMaterialDictionary(r *Reader) (gfdfile.Resource, error) {
	var n int
	if r.Count(&n, minMaterialSize) {
		return nil, r.Err()
	}
	d := gfdfile.NewMaterialDictionary(r.version)
	d.Materials = make([]*gfdfile.Material, 0, n)
	for i := 0; i < n; i++ {
		res, err := decodeResource(r, gfdfile.KindMaterial)
		if err != nil {
			return nil, err
		}
		d.Materials = append(d.Materials, res.(*gfdfile.Material))
	}
	return d, nil
}

func encodeMaterialDictionary(w *Writer, res gfdfile.Resource) error {
	d := res.(*gfdfile.MaterialDictionary)
	if w.Count(len(d.Materials)) {
		return w.Err()
	}
	for _, m := range d.Materials {
		if err := encodeResource(w, m); err != nil {
			return err
		}
	}
	return nil
}
