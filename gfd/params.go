package gfd

import (
	"fmt"

	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
)

// Parameter set layouts, indexed by format selector. Each layout lists the
// fields of the set in stored order.
var parameterLayouts = [gfdfile.NumParameterFormats]func(gfdfile.ParameterSet) ([]field, bool){
	0:  layout(params0),
	1:  layout(params1),
	2:  layout(paramsPBR),
	3:  layout(paramsPBR),
	4:  layout(params4),
	5:  layout(params5),
	6:  layout(params6),
	7:  layout(params7),
	8:  layout(params8),
	9:  layout(params9),
	10: layout(params10),
	11: layout(params11),
	12: layout(params12),
	13: layout(paramsPBR),
	14: layout(params14),
	15: layout(params15),
}

func layout[T any](fields func(p *T) []field) func(gfdfile.ParameterSet) ([]field, bool) {
	return func(s gfdfile.ParameterSet) ([]field, bool) {
		p, ok := any(s).(*T)
		if !ok || p == nil {
			return nil, false
		}
		return fields(p), true
	}
}

// parameterFields returns the layout of set for the given selector. The set
// must have the type that gfdfile.NewParameterSet returns for the selector.
func parameterFields(selector uint16, set gfdfile.ParameterSet) ([]field, error) {
	if int(selector) >= len(parameterLayouts) {
		return nil, FormatSelectorError{Selector: selector}
	}
	fs, ok := parameterLayouts[selector](set)
	if !ok {
		return nil, fmt.Errorf("%w: parameter set %T does not match format %d", errors.ErrInvalidArgument, set, selector)
	}
	return fs, nil
}

func params0(p *gfdfile.ParameterSet0) []field {
	return []field{
		f(&p.DiffuseColor),
		fg(since(0x2000004), &p.DiffuseAlpha),
		fg(since(0x2030001), &p.Reflectivity),
		fg(since(0x2110040), &p.Diffusivity),
		fg(only(0x2110140), &p.Field2110140),
		f(&p.Field0C),
	}
}

func params1(p *gfdfile.ParameterSet1) []field {
	return []field{
		f(&p.AmbientColor),
		f(&p.DiffuseColor),
		f(&p.SpecularColor),
		f(&p.EmissiveColor),
		f(&p.Reflectivity),
		f(&p.LerpBlendRate),
	}
}

func paramsPBR(p *gfdfile.ParameterSetPBR) []field {
	return []field{
		f(&p.Colors[0]),
		f(&p.Colors[1]),
		f(&p.Colors[2]),
		f(&p.Colors[3]),
		f(&p.Field40),
		f(p.Field4C[:]),
		f(&p.Field64),
		fg(since(0x200FFFF), &p.Field68),
		fg(since(0x200FFFF), &p.Field6C),
		fg(since(0x2030001), &p.FieldEC),
		fg(since(0x2090000), &p.FieldDC),
		fg(since(0x2094001), &p.FieldF8),
		fg(since(0x2109501), &p.Field118),
		fg(since(0x2109501), &p.Field11C),
		fg(since(0x2109501), &p.Field120),
		fg(since(0x2109601), &p.Field108),
		fg(since(0x2110197), &p.FieldE8),
		fg(since(0x2110203), &p.Field128),
		fg(since(0x2110209), &p.Field12C),
	}
}

func params4(p *gfdfile.ParameterSet4) []field {
	return []field{
		f(&p.AmbientColor),
		f(&p.DiffuseColor),
		f(&p.SpecularColor),
		f(&p.Field2C),
		fg(since(0x2110184), &p.SpecularPower),
		fg(since(0x2110203), &p.EmissiveX),
		fg(since(0x2110217), &p.EmissiveY),
	}
}

func params5(p *gfdfile.ParameterSet5) []field {
	return []field{
		f(p.Values[:]),
		fg(since(0x2110182), p.Field2C[:]),
		fg(since(0x2110205), &p.Field34),
		fg(since(0x2110188), &p.Field38),
	}
}

func params6(p *gfdfile.ParameterSet6) []field {
	var fs []field
	for i := range p.Layers {
		l := &p.Layers[i]
		fs = append(fs, f(&l.Color), f(l.Values[:]))
	}
	return append(fs,
		f(&p.Field40),
		fg(since(0x2110021), &p.Field44),
		fg(since(0x2110021), &p.Field48),
		f(&p.Field4C),
		f(&p.Field50),
	)
}

func params7(p *gfdfile.ParameterSet7) []field {
	var fs []field
	for i := range p.Layers {
		fs = append(fs, f(p.Layers[i][:]))
	}
	return append(fs, f(&p.FieldF0), f(&p.FieldF4))
}

func params8(p *gfdfile.ParameterSet8) []field {
	return []field{
		f(p.Field00[:]),
		f(&p.Color),
		f(p.Field20[:]),
	}
}

func params9(p *gfdfile.ParameterSet9) []field {
	return []field{
		f(p.Field00[:]),
		f(&p.Colors[0]),
		f(&p.Colors[1]),
		f(&p.Colors[2]),
		f(&p.Colors[3]),
		f(&p.Field50),
		f(p.Field5C[:]),
		f(&p.Field7C),
	}
}

func params10(p *gfdfile.ParameterSet10) []field {
	return []field{
		f(&p.Color),
		fg(since(0x2110091), &p.Field10),
		f(&p.Field14),
		fg(since(0x2110100), &p.Field18),
	}
}

func params11(p *gfdfile.ParameterSet11) []field {
	return []field{
		f(&p.Color),
		fg(since(0x2108001), &p.Field10),
	}
}

func params12(p *gfdfile.ParameterSet12) []field {
	return []field{
		f(&p.Colors[0]),
		f(&p.Colors[1]),
		f(&p.Colors[2]),
		f(p.Field30[:]),
		f(&p.Field3C),
		f(&p.Field40),
		f(&p.Field44),
		f(p.Field50[:]),
		fg(since(0x2109501), p.Field58[:]),
		fg(since(0x2109601), &p.Field64),
		fg(since(0x2109701), &p.Field68),
		fg(since(0x2109701), p.Field74[:]),
		fg(since(0x2110070), &p.Field84),
		fg(since(0x2110070), p.Field94[:]),
	}
}

func params14(p *gfdfile.ParameterSet14) []field {
	return []field{
		f(&p.Color),
		f(&p.Field10),
	}
}

func params15(p *gfdfile.ParameterSet15) []field {
	var fs []field
	for i := range p.Layers {
		l := &p.Layers[i]
		fs = append(fs,
			f(l.TileSize[:]),
			f(l.TileOffset[:]),
			f(&l.Roughness),
			f(&l.Metallic),
			f(&l.Color),
		)
	}
	return append(fs,
		f(&p.LayerCount),
		f(&p.TriPlanarScale),
		f(&p.AlphaTestRef),
	)
}
