package gfd

import "github.com/gfdtools/gfdfile"

// Version thresholds at which layouts change.
const (
	// Strings are followed by a hash after this version.
	versionStringHash gfdfile.Version = 0x1080000

	// The legacy 16-bit HighlightMapMode is stored after this version.
	versionLegacyHighlight gfdfile.Version = 0x108011B

	// Draw fields are stored as 16-bit values up to this version, and as bytes
	// after it.
	versionWideDraw gfdfile.Version = 0x1103040

	// The high bit of the material flags is masked before this version.
	versionFlagMask gfdfile.Version = 0x1104000

	// Attribute bodies gain a trailing flags field from this version.
	versionAttributeFlags gfdfile.Version = 0x1104501

	// Flags2 is packed into a 32-bit Field96 up to this version.
	versionPackedFlags2 gfdfile.Version = 0x1104800

	// Field98 is absent within a narrow band of versions.
	versionField98Gap1 gfdfile.Version = 0x1105070
	versionField98Gap2 gfdfile.Version = 0x1105080
	versionField98Gap3 gfdfile.Version = 0x1105090

	// Materials store a parameter format selector and a parameter set from
	// this version.
	versionParameterSets gfdfile.Version = 0x2000000

	// Field6C2 is stored from this version.
	versionField6C2 gfdfile.Version = 0x2110160
)

// versionRange is a half-open interval of versions. A Max of zero means the
// range is unbounded above.
type versionRange struct {
	Min gfdfile.Version
	Max gfdfile.Version
}

func (r versionRange) contains(v gfdfile.Version) bool {
	return v >= r.Min && (r.Max == 0 || v < r.Max)
}

// gate is a list of version ranges. A field guarded by a gate is present when
// the version falls in any of the ranges. An empty gate is always open.
type gate []versionRange

func (g gate) open(v gfdfile.Version) bool {
	if len(g) == 0 {
		return true
	}
	for _, r := range g {
		if r.contains(v) {
			return true
		}
	}
	return false
}

// always is a gate that is open for every version.
var always gate

// since returns a gate open from v onward.
func since(v gfdfile.Version) gate {
	return gate{{Min: v}}
}

// until returns a gate open for every version up to and including v.
func until(v gfdfile.Version) gate {
	return gate{{Min: 0, Max: v + 1}}
}

// only returns a gate open for exactly v.
func only(v gfdfile.Version) gate {
	return gate{{Min: v, Max: v + 1}}
}

// union returns a gate open where any of gs is open.
func union(gs ...gate) gate {
	var u gate
	for _, g := range gs {
		u = append(u, g...)
	}
	return u
}

// layoutEntry associates a layout with the first version that uses it.
type layoutEntry[T any] struct {
	Since  gfdfile.Version
	Layout T
}

// layoutTable selects among alternative layouts of a field group. Entries are
// ordered by Since.
type layoutTable[T any] []layoutEntry[T]

// at returns the layout of the last entry whose Since is not greater than v.
func (t layoutTable[T]) at(v gfdfile.Version) T {
	var layout T
	for _, e := range t {
		if e.Since > v {
			break
		}
		layout = e.Layout
	}
	return layout
}

// Gate open where Field98 is stored.
var gateField98 = union(
	until(versionField98Gap1),
	only(versionField98Gap2),
	since(versionField98Gap3),
)

type drawLayout int

const (
	drawWide drawLayout = iota
	drawNarrow
)

var drawLayouts = layoutTable[drawLayout]{
	{0, drawWide},
	{versionWideDraw + 1, drawNarrow},
}

type flags2Layout int

const (
	flags2Packed flags2Layout = iota
	flags2Split
)

var flags2Layouts = layoutTable[flags2Layout]{
	{0, flags2Packed},
	{versionPackedFlags2 + 1, flags2Split},
}
