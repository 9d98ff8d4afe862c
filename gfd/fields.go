package gfd

// field describes one stored value of a resource layout. ptr points into the
// resource being read or written, and must be one of the types handled by
// Reader.value. The value is stored only when gate is open for the version of
// the resource.
type field struct {
	gate gate
	ptr  any
}

// f returns a field that is always stored.
func f(ptr any) field {
	return field{ptr: ptr}
}

// fg returns a field stored when g is open.
func fg(g gate, ptr any) field {
	return field{gate: g, ptr: ptr}
}

// byteField stores a 16-bit value as a single unsigned byte. Values outside
// 0..255 cannot be written.
type byteField struct{ v *int16 }

// shortField stores a 32-bit value as a signed 16-bit integer. Values outside
// the int16 range cannot be written.
type shortField struct{ v *int32 }
