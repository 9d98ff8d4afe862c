package gfd

import (
	"testing"

	"github.com/gfdtools/gfdfile"
	"github.com/stretchr/testify/assert"
)

func TestGate(t *testing.T) {
	tests := []struct {
		name string
		gate gate
		v    gfdfile.Version
		open bool
	}{
		{"always", always, 0, true},
		{"since below", since(0x2000000), 0x1FFFFFF, false},
		{"since at", since(0x2000000), 0x2000000, true},
		{"since above", since(0x2000000), 0x2110217, true},
		{"until at", until(0x1105070), 0x1105070, true},
		{"until above", until(0x1105070), 0x1105071, false},
		{"only below", only(0x2110140), 0x211013F, false},
		{"only at", only(0x2110140), 0x2110140, true},
		{"only above", only(0x2110140), 0x2110141, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.open, tt.gate.open(tt.v), tt.name)
	}
}

func TestGateField98(t *testing.T) {
	tests := map[gfdfile.Version]bool{
		0x1000000: true,
		0x1105070: true,
		0x1105071: false,
		0x110507F: false,
		0x1105080: true,
		0x1105081: false,
		0x110508F: false,
		0x1105090: true,
		0x2110217: true,
	}
	for v, open := range tests {
		assert.Equal(t, open, gateField98.open(v), "version %s", v)
	}
}

func TestLayoutTable(t *testing.T) {
	assert.Equal(t, drawWide, drawLayouts.at(0x1000000))
	assert.Equal(t, drawWide, drawLayouts.at(versionWideDraw))
	assert.Equal(t, drawNarrow, drawLayouts.at(versionWideDraw+1))
	assert.Equal(t, drawNarrow, drawLayouts.at(0x2110217))

	assert.Equal(t, flags2Packed, flags2Layouts.at(0x1000000))
	assert.Equal(t, flags2Packed, flags2Layouts.at(versionPackedFlags2))
	assert.Equal(t, flags2Split, flags2Layouts.at(versionPackedFlags2+1))
}

func TestThresholds(t *testing.T) {
	assert.False(t, hasStringHash(0x1080000))
	assert.True(t, hasStringHash(0x1080001))

	assert.Equal(t, gfdfile.FlagBit31, maskFlags(0xFFFFFFFF, versionFlagMask)&gfdfile.FlagBit31)
	assert.Equal(t, gfdfile.MaterialFlags(0x7FFFFFFF), maskFlags(0xFFFFFFFF, versionFlagMask-1))
}
