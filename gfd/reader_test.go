package gfd

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitives(t *testing.T) {
	const v = 0x2110217
	var buf bytes.Buffer
	w := NewWriter(&buf, v)
	require.False(t, w.U8(0xAB) ||
		w.I16(-2) ||
		w.U16(0xBEEF) ||
		w.I32(-3) ||
		w.U32(0xDEADBEEF) ||
		w.U64(0x0102030405060708) ||
		w.F32(1.5) ||
		w.Vec3(gfdfile.Vec3{1, 2, 3}) ||
		w.Vec4(gfdfile.Vec4{4, 5, 6, 7}) ||
		w.Triangle(gfdfile.Triangle{A: 9, B: 8, C: 7}) ||
		w.String("name"))
	require.NoError(t, w.Err())

	want := app(
		uint8(0xAB),
		int16(-2),
		uint16(0xBEEF),
		int32(-3),
		uint32(0xDEADBEEF),
		uint32(0x01020304), uint32(0x05060708),
		float32(1.5),
		float32(1), float32(2), float32(3),
		float32(4), float32(5), float32(6), float32(7),
		uint32(9), uint32(8), uint32(7),
		str("name", v),
	)
	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, int64(len(want)), w.N())

	r := NewReader(bytes.NewReader(buf.Bytes()), v)
	var (
		u8  uint8
		i16 int16
		u16 uint16
		i32 int32
		u32 uint32
		u64 uint64
		f32 float32
		v3  gfdfile.Vec3
		v4  gfdfile.Vec4
		tri gfdfile.Triangle
		s   string
	)
	require.False(t, r.U8(&u8) ||
		r.I16(&i16) ||
		r.U16(&u16) ||
		r.I32(&i32) ||
		r.U32(&u32) ||
		r.U64(&u64) ||
		r.F32(&f32) ||
		r.Vec3(&v3) ||
		r.Vec4(&v4) ||
		r.Triangle(&tri) ||
		r.String(&s))
	assert.Equal(t, uint8(0xAB), u8)
	assert.Equal(t, int16(-2), i16)
	assert.Equal(t, uint16(0xBEEF), u16)
	assert.Equal(t, int32(-3), i32)
	assert.Equal(t, uint32(0xDEADBEEF), u32)
	assert.Equal(t, uint64(0x0102030405060708), u64)
	assert.Equal(t, float32(1.5), f32)
	assert.Equal(t, gfdfile.Vec3{1, 2, 3}, v3)
	assert.Equal(t, gfdfile.Vec4{4, 5, 6, 7}, v4)
	assert.Equal(t, gfdfile.Triangle{A: 9, B: 8, C: 7}, tri)
	assert.Equal(t, "name", s)

	// Errors are sticky.
	assert.True(t, r.U8(&u8))
	assert.True(t, errors.Is(r.Err(), io.EOF) || errors.Is(r.Err(), io.ErrUnexpectedEOF))
	assert.True(t, r.U8(&u8))
}

func TestStringVersion(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, versionStringHash)
	require.False(t, w.String("abc"))
	assert.Equal(t, app(uint16(3), "abc"), buf.Bytes())

	buf.Reset()
	w = NewWriter(&buf, versionStringHash+1)
	require.False(t, w.String("abc"))
	assert.Equal(t, app(uint16(3), "abc", stringHash([]byte("abc"))), buf.Bytes())

	w = NewWriter(io.Discard, 0)
	assert.True(t, w.String(strings.Repeat("x", 1<<16)))
	assert.True(t, errors.Is(w.Err(), errors.ErrInvalidArgument))
}

func TestReaderCount(t *testing.T) {
	r := NewReader(bytes.NewReader(app(int32(2))), 0)
	r.limit = 4 + 2*12
	var n int
	require.False(t, r.Count(&n, 12))
	assert.Equal(t, 2, n)

	r = NewReader(bytes.NewReader(app(int32(3))), 0)
	r.limit = 4 + 2*12
	assert.True(t, r.Count(&n, 12))
	var countErr errCount
	assert.True(t, errors.As(r.Err(), &countErr))
	assert.Equal(t, int64(3), countErr.Count)
}

func TestReaderData(t *testing.T) {
	payload := bytes.Repeat([]byte{1, 2, 3, 4}, dataPiece/2)
	r := NewReader(bytes.NewReader(payload), 0)
	b, failed := r.Data(int64(len(payload)))
	require.False(t, failed)
	assert.Equal(t, payload, b)

	r = NewReader(bytes.NewReader(payload[:10]), 0)
	_, failed = r.Data(dataPiece * 4)
	assert.True(t, failed)
}
