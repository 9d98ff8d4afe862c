package gfd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gfdtools/gfdfile"
	"github.com/gfdtools/gfdfile/errors"
)

// DataError wraps an error that occurred while encoding or decoding byte data.
type DataError struct {
	// Offset is the byte offset where the error occurred.
	Offset int64

	Cause error
}

func (err DataError) Error() string {
	var s strings.Builder
	s.WriteString("data error")
	if err.Offset >= 0 {
		s.WriteString(" at ")
		s.Write(strconv.AppendInt(nil, err.Offset, 10))
	}
	if err.Cause != nil {
		s.WriteString(": ")
		s.WriteString(err.Cause.Error())
	}
	return s.String()
}

func (err DataError) Unwrap() error {
	return err.Cause
}

// ChunkError indicates an error that occurred within a top-level chunk.
type ChunkError struct {
	// Index is the position of the chunk within the file.
	Index int
	// Kind is the kind stored in the chunk header.
	Kind gfdfile.Kind

	Cause error
}

func (err ChunkError) Error() string {
	if err.Index < 0 {
		return fmt.Sprintf("%s chunk: %s", err.Kind, err.Cause)
	}
	return fmt.Sprintf("#%d %s chunk: %s", err.Index, err.Kind, err.Cause)
}

func (err ChunkError) Unwrap() error {
	return err.Cause
}

// KindError indicates a resource kind that has no registered codec.
type KindError struct {
	Kind gfdfile.Kind
}

func (err KindError) Error() string {
	return fmt.Sprintf("%s: 0x%08X", errors.ErrUnknownKind, uint32(err.Kind))
}

func (err KindError) Unwrap() error {
	return errors.ErrUnknownKind
}

// FormatSelectorError indicates a material parameter format selector with no
// known layout.
type FormatSelectorError struct {
	Selector uint16
}

func (err FormatSelectorError) Error() string {
	return fmt.Sprintf("%s %d", errors.ErrInvalidParameterFormat, err.Selector)
}

func (err FormatSelectorError) Unwrap() error {
	return errors.ErrInvalidParameterFormat
}

// UnsupportedError indicates an operation that a codec does not implement.
type UnsupportedError struct {
	Kind gfdfile.Kind
	// Op is the operation that was attempted, such as "decode".
	Op string
}

func (err UnsupportedError) Error() string {
	return fmt.Sprintf("%s %s: %s", err.Op, err.Kind, errors.ErrNotSupported)
}

func (err UnsupportedError) Unwrap() error {
	return errors.ErrNotSupported
}

// VersionError indicates a child resource whose version differs from the
// version of the resource containing it.
type VersionError struct {
	Kind   gfdfile.Kind
	Want   gfdfile.Version
	Actual gfdfile.Version
}

func (err VersionError) Error() string {
	return fmt.Sprintf("%s has version %s, expected %s", err.Kind, err.Actual, err.Want)
}

func (err VersionError) Unwrap() error {
	return errors.ErrInvalidArgument
}

// HashError indicates a stored string hash that does not match the string.
type HashError struct {
	// Offset is the byte offset of the hash.
	Offset int64

	String string
	Stored uint32
	Actual uint32
}

func (err HashError) Error() string {
	return fmt.Sprintf("hash of string %q at %d is 0x%08X, expected 0x%08X", err.String, err.Offset, err.Stored, err.Actual)
}

var errInvalidMagic = fmt.Errorf("%w: expected %q", errors.ErrInvalidSignature, magic)

// errReserve indicates unexpected content for bytes presumed to be reserved.
type errReserve struct {
	// Offset marks the location of the reserved bytes.
	Offset int64
	// Bytes is the content of the reserved bytes.
	Bytes []byte
}

func (err errReserve) Error() string {
	return fmt.Sprintf("unexpected content for reserved bytes near %d: % 02X", err.Offset, err.Bytes)
}

// errTrailing indicates bytes left over after decoding the body of a chunk.
type errTrailing struct {
	Length int64
}

func (err errTrailing) Error() string {
	return fmt.Sprintf("%d trailing bytes in chunk", err.Length)
}

// errCount indicates an element count that cannot fit in the remaining data.
type errCount struct {
	Count     int64
	Remaining int64
}

func (err errCount) Error() string {
	return fmt.Sprintf("count %d exceeds %d remaining bytes", err.Count, err.Remaining)
}
