// The errors package provides the error taxonomy shared by the gfdfile
// packages, along with a list type used to accumulate warnings.
package errors

import (
	"errors"
	"strings"
)

// Sentinel errors. Codec errors wrap one of these so that callers can classify
// a failure with Is, regardless of the offset or chunk it occurred in.
var (
	// ErrUnknownKind indicates a resource kind discriminant that has no
	// registered codec.
	ErrUnknownKind = errors.New("unknown resource kind")

	// ErrInvalidParameterFormat indicates a material parameter format selector
	// outside of the known layouts.
	ErrInvalidParameterFormat = errors.New("invalid material parameter format")

	// ErrNotSupported indicates an operation that is not implemented for a
	// resource kind, such as decoding a write-only chunk.
	ErrNotSupported = errors.New("not supported")

	// ErrInvalidArgument indicates a value rejected before any state was
	// modified.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDepthExceeded indicates that nested resources exceeded the decoder's
	// depth limit.
	ErrDepthExceeded = errors.New("resource nesting too deep")

	// ErrInvalidSignature indicates a stream that does not begin with the
	// expected magic.
	ErrInvalidSignature = errors.New("invalid signature")
)

func New(text string) error {
	return errors.New(text)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Errors is a list of errors. Decoders use it to report problems that did not
// prevent decoding.
type Errors []error

// Error formats the list by separating each message with a newline. Each
// produced line, including lines within messages, is prefixed with a tab.
func (errs Errors) Error() string {
	switch len(errs) {
	case 0:
		return "no errors"
	case 1:
		return errs[0].Error()
	}
	var buf strings.Builder
	buf.WriteString("multiple errors:")
	for _, err := range errs {
		buf.WriteString("\n\t")
		buf.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n\t"))
	}
	return buf.String()
}

// Unwrap exposes each error in the list to Is and As.
func (errs Errors) Unwrap() []error {
	return errs
}

// Append returns errs with each non-nil err appended to it.
func (errs Errors) Append(err ...error) Errors {
	for _, e := range err {
		if e != nil {
			errs = append(errs, e)
		}
	}
	return errs
}

// Return prepares errs to be returned by a function by returning nil if errs is
// empty.
func (errs Errors) Return() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Union receives a number of errors and combines them into one Errors. Any errs
// that are Errors are flattened. Returns nil if all errs are nil or empty.
func Union(errs ...error) error {
	var e Errors
	for _, err := range errs {
		switch err := err.(type) {
		case nil:
		case Errors:
			e = e.Append(err...)
		default:
			e = append(e, err)
		}
	}
	return e.Return()
}
