package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorsMessage(t *testing.T) {
	assert.Equal(t, "no errors", Errors{}.Error())
	assert.Equal(t, "one", Errors{New("one")}.Error())
	assert.Equal(t,
		"multiple errors:\n\tone\n\ttwo\n\tthree",
		Errors{New("one"), New("two\nthree")}.Error(),
	)
}

func TestErrorsReturn(t *testing.T) {
	var errs Errors
	assert.NoError(t, errs.Return())
	errs = errs.Append(nil, New("a"), nil)
	assert.Len(t, errs, 1)
	assert.Error(t, errs.Return())
}

func TestErrorsIs(t *testing.T) {
	errs := Errors{New("a"), fmt.Errorf("chunk 2: %w", ErrUnknownKind)}
	assert.True(t, Is(errs, ErrUnknownKind))
	assert.False(t, Is(errs, ErrNotSupported))
}

func TestUnion(t *testing.T) {
	assert.NoError(t, Union())
	assert.NoError(t, Union(nil, Errors{}, nil))

	a, b, c := New("a"), New("b"), New("c")
	err := Union(a, Errors{b, c}, nil)
	assert.Equal(t, Errors{a, b, c}, err)
}
