package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `validate:"notblank"`
	Kind   string `validate:"required,oneof=add deduct"`
	Active *bool  `validate:"required"`
}

func TestStruct(t *testing.T) {
	active := false

	assert.Nil(t, Struct(sample{Name: "Alice", Kind: "add", Active: &active}))

	errs := Struct(sample{Name: "   ", Kind: "withdraw"})
	require.Len(t, errs, 3)
	assert.Equal(t, FieldError{Field: "Name", Tag: "notblank"}, errs[0])
	assert.Equal(t, FieldError{Field: "Kind", Tag: "oneof"}, errs[1])
	assert.Equal(t, FieldError{Field: "Active", Tag: "required"}, errs[2])
	assert.True(t, Failed(errs, "Kind"))
	assert.True(t, Failed(errs, "Kind", "oneof"))
	assert.False(t, Failed(errs, "Kind", "required"))
	assert.False(t, Failed(errs, "Missing"))
}
