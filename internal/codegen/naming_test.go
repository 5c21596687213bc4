package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foo_bar", "FooBar"},
		{"math_ops", "MathOps"},
		{"single", "Single"},
		{"UPPER_case", "UpperCase"},
		{"double__underscore", "DoubleUnderscore"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ModuleName(tt.in))
		})
	}
}

func TestMockNames(t *testing.T) {
	module := ModuleName("foo_bar")

	assert.Equal(t, "MockFooBar", MockModuleName(module))
	assert.Equal(t, "MockFooBar.hpp", MockHeaderName(module))
	assert.Equal(t, "MockFooBar.cpp", MockSourceName(module))
	assert.Equal(t, "FooBarPtr", MockPointerName(module))
}
