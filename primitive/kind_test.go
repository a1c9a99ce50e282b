package primitive_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"sumtype-generator/primitive"
)

func Example() {
	fmt.Println(primitive.FromTypeName("int"))
	fmt.Println(primitive.FromTypeName("byte"))
	fmt.Println(primitive.FromTypeName("string"))
	fmt.Println(primitive.FromTypeName("time.Duration"))
	fmt.Println(primitive.FromTypeName("[]int"))
	// Output:
	// KindInt
	// KindUint8
	// KindString
	// KindEnum(0)
	// KindEnum(0)
}

func TestKindEnum_Classification(t *testing.T) {
	assert.True(t, primitive.KindInt16.IsSigned())
	assert.True(t, primitive.KindUintptr.IsUnsigned())
	assert.True(t, primitive.KindComplex64.IsNumber())
	assert.False(t, primitive.KindComplex64.IsInteger())
	assert.True(t, primitive.KindFloat32.IsFloat())
	assert.False(t, primitive.KindBool.IsNumber())
	assert.False(t, primitive.KindEnum(0).IsValid())
	assert.True(t, primitive.KindString.IsValid())
}

func TestKindEnum_ZeroLiteral(t *testing.T) {
	tests := map[string]string{
		"int":        "0",
		"rune":       "0",
		"complex128": "0",
		"bool":       "false",
		"string":     `""`,
		"error":      "",
		"User":       "",
	}

	for name, want := range tests {
		assert.Equal(t, want, primitive.FromTypeName(name).ZeroLiteral(), name)
	}
}
