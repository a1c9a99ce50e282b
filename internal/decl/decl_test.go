package decl

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotation_Accessors(t *testing.T) {
	a := Annotation{
		Kind:  KindVariant,
		Args:  []Arg{Value(TypeRef{Expr: "PaymentCard"}), Value("Card")},
		Named: map[string]Arg{ArgNullable: Value(true)},
	}

	arg, ok := a.Positional(1)
	require.True(t, ok)
	assert.Equal(t, "Card", arg.Value)
	assert.True(t, arg.Known)

	_, ok = a.Positional(2)
	assert.False(t, ok)

	arg, ok = a.Lookup(ArgNullable)
	require.True(t, ok)
	assert.Equal(t, true, arg.Value)

	_, ok = a.Lookup(ArgName)
	assert.False(t, ok)
}

func TestUnknown(t *testing.T) {
	arg := Unknown("typeof(Foo)")
	assert.False(t, arg.Known)
	assert.Nil(t, arg.Value)
	assert.Equal(t, "typeof(Foo)", arg.Raw)
}

func TestParseEquality(t *testing.T) {
	for _, e := range []Equality{EqualityComparable, EqualityMethod, EqualityDeep, EqualityDynamic} {
		got, err := ParseEquality(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	got, err := ParseEquality("")
	require.NoError(t, err)
	assert.Equal(t, EqualityComparable, got)

	_, err = ParseEquality("bitwise")
	assert.Error(t, err)
}

func TestNilableExpr(t *testing.T) {
	for _, expr := range []string{"*int", "[]byte", "map[string]int", "func()", "chan int", "<-chan int", "any", "error", "interface{}"} {
		assert.True(t, NilableExpr(expr), expr)
	}

	for _, expr := range []string{"int", "string", "PaymentCard", "[4]byte", "time.Time"} {
		assert.False(t, NilableExpr(expr), expr)
	}
}

func TestParseTypeRef(t *testing.T) {
	ref := ParseTypeRef(" []string ")
	assert.Equal(t, "[]string", ref.Expr)
	assert.True(t, ref.Nilable)
	assert.Equal(t, EqualityDeep, ref.Equality)

	ref = ParseTypeRef("*models.User")
	assert.True(t, ref.Nilable)
	assert.Equal(t, EqualityComparable, ref.Equality)

	ref = ParseTypeRef("PaymentCard")
	assert.False(t, ref.Nilable)
	assert.Equal(t, EqualityComparable, ref.Equality)
}

func TestDefaultEquality(t *testing.T) {
	tests := map[string]Equality{
		"int":                         EqualityComparable,
		"*models.User":                EqualityComparable,
		"[4]byte":                     EqualityComparable,
		"time.Time":                   EqualityComparable,
		"List[int]":                   EqualityComparable,
		"struct{ X, Y int }":          EqualityComparable,
		"[]string":                    EqualityDeep,
		"map[string]int":              EqualityDeep,
		"func()":                      EqualityDeep,
		"[2][]int":                    EqualityDeep,
		"struct{ V any; W []int }":    EqualityDeep,
		"any":                         EqualityDynamic,
		"error":                       EqualityDynamic,
		"fmt.Stringer":                EqualityDynamic,
		"interface{ Area() float64 }": EqualityDynamic,
		"[2]any":                      EqualityDynamic,
		"struct{ V any }":             EqualityDynamic,
		"(error)":                     EqualityDynamic,
	}

	for expr, want := range tests {
		assert.Equal(t, want, DefaultEquality(expr), expr)
	}
}

func TestCompareOrigins(t *testing.T) {
	origins := []string{
		"x.go:10",
		"b.sumtype.yaml:unions[10]",
		"x.go:9",
		"a.go:100",
		"b.sumtype.yaml:unions[2]",
		"x.go",
	}

	slices.SortFunc(origins, CompareOrigins)

	assert.Equal(t, []string{
		"a.go:100",
		"b.sumtype.yaml:unions[2]",
		"b.sumtype.yaml:unions[10]",
		"x.go",
		"x.go:9",
		"x.go:10",
	}, origins)
}

func TestCompare(t *testing.T) {
	a := Declaration{Origin: "pkg/u.go:9"}
	b := Declaration{Origin: "pkg/u.go:10"}

	assert.Negative(t, Compare(a, b))
	assert.Positive(t, Compare(b, a))
	assert.Zero(t, Compare(a, a))
}
