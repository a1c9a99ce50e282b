// Package decl defines the contract between declaration sources and the
// model builder: raw candidate declarations carrying annotation records.
//
// Two sources produce declarations: structured schema files
// (internal/schema) and comment directives in Go source (internal/analyze).
package decl

import (
	"fmt"

	"sumtype-generator/internal/common"
)

// Annotation kinds understood by the builder. Other kinds are ignored.
const (
	KindUnion   = "union"
	KindVariant = "variant"
	KindEmpty   = "empty"
)

// Named argument keys.
const (
	ArgName     = "name"
	ArgNullable = "nullable"
	ArgAOT      = "aot"
	ArgTag      = "tag"
	ArgEquality = "equality"
)

// Declaration is one candidate type together with its annotations.
type Declaration struct {
	// Namespace is the Go package name of the union.
	Namespace string
	// Name is the union type identifier.
	Name string
	// Dir is the directory of the declaration relative to the input root.
	Dir string
	// Origin is a human-readable position ("file:line") for diagnostics.
	Origin string
	// Imports lists import paths the emitted unit needs for payload types.
	Imports []string
	// Annotations in the order they were written.
	Annotations []Annotation
}

// Annotation is a single raw annotation record.
type Annotation struct {
	Kind  string
	Args  []Arg
	Named map[string]Arg
	// Raw is the annotation source text, if the source has one.
	Raw string
}

// Arg is an annotation argument. When the source could not evaluate it
// statically, Known is false and only Raw is set.
type Arg struct {
	Value any
	Known bool
	Raw   string
}

// Value returns a known argument holding v.
func Value(v any) Arg {
	return Arg{Value: v, Known: true, Raw: fmt.Sprint(v)}
}

// Unknown returns an argument that only carries its source text.
func Unknown(raw string) Arg {
	return Arg{Raw: raw}
}

// Positional returns the i-th positional argument.
func (a Annotation) Positional(i int) (Arg, bool) {
	return common.At(a.Args, i)
}

// Lookup returns a named argument.
func (a Annotation) Lookup(key string) (Arg, bool) {
	arg, ok := a.Named[key]
	return arg, ok
}

// Equality selects how payload values are compared by generated code.
type Equality int

const (
	// EqualityComparable uses the == operator.
	EqualityComparable Equality = iota
	// EqualityMethod calls the payload's Equal method.
	EqualityMethod
	// EqualityDeep uses reflect.DeepEqual.
	EqualityDeep
	// EqualityDynamic uses == when both values are comparable at run time
	// and reflect.DeepEqual otherwise. It serves types that hold interfaces.
	EqualityDynamic
)

// String returns the schema spelling of the equality strategy.
func (e Equality) String() string {
	switch e {
	case EqualityComparable:
		return "comparable"
	case EqualityMethod:
		return "method"
	case EqualityDeep:
		return "deep"
	case EqualityDynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("Equality(%d)", int(e))
	}
}

// ParseEquality parses the schema spelling of an equality strategy.
func ParseEquality(s string) (Equality, error) {
	switch s {
	case "", "comparable":
		return EqualityComparable, nil
	case "method":
		return EqualityMethod, nil
	case "deep":
		return EqualityDeep, nil
	case "dynamic":
		return EqualityDynamic, nil
	default:
		return 0, fmt.Errorf("unknown equality %q", s)
	}
}

// TypeRef is a structurally resolved payload type.
type TypeRef struct {
	// Expr is the Go type expression as written in the emitted package.
	Expr string
	// Nilable reports whether the zero value of the type is nil.
	Nilable bool
	// Equality selects payload comparison in generated code.
	Equality Equality
}

// String returns the type expression.
func (t TypeRef) String() string {
	return t.Expr
}
