package analyze

import (
	"go/types"
	"slices"

	"sumtype-generator/internal/decl"
)

// TypeRefOf describes a resolved type as it is written in package pkg.
func TypeRefOf(t types.Type, pkg *types.Package) decl.TypeRef {
	return decl.TypeRef{
		Expr:     types.TypeString(t, qualifier(pkg)),
		Nilable:  Nilable(t),
		Equality: EqualityOf(t),
	}
}

// Nilable reports whether the zero value of t is nil.
func Nilable(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Slice, *types.Map, *types.Signature, *types.Chan, *types.Interface:
		return true
	default:
		return false
	}
}

// EqualityOf picks how generated code compares values of t: an
// Equal(T) bool method wins, then ==, then reflect.DeepEqual. Comparable
// types that hold interfaces get dynamic equality, since their == panics
// on an uncomparable dynamic value.
func EqualityOf(t types.Type) decl.Equality {
	switch {
	case hasEqualMethod(t):
		return decl.EqualityMethod
	case !types.Comparable(t):
		return decl.EqualityDeep
	case holdsInterface(t, make(map[types.Type]bool)):
		return decl.EqualityDynamic
	default:
		return decl.EqualityComparable
	}
}

// holdsInterface reports whether comparing values of t may compare
// interface values.
func holdsInterface(t types.Type, seen map[types.Type]bool) bool {
	if seen[t] {
		return false
	}

	seen[t] = true

	switch u := t.Underlying().(type) {
	case *types.Interface:
		return true
	case *types.Array:
		return holdsInterface(u.Elem(), seen)
	case *types.Struct:
		for i := range u.NumFields() {
			if holdsInterface(u.Field(i).Type(), seen) {
				return true
			}
		}
	}

	return false
}

func hasEqualMethod(t types.Type) bool {
	obj, _, _ := types.LookupFieldOrMethod(t, false, nil, "Equal")

	fn, ok := obj.(*types.Func)
	if !ok || !fn.Exported() {
		return false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 1 || sig.Results().Len() != 1 || sig.Variadic() {
		return false
	}

	res, ok := sig.Results().At(0).Type().Underlying().(*types.Basic)

	return ok && res.Kind() == types.Bool && types.Identical(sig.Params().At(0).Type(), t)
}

// qualifier writes other packages by name and the own package unqualified.
func qualifier(pkg *types.Package) types.Qualifier {
	return func(other *types.Package) string {
		if other == pkg {
			return ""
		}

		return other.Name()
	}
}

// importsOf returns the paths of the packages t refers to, excluding pkg.
func importsOf(t types.Type, pkg *types.Package) []string {
	var paths []string

	walkNamed(t, make(map[types.Type]bool), func(obj *types.TypeName) {
		if p := obj.Pkg(); p != nil && p != pkg {
			paths = append(paths, p.Path())
		}
	})

	slices.Sort(paths)

	return slices.Compact(paths)
}

func containsInvalid(t types.Type) bool {
	invalid := false

	var visit func(types.Type)

	seen := make(map[types.Type]bool)
	visit = func(t types.Type) {
		if t == nil || seen[t] {
			return
		}

		seen[t] = true

		if b, ok := t.(*types.Basic); ok && b.Kind() == types.Invalid {
			invalid = true
			return
		}

		for _, child := range children(t) {
			visit(child)
		}
	}

	visit(t)

	return invalid
}

// walkNamed calls fn for every named or alias type in the expression
// structure of t. Struct fields and method signatures are not visited
// beyond the literal type itself.
func walkNamed(t types.Type, seen map[types.Type]bool, fn func(*types.TypeName)) {
	if t == nil || seen[t] {
		return
	}

	seen[t] = true

	switch x := t.(type) {
	case *types.Named:
		fn(x.Obj())

		for i := range x.TypeArgs().Len() {
			walkNamed(x.TypeArgs().At(i), seen, fn)
		}

		return
	case *types.Alias:
		fn(x.Obj())
		return
	}

	for _, child := range children(t) {
		walkNamed(child, seen, fn)
	}
}

// children returns the component types of a type literal.
func children(t types.Type) []types.Type {
	switch x := t.(type) {
	case *types.Pointer:
		return []types.Type{x.Elem()}
	case *types.Slice:
		return []types.Type{x.Elem()}
	case *types.Array:
		return []types.Type{x.Elem()}
	case *types.Map:
		return []types.Type{x.Key(), x.Elem()}
	case *types.Chan:
		return []types.Type{x.Elem()}
	case *types.Signature:
		var out []types.Type
		for i := range x.Params().Len() {
			out = append(out, x.Params().At(i).Type())
		}

		for i := range x.Results().Len() {
			out = append(out, x.Results().At(i).Type())
		}

		return out
	case *types.Struct:
		out := make([]types.Type, 0, x.NumFields())
		for i := range x.NumFields() {
			out = append(out, x.Field(i).Type())
		}

		return out
	case *types.Named:
		args := make([]types.Type, 0, x.TypeArgs().Len())
		for i := range x.TypeArgs().Len() {
			args = append(args, x.TypeArgs().At(i))
		}

		return args
	default:
		return nil
	}
}
