package decl

import (
	"go/ast"
	"go/parser"
	"strings"
)

// NilableExpr guesses from syntax alone whether a type expression has a nil
// zero value. Named types are assumed not to be nilable.
func NilableExpr(expr string) bool {
	s := strings.TrimSpace(expr)

	switch {
	case strings.HasPrefix(s, "*"), strings.HasPrefix(s, "[]"),
		strings.HasPrefix(s, "map["), strings.HasPrefix(s, "func"),
		strings.HasPrefix(s, "chan"), strings.HasPrefix(s, "<-chan"),
		strings.HasPrefix(s, "interface"):
		return true
	case knownInterfaces[s]:
		return true
	default:
		return false
	}
}

// knownInterfaces are qualified interface types recognized by name when no
// type information is available.
var knownInterfaces = map[string]bool{
	"context.Context": true,
	"error":           true,
	"any":             true,
	"fmt.Stringer":    true,
	"io.Reader":       true,
	"io.Writer":       true,
	"io.Closer":       true,
	"io.ReadCloser":   true,
	"io.ReadWriter":   true,
	"io.WriteCloser":  true,
	"sort.Interface":  true,
}

// DefaultEquality picks the equality strategy for a type expression when
// none is given. Types that cannot be compared with == use deep equality;
// types holding interfaces, whose == panics on uncomparable dynamic values,
// use dynamic equality.
func DefaultEquality(expr string) Equality {
	s := strings.TrimSpace(expr)

	e, err := parser.ParseExpr(s)
	if err != nil {
		switch {
		case strings.HasPrefix(s, "[]"), strings.HasPrefix(s, "map["), strings.HasPrefix(s, "func"):
			return EqualityDeep
		case strings.HasPrefix(s, "interface"):
			return EqualityDynamic
		default:
			return EqualityComparable
		}
	}

	return equalityOfExpr(e)
}

func equalityOfExpr(e ast.Expr) Equality {
	switch x := e.(type) {
	case *ast.ParenExpr:
		return equalityOfExpr(x.X)
	case *ast.Ident:
		if knownInterfaces[x.Name] {
			return EqualityDynamic
		}
	case *ast.SelectorExpr:
		if pkg, ok := x.X.(*ast.Ident); ok && knownInterfaces[pkg.Name+"."+x.Sel.Name] {
			return EqualityDynamic
		}
	case *ast.InterfaceType:
		return EqualityDynamic
	case *ast.MapType, *ast.FuncType:
		return EqualityDeep
	case *ast.ArrayType:
		if x.Len == nil {
			return EqualityDeep
		}

		return equalityOfExpr(x.Elt)
	case *ast.StructType:
		eq := EqualityComparable

		for _, f := range x.Fields.List {
			switch equalityOfExpr(f.Type) {
			case EqualityDeep:
				return EqualityDeep
			case EqualityDynamic:
				eq = EqualityDynamic
			}
		}

		return eq
	}

	return EqualityComparable
}

// ParseTypeRef builds a type reference from a type expression using only
// its syntax.
func ParseTypeRef(expr string) TypeRef {
	expr = strings.TrimSpace(expr)

	return TypeRef{Expr: expr, Nilable: NilableExpr(expr), Equality: DefaultEquality(expr)}
}
