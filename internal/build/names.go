package build

import (
	"go/token"
	"strings"

	"sumtype-generator/internal/diagnostic"
	"sumtype-generator/internal/model"
)

// SimpleName derives the default logical name of a payload type: the type
// identifier without pointer, slice or array wrappers, package qualifier
// or type arguments. Type expressions with no such identifier (maps,
// funcs, channels, literal structs and interfaces) are returned verbatim
// and fail name validation.
func SimpleName(expr string) string {
	s := strings.TrimSpace(expr)

strip:
	for {
		switch {
		case strings.HasPrefix(s, "*"):
			s = s[1:]
		case strings.HasPrefix(s, "[]"):
			s = s[2:]
		case strings.HasPrefix(s, "["):
			i := strings.IndexByte(s, ']')
			if i < 0 {
				break strip
			}

			s = s[i+1:]
		default:
			break strip
		}

		s = strings.TrimSpace(s)
	}

	if i := strings.IndexByte(s, '['); i > 0 {
		s = s[:i]
	}

	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}

	if !token.IsIdentifier(s) {
		return strings.TrimSpace(expr)
	}

	return s
}

// checkNames validates case names and every identifier derived from them.
// A case whose name was rejected claims no identifiers, so one clash is
// reported once.
func (b *builder) checkNames(spec model.UnionSpec) {
	cases := make(map[string]string, spec.CaseCount())

	type accepted struct{ name, what string }

	var valid []accepted

	addCase := func(name, what string) {
		if !token.IsIdentifier(name) {
			b.fail(diagnostic.CodeInvalidName, ErrInvalidName,
				"%s name %q is not a valid Go identifier; give the case an explicit name", what, name)

			return
		}

		if prev, ok := cases[name]; ok {
			b.fail(diagnostic.CodeNameCollision, ErrCollision,
				"%s name %q is already used by a %s", what, name, prev)

			return
		}

		cases[name] = what
		valid = append(valid, accepted{name, what})
	}

	for _, v := range spec.Variants {
		addCase(v.LogicalName, "variant")
	}

	for _, e := range spec.EmptyCases {
		addCase(e, "empty case")
	}

	if !token.IsIdentifier(spec.Name) {
		return
	}

	idents := make(map[string]string)

	claim := func(ident, owner string) {
		if prev, ok := idents[ident]; ok {
			b.fail(diagnostic.CodeIdentifierCollision, ErrIdentifierCollision,
				"generated identifier %s of %s clashes with %s", ident, owner, prev)

			return
		}

		idents[ident] = owner
	}

	for _, ident := range FixedIdentifiers(spec.Name) {
		claim(ident, "union "+spec.Name)
	}

	for _, c := range valid {
		owner := c.what + " " + c.name
		claim(spec.KindConst(c.name), owner)

		if c.what == "variant" {
			claim(spec.Name+"From"+c.name, owner)
		} else {
			claim(spec.Name+c.name, owner)
		}
	}
}

// FixedIdentifiers returns the package-level identifiers generated for a
// union independently of its cases.
func FixedIdentifiers(union string) []string {
	return []string{
		union,
		union + "Kind",
		"new" + union,
		"Match" + union,
		"Match" + union + "With",
		"Switch" + union,
		"Switch" + union + "With",
		"Equal" + union,
	}
}
