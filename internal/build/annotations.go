package build

import (
	"fmt"
	"slices"
	"sort"

	"sumtype-generator/internal/common"
	"sumtype-generator/internal/decl"
	"sumtype-generator/internal/diagnostic"
	"sumtype-generator/internal/match"
	"sumtype-generator/internal/model"
)

// knownArgs lists the named arguments each annotation kind accepts.
var knownArgs = map[string][]string{
	decl.KindUnion:   {decl.ArgTag, decl.ArgAOT},
	decl.KindVariant: {decl.ArgName, decl.ArgNullable, decl.ArgEquality},
	decl.KindEmpty:   {decl.ArgName},
}

// Kinds returns the annotation kinds the builder understands.
func Kinds() []string {
	return []string{decl.KindUnion, decl.KindVariant, decl.KindEmpty}
}

// checkAnnotations warns about annotation kinds and named arguments that
// are ignored, suggesting the closest known spelling.
func (b *builder) checkAnnotations() {
	for _, a := range b.decl.Annotations {
		known, ok := knownArgs[a.Kind]
		if !ok {
			b.warn(diagnostic.CodeUnknownAnnotation,
				fmt.Sprintf("unknown annotation %q ignored%s", a.Kind, match.Hint(a.Kind, Kinds())))

			continue
		}

		keys := make([]string, 0, len(a.Named))
		for key := range a.Named {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			if !slices.Contains(known, key) {
				b.warn(diagnostic.CodeUnknownArgument,
					fmt.Sprintf("unknown %s argument %q ignored%s", a.Kind, key, match.Hint(key, known)))
			}
		}
	}
}

// checkQualifiers warns when a payload type refers to a package that no
// declared import provides.
func (b *builder) checkQualifiers(spec model.UnionSpec) {
	aliases := make([]string, 0, len(spec.Imports))
	for _, path := range spec.Imports {
		aliases = append(aliases, common.PkgAlias(path))
	}

	for _, v := range spec.Variants {
		for _, q := range Qualifiers(v.PayloadType.Expr) {
			if q == spec.Namespace || slices.Contains(aliases, q) {
				continue
			}

			b.warn(diagnostic.CodeUnknownQualifier,
				fmt.Sprintf("payload type %q of %s uses package %s, which no import provides%s",
					v.PayloadType.Expr, v.LogicalName, q, match.Hint(q, aliases)))
		}
	}
}

// Qualifiers returns the package qualifiers of a type expression in order
// of appearance, without duplicates ("map[uuid.UUID]time.Time" -> uuid, time).
func Qualifiers(expr string) []string {
	var out []string

	for i := 0; i < len(expr); {
		if !isIdentStart(expr[i]) || (i > 0 && isIdentPart(expr[i-1])) {
			i++
			continue
		}

		j := i
		for j < len(expr) && isIdentPart(expr[j]) {
			j++
		}

		if j < len(expr) && expr[j] == '.' && (i == 0 || expr[i-1] != '.') {
			if q := expr[i:j]; !slices.Contains(out, q) {
				out = append(out, q)
			}
		}

		i = j
	}

	return out
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}
