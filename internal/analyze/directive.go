package analyze

import (
	"fmt"
	"go/parser"
	"strconv"
	"strings"

	"sumtype-generator/internal/decl"
	"sumtype-generator/internal/match"
)

// DirectivePrefix starts every directive comment.
const DirectivePrefix = "//sumtype:"

// Resolver evaluates a payload type expression. It returns the structured
// type and the import paths it needs, or false when the expression cannot
// be evaluated.
type Resolver func(expr string) (decl.TypeRef, []string, bool)

// IsDirective reports whether a comment line is a directive.
func IsDirective(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), DirectivePrefix)
}

// ParseDirective parses a directive line into an annotation. Payload types
// are resolved with resolve, which may be nil. The returned imports are
// the paths resolved payload types need. The union name, if any, is
// returned separately.
func ParseDirective(line string, resolve Resolver) (ann decl.Annotation, name string, imports []string, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, DirectivePrefix) {
		return decl.Annotation{}, "", nil, fmt.Errorf("not a directive: %q", line)
	}

	body := strings.TrimPrefix(line, DirectivePrefix)
	ann = decl.Annotation{Named: map[string]decl.Arg{}, Raw: line}

	if kind, rest, ok := strings.Cut(body, "("); ok && !strings.ContainsAny(kind, " \t") {
		ann.Kind = kind

		args, ok := strings.CutSuffix(strings.TrimSpace(rest), ")")
		if !ok {
			return ann, "", nil, fmt.Errorf("unterminated argument list in %q", line)
		}

		imports, err = parseCallArgs(&ann, args, resolve)

		return ann, "", imports, err
	}

	fields := strings.Fields(body)
	if len(fields) == 0 {
		return ann, "", nil, fmt.Errorf("empty directive %q", line)
	}

	ann.Kind = fields[0]
	if ann.Kind != decl.KindUnion {
		if hint := match.Hint(ann.Kind, []string{decl.KindUnion}); hint != "" {
			return ann, "", nil, fmt.Errorf("unknown directive %s%s", ann.Kind, hint)
		}

		return ann, "", nil, fmt.Errorf("directive %s needs an argument list", ann.Kind)
	}

	for _, f := range fields[1:] {
		switch key, value, ok := strings.Cut(f, "="); {
		case ok:
			ann.Named[key] = literal(value)
		case f == decl.ArgAOT:
			ann.Named[decl.ArgAOT] = decl.Value(true)
		case name == "":
			name = f
		default:
			ann.Args = append(ann.Args, literal(f))
		}
	}

	return ann, name, nil, nil
}

func parseCallArgs(ann *decl.Annotation, args string, resolve Resolver) ([]string, error) {
	var imports []string

	for i, part := range splitArgs(args) {
		if key, value, ok := namedArg(part); ok {
			ann.Named[key] = literal(value)
			continue
		}

		switch {
		case part == decl.ArgNullable:
			ann.Named[decl.ArgNullable] = decl.Value(true)
		case i == 0 && ann.Kind == decl.KindVariant:
			arg, paths := typeArg(part, resolve)
			ann.Args = append(ann.Args, arg)
			imports = append(imports, paths...)
		default:
			ann.Args = append(ann.Args, stringArg(part))
		}
	}

	if ann.Kind == decl.KindVariant && len(ann.Args) == 0 && len(splitArgs(args)) > 0 {
		return imports, fmt.Errorf("variant type missing in %q", ann.Raw)
	}

	return imports, nil
}

func typeArg(expr string, resolve Resolver) (decl.Arg, []string) {
	if _, err := parser.ParseExpr(expr); err != nil || resolve == nil {
		return decl.Unknown(expr), nil
	}

	ref, imports, ok := resolve(expr)
	if !ok {
		return decl.Unknown(expr), nil
	}

	return decl.Arg{Value: ref, Known: true, Raw: expr}, imports
}

func stringArg(s string) decl.Arg {
	v, err := strconv.Unquote(s)
	if err != nil {
		return decl.Unknown(s)
	}

	return decl.Arg{Value: v, Known: true, Raw: s}
}

// literal converts an unquoted directive value: quoted strings, booleans
// and integers become typed values, anything else stays a string.
func literal(s string) decl.Arg {
	if v, err := strconv.Unquote(s); err == nil {
		return decl.Arg{Value: v, Known: true, Raw: s}
	}

	if b, err := strconv.ParseBool(s); err == nil {
		return decl.Arg{Value: b, Known: true, Raw: s}
	}

	if n, err := strconv.ParseInt(s, 0, 64); err == nil {
		return decl.Arg{Value: n, Known: true, Raw: s}
	}

	return decl.Arg{Value: s, Known: true, Raw: s}
}

// namedArg splits key=value when key is a plain identifier.
func namedArg(part string) (string, string, bool) {
	key, value, ok := strings.Cut(part, "=")
	if !ok {
		return "", "", false
	}

	key = strings.TrimSpace(key)
	for _, r := range key {
		if !isIdentRune(r) {
			return "", "", false
		}
	}

	return key, strings.TrimSpace(value), key != ""
}

// splitArgs splits an argument list at top-level commas.
func splitArgs(s string) []string {
	var (
		parts []string
		depth int
		quote rune
		start int
	)

	for i, r := range s {
		switch {
		case quote != 0:
			if r == quote && (quote == '`' || i == 0 || s[i-1] != '\\') {
				quote = 0
			}
		case r == '"' || r == '`':
			quote = r
		case r == '(' || r == '[' || r == '{':
			depth++
		case r == ')' || r == ']' || r == '}':
			depth--
		case r == ',' && depth == 0:
			parts = appendArg(parts, s[start:i])
			start = i + 1
		}
	}

	return appendArg(parts, s[start:])
}

func appendArg(parts []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		parts = append(parts, s)
	}

	return parts
}

func isIdentRune(r rune) bool {
	return r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
