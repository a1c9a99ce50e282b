package build

import (
	"fmt"
	"go/token"

	"github.com/spf13/cast"
	"go.uber.org/multierr"

	"sumtype-generator/internal/decl"
	"sumtype-generator/internal/diagnostic"
	"sumtype-generator/internal/model"
)

// Options control optional builder behavior.
type Options struct {
	// RawFallback recovers arguments the source could not evaluate from
	// the annotation's raw text. Every recovery reports a warning.
	RawFallback bool
}

// Build converts one declaration into a union model. Declarations without
// a union annotation are skipped. Diagnostics go to r, which may be nil.
func Build(d decl.Declaration, r diagnostic.Reporter, opts Options) Result {
	if r == nil {
		r = diagnostic.Nop{}
	}

	b := &builder{decl: d, reporter: r, opts: opts}

	return b.build()
}

type builder struct {
	decl     decl.Declaration
	reporter diagnostic.Reporter
	opts     Options
	errs     error
}

func (b *builder) build() Result {
	union, ok := b.unionAnnotation()
	if !ok {
		return Result{Outcome: Skipped}
	}

	spec := model.UnionSpec{
		Name:      b.decl.Name,
		Namespace: b.decl.Namespace,
		Dir:       b.decl.Dir,
		Origin:    b.decl.Origin,
		TagWidth:  b.tagWidth(union),
		Mode:      b.mode(union),
		Imports:   append([]string(nil), b.decl.Imports...),
	}

	if !token.IsIdentifier(spec.Name) {
		b.fail(diagnostic.CodeInvalidName, ErrInvalidName,
			"union name %q is not a valid Go identifier", spec.Name)
	}

	if spec.Namespace == "" {
		b.fail(diagnostic.CodeMissingArgument, ErrMissingArgument,
			"union %s has no package name", spec.Name)
	}

	for _, a := range b.decl.Annotations {
		switch a.Kind {
		case decl.KindVariant:
			if v, ok := b.variant(a); ok {
				spec.Variants = append(spec.Variants, v)
			}
		case decl.KindEmpty:
			if name, ok := b.emptyCase(a); ok {
				spec.EmptyCases = append(spec.EmptyCases, name)
			}
		}
	}

	b.checkAnnotations()
	b.checkQualifiers(spec)
	b.checkNames(spec)

	if b.errs != nil {
		return Result{Outcome: Failed, Err: b.errs}
	}

	return Result{Outcome: Built, Spec: spec}
}

func (b *builder) unionAnnotation() (decl.Annotation, bool) {
	for _, a := range b.decl.Annotations {
		if a.Kind == decl.KindUnion {
			return a, true
		}
	}

	return decl.Annotation{}, false
}

func (b *builder) tagWidth(a decl.Annotation) model.TagWidth {
	arg, ok := a.Positional(0)
	if !ok {
		arg, ok = a.Lookup(decl.ArgTag)
	}

	if !ok {
		return model.TagInt32
	}

	var v any = arg.Raw
	if arg.Known {
		v = arg.Value
	}

	if w, ok := resolveTagWidth(v); ok {
		return w
	}

	b.warn(diagnostic.CodeInvalidTagWidth,
		fmt.Sprintf("invalid tag-width selector '%s'; defaulting to 32-bit signed", arg.Raw))

	return model.TagInt32
}

func resolveTagWidth(v any) (model.TagWidth, bool) {
	switch x := v.(type) {
	case model.TagWidth:
		return x, x.Valid()
	case bool, nil:
		return model.TagInt32, false
	case string:
		if w, ok := model.ParseTagWidth(x); ok {
			return w, true
		}
	}

	n, err := cast.ToInt64E(v)
	if err != nil {
		return model.TagInt32, false
	}

	return model.TagWidthFromSelector(n)
}

func (b *builder) mode(a decl.Annotation) model.Mode {
	arg, ok := a.Lookup(decl.ArgAOT)
	if !ok {
		return model.OnDemand
	}

	var v any = arg.Raw
	if arg.Known {
		v = arg.Value
	}

	aot, err := cast.ToBoolE(v)
	if err != nil {
		b.fail(diagnostic.CodeUnresolvedArgument, ErrUnresolved,
			"aot flag %q is not a boolean", arg.Raw)

		return model.OnDemand
	}

	if aot {
		return model.AheadOfTime
	}

	return model.OnDemand
}

func (b *builder) variant(a decl.Annotation) (model.Variant, bool) {
	arg, ok := a.Positional(0)
	if !ok {
		b.fail(diagnostic.CodeMissingArgument, ErrMissingArgument, "variant has no payload type")
		return model.Variant{}, false
	}

	var v model.Variant

	if ref, ok := typeRef(arg); ok {
		v.PayloadType = ref
		v.LogicalName = SimpleName(ref.Expr)
	} else {
		text, ok := b.recoverType(a, arg)
		if !ok {
			return model.Variant{}, false
		}

		v.PayloadType = decl.ParseTypeRef(text)
		v.LogicalName = text
		v.Raw = true
	}

	if name, ok := b.customName(a); ok {
		v.LogicalName = name
	}

	if arg, ok := a.Lookup(decl.ArgNullable); ok {
		nullable, err := cast.ToBoolE(argValue(arg))
		if err != nil {
			b.fail(diagnostic.CodeUnresolvedArgument, ErrUnresolved,
				"nullable flag %q of variant %s is not a boolean", arg.Raw, v.LogicalName)

			return model.Variant{}, false
		}

		v.Nullable = nullable
	}

	if arg, ok := a.Lookup(decl.ArgEquality); ok {
		eq, err := decl.ParseEquality(cast.ToString(argValue(arg)))
		if err != nil {
			b.fail(diagnostic.CodeUnresolvedArgument, ErrUnresolved,
				"variant %s: %v", v.LogicalName, err)

			return model.Variant{}, false
		}

		v.PayloadType.Equality = eq
	}

	return v, true
}

// customName returns the explicit logical name of a variant, given either
// as the second positional argument or as the name argument.
func (b *builder) customName(a decl.Annotation) (string, bool) {
	arg, ok := a.Positional(1)
	if !ok {
		arg, ok = a.Lookup(decl.ArgName)
	}

	if !ok {
		return "", false
	}

	if arg.Known {
		s, err := cast.ToStringE(arg.Value)
		if err != nil || s == "" {
			return "", false
		}

		return s, true
	}

	return b.recoverName(a, arg)
}

func (b *builder) emptyCase(a decl.Annotation) (string, bool) {
	arg, ok := a.Positional(0)
	if !ok {
		arg, ok = a.Lookup(decl.ArgName)
	}

	if !ok {
		b.fail(diagnostic.CodeMissingArgument, ErrMissingArgument, "empty case has no name")
		return "", false
	}

	if !arg.Known {
		return b.recoverName(a, arg)
	}

	name, err := cast.ToStringE(arg.Value)
	if err != nil || name == "" {
		b.fail(diagnostic.CodeMissingArgument, ErrMissingArgument,
			"empty case name %q is not a non-empty string", arg.Raw)

		return "", false
	}

	return name, true
}

func (b *builder) recoverType(a decl.Annotation, arg decl.Arg) (string, bool) {
	if !b.opts.RawFallback {
		b.fail(diagnostic.CodeUnresolvedArgument, ErrUnresolved,
			"payload type %q could not be resolved; fix the type or enable raw fallback", arg.Raw)

		return "", false
	}

	text, ok := RawTypeText(a.Raw)
	if !ok {
		text, ok = RawTypeText("(" + arg.Raw + ")")
	}

	if !ok {
		b.fail(diagnostic.CodeUnresolvedArgument, ErrUnresolved,
			"payload type could not be recovered from %q", a.Raw)

		return "", false
	}

	b.warn(diagnostic.CodeRawFallback,
		fmt.Sprintf("payload type %q recovered from raw annotation text", text))

	return text, true
}

func (b *builder) recoverName(a decl.Annotation, arg decl.Arg) (string, bool) {
	if !b.opts.RawFallback {
		b.fail(diagnostic.CodeUnresolvedArgument, ErrUnresolved,
			"name %q could not be resolved; use a string literal or enable raw fallback", arg.Raw)

		return "", false
	}

	name, ok := RawStringLiteral(arg.Raw)
	if !ok {
		name, ok = RawStringLiteral(a.Raw)
	}

	if !ok || name == "" {
		b.fail(diagnostic.CodeUnresolvedArgument, ErrUnresolved,
			"name could not be recovered from %q", a.Raw)

		return "", false
	}

	b.warn(diagnostic.CodeRawFallback,
		fmt.Sprintf("case name %q recovered from raw annotation text", name))

	return name, true
}

func (b *builder) fail(code string, sentinel error, format string, args ...any) {
	err := fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
	b.errs = multierr.Append(b.errs, err)
	b.report(diagnostic.DiagnosticError, code, err.Error())
}

func (b *builder) warn(code, msg string) {
	b.report(diagnostic.DiagnosticWarning, code, msg)
}

func (b *builder) report(sev diagnostic.DiagnosticSeverity, code, msg string) {
	b.reporter.Report(diagnostic.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Union:    b.decl.Name,
		Origin:   b.decl.Origin,
	})
}

func typeRef(arg decl.Arg) (decl.TypeRef, bool) {
	if !arg.Known {
		return decl.TypeRef{}, false
	}

	switch v := arg.Value.(type) {
	case decl.TypeRef:
		return v, v.Expr != ""
	case string:
		return decl.ParseTypeRef(v), v != ""
	default:
		return decl.TypeRef{}, false
	}
}

func argValue(arg decl.Arg) any {
	if arg.Known {
		return arg.Value
	}

	return arg.Raw
}
