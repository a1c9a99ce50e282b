package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"slices"
	"strings"

	"sumtype-generator/internal/common"
	"sumtype-generator/internal/decl"
	"sumtype-generator/internal/model"
	"sumtype-generator/primitive"
)

// ErrFormat is returned when the emitted source cannot be formatted, which
// means the emitter produced invalid Go.
var ErrFormat = errors.New("formatting generated code")

// Defaults for Options.
const (
	DefaultHeader = "Code generated by sumtype-generator. DO NOT EDIT."
	DefaultSuffix = "_sumtype.go"
)

// Options control emitted file naming and header.
type Options struct {
	// Header is the first comment line, without the leading slashes.
	Header string
	// Suffix is appended to the snake_case union name to form the filename.
	Suffix string
}

// DefaultOptions returns the default emitter options.
func DefaultOptions() Options {
	return Options{Header: DefaultHeader, Suffix: DefaultSuffix}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the declaration directory the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "payment_sumtype.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
	// Union is the name of the union the file implements.
	Union string
}

// Filename returns the output filename for a union.
func Filename(union string, opts Options) string {
	suffix := opts.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}

	return common.SnakeCase(union) + suffix
}

// Emit renders the source unit of one union. On a formatting failure the
// unformatted source is returned together with an error wrapping ErrFormat.
func Emit(spec model.UnionSpec, opts Options) (GeneratedFile, error) {
	if opts.Header == "" {
		opts.Header = DefaultHeader
	}

	file := GeneratedFile{
		Dir:      spec.Dir,
		Filename: Filename(spec.Name, opts),
		Union:    spec.Name,
	}

	var buf bytes.Buffer
	if err := unionTemplate.Execute(&buf, newUnionData(spec, opts)); err != nil {
		return file, fmt.Errorf("executing template for %s: %w", spec.Name, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		file.Content = buf.Bytes()
		return file, fmt.Errorf("%w %s: %w", ErrFormat, file.Filename, err)
	}

	file.Content = formatted

	return file, nil
}

type unionData struct {
	Header    string
	Package   string
	Imports   []string
	Name      string
	Kind      string
	TagType   string
	TagBits   int
	TagSigned bool

	New        string
	Match      string
	MatchWith  string
	Switch     string
	SwitchWith string
	EqualFunc  string
	// T and C are the type parameter names of the dispatch functions.
	T string
	C string

	Cases    []caseData
	Variants []caseData
	Empties  []caseData
	Hashed   []caseData
}

type caseData struct {
	Name      string
	Const     string
	Factory   string
	Predicate string
	Handler   string
	// Field and Slot are empty for empty cases.
	Field    string
	Slot     string
	NewArgs  string
	CanBeNil bool
	Indirect bool
	Equality string
}

func newUnionData(spec model.UnionSpec, opts Options) unionData {
	d := unionData{
		Header:     opts.Header,
		Package:    spec.Namespace,
		Name:       spec.Name,
		Kind:       spec.KindType(),
		TagType:    spec.TagWidth.GoType(),
		TagBits:    spec.TagWidth.Bits(),
		TagSigned:  spec.TagWidth.Signed(),
		New:        "new" + spec.Name,
		Match:      "Match" + spec.Name,
		MatchWith:  "Match" + spec.Name + "With",
		Switch:     "Switch" + spec.Name,
		SwitchWith: "Switch" + spec.Name + "With",
		EqualFunc:  "Equal" + spec.Name,
	}

	used := make(map[string]bool)

	for _, v := range spec.Variants {
		c := caseData{
			Name:      v.LogicalName,
			Const:     spec.KindConst(v.LogicalName),
			Factory:   spec.Name + "From" + v.LogicalName,
			Predicate: "Is" + v.LogicalName,
			Handler:   "on" + v.LogicalName,
			Field:     v.FieldName(),
			Slot:      v.SlotType(),
			CanBeNil:  v.CanBeNil(),
			Indirect:  v.Indirect(),
			Equality:  v.PayloadType.Equality.String(),
		}

		for _, ident := range identifiers(c.Slot) {
			used[ident] = true
		}

		d.Variants = append(d.Variants, c)
	}

	for _, e := range spec.EmptyCases {
		d.Empties = append(d.Empties, caseData{
			Name:      e,
			Const:     spec.KindConst(e),
			Factory:   spec.Name + e,
			Predicate: "Is" + e,
			Handler:   "on" + e,
		})
	}

	for i := range d.Variants {
		d.Variants[i].NewArgs = newArgs(d.Variants[i].Const, spec.Variants, i)
	}

	for i := range d.Empties {
		d.Empties[i].NewArgs = newArgs(d.Empties[i].Const, spec.Variants, -1)
	}

	for _, c := range d.Variants {
		if c.Equality == decl.EqualityComparable.String() {
			d.Hashed = append(d.Hashed, c)
		}
	}

	d.Cases = append(slices.Clone(d.Variants), d.Empties...)
	d.T = freeName(used, "T", "R", "Result")
	d.C = freeName(used, "C", "Ctx", "Context")

	if len(d.Cases) > 0 {
		d.Imports = imports(spec)
	}

	return d
}

// newArgs renders the constructor arguments for the case with the given
// tag constant. The variant at index self receives the factory parameter;
// all other slots get zero values.
func newArgs(kindConst string, variants []model.Variant, self int) string {
	args := make([]string, 0, len(variants)+1)
	args = append(args, kindConst)

	for i, v := range variants {
		if i == self {
			args = append(args, "value")
			continue
		}

		args = append(args, zeroValue(v))
	}

	return strings.Join(args, ", ")
}

func zeroValue(v model.Variant) string {
	if v.CanBeNil() {
		return "nil"
	}

	t := v.SlotType()
	if lit := primitive.FromTypeName(t).ZeroLiteral(); lit != "" {
		return lit
	}

	return "*new(" + t + ")"
}

func imports(spec model.UnionSpec) []string {
	set := map[string]bool{
		"fmt":          true,
		"hash/maphash": true,
		"strconv":      true,
	}

	for _, v := range spec.Variants {
		if eq := v.PayloadType.Equality; eq == decl.EqualityDeep || eq == decl.EqualityDynamic {
			set["reflect"] = true
		}
	}

	for _, path := range spec.Imports {
		set[path] = true
	}

	out := make([]string, 0, len(set))
	for path := range set {
		out = append(out, path)
	}

	slices.Sort(out)

	return out
}

// identifiers returns the identifier tokens of a type expression.
func identifiers(expr string) []string {
	return strings.FieldsFunc(expr, func(r rune) bool {
		return r != '_' && !isLetter(r) && !isDigit(r)
	})
}

func isLetter(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r > 0x7f
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// freeName returns the first candidate not used by a payload type, so type
// parameters never shadow payload types.
func freeName(used map[string]bool, candidates ...string) string {
	for _, c := range candidates {
		if !used[c] {
			return c
		}
	}

	for i := 0; ; i++ {
		c := fmt.Sprintf("%s%d", candidates[0], i)
		if !used[c] {
			return c
		}
	}
}
