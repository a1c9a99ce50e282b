package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sumtype-generator/internal/decl"
)

const paymentYAML = `
package: payment
imports:
  - example.com/models
unions:
  - name: Payment
    tag: uint8
    variants:
      - type: PaymentCard
        name: Card
      - type: PaymentCash
      - type: "*int"
        name: Count
        nullable: true
      - type: "[]models.Item"
        name: Items
        import: example.com/items
    empty: [Pending, Failed]
  - name: Flag
    tag: 99
    aot: true
    empty: Raised
`

func TestParse_YAML(t *testing.T) {
	f, err := Parse([]byte(paymentYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "payment", f.Package)
	assert.Equal(t, []string{"example.com/models"}, f.Imports)
	require.Len(t, f.Unions, 2)

	p := f.Unions[0]
	assert.Equal(t, "Payment", p.Name)
	assert.Equal(t, TagSelector{Value: "uint8", Set: true}, p.Tag)
	assert.False(t, p.AOT)
	require.Len(t, p.Variants, 4)
	assert.Equal(t, "Card", p.Variants[0].Name)
	assert.True(t, p.Variants[2].Nullable)
	assert.Equal(t, StringArray{"Pending", "Failed"}, p.Empty)
	assert.Equal(t, 6, p.Line)

	flag := f.Unions[1]
	assert.Equal(t, TagSelector{Value: int64(99), Set: true}, flag.Tag)
	assert.True(t, flag.AOT)
	assert.Equal(t, StringArray{"Raised"}, flag.Empty)
}

func TestParse_JSON(t *testing.T) {
	data := `{
  "package": "payment",
  "unions": [
    {"name": "Payment", "tag": 2, "variants": [{"type": "PaymentCard", "name": "Card"}], "empty": "Pending"},
    {"name": "Other", "tag": "int16"}
  ]
}`

	f, err := Parse([]byte(data), FormatJSON)
	require.NoError(t, err)
	require.Len(t, f.Unions, 2)

	assert.Equal(t, TagSelector{Value: int64(2), Set: true}, f.Unions[0].Tag)
	assert.Equal(t, StringArray{"Pending"}, f.Unions[0].Empty)
	assert.Equal(t, TagSelector{Value: "int16", Set: true}, f.Unions[1].Tag)
	assert.Zero(t, f.Unions[0].Line)
}

func TestParse_JSONRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`{"package": "p", "unionz": []}`), FormatJSON)
	require.Error(t, err)
}

func TestParse_TOML(t *testing.T) {
	data := `
package = "payment"
imports = ["time"]

[[unions]]
name = "Event"
tag = "int8"
empty = ["Idle"]

[[unions.variants]]
type = "time.Time"
name = "At"
equality = "Method"

[[unions]]
name = "Counter"
tag = 6
empty = "Zero"
`

	f, err := Parse([]byte(data), FormatTOML)
	require.NoError(t, err)
	require.Len(t, f.Unions, 2)

	e := f.Unions[0]
	assert.Equal(t, TagSelector{Value: "int8", Set: true}, e.Tag)
	require.Len(t, e.Variants, 1)
	assert.Equal(t, "method", e.Variants[0].Equality)
	assert.Equal(t, StringArray{"Idle"}, e.Empty)

	assert.Equal(t, TagSelector{Value: int64(6), Set: true}, f.Unions[1].Tag)
	assert.Equal(t, StringArray{"Zero"}, f.Unions[1].Empty)
}

func TestParse_TOMLRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("package = \"p\"\nbogus = 1\n"), FormatTOML)
	require.Error(t, err)
}

func TestParse_NonScalarTagIsKept(t *testing.T) {
	f, err := Parse([]byte("unions:\n  - name: U\n    tag: [1, 2]\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, TagSelector{Value: []any{1, 2}, Set: true}, f.Unions[0].Tag)

	f, err = Parse([]byte(`{"unions": [{"name": "U", "tag": {"bits": 8}}]}`), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, TagSelector{Value: map[string]any{"bits": float64(8)}, Set: true}, f.Unions[0].Tag)

	f, err = Parse([]byte("[[unions]]\nname = \"U\"\ntag = true\n"), FormatTOML)
	require.NoError(t, err)
	assert.Equal(t, TagSelector{Value: true, Set: true}, f.Unions[0].Tag)
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a/payment.sumtype.yaml": FormatYAML,
		"payment.sumtype.YML":    FormatYAML,
		"x.sumtype.json":         FormatJSON,
		"x.sumtype.toml":         FormatTOML,
	}

	for path, want := range tests {
		got, ok := FormatOf(path)
		assert.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}

	assert.False(t, IsSchemaFile("payment.yaml"))
	assert.False(t, IsSchemaFile("sumtype.go"))
	assert.False(t, IsSchemaFile(".sumtype.yaml"))
}

func TestDeclarations(t *testing.T) {
	f, err := Parse([]byte(paymentYAML), FormatYAML)
	require.NoError(t, err)

	decls := f.Declarations("payment", "payment/payment.sumtype.yaml")
	require.Len(t, decls, 2)

	d := decls[0]
	assert.Equal(t, "payment", d.Namespace)
	assert.Equal(t, "Payment", d.Name)
	assert.Equal(t, "payment", d.Dir)
	assert.Equal(t, "payment/payment.sumtype.yaml:6", d.Origin)
	assert.Equal(t, []string{"example.com/items", "example.com/models"}, d.Imports)
	require.Len(t, d.Annotations, 7)

	union := d.Annotations[0]
	assert.Equal(t, decl.KindUnion, union.Kind)
	tag, ok := union.Positional(0)
	require.True(t, ok)
	assert.Equal(t, "uint8", tag.Value)

	card := d.Annotations[1]
	assert.Equal(t, decl.KindVariant, card.Kind)
	ref, ok := card.Args[0].Value.(decl.TypeRef)
	require.True(t, ok)
	assert.Equal(t, decl.TypeRef{Expr: "PaymentCard"}, ref)
	name, ok := card.Lookup(decl.ArgName)
	require.True(t, ok)
	assert.Equal(t, "Card", name.Value)

	count := d.Annotations[3]
	nullable, ok := count.Lookup(decl.ArgNullable)
	require.True(t, ok)
	assert.Equal(t, true, nullable.Value)
	assert.True(t, count.Args[0].Value.(decl.TypeRef).Nilable)

	items := d.Annotations[4]
	assert.Equal(t, decl.EqualityDeep, items.Args[0].Value.(decl.TypeRef).Equality)

	assert.Equal(t, decl.KindEmpty, d.Annotations[5].Kind)
	assert.Equal(t, "Pending", d.Annotations[5].Args[0].Value)

	flag := decls[1]
	aot, ok := flag.Annotations[0].Lookup(decl.ArgAOT)
	require.True(t, ok)
	assert.Equal(t, true, aot.Value)
	assert.Equal(t, []string{"example.com/models"}, flag.Imports)
}

func TestDeclarations_MissingTypeLeavesNoPositional(t *testing.T) {
	f, err := Parse([]byte("package: p\nunions:\n  - name: U\n    variants:\n      - name: Ghost\n"), FormatYAML)
	require.NoError(t, err)

	d := f.Declarations(".", "u.sumtype.yaml")[0]
	_, ok := d.Annotations[1].Positional(0)
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "billing", "payment")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	path := filepath.Join(dir, "payment.sumtype.yaml")
	require.NoError(t, os.WriteFile(path, []byte(paymentYAML), 0o644))

	decls, err := Load(path, root)
	require.NoError(t, err)
	require.Len(t, decls, 2)
	assert.Equal(t, "billing/payment", decls[0].Dir)
	assert.Equal(t, "billing/payment/payment.sumtype.yaml:6", decls[0].Origin)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile("payment.yaml")
	require.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.sumtype.yaml"))
	require.Error(t, err)
}
