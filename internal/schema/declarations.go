package schema

import (
	"fmt"
	"path/filepath"
	"slices"

	"sumtype-generator/internal/decl"
)

// Declarations converts a schema file into declarations. dir is the
// directory of the file relative to the input root and path the file name
// used in origins.
func (f *File) Declarations(dir, path string) []decl.Declaration {
	decls := make([]decl.Declaration, 0, len(f.Unions))

	for i, u := range f.Unions {
		origin := fmt.Sprintf("%s:unions[%d]", path, i)
		if u.Line > 0 {
			origin = fmt.Sprintf("%s:%d", path, u.Line)
		}

		decls = append(decls, decl.Declaration{
			Namespace:   f.Package,
			Name:        u.Name,
			Dir:         filepath.ToSlash(dir),
			Origin:      origin,
			Imports:     f.imports(u),
			Annotations: u.annotations(),
		})
	}

	return decls
}

func (f *File) imports(u Union) []string {
	paths := slices.Clone(f.Imports)

	for _, v := range u.Variants {
		if v.Import != "" {
			paths = append(paths, v.Import)
		}
	}

	slices.Sort(paths)

	return slices.Compact(paths)
}

func (u Union) annotations() []decl.Annotation {
	union := decl.Annotation{
		Kind:  decl.KindUnion,
		Named: map[string]decl.Arg{decl.ArgAOT: decl.Value(u.AOT)},
	}

	if u.Tag.Set {
		union.Args = []decl.Arg{decl.Value(u.Tag.Value)}
	}

	anns := make([]decl.Annotation, 0, 1+len(u.Variants)+len(u.Empty))
	anns = append(anns, union)

	for _, v := range u.Variants {
		anns = append(anns, v.annotation())
	}

	for _, name := range u.Empty {
		anns = append(anns, decl.Annotation{
			Kind: decl.KindEmpty,
			Args: []decl.Arg{decl.Value(name)},
		})
	}

	return anns
}

func (v Variant) annotation() decl.Annotation {
	a := decl.Annotation{
		Kind:  decl.KindVariant,
		Named: map[string]decl.Arg{decl.ArgNullable: decl.Value(v.Nullable)},
	}

	if v.Type != "" {
		a.Args = []decl.Arg{decl.Value(decl.ParseTypeRef(v.Type))}
	}

	if v.Name != "" {
		a.Named[decl.ArgName] = decl.Value(v.Name)
	}

	if v.Equality != "" {
		a.Named[decl.ArgEquality] = decl.Value(v.Equality)
	}

	return a
}

// Load reads a schema file and returns its declarations. root is the input
// root the declaration directory is made relative to.
func Load(path, root string) ([]decl.Declaration, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	dir, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("locating %s below %s: %w", path, root, err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	return f.Declarations(dir, filepath.ToSlash(rel)), nil
}
