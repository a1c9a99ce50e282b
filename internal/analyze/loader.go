package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/tools/go/packages"

	"sumtype-generator/internal/decl"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and collects directive declarations.
type Analyzer struct {
	// Root is the directory patterns are resolved in and declaration
	// directories are relative to.
	Root string
	// Skip lists directory names whose files are ignored.
	Skip []string
	Log  logrus.FieldLogger
}

// NewAnalyzer creates a new Analyzer rooted at root.
func NewAnalyzer(root string, log logrus.FieldLogger) *Analyzer {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Analyzer{Root: root, Log: log}
}

// LoadPackages loads the specified packages and returns the declarations
// found in them, in file and line order.
// Patterns are standard Go package patterns (e.g., "./...", "./payment").
//
// Type errors are tolerated: a package usually does not type-check before
// its generated code exists. Directives whose types cannot be evaluated
// produce unresolved arguments.
func (a *Analyzer) LoadPackages(patterns ...string) ([]decl.Declaration, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Root,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var decls []decl.Declaration

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			a.Log.WithField("package", pkg.PkgPath).Debugf("package error: %v", e)
		}

		if pkg.Types == nil || pkg.Fset == nil {
			a.Log.WithField("package", pkg.PkgPath).Warn("package has no type information; skipping")
			continue
		}

		decls = append(decls, a.processPackage(pkg)...)
	}

	slices.SortStableFunc(decls, decl.Compare)

	return decls, nil
}

// processPackage extracts directive groups from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) []decl.Declaration {
	var decls []decl.Declaration

	for _, file := range pkg.Syntax {
		filename := pkg.Fset.Position(file.Pos()).Filename
		if a.skipped(filename) {
			continue
		}

		for _, group := range file.Comments {
			if d, ok := a.processGroup(pkg, filename, group); ok {
				decls = append(decls, d)
			}
		}
	}

	return decls
}

func (a *Analyzer) processGroup(pkg *packages.Package, filename string, group *ast.CommentGroup) (decl.Declaration, bool) {
	var (
		d     decl.Declaration
		found bool
	)

	for _, c := range group.List {
		if !IsDirective(c.Text) {
			continue
		}

		pos := pkg.Fset.Position(c.Slash)

		if !found {
			found = true
			d = decl.Declaration{
				Namespace: pkg.Name,
				Dir:       a.relDir(filename),
				Origin:    fmt.Sprintf("%s:%d", a.relPath(filename), pos.Line),
			}
		}

		ann, name, imports, err := ParseDirective(c.Text, a.resolver(pkg, c.Slash))
		if err != nil {
			a.Log.WithField("origin", fmt.Sprintf("%s:%d", a.relPath(filename), pos.Line)).Warn(err)
		}

		if ann.Kind == decl.KindUnion && d.Name == "" {
			d.Name = name
		}

		d.Annotations = append(d.Annotations, ann)
		d.Imports = append(d.Imports, imports...)
	}

	if !found {
		return decl.Declaration{}, false
	}

	slices.Sort(d.Imports)
	d.Imports = slices.Compact(d.Imports)

	return d, true
}

// resolver evaluates type expressions in the scope enclosing pos.
func (a *Analyzer) resolver(pkg *packages.Package, pos token.Pos) Resolver {
	return func(expr string) (decl.TypeRef, []string, bool) {
		tv, err := types.Eval(pkg.Fset, pkg.Types, pos, expr)
		if err != nil || !tv.IsType() || tv.Type == nil {
			return decl.TypeRef{}, nil, false
		}

		if containsInvalid(tv.Type) {
			return decl.TypeRef{}, nil, false
		}

		return TypeRefOf(tv.Type, pkg.Types), importsOf(tv.Type, pkg.Types), true
	}
}

func (a *Analyzer) skipped(filename string) bool {
	rel := a.relPath(filename)

	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/") {
		if slices.Contains(a.Skip, part) {
			return true
		}
	}

	return false
}

func (a *Analyzer) relPath(filename string) string {
	root, err := filepath.Abs(a.Root)
	if err != nil {
		return filepath.ToSlash(filename)
	}

	rel, err := filepath.Rel(root, filename)
	if err != nil {
		return filepath.ToSlash(filename)
	}

	return filepath.ToSlash(rel)
}

func (a *Analyzer) relDir(filename string) string {
	return filepath.ToSlash(filepath.Dir(a.relPath(filename)))
}
