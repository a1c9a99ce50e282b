package main

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"sumtype-generator/internal/analyze"
	"sumtype-generator/internal/config"
	"sumtype-generator/internal/decl"
	"sumtype-generator/internal/engine"
	"sumtype-generator/internal/schema"
)

// inputs lists the declaration sources found below a root.
type inputs struct {
	root    string
	schemas []string
	goFiles []string
}

// Count returns the number of input files.
func (in inputs) Count() int {
	return len(in.schemas) + len(in.goFiles)
}

// scan walks root and returns the sorted schema and Go source files,
// skipping the configured directory names.
func scan(root string, cfg *config.Config) (inputs, error) {
	in := inputs{root: root}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && cfg.Skipped(d.Name()) {
				return filepath.SkipDir
			}

			return nil
		}

		switch {
		case schema.IsSchemaFile(path):
			in.schemas = append(in.schemas, path)
		case strings.HasSuffix(path, ".go") && !strings.HasSuffix(path, "_test.go") &&
			!strings.HasSuffix(path, cfg.Suffix):
			in.goFiles = append(in.goFiles, path)
		}

		return nil
	})
	if err != nil {
		return inputs{}, fmt.Errorf("scanning %s: %w", root, err)
	}

	slices.Sort(in.schemas)
	slices.Sort(in.goFiles)

	return in, nil
}

// loaded is the result of reading the inputs.
type loaded struct {
	decls    []decl.Declaration
	failures []engine.LoadFailure
}

// load reads every declaration of in. Schema files are parsed concurrently;
// the result is sorted by origin regardless of completion order. A schema
// file that cannot be decoded is recorded as a failure and the other files
// are still read.
func load(ctx context.Context, in inputs, cfg *config.Config, log logrus.FieldLogger) (loaded, error) {
	results := make([][]decl.Declaration, len(in.schemas))
	errs := make([]error, len(in.schemas))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range in.schemas {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			decls, err := schema.Load(path, in.root)
			if err != nil {
				errs[i] = err
				return nil
			}

			log.WithFields(logrus.Fields{"file": path, "unions": len(decls)}).Debug("schema loaded")
			results[i] = decls

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return loaded{}, err
	}

	var out loaded
	for i, r := range results {
		if errs[i] != nil {
			out.failures = append(out.failures, engine.LoadFailure{Origin: relOrigin(in.root, in.schemas[i]), Err: errs[i]})
			continue
		}

		out.decls = append(out.decls, r...)
	}

	if len(in.goFiles) > 0 {
		a := analyze.NewAnalyzer(in.root, log)
		a.Skip = cfg.SourceDirsSkip

		found, err := a.LoadPackages("./...")
		if err != nil {
			return loaded{}, err
		}

		out.decls = append(out.decls, found...)
	}

	slices.SortStableFunc(out.decls, decl.Compare)

	return out, nil
}

func relOrigin(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}

	return filepath.ToSlash(rel)
}

// discover scans root and loads its declarations.
func discover(ctx context.Context, root string, s *session) (inputs, loaded, error) {
	in, err := scan(root, s.cfg)
	if err != nil {
		return inputs{}, loaded{}, err
	}

	l, err := load(ctx, in, s.cfg, s.log)
	if err != nil {
		return in, loaded{}, err
	}

	s.log.WithFields(logrus.Fields{
		"root":         root,
		"schemas":      len(in.schemas),
		"go_files":     len(in.goFiles),
		"declarations": len(l.decls),
		"failed":       len(l.failures),
	}).Debug("inputs discovered")

	return in, l, nil
}
