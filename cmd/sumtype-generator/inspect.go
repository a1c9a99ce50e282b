package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"sumtype-generator/internal/build"
	"sumtype-generator/internal/gen"
	"sumtype-generator/internal/schema"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file|dir>...",
		Short: "Dump the union models built from schema files or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runInspect,
	}

	cmd.Flags().Bool("source", false, "also print the emitted source of each union")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	showSource, _ := cmd.Flags().GetBool("source")

	for _, arg := range args {
		path, err := filepath.Abs(arg)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", arg, err)
		}

		info, err := os.Stat(path)
		if err != nil {
			return err
		}

		root := path
		if !info.IsDir() {
			root = filepath.Dir(path)
		}

		s, err := newSession(cmd, root)
		if err != nil {
			return err
		}

		var l loaded
		if info.IsDir() {
			_, l, err = discover(cmd.Context(), path, s)
		} else {
			l.decls, err = schema.Load(path, root)
		}

		if err != nil {
			return err
		}

		for _, f := range l.failures {
			fmt.Fprintf(s.out, "# %s: %v\n", f.Origin, f.Err)
		}

		decls := l.decls
		opts := s.engineOptions(0, l)

		for _, d := range decls {
			res := build.Build(d, s.diags, opts.Build)

			fmt.Fprintf(s.out, "# %s (%s): %s\n", d.Name, d.Origin, res.Outcome)

			switch res.Outcome {
			case build.Built:
				dumper.Fdump(s.out, res.Spec)
			case build.Failed:
				fmt.Fprintf(s.out, "%v\n", res.Err)
			}

			if showSource && res.Outcome == build.Built {
				file, err := gen.Emit(res.Spec, opts.Emit)
				if err != nil {
					fmt.Fprintf(s.out, "%v\n", err)
				}

				fmt.Fprintf(s.out, "%s", file.Content)
			}
		}

		s.printDiagnostics()
	}

	return nil
}
