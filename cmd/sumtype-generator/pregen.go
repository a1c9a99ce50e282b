package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sumtype-generator/internal/engine"
	"sumtype-generator/internal/gen"
	"sumtype-generator/internal/model"
)

// errUnsafeOutput is returned when the pregen output directory contains the input.
var errUnsafeOutput = errors.New("output directory contains the input")

func newPregenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pregen <input> <output>",
		Short: "Generate ahead-of-time unions into an output tree",
		Long: `Pregen deletes and recreates output, then generates every union marked
aot found below input. Each unit is written to output/<declaration dir>/.
Failing unions are reported and skipped; the others are still written.`,
		Args: cobra.ExactArgs(2),
		RunE: runPregen,
	}
}

func runPregen(cmd *cobra.Command, args []string) error {
	input, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}

	output, err := filepath.Abs(args[1])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[1], err)
	}

	if err := checkOutputDir(input, output); err != nil {
		return err
	}

	s, err := newSession(cmd, input)
	if err != nil {
		return err
	}

	if err := gen.ResetDir(output); err != nil {
		return err
	}

	in, err := scan(input, s.cfg)
	if err != nil {
		return err
	}

	if in.Count() == 0 {
		return fmt.Errorf("no input files found in %s", input)
	}

	l, err := load(cmd.Context(), in, s.cfg, s.log)
	if err != nil {
		return err
	}

	res := engine.Run(l.decls, s.engineOptions(model.AheadOfTime, l))

	if len(res.Units) == 0 {
		fmt.Fprintln(s.out, "No files were generated")
	}

	written, err := gen.WriteFiles(res.Units, output)
	for _, path := range written {
		fmt.Fprintf(s.out, "Wrote: %s\n", path)
	}

	if err != nil {
		return err
	}

	s.printDiagnostics()

	return nil
}

// checkOutputDir rejects an output directory that is the input directory
// or one of its parents, since pregen deletes output before writing.
func checkOutputDir(input, output string) error {
	rel, err := filepath.Rel(output, input)
	if err != nil {
		return nil
	}

	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return fmt.Errorf("%w: %s would delete input %s", errUnsafeOutput, output, input)
	}

	return nil
}
