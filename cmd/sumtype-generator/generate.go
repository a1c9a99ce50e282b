package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"sumtype-generator/internal/engine"
	"sumtype-generator/internal/gen"
	"sumtype-generator/internal/model"
)

// errFailedCandidates is returned when at least one union could not be generated.
var errFailedCandidates = errors.New("some unions failed to generate")

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Generate on-demand unions next to their declarations",
		Long: `Generate discovers schema files and //sumtype: directives below dir
(default ".") and writes the source of every on-demand union into the
directory that declares it. Suitable for //go:generate.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().Bool("debug-unformatted", false, "write the unformatted source of units that fail formatting")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	root, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", root, err)
	}

	s, err := newSession(cmd, root)
	if err != nil {
		return err
	}

	_, l, err := discover(cmd.Context(), root, s)
	if err != nil {
		return err
	}

	res := engine.Run(l.decls, s.engineOptions(model.OnDemand, l))

	written, err := gen.WriteFiles(res.Units, root)
	for _, path := range written {
		fmt.Fprintf(s.out, "Wrote: %s\n", path)
	}

	if err != nil {
		return err
	}

	if debug, _ := cmd.Flags().GetBool("debug-unformatted"); debug {
		writeDefects(s, root, res)
	}

	s.printDiagnostics()

	if !res.OK() {
		return fmt.Errorf("%w: %d of %d", errFailedCandidates, res.Failed, res.Built+res.Failed)
	}

	return nil
}

func writeDefects(s *session, root string, res engine.RunResult) {
	for _, file := range res.Defects {
		if err := gen.WriteDebugUnformatted(root, file); err != nil {
			s.log.WithError(err).WithField("union", file.Union).Warn("writing unformatted source")
		}
	}
}
