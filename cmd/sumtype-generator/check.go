package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"sumtype-generator/internal/engine"
	"sumtype-generator/internal/model"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Build and emit every union in memory without writing",
		Long: `Check runs both passes over dir (default ".") without writing files
and exits non-zero when any union fails to build or emit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	opts := s.engineOptions(model.OnDemand, l)
	opts.AnyMode = true

	res := engine.Run(l.decls, opts)

	s.printDiagnostics()
	s.summary(res)

	if !res.OK() {
		return fmt.Errorf("%w: %d of %d", errFailedCandidates, res.Failed, res.Built+res.Failed)
	}

	return nil
}
