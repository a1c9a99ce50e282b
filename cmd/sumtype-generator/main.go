// Package main provides the CLI entrypoint for sumtype-generator.
//
// sumtype-generator reads tagged-union declarations from schema files
// (*.sumtype.yaml, *.sumtype.json, *.sumtype.toml) and //sumtype: comment
// directives in Go source, and writes one Go file per union:
//   - generate: on-demand unions, written next to their declaration (go generate)
//   - pregen:   ahead-of-time unions, written into a fresh output tree
//   - check:    build and emit everything in memory, fail on any error
//   - inspect:  dump the built models
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// version is overridden at link time.
var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sumtype-generator",
		Short:         "Generate Go tagged unions from declarations",
		Long:          `sumtype-generator emits kind-tagged union types with factories, predicates, exhaustive matching, equality and hashing.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "configuration file (default: .sumtype.{yaml,yml,json,toml} in the input directory)")
	root.PersistentFlags().String("log-level", "", "log level (trace|debug|info|warn|error); overrides the configuration")
	root.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	root.PersistentFlags().Bool("raw-fallback", false, "recover unresolvable directive arguments from their source text")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newPregenCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newInspectCmd())

	return root
}

// main builds the command tree and executes it. Any returned error is
// printed to stderr and exits with status 1.
func main() {
	root := newRootCmd()

	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(1)
	}
}
