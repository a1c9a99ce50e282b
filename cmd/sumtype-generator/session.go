package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sumtype-generator/internal/build"
	"sumtype-generator/internal/config"
	"sumtype-generator/internal/diagnostic"
	"sumtype-generator/internal/engine"
	"sumtype-generator/internal/gen"
	"sumtype-generator/internal/model"
)

// session carries the per-invocation state shared by the subcommands.
type session struct {
	cfg     *config.Config
	log     *logrus.Logger
	diags   *diagnostic.Diagnostics
	printer *diagnostic.Printer
	out     io.Writer
}

// newSession loads the configuration for dir and applies the persistent
// flags on top of it.
func newSession(cmd *cobra.Command, dir string) (*session, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err := config.Load(path, dir)
	if err != nil {
		return nil, err
	}

	if flags.Changed("raw-fallback") {
		if cfg.RawFallback, err = flags.GetBool("raw-fallback"); err != nil {
			return nil, fmt.Errorf("failed to get raw-fallback flag: %w", err)
		}
	}

	if lvl, _ := flags.GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	colorMode, _ := flags.GetString("color")

	useColor, err := parseColor(colorMode)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:     cfg,
		log:     log,
		diags:   &diagnostic.Diagnostics{},
		printer: diagnostic.NewPrinter(cmd.ErrOrStderr(), useColor),
		out:     cmd.OutOrStdout(),
	}, nil
}

// parseColor maps the --color flag to a forced setting; nil means auto.
func parseColor(mode string) (*bool, error) {
	on, off := true, false

	switch mode {
	case "auto", "":
		return nil, nil
	case "on", "always":
		return &on, nil
	case "off", "never":
		return &off, nil
	default:
		return nil, fmt.Errorf("unknown color mode %q (want auto|on|off)", mode)
	}
}

// engineOptions returns the run options for mode. Inputs that failed to
// load are handed to the run so they are reported and counted.
func (s *session) engineOptions(mode model.Mode, l loaded) engine.Options {
	return engine.Options{
		Mode:         mode,
		Build:        build.Options{RawFallback: s.cfg.RawFallback},
		Emit:         gen.Options{Header: s.cfg.Header, Suffix: s.cfg.Suffix},
		Reporter:     s.diags,
		Log:          s.log,
		LoadFailures: l.failures,
	}
}

// printDiagnostics writes warnings and errors, errors first.
func (s *session) printDiagnostics() {
	for _, d := range s.diags.All() {
		if d.Severity == diagnostic.DiagnosticInfo && !s.log.IsLevelEnabled(logrus.DebugLevel) {
			continue
		}

		s.printer.Report(d)
	}
}

// summary prints the run counters.
func (s *session) summary(res engine.RunResult) {
	fmt.Fprintf(s.out, "%d built, %d filtered, %d failed\n", res.Built, res.Filtered, res.Failed)
}
