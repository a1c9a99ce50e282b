// Package engine runs one generation pass over a sequence of declarations:
// build, mode gate, emit. Each candidate is isolated; a failing candidate
// is counted and reported while the others proceed.
package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"sumtype-generator/internal/build"
	"sumtype-generator/internal/decl"
	"sumtype-generator/internal/diagnostic"
	"sumtype-generator/internal/gen"
	"sumtype-generator/internal/model"
)

// ErrInternal wraps panics recovered while processing a candidate.
var ErrInternal = errors.New("internal error")

// Options configure a run.
type Options struct {
	// Mode is the pass being run; unions declared for the other pass are filtered.
	Mode model.Mode
	// AnyMode disables the mode gate so every built union is emitted.
	AnyMode bool
	// Build is forwarded to the model builder.
	Build build.Options
	// Emit is forwarded to the emitter.
	Emit gen.Options
	// Reporter receives diagnostics; nil discards them.
	Reporter diagnostic.Reporter
	// Log receives progress entries; nil discards them.
	Log logrus.FieldLogger
	// LoadFailures are input files that could not be read. Each one is
	// reported and counted as a failed candidate.
	LoadFailures []LoadFailure
}

// LoadFailure is an input file whose declarations could not be loaded.
type LoadFailure struct {
	Origin string
	Err    error
}

// RunResult is the fold of all candidate results, in input order.
type RunResult struct {
	ID    uuid.UUID
	Units []gen.GeneratedFile
	// Defects holds the unformatted source of units that failed formatting.
	Defects []gen.GeneratedFile
	// Specs holds every built model, including filtered ones.
	// Built counts emitted candidates only.
	Specs []model.UnionSpec

	Built    int
	Skipped  int
	Filtered int
	Failed   int

	// Errors combines every candidate failure.
	Errors error
}

// OK reports whether no candidate failed.
func (r RunResult) OK() bool {
	return r.Failed == 0
}

// Run processes decls sequentially and returns the folded result.
func Run(decls []decl.Declaration, opts Options) RunResult {
	if opts.Reporter == nil {
		opts.Reporter = diagnostic.Nop{}
	}

	if opts.Log == nil {
		log := logrus.New()
		log.SetLevel(logrus.PanicLevel)
		opts.Log = log
	}

	if opts.Emit.Header == "" && opts.Emit.Suffix == "" {
		opts.Emit = gen.DefaultOptions()
	}

	res := RunResult{ID: uuid.New()}
	log := opts.Log.WithFields(logrus.Fields{"run": res.ID.String(), "mode": opts.Mode.String()})

	log.WithField("candidates", len(decls)).Debug("run started")

	for _, f := range opts.LoadFailures {
		res.loadFailed(f, opts.Reporter, log)
	}

	for _, d := range decls {
		res.fold(d, process(d, opts, log))
	}

	log.WithFields(logrus.Fields{
		"built":    res.Built,
		"skipped":  res.Skipped,
		"filtered": res.Filtered,
		"failed":   res.Failed,
	}).Info("run finished")

	return res
}

type outcome int

const (
	emitted outcome = iota
	skipped
	filtered
	failed
)

type candidate struct {
	outcome outcome
	spec    model.UnionSpec
	file    gen.GeneratedFile
	err     error
}

func (r *RunResult) fold(d decl.Declaration, c candidate) {
	switch c.outcome {
	case emitted:
		r.Built++
		r.Specs = append(r.Specs, c.spec)
		r.Units = append(r.Units, c.file)
	case skipped:
		r.Skipped++
	case filtered:
		r.Filtered++
		r.Specs = append(r.Specs, c.spec)
	case failed:
		r.Failed++
		if len(c.file.Content) > 0 {
			r.Defects = append(r.Defects, c.file)
		}

		r.Errors = multierr.Append(r.Errors, fmt.Errorf("%s (%s): %w", d.Name, d.Origin, c.err))
	}
}

func (r *RunResult) loadFailed(f LoadFailure, rep diagnostic.Reporter, log logrus.FieldLogger) {
	rep.Report(diagnostic.Diagnostic{
		Severity: diagnostic.DiagnosticError,
		Code:     diagnostic.CodeInvalidInput,
		Message:  f.Err.Error(),
		Origin:   f.Origin,
	})
	log.WithError(f.Err).WithField("origin", f.Origin).Error("input not loaded")

	r.Failed++
	r.Errors = multierr.Append(r.Errors, fmt.Errorf("%s: %w", f.Origin, f.Err))
}

// process handles one candidate. Panics are converted into failures so a
// single candidate never aborts the run.
func process(d decl.Declaration, opts Options, log logrus.FieldLogger) (c candidate) {
	entry := log.WithFields(logrus.Fields{"union": d.Name, "origin": d.Origin})

	defer func() {
		if v := recover(); v != nil {
			err := fmt.Errorf("%w: %v", ErrInternal, v)
			report(opts.Reporter, diagnostic.DiagnosticError, diagnostic.CodeEmitFailed, d, err.Error())
			entry.WithError(err).Error("candidate aborted")

			c = candidate{outcome: failed, err: err}
		}
	}()

	result := build.Build(d, opts.Reporter, opts.Build)

	switch result.Outcome {
	case build.Skipped:
		entry.Debug("no union annotation")

		return candidate{outcome: skipped}
	case build.Failed:
		report(opts.Reporter, diagnostic.DiagnosticInfo, diagnostic.CodeCandidateSkipped, d,
			fmt.Sprintf("union %s skipped after build errors", d.Name))
		entry.WithError(result.Err).Warn("candidate skipped")

		return candidate{outcome: failed, err: result.Err}
	}

	spec := result.Spec
	if !opts.AnyMode && !model.Accepts(spec, opts.Mode) {
		entry.WithField("declared", spec.Mode.String()).Debug("filtered by mode")

		return candidate{outcome: filtered, spec: spec}
	}

	file, err := gen.Emit(spec, opts.Emit)
	if err != nil {
		report(opts.Reporter, diagnostic.DiagnosticError, diagnostic.CodeEmitFailed, d, err.Error())
		entry.WithError(err).Error("emit failed")

		failure := candidate{outcome: failed, spec: spec, err: err}
		if errors.Is(err, gen.ErrFormat) {
			failure.file = file
		}

		return failure
	}

	entry.WithField("file", file.Filename).Debug("emitted")

	return candidate{outcome: emitted, spec: spec, file: file}
}

func report(r diagnostic.Reporter, sev diagnostic.DiagnosticSeverity, code string, d decl.Declaration, msg string) {
	r.Report(diagnostic.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Union:    d.Name,
		Origin:   d.Origin,
	})
}
