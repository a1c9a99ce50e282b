package engine

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"sumtype-generator/internal/build"
	"sumtype-generator/internal/decl"
	"sumtype-generator/internal/diagnostic"
	"sumtype-generator/internal/gen"
	"sumtype-generator/internal/model"
)

func variant(expr, name string) decl.Annotation {
	return decl.Annotation{
		Kind: decl.KindVariant,
		Args: []decl.Arg{decl.Value(decl.TypeRef{Expr: expr}), decl.Value(name)},
	}
}

func union(name string, aot bool, anns ...decl.Annotation) decl.Declaration {
	u := decl.Annotation{Kind: decl.KindUnion, Named: map[string]decl.Arg{}}
	if aot {
		u.Named[decl.ArgAOT] = decl.Value(true)
	}

	return decl.Declaration{
		Namespace:   "sample",
		Name:        name,
		Dir:         "sample",
		Origin:      "sample/sample.go:" + name,
		Annotations: append([]decl.Annotation{u}, anns...),
	}
}

func candidates() []decl.Declaration {
	return []decl.Declaration{
		union("Shape", false, variant("int", "Circle"), variant("string", "Label")),
		{Namespace: "sample", Name: "Plain", Origin: "sample/sample.go:Plain"},
		union("Cached", true, variant("int", "Hit")),
		union("Clash", false, variant("int", "Same"), variant("string", "Same")),
		union("Token", false, variant("uint64", "ID")),
	}
}

func TestRun_OnDemandFoldsInOrder(t *testing.T) {
	var diags diagnostic.Diagnostics

	res := Run(candidates(), Options{Mode: model.OnDemand, Reporter: &diags})

	assert.Equal(t, 2, res.Built)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 1, res.Filtered)
	assert.Equal(t, 1, res.Failed)
	assert.False(t, res.OK())
	assert.NotEmpty(t, res.ID.String())

	require.Len(t, res.Units, 2)
	assert.Equal(t, "shape_sumtype.go", res.Units[0].Filename)
	assert.Equal(t, "Shape", res.Units[0].Union)
	assert.Equal(t, "sample", res.Units[0].Dir)
	assert.Equal(t, "token_sumtype.go", res.Units[1].Filename)

	require.Len(t, res.Specs, 3)
	assert.Equal(t, "Cached", res.Specs[1].Name)

	require.Error(t, res.Errors)
	assert.ErrorIs(t, res.Errors, build.ErrCollision)
	assert.Contains(t, res.Errors.Error(), "Clash")

	assert.NotEmpty(t, diags.ByCode(diagnostic.CodeNameCollision))
	skipped := diags.ByCode(diagnostic.CodeCandidateSkipped)
	require.Len(t, skipped, 1)
	assert.Equal(t, "Clash", skipped[0].Union)
}

func TestRun_AheadOfTimeEmitsOnlyMarkedUnions(t *testing.T) {
	res := Run(candidates(), Options{Mode: model.AheadOfTime})

	require.Len(t, res.Units, 1)
	assert.Equal(t, "cached_sumtype.go", res.Units[0].Filename)
	assert.Equal(t, 1, res.Built)
	assert.Equal(t, 2, res.Filtered)
	assert.Equal(t, 1, res.Failed)
}

func TestRun_EmitFailureIsIsolated(t *testing.T) {
	var diags diagnostic.Diagnostics

	decls := []decl.Declaration{
		union("Broken", false, variant("map[string", "Bad")),
		union("Fine", false, variant("int", "Value")),
	}

	res := Run(decls, Options{Reporter: &diags})

	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Built)
	require.Len(t, res.Units, 1)
	assert.Equal(t, "Fine", res.Units[0].Union)
	assert.ErrorIs(t, res.Errors, gen.ErrFormat)
	assert.Len(t, diags.ByCode(diagnostic.CodeEmitFailed), 1)

	require.Len(t, res.Defects, 1)
	assert.Equal(t, "broken_sumtype.go", res.Defects[0].Filename)
	assert.Contains(t, string(res.Defects[0].Content), "map[string")
}

func TestRun_AnyModeBypassesGate(t *testing.T) {
	res := Run(candidates(), Options{Mode: model.OnDemand, AnyMode: true})

	assert.Equal(t, 3, res.Built)
	assert.Zero(t, res.Filtered)
	require.Len(t, res.Units, 3)
	assert.Equal(t, "cached_sumtype.go", res.Units[1].Filename)
}

func TestRun_EmptyInput(t *testing.T) {
	res := Run(nil, Options{})

	assert.True(t, res.OK())
	assert.Empty(t, res.Units)
	assert.NoError(t, res.Errors)
}

func TestRun_EmitOptionsApplied(t *testing.T) {
	decls := []decl.Declaration{union("Shape", false, variant("int", "Circle"))}

	res := Run(decls, Options{Emit: gen.Options{Header: "Code generated by test. DO NOT EDIT.", Suffix: ".gen.go"}})

	require.Len(t, res.Units, 1)
	assert.Equal(t, "shape.gen.go", res.Units[0].Filename)
	assert.Contains(t, string(res.Units[0].Content), "// Code generated by test. DO NOT EDIT.")
}

func TestRun_LogsCarryRunID(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	res := Run(candidates(), Options{Log: log})

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)

	for _, e := range entries {
		assert.Equal(t, res.ID.String(), e.Data["run"])
	}

	last := hook.LastEntry()
	assert.Equal(t, "run finished", last.Message)
	assert.Equal(t, 2, last.Data["built"])
}

func TestRun_ErrorsListEachFailure(t *testing.T) {
	decls := []decl.Declaration{
		union("First", false, variant("int", "A"), variant("int", "A")),
		union("Second", false, variant("int", "B"), variant("int", "B")),
	}

	res := Run(decls, Options{})

	errs := multierr.Errors(res.Errors)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "First")
	assert.Contains(t, errs[1].Error(), "Second")
	assert.True(t, errors.Is(errs[1], build.ErrCollision))
}

// explodingReporter panics on the tag-width warning of one union.
type explodingReporter struct {
	diagnostic.Diagnostics
	union string
}

func (r *explodingReporter) Report(d diagnostic.Diagnostic) {
	if d.Union == r.union && d.Code == diagnostic.CodeInvalidTagWidth {
		panic("reporter exploded")
	}

	r.Diagnostics.Report(d)
}

func TestRun_PanicIsRecoveredPerCandidate(t *testing.T) {
	bad := union("Bad", false, variant("int", "Int"))
	bad.Annotations[0].Named[decl.ArgTag] = decl.Value("int7")

	decls := []decl.Declaration{
		union("Shape", false, variant("int", "Circle")),
		bad,
		union("Token", false, variant("uint64", "ID")),
	}

	rep := &explodingReporter{union: "Bad"}

	var res RunResult
	require.NotPanics(t, func() {
		res = Run(decls, Options{Mode: model.OnDemand, Reporter: rep})
	})

	assert.Equal(t, 2, res.Built)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Units, 2)
	assert.Equal(t, "Shape", res.Units[0].Union)
	assert.Equal(t, "Token", res.Units[1].Union)

	assert.ErrorIs(t, res.Errors, ErrInternal)
	assert.Contains(t, res.Errors.Error(), "reporter exploded")

	failures := rep.ByCode(diagnostic.CodeEmitFailed)
	require.Len(t, failures, 1)
	assert.Equal(t, "Bad", failures[0].Union)
	assert.Equal(t, diagnostic.DiagnosticError, failures[0].Severity)
}

func TestRun_LoadFailuresAreCounted(t *testing.T) {
	var diags diagnostic.Diagnostics

	errBroken := errors.New("broken yaml")

	res := Run([]decl.Declaration{union("Shape", false, variant("int", "Circle"))}, Options{
		Mode:         model.OnDemand,
		Reporter:     &diags,
		LoadFailures: []LoadFailure{{Origin: "broken/broken.sumtype.yaml", Err: errBroken}},
	})

	assert.Equal(t, 1, res.Built)
	assert.Equal(t, 1, res.Failed)
	assert.False(t, res.OK())
	assert.ErrorIs(t, res.Errors, errBroken)
	assert.Contains(t, res.Errors.Error(), "broken/broken.sumtype.yaml")

	reported := diags.ByCode(diagnostic.CodeInvalidInput)
	require.Len(t, reported, 1)
	assert.Equal(t, diagnostic.DiagnosticError, reported[0].Severity)
	assert.Equal(t, "broken/broken.sumtype.yaml", reported[0].Origin)
	assert.Empty(t, reported[0].Union)
}
