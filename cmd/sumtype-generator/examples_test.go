package main

import (
	"context"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sumtype-generator/internal/config"
	"sumtype-generator/internal/engine"
	"sumtype-generator/internal/gen"
	"sumtype-generator/internal/model"
)

// TestExamplesAreUpToDate regenerates every examples/ package in memory and
// compares path and content with the checked-in units.
func TestExamplesAreUpToDate(t *testing.T) {
	root, err := filepath.Abs(filepath.Join("..", "..", "examples"))
	require.NoError(t, err)

	cfg := config.New()
	log, _ := test.NewNullLogger()

	in, err := scan(root, cfg)
	require.NoError(t, err)

	l, err := load(context.Background(), in, cfg, log)
	require.NoError(t, err)
	require.Empty(t, l.failures)

	res := engine.Run(l.decls, engine.Options{
		Mode: model.OnDemand,
		Emit: gen.Options{Header: cfg.Header, Suffix: cfg.Suffix},
		Log:  log,
	})
	require.True(t, res.OK(), "%v", res.Errors)

	generated := make(map[string][]byte, len(res.Units))
	for _, u := range res.Units {
		generated[filepath.Join(root, u.Dir, u.Filename)] = u.Content
	}

	onDisk, err := filepath.Glob(filepath.Join(root, "*", "*"+cfg.Suffix))
	require.NoError(t, err)
	require.NotEmpty(t, onDisk)
	assert.ElementsMatch(t, onDisk, slices.Collect(maps.Keys(generated)))

	for path, content := range generated {
		want, err := os.ReadFile(path)
		if !assert.NoError(t, err, "missing generated file") {
			continue
		}

		assert.Equal(t, string(want), string(content), path)
	}
}
