package parser_test

import (
	"os"
	"testing"

	"bennypowers.dev/vds/ast"
	"bennypowers.dev/vds/generate"
	"bennypowers.dev/vds/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type syntaxFixture struct {
	Name      string `yaml:"name"`
	Source    string `yaml:"source"`
	Canonical string `yaml:"canonical"`
}

func loadSyntaxFixtures(t *testing.T) []syntaxFixture {
	t.Helper()
	raw, err := os.ReadFile("testdata/syntaxes.yaml")
	require.NoError(t, err)
	var fixtures []syntaxFixture
	require.NoError(t, yaml.Unmarshal(raw, &fixtures))
	require.NotEmpty(t, fixtures)
	return fixtures
}

func TestRoundTrip(t *testing.T) {
	for _, fx := range loadSyntaxFixtures(t) {
		t.Run(fx.Name, func(t *testing.T) {
			node, err := parser.Parse(fx.Source)
			require.NoError(t, err)

			out, err := generate.Generate(node)
			require.NoError(t, err)
			assert.Equal(t, fx.Canonical, out)

			// the canonical form is a fixed point
			renode, err := parser.Parse(fx.Canonical)
			require.NoError(t, err)
			reout, err := generate.Generate(renode)
			require.NoError(t, err)
			assert.Equal(t, fx.Canonical, reout)

			assert.True(t, ast.Equal(node, renode),
				"source and canonical must parse to the same tree")
		})
	}
}
