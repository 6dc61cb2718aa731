package walk_test

import (
	"errors"
	"fmt"
	"testing"

	"bennypowers.dev/vds/ast"
	"bennypowers.dev/vds/generate"
	"bennypowers.dev/vds/internal/collections"
	"bennypowers.dev/vds/parser"
	"bennypowers.dev/vds/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func label(node ast.Node) string {
	switch n := node.(type) {
	case *ast.Group:
		return "Group"
	case *ast.Multiplier:
		return "Multiplier"
	case *ast.Type:
		return "Type:" + n.Name
	case *ast.Keyword:
		return "Keyword:" + n.Name
	default:
		return fmt.Sprintf("%T", node)
	}
}

func TestWalkOrder(t *testing.T) {
	node, err := parser.Parse("<foo> | <bar>{0,0} <baz>")
	require.NoError(t, err)

	type trace struct {
		entered []string
		left    []string
	}
	var tr trace
	err = walk.Walk(node, walk.Options[trace]{
		Enter: func(n ast.Node, ctx *trace) error {
			ctx.entered = append(ctx.entered, label(n))
			return nil
		},
		Leave: func(n ast.Node, ctx *trace) error {
			ctx.left = append(ctx.left, label(n))
			return nil
		},
	}, &tr)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Group", "Type:foo", "Group", "Multiplier", "Type:bar", "Type:baz",
	}, tr.entered, "enter order is pre-order")
	assert.Equal(t, []string{
		"Type:foo", "Type:bar", "Multiplier", "Type:baz", "Group", "Group",
	}, tr.left, "leave order is post-order")
}

func TestWalkCollectConstituents(t *testing.T) {
	// the motivating use: list the types and properties a grammar refers to
	node, err := parser.Parse("<length> <length>? | <'margin-top'> && <length>")
	require.NoError(t, err)

	refs := collections.NewSet[string]()
	err = walk.Walk(node, walk.Options[collections.Set[string]]{
		Enter: func(n ast.Node, ctx *collections.Set[string]) error {
			switch n.(type) {
			case *ast.Type, *ast.Property:
				text, err := generate.Generate(n)
				if err != nil {
					return err
				}
				ctx.Add(text)
			}
			return nil
		},
	}, &refs)
	require.NoError(t, err)

	assert.Equal(t, []string{"<'margin-top'>", "<length>"}, refs.Sorted())
}

func TestWalkStopsOnError(t *testing.T) {
	node, err := parser.Parse("a b c")
	require.NoError(t, err)

	boom := errors.New("boom")
	var seen int
	err = walk.Walk(node, walk.Options[int]{
		Enter: func(n ast.Node, _ *int) error {
			if kw, ok := n.(*ast.Keyword); ok {
				seen++
				if kw.Name == "b" {
					return boom
				}
			}
			return nil
		},
	}, nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, seen, "c is never visited")
}

func TestWalkLeaveError(t *testing.T) {
	node, err := parser.Parse("a")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = walk.Walk(node, walk.Options[struct{}]{
		Leave: func(ast.Node, *struct{}) error { return boom },
	}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestWalkUnknownNode(t *testing.T) {
	err := walk.Walk(&ast.Spaces{Value: " "}, walk.Options[struct{}]{}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ast.ErrUnknownNode)

	err = walk.Walk(&ast.Group{
		Terms: []ast.Node{&ast.Combinator{Value: ast.VerticalLine}},
	}, walk.Options[struct{}]{}, nil)
	assert.ErrorIs(t, err, ast.ErrUnknownNode)
}

func TestWalkNoCallbacks(t *testing.T) {
	node, err := parser.Parse("a | b")
	require.NoError(t, err)
	assert.NoError(t, walk.Walk(node, walk.Options[struct{}]{}, nil))
}
